package lesson

import "strings"

// diagramPrefixes are the mermaid diagram kinds the page can render.
// "graph" is mermaid's legacy flowchart keyword and equally renderable.
var diagramPrefixes = []string{"flowchart", "graph", "sequenceDiagram"}

// fallbackDiagram replaces diagram text the renderer cannot handle.
const fallbackDiagram = "flowchart LR\n  A[Diagram failed validation] --> B[Regenerate, or lower the temperature]"

// normalizeDiagram substitutes a fallback when the diagram does not
// start with a renderable mermaid keyword. Already-normalized input
// passes through unchanged, keeping re-validation idempotent.
func normalizeDiagram(diagram string) string {
	trimmed := strings.TrimSpace(diagram)
	for _, prefix := range diagramPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return diagram
		}
	}
	return fallbackDiagram
}
