package lesson

import "strings"

// extractJSON locates a JSON object inside arbitrary model text.
// Models wrap JSON in prose or markdown code fences despite the prompt;
// this is best-effort recovery, not a parser. It strips surrounding
// fence markers and returns the substring from the first '{' to the
// last '}'. Returns ("", false) when no object is present.
func extractJSON(text string) (string, bool) {
	text = strings.TrimSpace(text)

	text = stripFences(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// stripFences removes a surrounding markdown code fence, with or
// without a language tag ("```json").
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	// Drop the opening fence line.
	if nl := strings.IndexByte(text, '\n'); nl != -1 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
