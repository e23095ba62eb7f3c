package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonlab/internal/lesson"
	"github.com/abhisek/lessonlab/internal/llm"
	"github.com/abhisek/lessonlab/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a single lesson to stdout",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")
		audience, _ := cmd.Flags().GetString("audience")
		style, _ := cmd.Flags().GetString("style")
		demo, _ := cmd.Flags().GetBool("demo")
		model, _ := cmd.Flags().GetString("model")
		asJSON, _ := cmd.Flags().GetBool("json")

		input := lesson.GenerateInput{
			Topic:       topic,
			Audience:    audience,
			Style:       style,
			IncludeDemo: demo,
			Model:       model,
		}
		if cmd.Flags().Changed("temperature") {
			t, _ := cmd.Flags().GetFloat64("temperature")
			input.Temperature = &t
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.RequestLog())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		service := lesson.NewService(provider, lesson.DefaultConfig())
		result, err := service.Generate(cmd.Context(), input)
		if err != nil {
			return reportFailure(err)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result.Lesson)
		}

		printLesson(result)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("audience", "", "Audience, e.g. \"Bootcamp\"")
	generateCmd.Flags().String("style", "", "Style, e.g. \"Fun & analogy-driven\"")
	generateCmd.Flags().Bool("demo", true, "Include a tiny example/demo in the lesson")
	generateCmd.Flags().Float64("temperature", 0, "Sampling temperature override (0-1)")
	generateCmd.Flags().String("model", "", "Model override")
	generateCmd.Flags().Bool("json", false, "Print the validated lesson as JSON")
}

// reportFailure prints the typed failure with its raw model text, when
// available, before returning the error to cobra.
func reportFailure(err error) error {
	var raw string
	var parseErr *lesson.ErrParse
	var schemaErr *lesson.ErrSchemaViolation
	switch {
	case errors.As(err, &parseErr):
		raw = parseErr.Raw
	case errors.As(err, &schemaErr):
		raw = schemaErr.Raw
	}
	if raw != "" {
		fmt.Fprintln(os.Stderr, "Raw model output:")
		fmt.Fprintln(os.Stderr, raw)
		fmt.Fprintln(os.Stderr)
	}
	return err
}

func printLesson(result *lesson.Result) {
	l := result.Lesson
	sep := strings.Repeat("─", 60)

	if l.Title != "" {
		fmt.Println(l.Title)
		fmt.Println(sep)
	}
	if l.ElevatorPitch != "" {
		fmt.Println(l.ElevatorPitch)
		fmt.Println()
	}

	fmt.Println(l.Explanation)
	fmt.Println()

	fmt.Println("Diagram:")
	fmt.Println(l.Diagram)
	fmt.Println()

	fmt.Println("Quiz:")
	for i, q := range l.Quiz {
		fmt.Printf("%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			marker := " "
			if j == q.CorrectIndex {
				marker = "*"
			}
			fmt.Printf("   %s %c) %s\n", marker, 'a'+j, opt)
		}
	}
	fmt.Println()

	fmt.Println("Next steps:")
	for i, s := range l.NextSteps {
		fmt.Printf("%d. %s\n", i+1, s)
	}
	fmt.Println()

	fmt.Printf("(model %s, %d in / %d out tokens)\n",
		result.Model, result.Usage.InputTokens, result.Usage.OutputTokens)
}
