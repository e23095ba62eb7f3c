package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lessonlab/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lessonlab",
	Short: "One-call AI lesson generator",
	Long:  "Lesson Lab — type a topic, get a mini-lesson, diagram, and quiz from a single LLM call.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite request-log file (overrides LESSONLAB_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the request-log path using --db flag (highest
// priority), then LESSONLAB_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
