package cmd

import (
	"github.com/dmehra/learnly/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "learnly",
	Short: "Terminal client for the Learnly learning service",
	Long: "Learnly: read lessons, take quizzes, keep notes and get AI feedback,\n" +
		"all from the terminal. Run 'learnly lessons' to browse the course and\n" +
		"'learnly learn <slug>' to open a lesson.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEARNLY_DB env var)")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then LEARNLY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
