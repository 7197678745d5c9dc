package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show local learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		stats := st.Stats()

		lessons, err := stats.LessonStats(ctx)
		if err != nil {
			return fmt.Errorf("lesson stats: %w", err)
		}
		notes, err := stats.NoteStats(ctx)
		if err != nil {
			return fmt.Errorf("note stats: %w", err)
		}
		llmStats, err := stats.LLMStats(ctx)
		if err != nil {
			return fmt.Errorf("llm stats: %w", err)
		}

		fmt.Println("Lessons")
		fmt.Printf("  sessions:   %d\n", lessons.Sessions)
		fmt.Printf("  completed:  %d\n", lessons.Completed)
		if lessons.QuizTotal > 0 {
			fmt.Printf("  quiz score: %d/%d\n", lessons.QuizCorrect, lessons.QuizTotal)
		}
		fmt.Printf("  time spent: %dm\n", lessons.TimeSpentS/60)
		if !lessons.LastActivity.IsZero() {
			fmt.Printf("  last seen:  %s\n", lessons.LastActivity.Format("2006-01-02 15:04"))
		}

		fmt.Println("Notes")
		fmt.Printf("  saves:      %d\n", notes.Saves)
		fmt.Printf("  retries:    %d\n", notes.Retries)
		fmt.Printf("  failures:   %d\n", notes.Failures)

		fmt.Println("AI usage")
		fmt.Printf("  requests:   %d\n", llmStats.Requests)
		fmt.Printf("  tokens:     %d in / %d out\n", llmStats.InputTokens, llmStats.OutputTokens)
		fmt.Printf("  failures:   %d\n", llmStats.Failures)

		recent, err := stats.RecentLessons(ctx, 5)
		if err == nil && len(recent) > 0 {
			fmt.Println("Recent lessons")
			for _, ev := range recent {
				mark := " "
				if ev.Completed {
					mark = "✓"
				}
				fmt.Printf("  %s %-28s %s\n", mark, ev.LessonSlug, ev.CreatedAt.Format("2006-01-02"))
			}
		}
		return nil
	},
}
