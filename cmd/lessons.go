package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmehra/learnly/internal/api"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons [course-slug]",
	Short: "List course chapters and overall progress",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		courseSlug := ""
		if len(args) == 1 {
			courseSlug = args[0]
		} else {
			courses, err := client.Courses(ctx)
			if err != nil {
				return fmt.Errorf("list courses: %w", err)
			}
			if len(courses) == 0 {
				fmt.Println("No courses available.")
				return nil
			}
			courseSlug = courses[0].Slug
			if len(courses) > 1 {
				fmt.Println("Courses:")
				for _, c := range courses {
					fmt.Printf("  %-24s %s\n", c.Slug, c.Title)
				}
				fmt.Println()
			}
		}

		chapters, err := client.CourseChapters(ctx, courseSlug)
		if err != nil {
			return fmt.Errorf("list chapters: %w", err)
		}

		fmt.Printf("Chapters in %s:\n", courseSlug)
		for i, ch := range chapters {
			mark := " "
			if rec, err := client.Progress(ctx, ch.Slug); err == nil && rec.Completed {
				mark = "✓"
			} else if err != nil && !api.IsNotFound(err) {
				fmt.Fprintf(os.Stderr, "warning: progress for %s: %v\n", ch.Slug, err)
			}
			fmt.Printf("  %s %2d. %-28s %s\n", mark, i+1, ch.Slug, ch.Title)
		}

		if summary, err := client.ProgressSummary(ctx); err == nil {
			fmt.Printf("\nOverall progress: %.0f%%\n", summary.Percentage)
		}
		return nil
	},
}
