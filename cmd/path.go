package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmehra/learnly/internal/premium"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show an AI-recommended study path based on your history",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		gateway := newGateway(cmd, client, st)
		path, err := gateway.AdaptivePath(cmd.Context())
		if err != nil {
			switch premium.Classify(err) {
			case premium.OutcomePremiumRequired:
				fmt.Println("Adaptive path is a premium feature. Upgrade your plan to use it.")
				return nil
			case premium.OutcomeRateLimited:
				fmt.Println("You're sending requests too quickly. Try again in a moment.")
				return nil
			}
			return fmt.Errorf("adaptive path: %w", err)
		}

		if len(path.WeakTopics) > 0 {
			fmt.Println("Topics to revisit:")
			for _, t := range path.WeakTopics {
				fmt.Printf("  - %s\n", t)
			}
			fmt.Println()
		}
		if len(path.Recommendations) == 0 {
			fmt.Println("No recommendations yet. Complete a few lessons first.")
			return nil
		}
		fmt.Println("Recommended next steps:")
		for _, r := range path.Recommendations {
			fmt.Printf("  [%s] %s\n", r.Priority, r.Topic)
			fmt.Printf("        %s\n", r.Reason)
			if r.ActionItem != "" {
				fmt.Printf("        Next: %s\n", r.ActionItem)
			}
		}
		return nil
	},
}
