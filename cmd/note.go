package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmehra/learnly/internal/api"
)

var noteCmd = &cobra.Command{
	Use:   "note <slug>",
	Short: "Print the saved note for a lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		note, err := client.Note(cmd.Context(), args[0])
		if err != nil {
			if api.IsNotFound(err) {
				fmt.Printf("No note saved for %s yet.\n", args[0])
				return nil
			}
			return fmt.Errorf("fetch note: %w", err)
		}

		fmt.Println(note.Content)
		return nil
	},
}
