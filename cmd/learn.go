package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dmehra/learnly/internal/app"
)

var learnCmd = &cobra.Command{
	Use:   "learn <slug>",
	Short: "Open a lesson in the terminal",
	Args:  cobra.ExactArgs(1),
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
		deps := app.BuildDeps(client, gateway, st.Events())
		ctrl := app.BuildController(deps)

		return app.Run(app.Options{Controller: ctrl, Slug: args[0]})
	},
}
