package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmehra/learnly/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version and check for updates",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("learnly", version)

		skip, _ := cmd.Flags().GetBool("no-check")
		if skip {
			return
		}

		checker := selfupdate.NewChecker()
		result, err := checker.Check(cmd.Context(), &selfupdate.CheckInput{Version: version})
		if err != nil {
			fmt.Fprintln(os.Stderr, "update check failed:", err)
			return
		}
		if result.UpdateAvailable {
			fmt.Printf("A newer version is available: %s\n%s\n", result.LatestVersion, result.ReleaseURL)
		}
	},
}

func init() {
	versionCmd.Flags().Bool("no-check", false, "Skip the remote update check")
}
