package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/AcalaNetwork/bodhi.js-sub002/params"
)

var (
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s %s/%s)\n",
			rootCmd.Use, params.VersionWithCommit(gitCommit, gitDate), runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
