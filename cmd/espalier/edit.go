package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <owner-id>",
	Short: "Interactively edit the condition of a transition or branch",
	Long:  `Opens the condition tree owned by the given transition/branch id in an interactive editor. Edits are normalized and saved back to the project file as you go.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectPath, _ := cmd.Flags().GetString("project")
		debug, _ := cmd.Flags().GetBool("debug")
		quiet, _ := cmd.Flags().GetBool("quiet")

		return cli.RunEdit(cli.EditOptions{
			ProjectPath: projectPath,
			Owner:       args[0],
			Debug:       debug,
			Quiet:       quiet,
		})
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().Bool("debug", false, "Enable debug logging to stderr")
	editCmd.Flags().BoolP("quiet", "q", false, "Suppress banner and status messages")
}

func fatalf(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
