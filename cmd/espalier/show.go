package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/aretw0/espalier/pkg/project"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <owner-id>",
	Short: "Print a condition tree",
	Long:  `Renders the condition tree owned by the given transition/branch id, with reference warnings inline.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectPath, _ := cmd.Flags().GetString("project")

		doc, err := project.Load(projectPath)
		if err != nil {
			fatalf("Error loading project: %v", err)
		}

		markdown := tui.MarkdownTree(doc.Conditions[args[0]], tui.TreeOptions{
			Title:     "Condition: " + args[0],
			Variables: doc.Variables,
			Scripts:   doc.ConditionScripts(),
		})

		if term.IsTerminal(int(os.Stdout.Fd())) {
			render := tui.NewRenderer()
			if out, err := render(markdown); err == nil {
				fmt.Print(out)
				return
			}
		}
		fmt.Print(markdown)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
