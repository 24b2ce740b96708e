package main

import (
	"fmt"

	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/project"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <owner-id>",
	Short: "Export a condition tree visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) representing the condition tree, with unhealthy references highlighted.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectPath, _ := cmd.Flags().GetString("project")

		doc, err := project.Load(projectPath)
		if err != nil {
			fatalf("Error loading project: %v", err)
		}

		output := graph.GenerateMermaid(doc.Conditions[args[0]], doc.Variables, doc.ConditionScripts())
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
