package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/aretw0/espalier/pkg/project"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every condition for stale references",
	Long:  `Walks all condition trees in the project and reports references to missing or soft-deleted variables and scripts.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) error {
	projectPath, _ := cmd.Flags().GetString("project")

	doc, err := project.Load(projectPath)
	if err != nil {
		return err
	}

	report := doc.Validate()
	if len(report) == 0 {
		fmt.Println("All conditions are healthy! ✅")
		return nil
	}

	owners := make([]string, 0, len(report))
	for owner := range report {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	for _, owner := range owners {
		fmt.Printf("%s:\n", owner)
		for _, w := range report[owner] {
			fmt.Printf("  %s %s is %s (at %v)\n", w.Kind, w.ID, w.Status, w.Path)
		}
	}
	return fmt.Errorf("%d condition(s) reference stale definitions", len(report))
}
