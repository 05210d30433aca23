package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recommendFlagUser string

// recommendCmd asks the external recommendation engine for suggestions.
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Get film recommendations for a user",
	Long: `Recommend invokes the external recommendation engine for the given
user. The engine is a separate executable exchanging JSON artifacts with
filmdesk; an empty result means the engine had nothing to suggest and is
not an error.`,
	Example: `  filmdesk recommend --user alice`,
	RunE:    runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVarP(&recommendFlagUser, "user", "u", "", "target username (required)")
	_ = recommendCmd.MarkFlagRequired("user")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	recommendations, err := desk.Recommend(cmd.Context(), recommendFlagUser)
	if err != nil {
		return err
	}

	if len(recommendations) == 0 {
		fmt.Println("No recommendations available.")
		return nil
	}

	fmt.Printf("Recommendations for %s:\n", recommendFlagUser)
	for _, rec := range recommendations {
		fmt.Printf("  - %s\n", rec.Title)
	}
	return nil
}
