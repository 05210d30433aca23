package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/filmdesk/filmdesk/pkg/analytics"
)

// statsCmd prints catalog statistics.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	films := desk.Catalog().List()

	best := analytics.BestByCategory(films)
	if len(best) > 0 {
		fmt.Println("Best film by category")
		for _, category := range sortedKeys(best) {
			entry := best[category]
			fmt.Printf("  %s: %s (%.1f)\n", category, entry.Title, entry.Score)
		}
	}

	counts := analytics.CountByYear(films)
	if len(counts) > 0 {
		fmt.Println("\nFilms by year")
		years := make([]int, 0, len(counts))
		for year := range counts {
			years = append(years, year)
		}
		sort.Ints(years)
		for _, year := range years {
			fmt.Printf("  %d: %d\n", year, counts[year])
		}
	}

	fmt.Printf("\nTotal films: %d\n", analytics.TotalCount(films))
	return nil
}
