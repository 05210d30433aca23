package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/filmdesk/filmdesk/pkg/analytics"
)

// salesCmd groups ledger views.
var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Inspect the sales ledger",
}

// historyCmd lists every recorded sale.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show all recorded sales",
	RunE:  runHistory,
}

// reportCmd prints the sales dashboard aggregations.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show sales analytics: revenue by day, quantities by category and user",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(salesCmd)
	salesCmd.AddCommand(historyCmd)
	salesCmd.AddCommand(reportCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	ledger := desk.Ledger().List()
	if len(ledger) == 0 {
		fmt.Println("No sales recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTITLE\tSELLER\tQTY\tUNIT PRICE\tTOTAL")
	for _, sale := range ledger {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%.2f\n",
			sale.Timestamp, sale.Title, sale.Seller, sale.Quantity, sale.UnitPrice, sale.Total)
	}
	return w.Flush()
}

func runReport(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	ledger := desk.Ledger().List()
	films := desk.Catalog().List()

	summary := analytics.Summarize(ledger)
	fmt.Println("Sales dashboard")
	fmt.Printf("  Total revenue: %.2f\n", summary.TotalRevenue)
	fmt.Printf("  Sales recorded: %d\n", summary.SaleCount)
	fmt.Printf("  Units sold: %d\n", summary.UnitsSold)

	revenue := analytics.RevenueByDay(ledger)
	if len(revenue) > 0 {
		fmt.Println("\nRevenue by day")
		for _, day := range sortedKeys(revenue) {
			fmt.Printf("  %s: %.2f\n", day, revenue[day])
		}
	}

	byCategory := analytics.QuantityByCategory(ledger, films)
	if len(byCategory) > 0 {
		fmt.Println("\nQuantity sold by category")
		for _, category := range sortedKeys(byCategory) {
			fmt.Printf("  %s: %d\n", category, byCategory[category])
		}
	}

	byUser := analytics.QuantityByUser(ledger)
	if len(byUser) > 0 {
		fmt.Println("\nQuantity sold by user")
		for _, user := range sortedKeys(byUser) {
			fmt.Printf("  %s: %d\n", user, byUser[user])
		}
	}

	stocks := analytics.StockByTitle(films)
	if len(stocks) > 0 {
		fmt.Println("\nStock remaining by film")
		for _, title := range sortedKeys(stocks) {
			fmt.Printf("  %s: %d\n", title, stocks[title])
		}
	}

	return nil
}

// sortedKeys returns the map's keys in ascending order for stable output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
