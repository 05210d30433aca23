package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/filmdesk/filmdesk/pkg/errors"
)

var sellFlagUser string

// sellCmd records a sale against film stock.
var sellCmd = &cobra.Command{
	Use:     "sell TITLE QUANTITY",
	Short:   "Record a sale, depleting film stock",
	Args:    cobra.ExactArgs(2),
	Example: `  filmdesk sell "Dune" 3 --user alice`,
	RunE:    runSell,
}

func init() {
	rootCmd.AddCommand(sellCmd)

	sellCmd.Flags().StringVarP(&sellFlagUser, "user", "u", "", "seller username (required)")
	_ = sellCmd.MarkFlagRequired("user")
}

func runSell(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	title := args[0]
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.NewValidationError("quantity", args[1], "quantity must be an integer")
	}

	// Seller identity is resolved up front so unknown names get the
	// create hint instead of silently appearing in the ledger.
	if _, err := desk.ResolveUser(sellFlagUser); err != nil {
		if errors.IsNotFound(err) {
			return fmt.Errorf("%w (create it with: filmdesk user create %s)", err, sellFlagUser)
		}
		return err
	}

	sale, err := desk.RecordSale(title, quantity, sellFlagUser)
	if err != nil {
		return err
	}

	film, err := desk.Catalog().Get(title)
	if err != nil {
		return err
	}
	fmt.Printf("Sold %d x %q for %.2f (stock remaining: %d)\n",
		sale.Quantity, sale.Title, sale.Total, film.Stock)
	return nil
}
