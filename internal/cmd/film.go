package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/filmdesk/filmdesk/pkg/catalog"
)

var (
	addFlagTitle    string
	addFlagCategory string
	addFlagYear     int
	addFlagScore    float64
	addFlagStock    int
	addFlagPrice    float64

	listFlagCategory string
	listFlagYear     string
	listFlagMinScore string
	listFlagInStock  bool
	listFlagSort     string

	rateFlagUser string
)

// filmCmd groups catalog operations.
var filmCmd = &cobra.Command{
	Use:   "film",
	Short: "Manage the film catalog",
}

// addCmd appends a new film to the catalog.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a film to the catalog",
	Example: `  filmdesk film add --title "Dune" --category "Sci-Fi" --year 2021 --stock 5 --price 10.0
  filmdesk film add -t "Alien" -c "Horror" -y 1979 --stock 3 --price 8.5`,
	RunE: runAdd,
}

// listCmd displays the catalog with optional filters and sorting.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List films, optionally filtered and sorted",
	Example: `  filmdesk film list
  filmdesk film list --category Drama --min-score 7
  filmdesk film list --sort score`,
	RunE: runList,
}

// rateCmd records a user's rating for a film.
var rateCmd = &cobra.Command{
	Use:     "rate TITLE RATING",
	Short:   "Rate a film from 0 to 10",
	Args:    cobra.ExactArgs(2),
	Example: `  filmdesk film rate "Dune" 8 --user alice`,
	RunE:    runRate,
}

// importCmd replaces the catalog from a JSON file.
var importCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Replace the catalog from a JSON film array",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

// exportCmd writes the catalog to a JSON file.
var exportCmd = &cobra.Command{
	Use:   "export PATH",
	Short: "Export the catalog to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(filmCmd)
	filmCmd.AddCommand(addCmd)
	filmCmd.AddCommand(listCmd)
	filmCmd.AddCommand(rateCmd)
	filmCmd.AddCommand(importCmd)
	filmCmd.AddCommand(exportCmd)

	addCmd.Flags().StringVarP(&addFlagTitle, "title", "t", "", "film title (required)")
	addCmd.Flags().StringVarP(&addFlagCategory, "category", "c", "", "film category (required)")
	addCmd.Flags().IntVarP(&addFlagYear, "year", "y", 0, "release year")
	addCmd.Flags().Float64Var(&addFlagScore, "score", 0, "initial score (recomputed from ratings)")
	addCmd.Flags().IntVar(&addFlagStock, "stock", 0, "units in stock")
	addCmd.Flags().Float64Var(&addFlagPrice, "price", 0, "unit price")

	listCmd.Flags().StringVarP(&listFlagCategory, "category", "c", "", "filter by category (case-insensitive)")
	listCmd.Flags().StringVarP(&listFlagYear, "year", "y", "", "filter by exact release year")
	listCmd.Flags().StringVar(&listFlagMinScore, "min-score", "", "filter by minimum score (inclusive)")
	listCmd.Flags().BoolVar(&listFlagInStock, "in-stock", false, "only films with stock remaining")
	listCmd.Flags().StringVarP(&listFlagSort, "sort", "s", "", "sort by title, year, or score")

	rateCmd.Flags().StringVarP(&rateFlagUser, "user", "u", "", "rating username (required)")
	_ = rateCmd.MarkFlagRequired("user")
}

func runAdd(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	film := catalog.Film{
		Title:     addFlagTitle,
		Category:  addFlagCategory,
		Year:      addFlagYear,
		Score:     addFlagScore,
		Stock:     addFlagStock,
		UnitPrice: addFlagPrice,
	}
	if err := desk.AddFilm(film); err != nil {
		return err
	}

	fmt.Printf("Added %q to the catalog\n", film.Title)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	filter, err := catalog.ParseFilter(listFlagCategory, listFlagYear, listFlagMinScore)
	if err != nil {
		return err
	}
	filter.InStock = listFlagInStock

	if listFlagSort != "" {
		key, err := catalog.ParseSortKey(listFlagSort)
		if err != nil {
			return err
		}
		if err := desk.SortCatalog(key); err != nil {
			return err
		}
	}

	films := desk.Catalog().Filter(filter)
	if len(films) == 0 {
		fmt.Println("No films match.")
		return nil
	}

	printFilms(films)
	return nil
}

// printFilms renders films as an aligned table.
func printFilms(films []*catalog.Film) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tCATEGORY\tYEAR\tSCORE\tSTOCK\tPRICE")
	for _, film := range films {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%d\t%.2f\n",
			film.Title, film.Category, film.Year, film.Score, film.Stock, film.UnitPrice)
	}
	_ = w.Flush()
}

func runRate(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	title := args[0]
	var rating float64
	if _, err := fmt.Sscanf(args[1], "%f", &rating); err != nil {
		return fmt.Errorf("rating must be a number between 0 and 10: %q", args[1])
	}

	if err := desk.Rate(title, rateFlagUser, rating); err != nil {
		return err
	}

	film, err := desk.Catalog().Get(title)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded rating %.1f for %q by %s (score is now %.1f)\n",
		rating, title, rateFlagUser, film.Score)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	if err := desk.ImportCatalog(args[0]); err != nil {
		return err
	}
	fmt.Printf("Imported catalog from %s (%d films)\n", args[0], desk.Catalog().Len())
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	if err := desk.ExportCatalog(args[0]); err != nil {
		return err
	}
	fmt.Printf("Exported %d films to %s\n", desk.Catalog().Len(), args[0])
	return nil
}
