package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// userCmd groups user directory operations.
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the user directory",
}

// userCreateCmd registers a new user. This is the explicit creation
// step: other commands never create users silently on lookup.
var userCreateCmd = &cobra.Command{
	Use:   "create USERNAME",
	Short: "Create a new user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserCreate,
}

// userListCmd lists known users.
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known users",
	RunE:  runUserList,
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	user, err := desk.CreateUser(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Created user %q with id %d\n", user.Username, user.ID)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	desk, err := openDesk()
	if err != nil {
		return err
	}

	users := desk.Users().List()
	if len(users) == 0 {
		fmt.Println("No users registered.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tRATINGS")
	for _, user := range users {
		fmt.Fprintf(w, "%d\t%s\t%d\n", user.ID, user.Username, len(user.RatingMap))
	}
	return w.Flush()
}
