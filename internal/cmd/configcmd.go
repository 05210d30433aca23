package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/filmdesk/filmdesk/internal/config"
)

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage filmdesk configuration",
}

// configInitCmd writes a starter config file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file to $HOME/.filmdesk.yaml",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".filmdesk.yaml")
	}

	if err := config.WriteStarter(path); err != nil {
		return err
	}

	fmt.Printf("Wrote starter config to %s\n", path)
	return nil
}
