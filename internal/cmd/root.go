// Package cmd implements the filmdesk command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/filmdesk/filmdesk/internal/config"
	"github.com/filmdesk/filmdesk/pkg/logging"
)

var (
	configFile  string
	flagVerbose bool
	flagQuiet   bool
	flagNoColor bool
	flagDataDir string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "filmdesk",
	Short: "Film catalog, ratings, and sales CLI",
	Long: `Filmdesk manages a film catalog with per-user ratings, records
sales against film stock, and derives sales and catalog analytics.

State is kept in flat JSON documents under the data directory and is
rewritten after every change. Recommendations come from an external
recommendation engine reached through a file-based request/response
exchange.`,
	PersistentPreRunE: setupCommand,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.filmdesk.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory for persisted documents")

	// Bind flags to viper
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("Failed to bind verbose flag: %v", err))
	}
	if err := viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")); err != nil {
		panic(fmt.Sprintf("Failed to bind quiet flag: %v", err))
	}
	if err := viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir")); err != nil {
		panic(fmt.Sprintf("Failed to bind data-dir flag: %v", err))
	}
}

// setupCommand configures logging before any command runs.
func setupCommand(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	if flagQuiet {
		level = "error"
	}

	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:   level,
		Format:  cfg.LogFormat,
		Output:  cfg.LogOutput,
		NoColor: flagNoColor || cfg.NoColor,
	})
	logging.SetDefault(logger)

	return nil
}

// loadConfig loads the application configuration and applies global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.UpdateFromFlags(flagVerbose, flagQuiet, flagNoColor)
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	return cfg, nil
}
