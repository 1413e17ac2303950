// Package cmd implements the pricedeck command tree.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pricedeck/pricedeck/pkg/logging"
)

var (
	verbose bool
	quiet   bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pricedeck",
	Short: "AI model price catalog sync",
	Long: `Pricedeck keeps a relational catalog of AI model API pricing in sync
with the public OpenRouter model feed: providers and models are upserted,
prices are converted to EUR and appended as history rows, and models that
disappear from the feed can be pruned.`,
	PersistentPreRun: setupLogging,
	SilenceUsage:     true,
}

// Execute runs the command tree with signal-aware cancellation.
func Execute(version, commit, date string) error {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
}

// initConfig loads .env files and wires environment variables into Viper.
func initConfig() {
	// Load a local .env first so Viper's env binding sees it
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setupLogging applies the verbosity flags to the global logger.
func setupLogging(_ *cobra.Command, _ []string) {
	switch {
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	logging.SetDefault(logging.Default().Level(zerolog.GlobalLevel()))
}
