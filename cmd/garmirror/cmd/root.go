package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"garmirror/internal/config"
	"garmirror/internal/database"
	"garmirror/internal/logger"
	"garmirror/internal/registry"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	batchSize int
)

var rootCmd = &cobra.Command{
	Use:   "garmirror",
	Short: "GAR address registry mirror",
	Long: `A CLI tool that maintains a local MySQL replica of the GAR state
address registry and answers hierarchy and search queries over it.

Features:
  - Full or per-table import from extracted GAR XML distributions
  - Dependency-ordered loading, tolerant of per-table failures
  - Address lookup, children listing and ancestor-chain retrieval
  - Dual-mode search by GUID or free text under both hierarchies`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "garmirror.yaml",
		"Path to configuration file")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	rootCmd.PersistentFlags().IntVar(&batchSize, "batch-size", 0,
		"Override bulk insert batch size")
}

// loadConfig loads the config file and applies CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyOverrides(logLevel, logFormat, batchSize)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// signalContext returns a context cancelled by SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// openStore connects to the replica and wires up the registry store.
// The caller must Close the returned manager.
func openStore(ctx context.Context, cfg *config.Config) (*registry.Store, *database.Manager, error) {
	manager := database.NewManager(cfg)
	if err := manager.Connect(ctx); err != nil {
		return nil, nil, err
	}
	store := registry.NewStore(database.NewGateway(manager.DB))
	return store, manager, nil
}

// newLogger builds the logger from config.
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

// parseDivisionFlag converts the --division flag value.
func parseDivisionFlag(s string) (registry.Division, error) {
	return registry.ParseDivision(s)
}
