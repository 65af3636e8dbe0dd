package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"unitconv"
	"unitconv/config"
	"unitconv/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "unitconv",
	Short: "Convert values between units of length, weight and volume",
	Long: `unitconv converts a value between two units of the same category.

Units are picked by their exact catalog name, e.g. "Meters (m)". Run
"unitconv catalog" to list them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		logger, err = logging.New(cfg.Log.Mode, cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if verbose {
			logger.SetLevel(zapcore.DebugLevel)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "unitconv.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	convertCmd.Flags().IntVarP(&decimals, "decimals", "d", -1, "decimal places to show (default from config)")
	catalogCmd.Flags().StringVar(&exportSQLite, "export-sqlite", "", "write the catalog to this SQLite file")

	rootCmd.AddCommand(convertCmd, catalogCmd, serveCmd)
}

// loadCatalog returns the configured catalog source.
func loadCatalog(ctx context.Context) (*unitconv.Catalog, error) {
	if cfg.Catalog.SQLitePath == "" {
		return unitconv.DefaultCatalog(), nil
	}
	cat, err := unitconv.OpenCatalogSQLite(ctx, cfg.Catalog.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.Catalog.SQLitePath, err)
	}
	logger.Debug("catalog loaded", "path", cfg.Catalog.SQLitePath, "categories", len(cat.Categories()))
	return cat, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
