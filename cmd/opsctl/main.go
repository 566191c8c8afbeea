package main

import (
	"fmt"
	"os"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	// Global flags
	verbose bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "opsctl",
	Short: "Operational tools for the AAC board backend",
	Long: `opsctl bundles the operational workflows around the AAC board backend:

  check      verify prerequisites (env, credentials, database, storage)
  bootstrap  create or repair project resources idempotently
  token      obtain a bearer token for manual API testing
  smoketest  call each generative AI capability exactly once
  probe      drive the running API through the core feature scenarios`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger. --verbose wins over LOG_LEVEL.
		zapConfig := zap.NewProductionConfig()
		if level, err := zapcore.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
			zapConfig.Level = zap.NewAtomicLevelAt(level)
		}
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// openDB connects to Postgres with GORM. Callers that can work without a
// database treat an error here as a degraded mode, not a fatal one.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(smoketestCmd)
	rootCmd.AddCommand(probeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
