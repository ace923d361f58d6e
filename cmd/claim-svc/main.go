package main

import (
	"fmt"
	"os"

	"github.com/SundayYogurt/claim_service/config"
	"github.com/SundayYogurt/claim_service/pkg/database"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "claim-svc",
		Short:         "Payment claim intake and review service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(bootstrapCmd())
	rootCmd.AddCommand(migrateLegacyCmd())
	rootCmd.AddCommand(eventsCmd())

	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, builds the logger and opens the database.
func setup() (config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Env, cfg.LogFile); err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.Connect(database.Options{
		Driver:  cfg.DBDriver,
		DSN:     cfg.DSN(),
		Verbose: cfg.Env == "development",
	})
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}
