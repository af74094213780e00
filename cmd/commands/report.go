package commands

// Command to run a single distribution report
// Fetches the latest snapshots, enriches them and prints the table;
// posts to Telegram when a bot token is configured

import (
	"fmt"
	"time"

	"tierwatch/internal/clients_api/distribution"
	"tierwatch/internal/infra/config"
	"tierwatch/internal/infra/fs"
	logging "tierwatch/internal/infra/log"
	"tierwatch/internal/monitor"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch snapshots once and print the tier distribution report",
	Long:  `Fetch the latest holder distribution snapshots, compute per-tier changes and render the report a single time.`,
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.LogError("Failed to load config", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := distribution.NewClient(distribution.Options{
		BaseURL:         cfg.Source.BaseURL,
		RequestTimeout:  time.Duration(cfg.Source.RequestTimeout) * time.Second,
		MaxRetries:      cfg.Source.MaxRetries,
		MaxResponseSize: cfg.App.MaxResponseSize,
	})
	store := fs.NewStore(cfg.App.DataDir)

	bot, err := initializeBot(cfg)
	if err != nil {
		return err
	}

	m := monitor.New(cfg, client, store, bot)

	// Source failures degrade to the no-data message inside the cycle;
	// a one-shot report still exits non-zero so cron jobs notice.
	return m.RunCycle(cmd.Context())
}
