package commands

// Command to run the periodic distribution watch
// Starts the monitor on a refresh interval
// Implements graceful shutdown for proper termination

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"tierwatch/internal/clients_api/distribution"
	"tierwatch/internal/infra/config"
	"tierwatch/internal/infra/fs"
	logging "tierwatch/internal/infra/log"
	"tierwatch/internal/monitor"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the tier distribution monitor on a refresh interval",
	Long:  `Run the distribution monitor continuously, fetching snapshots and rendering the tier report every refresh interval.`,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.LogError("Failed to load config", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

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

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.RunWatch(ctx)
	}()

	logging.LogSuccess("Tier distribution watch is running", zap.String("status", "active"))

	<-ctx.Done()
	logging.LogInfo("Shutdown signal received, gracefully stopping...")
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.LogSuccess("Tier distribution watch stopped gracefully")
	case <-time.After(10 * time.Second):
		logging.LogWarn("Timeout waiting for watch to stop")
	}

	return nil
}

// initializeBot builds the Telegram bot when configured; a missing
// token means console-only reporting, not an error.
func initializeBot(cfg *config.Config) (*tgbotapi.BotAPI, error) {
	if cfg.Telegram.BotToken == "" {
		logging.LogInfo("Telegram bot token not provided, reporting to console only")
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logging.LogError("Failed to initialize Telegram bot", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}

	logging.LogInfo("Telegram bot initialized", zap.String("username", bot.Self.UserName))
	return bot, nil
}
