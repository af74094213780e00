package monitor

// Tier distribution monitor
// One cycle: fetch snapshots, enrich against the previous one, render
// the report to console and optionally to Telegram
// The watch loop runs cycles on a ticker; at most one fetch is in
// flight because cycles run sequentially

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"tierwatch/internal/clients_api/distribution"
	"tierwatch/internal/features/report"
	"tierwatch/internal/features/tiers_chart"
	"tierwatch/internal/infra/config"
	"tierwatch/internal/infra/fs"
	logging "tierwatch/internal/infra/log"
	"tierwatch/internal/tiers"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Monitor struct {
	cfg    *config.Config
	client *distribution.Client
	store  *fs.Store
	bot    *tgbotapi.BotAPI // nil: console-only reporting
}

func New(cfg *config.Config, client *distribution.Client, store *fs.Store, bot *tgbotapi.BotAPI) *Monitor {
	return &Monitor{
		cfg:    cfg,
		client: client,
		store:  store,
		bot:    bot,
	}
}

// RunCycle performs one fetch-enrich-render pass. Source failures are
// recoverable: the static no-data message is shown and the error is
// returned for logging, never propagated as a crash.
func (m *Monitor) RunCycle(ctx context.Context) error {
	resp, err := m.client.GetSnapshots(ctx, m.cfg.Source.TokenID, m.cfg.Source.SnapshotLimit)
	if err != nil {
		if distribution.IsNoData(err) {
			logging.LogWarn("Source returned no usable data", zap.Error(err))
		} else {
			logging.LogError("Failed to fetch distribution snapshots", zap.Error(err))
		}
		fmt.Println(report.NoDataMessage)
		return err
	}

	current := resp.Current()
	date := resp.Data[0].Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	previous := resp.Previous()
	if previous == nil {
		// Single-snapshot response: fall back to the local history so
		// the change column survives.
		previous, err = m.store.PreviousFor(date)
		if err != nil {
			logging.LogWarn("Failed to load local snapshot history", zap.Error(err))
			previous = nil
		}
	}

	if err := m.store.Save(date, current); err != nil {
		logging.LogWarn("Failed to save snapshot to history", zap.Error(err))
	}

	records := tiers.EnrichTiers(current, previous)

	fmt.Println(report.BuildConsoleReport(records, date))

	if m.bot != nil && m.cfg.Telegram.ChatID != "" {
		m.sendTelegramReport(records, date)
	}

	logging.LogSuccess("Distribution cycle completed",
		zap.String("date", date),
		zap.Int("tiersDisplayed", len(records)),
		zap.Bool("hasHistory", previous != nil))

	return nil
}

// RunWatch runs an immediate cycle and then one per refresh interval
// until the context is cancelled.
func (m *Monitor) RunWatch(ctx context.Context) {
	interval := time.Duration(m.cfg.App.RefreshInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	logging.LogInfo("Starting tier distribution watch",
		zap.String("tokenIdentifier", m.cfg.Source.TokenID),
		zap.Duration("interval", interval))

	if err := m.RunCycle(ctx); err != nil {
		logging.LogWarn("Initial cycle failed", zap.Error(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.LogInfo("Tier distribution watch stopped")
			return
		case <-ticker.C:
			if err := m.RunCycle(ctx); err != nil {
				logging.LogWarn("Cycle failed, will retry next interval", zap.Error(err))
			}
		}
	}
}

func (m *Monitor) sendTelegramReport(records []tiers.TierRecord, date string) {
	message := report.BuildTelegramReport(records, date)
	chatID := parseChatID(m.cfg.Telegram.ChatID)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("View on Luminex", "https://luminex.io/"),
		),
	)

	sendText := func() {
		msg := tgbotapi.NewMessage(chatID, message)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = keyboard
		if _, err := m.bot.Send(msg); err != nil {
			logging.LogError("Failed to send distribution report", zap.Error(err))
		}
	}

	if !m.cfg.Telegram.AttachChart || len(records) == 0 {
		sendText()
		return
	}

	chartPath, err := tiers_chart.GenerateDistributionChart(records, date, m.cfg.App.DataDir)
	if err != nil {
		logging.LogWarn("Failed to generate distribution chart", zap.Error(err))
		sendText()
		return
	}
	if _, err := os.Stat(chartPath); err != nil {
		logging.LogWarn("Chart file missing after generation", zap.String("chartPath", chartPath), zap.Error(err))
		sendText()
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(chartPath))
	photo.Caption = message
	photo.ParseMode = tgbotapi.ModeHTML
	photo.ReplyMarkup = keyboard

	if _, err := m.bot.Send(photo); err != nil {
		logging.LogError("Failed to send distribution chart", zap.Error(err))
		sendText()
		return
	}

	logging.LogInfo("Distribution report sent",
		zap.String("chatID", m.cfg.Telegram.ChatID),
		zap.String("date", date))
}

func parseChatID(chatID string) int64 {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		logging.LogWarn("Invalid chat ID", zap.String("chatID", chatID), zap.Error(err))
		return 0
	}
	return id
}
