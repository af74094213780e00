package tiers_chart

// PNG bar chart of the current tier distribution
// One bar per displayed tier, highest tier first, colored by change
// direction (green growth, red decline, gray flat or no history)

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"tierwatch/internal/features/report"
	logging "tierwatch/internal/infra/log"
	"tierwatch/internal/tiers"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

const (
	chartWidth  = 1400
	chartHeight = 800

	chartAreaLeft   = 100.0
	chartAreaRight  = 1300.0
	chartAreaTop    = 140.0
	chartAreaBottom = 680.0

	titleFontSize    = 36.0
	barLabelFontSize = 24.0

	barValueOffsetY = 14.0
	barLabelOffsetY = 36.0

	minBarHeight = 4.0
)

var (
	colorBackground = color.Black
	colorGrowth     = color.RGBA{46, 204, 113, 255}
	colorDecline    = color.RGBA{231, 76, 60, 255}
	colorNeutral    = color.RGBA{127, 140, 141, 255}
)

var fontPaths = []string{
	"etc/fonts/Inter-Regular.ttf",
	"/usr/share/fonts/truetype/inter/Inter-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
}

// GenerateDistributionChart draws the tier distribution as a bar chart
// and returns the path of the written PNG.
func GenerateDistributionChart(records []tiers.TierRecord, date string, dataDir string) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("no tier records to chart")
	}

	ordered := append([]tiers.TierRecord(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Tier > ordered[j].Tier
	})

	var maxCount int64
	for _, rec := range ordered {
		if rec.Count > maxCount {
			maxCount = rec.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(colorBackground)
	dc.Clear()

	fontPath := findFont()
	if fontPath == "" {
		logging.LogWarn("No usable font found, chart labels will use the default face")
	}

	setFont(dc, fontPath, titleFontSize)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(fmt.Sprintf("Holder distribution — %s", date), chartWidth/2, 70, 0.5, 0.5)

	chartAreaWidth := chartAreaRight - chartAreaLeft
	slot := chartAreaWidth / float64(len(ordered))
	barWidth := slot * 0.7

	setFont(dc, fontPath, barLabelFontSize)

	for i, rec := range ordered {
		def := tiers.Classify(rec.Tier)

		barHeight := (chartAreaBottom - chartAreaTop) * float64(rec.Count) / float64(maxCount)
		if barHeight < minBarHeight {
			barHeight = minBarHeight
		}

		x := chartAreaLeft + float64(i)*slot + (slot-barWidth)/2
		y := chartAreaBottom - barHeight

		dc.SetColor(barColor(rec.Change))
		dc.DrawRectangle(x, y, barWidth, barHeight)
		dc.Fill()

		dc.SetColor(color.White)
		dc.DrawStringAnchored(fmt.Sprintf("%d", rec.Count), x+barWidth/2, y-barValueOffsetY, 0.5, 0.5)
		dc.DrawStringAnchored(def.Name, x+barWidth/2, chartAreaBottom+barLabelOffsetY, 0.5, 0.5)
		dc.SetColor(colorNeutral)
		dc.DrawStringAnchored(amountLabel(rec), x+barWidth/2, chartAreaBottom+barLabelOffsetY+28, 0.5, 0.5)
	}

	chartsDir := filepath.Join(dataDir, "charts")
	if err := os.MkdirAll(chartsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create charts directory: %w", err)
	}

	chartPath := filepath.Join(chartsDir, fmt.Sprintf("distribution_%s.png", date))
	if err := dc.SavePNG(chartPath); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}

	logging.LogInfo("Distribution chart generated",
		zap.String("path", chartPath),
		zap.Int("tiers", len(ordered)))

	return chartPath, nil
}

func barColor(change *int64) color.Color {
	switch {
	case change == nil:
		return colorNeutral
	case *change > 0:
		return colorGrowth
	case *change < 0:
		return colorDecline
	default:
		return colorNeutral
	}
}

func findFont() string {
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func setFont(dc *gg.Context, fontPath string, size float64) {
	if fontPath == "" {
		return
	}
	if err := dc.LoadFontFace(fontPath, size); err != nil {
		logging.LogWarn("Font file exists but failed to load",
			zap.String("path", fontPath), zap.Error(err))
	}
}

// amountLabel is the secondary label under a bar.
func amountLabel(rec tiers.TierRecord) string {
	return report.FormatAmount(rec.Amount)
}
