package report

// Tier distribution report rendering
// Owns everything display-side: highest-tier-first ordering, number
// formatting and change coloring; the enrichment core stays untouched

import (
	"fmt"
	"sort"
	"strings"

	"tierwatch/internal/tiers"
)

// NoDataMessage is shown whenever the source yields nothing usable.
const NoDataMessage = "No distribution data available"

// changeGlyph picks the visual treatment for a change value:
// growth, decline, or neutral for both zero and missing history.
func changeGlyph(change *int64) string {
	switch {
	case change == nil:
		return "⚪"
	case *change > 0:
		return "🟢"
	case *change < 0:
		return "🔴"
	default:
		return "⚪"
	}
}

// formatChange renders the change column; absent history shows a dash,
// present values carry an explicit sign.
func formatChange(change *int64) string {
	if change == nil {
		return "—"
	}
	return fmt.Sprintf("%+d", *change)
}

// FormatAmount formats holdings values with K/M/B suffixes,
// trimming trailing zeros ("1.2M", "300.5K", "42").
func FormatAmount(value float64) string {
	format := func(val float64, suffix string) string {
		formatted := fmt.Sprintf("%.1f", val)
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
		return formatted + suffix
	}
	switch {
	case value >= 1e9:
		return format(value/1e9, "B")
	case value >= 1e6:
		return format(value/1e6, "M")
	case value >= 1e3:
		return format(value/1e3, "K")
	default:
		return fmt.Sprintf("%.0f", value)
	}
}

// displayOrder returns a copy sorted highest tier first. Reversal is a
// display concern; the enriched records arrive in source order.
func displayOrder(records []tiers.TierRecord) []tiers.TierRecord {
	ordered := append([]tiers.TierRecord(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Tier > ordered[j].Tier
	})
	return ordered
}

// BuildConsoleReport renders an aligned plain-text table for terminals.
func BuildConsoleReport(records []tiers.TierRecord, date string) string {
	if len(records) == 0 {
		return NoDataMessage
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Holder distribution (%s)\n\n", date))
	b.WriteString(fmt.Sprintf("%-12s %-8s %10s %10s %8s\n", "TIER", "MIN", "ADDRESSES", "AMOUNT", "CHANGE"))
	b.WriteString(strings.Repeat("-", 52) + "\n")

	for _, rec := range displayOrder(records) {
		def := tiers.Classify(rec.Tier)
		b.WriteString(fmt.Sprintf("%s %-10s %-8s %10d %10s %6s %s\n",
			def.Glyph,
			def.Name,
			def.MinLabel,
			rec.Count,
			FormatAmount(rec.Amount),
			formatChange(rec.Change),
			changeGlyph(rec.Change)))
	}

	return b.String()
}

// BuildTelegramReport renders the HTML variant posted to Telegram.
func BuildTelegramReport(records []tiers.TierRecord, date string) string {
	if len(records) == 0 {
		return NoDataMessage
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>Holder distribution</b> (%s)\n\n", date))
	b.WriteString("<blockquote>\n")

	for _, rec := range displayOrder(records) {
		def := tiers.Classify(rec.Tier)

		b.WriteString(fmt.Sprintf("%s <b>%s</b> (%s)\n", def.Glyph, def.Name, def.MinLabel))
		b.WriteString(fmt.Sprintf("Addresses: <code>%d</code> | Amount: <code>%s</code> | Change: %s %s\n\n",
			rec.Count,
			FormatAmount(rec.Amount),
			formatChange(rec.Change),
			changeGlyph(rec.Change)))
	}

	b.WriteString("</blockquote>")
	return b.String()
}
