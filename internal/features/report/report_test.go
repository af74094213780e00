package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tierwatch/internal/tiers"
)

func i64(v int64) *int64 { return &v }

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{42, "42"},
		{999, "999"},
		{1000, "1K"},
		{300_500, "300.5K"},
		{1_200_000, "1.2M"},
		{9_999_999, "10M"},
		{2_500_000_000, "2.5B"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.value), "value %f", tt.value)
	}
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "—", formatChange(nil))
	assert.Equal(t, "+10", formatChange(i64(10)))
	assert.Equal(t, "-3", formatChange(i64(-3)))
	assert.Equal(t, "+0", formatChange(i64(0)))
}

func TestChangeGlyph(t *testing.T) {
	assert.Equal(t, "⚪", changeGlyph(nil))
	assert.Equal(t, "⚪", changeGlyph(i64(0)))
	assert.Equal(t, "🟢", changeGlyph(i64(5)))
	assert.Equal(t, "🔴", changeGlyph(i64(-5)))
}

func TestBuildConsoleReport_HighestTierFirst(t *testing.T) {
	records := []tiers.TierRecord{
		{Tier: 3, Count: 100, Amount: 500, Change: i64(10)},
		{Tier: 8, Count: 2, Amount: 9_000_000},
		{Tier: 5, Count: 10, Amount: 9000, Change: i64(-1)},
	}

	out := BuildConsoleReport(records, "2026-08-23")

	whale := strings.Index(out, "Whale")
	dolphin := strings.Index(out, "Dolphin")
	octopus := strings.Index(out, "Octopus")
	require.NotEqual(t, -1, whale)
	require.NotEqual(t, -1, dolphin)
	require.NotEqual(t, -1, octopus)
	assert.Less(t, whale, dolphin)
	assert.Less(t, dolphin, octopus)

	assert.Contains(t, out, "+10")
	assert.Contains(t, out, "-1")
	// No-history tier shows the neutral dash, not a zero.
	assert.Contains(t, out, "—")
}

func TestBuildConsoleReport_Empty(t *testing.T) {
	assert.Equal(t, NoDataMessage, BuildConsoleReport(nil, "2026-08-23"))
}

func TestBuildTelegramReport(t *testing.T) {
	records := []tiers.TierRecord{
		{Tier: 4, Count: 1234, Amount: 1_200_000, Change: i64(0)},
	}

	out := BuildTelegramReport(records, "2026-08-23")

	assert.Contains(t, out, "<blockquote>")
	assert.Contains(t, out, "</blockquote>")
	assert.Contains(t, out, "<b>Fish</b>")
	assert.Contains(t, out, "1.2M")
	assert.Contains(t, out, "+0 ⚪")
}

func TestBuildTelegramReport_InputOrderUntouched(t *testing.T) {
	records := []tiers.TierRecord{
		{Tier: 3, Count: 1},
		{Tier: 9, Count: 2},
	}

	_ = BuildTelegramReport(records, "2026-08-23")

	// Display sorting must not reorder the caller's slice.
	assert.Equal(t, 3, records[0].Tier)
	assert.Equal(t, 9, records[1].Tier)
}
