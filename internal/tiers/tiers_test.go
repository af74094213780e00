package tiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_KnownTiers(t *testing.T) {
	tests := []struct {
		tierID   int
		name     string
		minLabel string
	}{
		{0, "Plankton", "< 1"},
		{3, "Octopus", "100+"},
		{5, "Dolphin", "10K+"},
		{8, "Whale", "10M+"},
		{10, "Leviathan", "1B+"},
	}

	for _, tt := range tests {
		def := Classify(tt.tierID)
		assert.Equal(t, tt.tierID, def.ID)
		assert.Equal(t, tt.name, def.Name)
		assert.Equal(t, tt.minLabel, def.MinLabel)
		assert.NotEmpty(t, def.Glyph)
	}
}

func TestClassify_UnknownTiers(t *testing.T) {
	for _, tierID := range []int{-100, -1, 11, 42, 1 << 30} {
		def := Classify(tierID)
		assert.Equal(t, "Unknown", def.Name, "tierID %d", tierID)
		assert.Empty(t, def.MinLabel)
		assert.NotEmpty(t, def.Glyph)
	}
}

func TestClassify_TableIsDense(t *testing.T) {
	for id := 0; id < KnownTierCount(); id++ {
		def := Classify(id)
		assert.Equal(t, id, def.ID)
		assert.NotEqual(t, "Unknown", def.Name)
	}
	assert.Equal(t, 11, KnownTierCount())
}
