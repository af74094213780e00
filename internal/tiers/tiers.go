package tiers

// Static classification table for holder tiers
// Tier ids are small dense integers assigned by the distribution API
// Each id maps to a display name, a minimum-holdings label and a glyph

// TierDefinition describes how one holder tier is displayed.
type TierDefinition struct {
	ID       int
	Name     string
	MinLabel string // minimum holdings for this tier, display form
	Glyph    string
}

// definitions is ordered by tier id, lowest holdings first.
// Fixed at build time, never mutated at runtime.
var definitions = [...]TierDefinition{
	{ID: 0, Name: "Plankton", MinLabel: "< 1", Glyph: "🦠"},
	{ID: 1, Name: "Shrimp", MinLabel: "1+", Glyph: "🦐"},
	{ID: 2, Name: "Crab", MinLabel: "10+", Glyph: "🦀"},
	{ID: 3, Name: "Octopus", MinLabel: "100+", Glyph: "🐙"},
	{ID: 4, Name: "Fish", MinLabel: "1K+", Glyph: "🐟"},
	{ID: 5, Name: "Dolphin", MinLabel: "10K+", Glyph: "🐬"},
	{ID: 6, Name: "Shark", MinLabel: "100K+", Glyph: "🦈"},
	{ID: 7, Name: "Orca", MinLabel: "1M+", Glyph: "🐋"},
	{ID: 8, Name: "Whale", MinLabel: "10M+", Glyph: "🐳"},
	{ID: 9, Name: "Humpback", MinLabel: "100M+", Glyph: "🌊"},
	{ID: 10, Name: "Leviathan", MinLabel: "1B+", Glyph: "🔱"},
}

// unknownDefinition is returned for tier ids outside the known range.
// Unknown tiers degrade to a neutral placeholder instead of failing.
var unknownDefinition = TierDefinition{ID: -1, Name: "Unknown", MinLabel: "", Glyph: "❔"}

// Classify returns the display definition for a tier id.
// Ids outside [0, 10] get the Unknown sentinel, never an error.
func Classify(tierID int) TierDefinition {
	if tierID < 0 || tierID >= len(definitions) {
		return unknownDefinition
	}
	return definitions[tierID]
}

// KnownTierCount returns the number of tiers in the classification table.
func KnownTierCount() int {
	return len(definitions)
}
