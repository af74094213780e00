package tiers

// Change computation between two distribution snapshots
// Matches tiers by id and attaches the address-count delta

// MinDisplayTier - tiers below this id are dust and never displayed.
const MinDisplayTier = 3

// TierStat is one tier's aggregate as returned by the distribution API.
type TierStat struct {
	Tier   int     `json:"tier"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// TierRecord is a TierStat annotated with its change against the
// previous snapshot. Change is nil when the previous snapshot has no
// matching tier ("no history"), which is distinct from a present zero
// ("no movement").
type TierRecord struct {
	Tier   int     `json:"tier"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
	Change *int64  `json:"change,omitempty"`
}

// EnrichTiers builds display-ready tier records from the current
// snapshot, attaching the count delta against the previous snapshot
// where a matching tier exists. Tiers below MinDisplayTier are dropped.
// The relative order of current is preserved; neither input is mutated.
func EnrichTiers(current, previous []TierStat) []TierRecord {
	records := make([]TierRecord, 0, len(current))
	for _, c := range current {
		if c.Tier < MinDisplayTier {
			continue
		}

		rec := TierRecord{
			Tier:   c.Tier,
			Count:  c.Count,
			Amount: c.Amount,
		}

		for _, p := range previous {
			if p.Tier == c.Tier {
				change := c.Count - p.Count
				rec.Change = &change
				break
			}
		}

		records = append(records, rec)
	}
	return records
}
