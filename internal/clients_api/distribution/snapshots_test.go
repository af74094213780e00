package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tierwatch/internal/tiers"
)

func TestParseSnapshotsResponse_ValidPayload(t *testing.T) {
	body := []byte(`{
		"data": [
			{"date": "2026-08-23", "tiers": [{"tier": 3, "count": 100, "amount": 500.5}]},
			{"date": "2026-08-22", "tiers": [{"tier": 3, "count": 90, "amount": 450}]}
		],
		"meta": {"totalItems": 2, "limit": 2, "offset": 0}
	}`)

	resp, err := ParseSnapshotsResponse(body)
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "2026-08-23", resp.Data[0].Date)
	assert.Equal(t, []tiers.TierStat{{Tier: 3, Count: 100, Amount: 500.5}}, resp.Current())
	assert.Equal(t, []tiers.TierStat{{Tier: 3, Count: 90, Amount: 450}}, resp.Previous())
}

func TestParseSnapshotsResponse_SortsNewestFirst(t *testing.T) {
	// Ordering is enforced even when the API returns oldest first.
	body := []byte(`{
		"data": [
			{"date": "2026-08-21", "tiers": []},
			{"date": "2026-08-23", "tiers": []},
			{"date": "2026-08-22", "tiers": []}
		]
	}`)

	resp, err := ParseSnapshotsResponse(body)
	require.NoError(t, err)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "2026-08-23", resp.Data[0].Date)
	assert.Equal(t, "2026-08-22", resp.Data[1].Date)
	assert.Equal(t, "2026-08-21", resp.Data[2].Date)
}

func TestParseSnapshotsResponse_EmptyData(t *testing.T) {
	for _, body := range []string{
		`{"data": [], "meta": {}}`,
		`{"meta": {}}`,
	} {
		_, err := ParseSnapshotsResponse([]byte(body))
		assert.ErrorIs(t, err, ErrNoSnapshots, body)
		assert.True(t, IsNoData(err))
	}
}

func TestParseSnapshotsResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>blocked</html>`},
		{"missing tier list", `{"data": [{"date": "2026-08-23"}]}`},
		{"negative count", `{"data": [{"date": "2026-08-23", "tiers": [{"tier": 4, "count": -1, "amount": 0}]}]}`},
		{"negative amount", `{"data": [{"date": "2026-08-23", "tiers": [{"tier": 4, "count": 1, "amount": -0.5}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnapshotsResponse([]byte(tt.body))
			require.ErrorIs(t, err, ErrMalformedSnapshot)
			assert.True(t, IsNoData(err))
		})
	}
}

func TestSnapshotsResponse_PreviousAbsentWithSingleSnapshot(t *testing.T) {
	body := []byte(`{"data": [{"date": "2026-08-23", "tiers": [{"tier": 5, "count": 10, "amount": 9000}]}]}`)

	resp, err := ParseSnapshotsResponse(body)
	require.NoError(t, err)
	assert.NotNil(t, resp.Current())
	assert.Nil(t, resp.Previous())
}
