package distribution

// Holder-distribution snapshot endpoint
// The API returns snapshots newest first; ordering is enforced here
// instead of assumed, and malformed payloads map to typed errors so
// callers can degrade to "no data" without crashing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"tierwatch/internal/infra/log"
	"tierwatch/internal/tiers"

	"go.uber.org/zap"
)

var (
	// ErrNoSnapshots - the source answered but had no snapshots.
	ErrNoSnapshots = errors.New("distribution: no snapshots returned")
	// ErrMalformedSnapshot - the payload lacks the expected tier-list shape.
	ErrMalformedSnapshot = errors.New("distribution: malformed snapshot")
)

// Snapshot is one point-in-time capture of all tier aggregates.
type Snapshot struct {
	Date  string           `json:"date"` // YYYY-MM-DD
	Tiers []tiers.TierStat `json:"tiers"`
}

type SnapshotsMeta struct {
	TotalItems int `json:"totalItems"`
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
}

type SnapshotsResponse struct {
	Data []Snapshot    `json:"data"`
	Meta SnapshotsMeta `json:"meta"`
}

// Current returns the newest snapshot's tier stats.
func (r *SnapshotsResponse) Current() []tiers.TierStat {
	if len(r.Data) == 0 {
		return nil
	}
	return r.Data[0].Tiers
}

// Previous returns the second-newest snapshot's tier stats, or nil when
// the response holds fewer than two snapshots.
func (r *SnapshotsResponse) Previous() []tiers.TierStat {
	if len(r.Data) < 2 {
		return nil
	}
	return r.Data[1].Tiers
}

// GetSnapshots fetches up to limit distribution snapshots for a token,
// newest first.
func (c *Client) GetSnapshots(ctx context.Context, tokenID string, limit int) (*SnapshotsResponse, error) {
	if tokenID == "" {
		return nil, fmt.Errorf("token identifier is empty")
	}
	if limit <= 0 {
		limit = 2
	}

	params := url.Values{}
	params.Set("tokenIdentifier", tokenID)
	params.Set("limit", strconv.Itoa(limit))
	endpoint := "/holders/distribution?" + params.Encode()

	respBody, err := c.MakeRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get distribution snapshots: %w", err)
	}

	resp, err := ParseSnapshotsResponse(respBody)
	if err != nil {
		return nil, err
	}

	log.LogInfo("Fetched distribution snapshots",
		zap.String("tokenIdentifier", tokenID),
		zap.Int("count", len(resp.Data)))

	return resp, nil
}

// ParseSnapshotsResponse decodes and validates a snapshots payload and
// sorts it newest first by date.
func ParseSnapshotsResponse(body []byte) (*SnapshotsResponse, error) {
	var resp SnapshotsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	if len(resp.Data) == 0 {
		return nil, ErrNoSnapshots
	}

	for _, snap := range resp.Data {
		if snap.Tiers == nil {
			return nil, fmt.Errorf("%w: snapshot %q has no tier list", ErrMalformedSnapshot, snap.Date)
		}
		for _, ts := range snap.Tiers {
			if ts.Count < 0 || ts.Amount < 0 {
				return nil, fmt.Errorf("%w: snapshot %q tier %d has negative count or amount", ErrMalformedSnapshot, snap.Date, ts.Tier)
			}
		}
	}

	// Dates are YYYY-MM-DD, so a lexicographic sort orders by time.
	sort.SliceStable(resp.Data, func(i, j int) bool {
		return resp.Data[i].Date > resp.Data[j].Date
	})

	return &resp, nil
}

// IsNoData reports whether err belongs to the recoverable "no data"
// family (empty or malformed source response).
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoSnapshots) || errors.Is(err, ErrMalformedSnapshot)
}
