//go:build integration

package tests

import (
	"context"
	"os"
	"testing"
	"time"

	"tierwatch/internal/clients_api/distribution"
	"tierwatch/internal/tiers"
)

func TestIntegration_Distribution_GetSnapshots(t *testing.T) {
	tokenID := os.Getenv("TIERWATCH_TOKEN_ID")
	if tokenID == "" {
		t.Skip("TIERWATCH_TOKEN_ID not set")
	}

	client := distribution.NewClient(distribution.Options{
		BaseURL: os.Getenv("TIERWATCH_SOURCE_BASE_URL"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := client.GetSnapshots(ctx, tokenID, 2)
	if err != nil {
		t.Fatalf("GetSnapshots failed: %v", err)
	}
	if resp == nil {
		t.Fatalf("expected response, got nil")
	}
	if len(resp.Data) == 0 {
		t.Fatalf("expected at least one snapshot, got none")
	}
	if resp.Current() == nil {
		t.Fatalf("expected current snapshot tiers, got nil")
	}

	records := tiers.EnrichTiers(resp.Current(), resp.Previous())
	for _, rec := range records {
		if rec.Tier < tiers.MinDisplayTier {
			t.Fatalf("dust tier %d leaked into enriched output", rec.Tier)
		}
	}
}
