package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("plain error")))
	assert.False(t, IsRetryable(&HTTPError{StatusCode: 404}))
	assert.False(t, IsRetryable(&HTTPError{StatusCode: 400}))

	for _, code := range []int{429, 500, 502, 503, 504} {
		assert.True(t, IsRetryable(&HTTPError{StatusCode: code}), "status %d", code)
	}
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, time.Duration(0), ParseRetryAfter(""))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("garbage"))
	assert.Equal(t, 30*time.Second, ParseRetryAfter("30"))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("-5"))

	// HTTP-date in the past yields zero, not a negative delay.
	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC1123)
	assert.Equal(t, time.Duration(0), ParseRetryAfter(past))
}

func TestFullJitterSleep_Bounds(t *testing.T) {
	base := 100 * time.Millisecond
	max := 400 * time.Millisecond
	for attempt := 0; attempt < 6; attempt++ {
		d := FullJitterSleep(attempt, base, max)
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, max)
	}
	assert.Equal(t, time.Duration(0), FullJitterSleep(0, 0, max))
}

func TestDo_StopsOnSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 3, BaseDelay: time.Millisecond}, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_NonRetryableReturnsImmediately(t *testing.T) {
	calls := 0
	wantErr := errors.New("boom")
	err := Do(context.Background(), Options{MaxRetries: 3, BaseDelay: time.Millisecond}, func() error {
		calls++
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilExhausted(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}, func() error {
		calls++
		return &HTTPError{StatusCode: 503}
	})
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 503, he.StatusCode)
	assert.Equal(t, 3, calls)
}

func TestDo_RecoversAfterRetryableFailure(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Options{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return &HTTPError{StatusCode: 500}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, Options{MaxRetries: 3, BaseDelay: time.Millisecond}, func() error {
		t.Fatal("fn must not run with cancelled context")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
