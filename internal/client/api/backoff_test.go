package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/greensnap-app/greensnap-cli/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestRetryOn429_DelaySchedule(t *testing.T) {
	var calls int
	var delays []time.Duration

	sleep := func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	err := retryOn429(context.Background(), sleep, func(ctx context.Context) error {
		calls++
		if calls <= 3 {
			return decodeError(http.StatusTooManyRequests, []byte(`{"message":"slow down"}`))
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 4, calls)
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, delays)
}

func TestRetryOn429_CapAndExhaustion(t *testing.T) {
	var delays []time.Duration
	sleep := func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	err := retryOn429(context.Background(), sleep, func(ctx context.Context) error {
		return decodeError(http.StatusTooManyRequests, []byte(`{"message":"slow down"}`))
	})

	require.ErrorIs(t, err, ErrRateLimited)
	require.Equal(t, []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second,
		8 * time.Second, 16 * time.Second, 30 * time.Second,
	}, delays)
}

func TestRetryOn429_OtherErrorsNotRetried(t *testing.T) {
	var calls int
	sleep := func(ctx context.Context, d time.Duration) error {
		t.Fatal("sleep should not be called")
		return nil
	}

	err := retryOn429(context.Background(), sleep, func(ctx context.Context) error {
		calls++
		return decodeError(http.StatusInternalServerError, []byte(`{"message":"boom"}`))
	})

	require.Error(t, err)
	require.NotErrorIs(t, err, ErrRateLimited)
	require.Equal(t, 1, calls)
}

// Each ListReports call starts with a fresh schedule: a non-429 outcome in
// between resets the attempt counter.
func TestListReports_CounterResetsAfterSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// first request of each pair is throttled, second succeeds
		if hits.Add(1)%2 == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"message": "slow down"})
			return
		}
		json.NewEncoder(w).Encode(models.ReportPage{Reports: []*models.Report{{ID: "r"}}, TotalPages: 3})
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 5*time.Second, nil)
	var delays []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	for i := 1; i <= 2; i++ {
		page, err := c.ListReports(context.Background(), i, 2)
		require.NoError(t, err)
		require.Equal(t, 3, page.TotalPages)
		require.Equal(t, i, page.Page)
	}

	// two calls, each throttled exactly once, each starting back at 1s
	require.Equal(t, []time.Duration{time.Second, time.Second}, delays)
}

func TestRetryOn429_ContextCancelStopsSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	err := retryOn429(ctx, func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}, func(ctx context.Context) error {
		return decodeError(http.StatusTooManyRequests, []byte(`{}`))
	})

	require.ErrorIs(t, err, context.Canceled)
}
