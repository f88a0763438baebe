package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveRun(t *testing.T) {
	m := NewMetrics()

	m.ObserveRun(time.Now(), nil)
	m.ObserveRun(time.Now(), errors.New("fetch failed"))
	m.ObserveRun(time.Now(), nil)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Runs.WithLabelValues("success")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("failure")))
	require.Greater(t, testutil.ToFloat64(m.LastSuccess), 0.0)
	require.Equal(t, 1, testutil.CollectAndCount(m.RunDuration))
}

func TestCountersStartAtZero(t *testing.T) {
	m := NewMetrics()
	m.Promotions.Add(3)
	m.SkippedPromotions.Inc()

	require.Equal(t, 3.0, testutil.ToFloat64(m.Promotions))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SkippedPromotions))
	require.Zero(t, testutil.ToFloat64(m.ReviewFlags))
	require.Zero(t, testutil.ToFloat64(m.AlertsSent))
}

func TestPush(t *testing.T) {
	var path, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMetrics()
	m.Promotions.Add(2)
	require.NoError(t, m.Push(context.Background(), srv.URL, "promowatch"))

	require.Equal(t, "/metrics/job/promowatch", path)
	require.True(t, strings.Contains(body, "promowatch_promotions_total"))
}
