package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wayfinder/pkg/history"
	"github.com/dmitrymomot/wayfinder/pkg/metrics"
	"github.com/dmitrymomot/wayfinder/pkg/route"
)

func failure(typ history.FailureType) error {
	return &history.NavigationFailure{Type: typ, From: route.Start, To: route.Start}
}

func TestCollectorObserve(t *testing.T) {
	t.Parallel()

	c := metrics.New(metrics.WithNamespace("test"))
	observe := c.Observer()
	observe(history.Outcome{Op: history.OpPush, Duration: 10 * time.Millisecond})
	observe(history.Outcome{Op: history.OpPush, Duration: 20 * time.Millisecond})
	observe(history.Outcome{Op: history.OpPush, Err: failure(history.Redirected)})
	observe(history.Outcome{Op: history.OpReplace, Err: failure(history.Aborted)})
	observe(history.Outcome{Op: history.OpPop, Err: errors.New("boom")})

	expected := `
# HELP test_navigations_total Navigation attempts by operation and result.
# TYPE test_navigations_total counter
test_navigations_total{op="pop",result="error"} 1
test_navigations_total{op="push",result="confirmed"} 2
test_navigations_total{op="push",result="redirected"} 1
test_navigations_total{op="replace",result="aborted"} 1
# HELP test_redirects_total Navigations that ended in a redirect.
# TYPE test_redirects_total counter
test_redirects_total 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"test_navigations_total", "test_redirects_total"))
	assert.Equal(t, 3, testutil.CollectAndCount(c, "test_navigation_duration_seconds"))
}

func TestCollectorRegister(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := metrics.New()
	require.NoError(t, c.Register(reg))
	assert.ErrorIs(t, c.Register(reg), metrics.ErrAlreadyRegistered)
}

func TestHandler(t *testing.T) {
	t.Parallel()

	c := metrics.New()
	c.Observe(history.Outcome{Op: history.OpGo})
	reg := metrics.NewRegistry(c)

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `wayfinder_navigations_total{op="go",result="confirmed"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
