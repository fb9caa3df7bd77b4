package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounts(t *testing.T) {
	c := New()

	for range 3 {
		c.TurnPlayed()
	}
	c.AppleEaten()
	c.PlayerEliminated()
	c.PlayerEliminated()
	c.MatchFinished("eliminated", 3)
	c.MatchFinished("board_full", 40)
	c.MatchFinished("eliminated", 12)

	if got := testutil.ToFloat64(c.turns); got != 3 {
		t.Errorf("turns = %v, expected 3", got)
	}
	if got := testutil.ToFloat64(c.apples); got != 1 {
		t.Errorf("apples = %v, expected 1", got)
	}
	if got := testutil.ToFloat64(c.eliminations); got != 2 {
		t.Errorf("eliminations = %v, expected 2", got)
	}
	if got := testutil.ToFloat64(c.matches.WithLabelValues("eliminated")); got != 2 {
		t.Errorf("eliminated matches = %v, expected 2", got)
	}
	if got := testutil.ToFloat64(c.matches.WithLabelValues("board_full")); got != 1 {
		t.Errorf("board full matches = %v, expected 1", got)
	}
	if n := testutil.CollectAndCount(c.matchTurns); n != 1 {
		t.Errorf("histogram series = %d, expected 1", n)
	}
}

func TestSessionsGauge(t *testing.T) {
	c := New()
	c.SessionStarted()
	c.SessionStarted()
	c.SessionEnded()

	if got := testutil.ToFloat64(c.sessionsActive); got != 1 {
		t.Errorf("active sessions = %v, expected 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.TurnPlayed()

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body failed: %v", err)
	}
	if !strings.Contains(string(body), "snake_turns_total 1") {
		t.Errorf("metrics output missing turn counter:\n%s", body)
	}

	health, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	health.Body.Close()
	if health.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", health.StatusCode)
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.AppleEaten()
	if got := testutil.ToFloat64(b.apples); got != 0 {
		t.Errorf("second collector saw %v apples", got)
	}
}
