package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSpinCounters(t *testing.T) {
	SpinStarted(42)
	SpinStarted(42)
	SpinSettled(42, true, 600)
	SpinSettled(42, false, 3)

	if got := testutil.ToFloat64(spinsStarted.WithLabelValues("42")); got != 2 {
		t.Errorf("expected 2 started spins, got %v", got)
	}
	if got := testutil.ToFloat64(spinsSettled.WithLabelValues("42", ResultMatched)); got != 1 {
		t.Errorf("expected 1 matched spin, got %v", got)
	}
	if got := testutil.ToFloat64(spinsSettled.WithLabelValues("42", ResultMismatch)); got != 1 {
		t.Errorf("expected 1 mismatched spin, got %v", got)
	}
	if got := testutil.ToFloat64(activeSpins.WithLabelValues("42")); got != 0 {
		t.Errorf("expected no active spins, got %v", got)
	}
}
