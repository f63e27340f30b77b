package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveError(t *testing.T) {
	before := testutil.ToFloat64(errorsTotal.WithLabelValues("validation"))
	ObserveError("validation")
	ObserveError("validation")
	if got := testutil.ToFloat64(errorsTotal.WithLabelValues("validation")) - before; got != 2 {
		t.Fatalf("validation errors delta = %v, want 2", got)
	}
}

func TestObserveRequest_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "unmatched", "404"))
	ObserveRequest("GET", "", 404, time.Millisecond)
	if got := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "unmatched", "404")) - before; got != 1 {
		t.Fatalf("unmatched requests delta = %v, want 1", got)
	}
}
