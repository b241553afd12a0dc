package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestWritePrometheusAggregateSeries(t *testing.T) {
	m := New(MetricsConfig{Enabled: true})
	m.ObserveAggregateOperation("Personnel.User.Create", "success", 20*time.Millisecond)
	m.ObserveAggregateOperation("Personnel.User.Create", "conflict", 5*time.Millisecond)
	m.IncAggregateConflict("Personnel.User.Create")
	m.IncAggregateRollback("Personnel.User.Create")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`personnel_aggregate_operations_total{aggregate_op="Personnel.User.Create",status="conflict"} 1`,
		`personnel_aggregate_operations_total{aggregate_op="Personnel.User.Create",status="success"} 1`,
		`personnel_aggregate_conflicts_total{aggregate_op="Personnel.User.Create"} 1`,
		`personnel_aggregate_rollbacks_total{aggregate_op="Personnel.User.Create"} 1`,
		`personnel_aggregate_operation_duration_seconds_bucket{aggregate_op="Personnel.User.Create",status="success",le="0.025"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing series %q in:\n%s", want, out)
		}
	}
	// Sorted label sets keep scrapes stable.
	if strings.Index(out, `status="conflict"} 1`) > strings.Index(out, `status="success"} 1`) {
		t.Fatalf("series not sorted")
	}
}

func TestObserveAPICountsErrorsAndSlowRequests(t *testing.T) {
	m := New(MetricsConfig{Enabled: true, LatencyThreshold: 100 * time.Millisecond})
	m.ObserveAPI("GET", "/api/user", "200", 10*time.Millisecond)
	m.ObserveAPI("POST", "/api/user", "500", 300*time.Millisecond)

	if got := m.apiReqTotal.Value(); got != 2 {
		t.Fatalf("total = %v", got)
	}
	if got := m.apiReqError.Value(); got != 1 {
		t.Fatalf("errors = %v", got)
	}
	if got := m.apiReqGood.Value(); got != 1 {
		t.Fatalf("good = %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveAggregateOperation("x", "success", time.Millisecond)
	m.IncAggregateConflict("x")
	m.IncAggregateRollback("x")
	m.IncSecurityEvent("login_failed")
	m.ApiInflightInc()
	m.ApiInflightDec()
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil write: %v", err)
	}
	if Init(nil, MetricsConfig{}) != nil {
		t.Fatalf("disabled config must yield nil metrics")
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"route"}, []string{`/a"b\c`})
	if got != `{route="/a\"b\\c"}` {
		t.Fatalf("unexpected labels: %s", got)
	}
	if withLe(got, "+Inf") != `{route="/a\"b\\c",le="+Inf"}` {
		t.Fatalf("unexpected le labels: %s", withLe(got, "+Inf"))
	}
}

func TestParseOTLPHeaders(t *testing.T) {
	h := ParseOTLPHeaders(" api-key = abc , bad, =x, team=core ")
	if len(h) != 2 || h["api-key"] != "abc" || h["team"] != "core" {
		t.Fatalf("unexpected headers: %v", h)
	}
	if ParseOTLPHeaders("") != nil {
		t.Fatalf("empty input must give nil")
	}
}
