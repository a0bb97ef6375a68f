package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msto63/etds/foundation/etds"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func fixed(status Status) func(ctx context.Context) CheckResult {
	return func(ctx context.Context) CheckResult {
		return CheckResult{Status: status}
	}
}

func TestRegistryCheck(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]Status
		want   Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", map[string]Status{"a": StatusHealthy, "b": StatusHealthy}, StatusHealthy},
		{"degraded", map[string]Status{"a": StatusHealthy, "b": StatusDegraded}, StatusDegraded},
		{"unhealthy wins", map[string]Status{"a": StatusUnhealthy, "b": StatusDegraded}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry("etds", "test")
			for name, status := range tt.checks {
				r.RegisterFunc(name, fixed(status))
			}
			report := r.Check(context.Background())
			if report.Status != tt.want {
				t.Errorf("Status = %v, want %v", report.Status, tt.want)
			}
			if len(report.Checks) != len(tt.checks) {
				t.Fatalf("len(Checks) = %d, want %d", len(report.Checks), len(tt.checks))
			}
			for i := 1; i < len(report.Checks); i++ {
				if report.Checks[i-1].Name > report.Checks[i].Name {
					t.Errorf("checks not sorted: %v", report.Checks)
				}
			}
		})
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry("etds", "test")
	r.RegisterFunc("db", fixed(StatusUnhealthy))
	r.RegisterFunc("db", fixed(StatusHealthy))

	report := r.Check(context.Background())
	if len(report.Checks) != 1 || report.Status != StatusHealthy {
		t.Errorf("report = %+v", report)
	}
	if report.Checks[0].Name != "db" || report.Checks[0].Timestamp.IsZero() {
		t.Errorf("check = %+v", report.Checks[0])
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry("etds", "1.2.3")
	r.Register(EngineCheck(etds.NewEngine(etds.Options{})))

	rec := httptest.NewRecorder()
	r.Handler(time.Second).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var report Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.Service != "etds" || report.Version != "1.2.3" || report.Status != StatusHealthy {
		t.Errorf("report = %+v", report)
	}

	r.RegisterFunc("broken", fixed(StatusUnhealthy))
	rec = httptest.NewRecorder()
	r.Handler(time.Second).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestEngineCheckFailsOnTinyLimit(t *testing.T) {
	c := EngineCheck(etds.NewEngine(etds.Options{MaxInputLength: 3}))
	result := c.Check(context.Background())
	if result.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", result.Status)
	}
}

func TestPingCheck(t *testing.T) {
	ok := PingCheck("history", pingFunc(func(context.Context) error { return nil }))
	if got := ok.Check(context.Background()).Status; got != StatusHealthy {
		t.Errorf("Status = %v", got)
	}

	bad := PingCheck("history", pingFunc(func(context.Context) error { return errors.New("locked") }))
	result := bad.Check(context.Background())
	if result.Status != StatusDegraded || result.Message != "locked" {
		t.Errorf("result = %+v", result)
	}
}
