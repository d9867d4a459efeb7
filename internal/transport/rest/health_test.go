package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func up() PingFunc   { return func(context.Context) error { return nil } }
func down() PingFunc { return func(context.Context) error { return errors.New("connection refused") } }

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("test-version", Component{Name: "storage", Pinger: down(), Critical: true})

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	resp := decodeHealth(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReadyAndHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		components []Component
		wantCode   int
		wantStatus string
		wantDown   []string
	}{
		{
			name:       "no components",
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name: "all up",
			components: []Component{
				{Name: "storage", Pinger: up(), Critical: true},
				{Name: "redis", Pinger: up()},
			},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name: "optional down",
			components: []Component{
				{Name: "storage", Pinger: up(), Critical: true},
				{Name: "redis", Pinger: down()},
			},
			wantCode:   http.StatusOK,
			wantStatus: "degraded",
			wantDown:   []string{"redis"},
		},
		{
			name: "critical down",
			components: []Component{
				{Name: "storage", Pinger: down(), Critical: true},
				{Name: "redis", Pinger: down()},
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "down",
			wantDown:   []string{"storage", "redis"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler("test-version", tt.components...)

			rec := httptest.NewRecorder()
			h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			if rec.Code != tt.wantCode {
				t.Errorf("ready: expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if resp := decodeHealth(t, rec); resp.Status != tt.wantStatus || resp.Components != nil {
				t.Errorf("ready: unexpected response %+v", resp)
			}

			rec = httptest.NewRecorder()
			h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != tt.wantCode {
				t.Errorf("health: expected status %d, got %d", tt.wantCode, rec.Code)
			}
			resp := decodeHealth(t, rec)
			if resp.Status != tt.wantStatus {
				t.Errorf("health: expected status %q, got %q", tt.wantStatus, resp.Status)
			}
			if resp.Version != "test-version" {
				t.Errorf("expected version, got %q", resp.Version)
			}
			if len(resp.Components) != len(tt.components) {
				t.Fatalf("expected %d components, got %v", len(tt.components), resp.Components)
			}
			for _, name := range tt.wantDown {
				if c := resp.Components[name]; c.Status != "down" || c.Latency != "" {
					t.Errorf("component %s: %+v", name, c)
				}
			}
		})
	}
}
