//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/bizdash-backend/internal/app"
	authpkg "github.com/heartmarshall/bizdash-backend/internal/auth"
	"github.com/heartmarshall/bizdash-backend/internal/config"
)

const (
	jwtSecret = "test-secret-at-least-32-chars-long!!"
	jwtIssuer = "test-issuer"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig(dsn string) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{ShutdownTimeout: time.Second},
		Storage: config.StorageConfig{Driver: config.DriverPostgres, Fallback: true},
		Database: config.DatabaseConfig{
			DSN:             dsn,
			MaxConns:        5,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 30 * time.Minute,
		},
		Auth: config.AuthConfig{JWTSecret: jwtSecret, JWTIssuer: jwtIssuer, AccessTokenTTL: 15 * time.Minute},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		},
		Scheduling: config.SchedulingConfig{
			BackToBackBuffer:    5 * time.Minute,
			ResolutionBuffer:    15 * time.Minute,
			AlternativesHorizon: 7 * 24 * time.Hour,
			AvailabilityHorizon: 30 * 24 * time.Hour,
			SearchStep:          time.Hour,
			RecurrenceHorizon:   90 * 24 * time.Hour,
			MaxAlternatives:     3,
			MaxAvailable:        10,
			MaxSuggestions:      5,
			SeverityCritical:    4,
			SeverityHigh:        3,
			SeverityMedium:      2,
		},
		AI: config.AIConfig{Timeout: time.Second},
	}
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := testhelper.SetupTestDSN(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	a, err := app.New(context.Background(), testConfig(dsn), logger)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	srv := httptest.NewServer(a.Handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		jwt:    authpkg.NewJWTManager(jwtSecret, jwtIssuer, 15*time.Minute),
	}
}

// token mints an access token for a fresh user.
func (ts *testServer) token(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	userID := uuid.New()
	tok, err := ts.jwt.GenerateAccessToken(userID, "E2E User")
	require.NoError(t, err)
	return userID, tok
}

// do sends a JSON request and returns the status and raw body.
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), "body: %s", raw)
	return v
}

// ---------------------------------------------------------------------------
// Response shapes.
// ---------------------------------------------------------------------------

type slotJSON struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason"`
}

type conflictJSON struct {
	ConflictingEventID uuid.UUID `json:"conflicting_event_id"`
	Type               string    `json:"type"`
	Severity           string    `json:"severity"`
	Resolution         *struct {
		Type         string     `json:"type"`
		Alternatives []slotJSON `json:"alternatives"`
	} `json:"resolution"`
}

type eventJSON struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Start       time.Time      `json:"start"`
	End         time.Time      `json:"end"`
	Type        string         `json:"type"`
	Priority    string         `json:"priority"`
	Status      string         `json:"status"`
	OrganizerID uuid.UUID      `json:"organizer_id"`
	Conflicts   []conflictJSON `json:"conflicts"`
	Durable     bool           `json:"durable"`
}

type errorJSON struct {
	Error  string `json:"error"`
	Fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

// ---------------------------------------------------------------------------
// Time helpers. Every test books its own week so events from other tests on
// the shared database never conflict with it.
// ---------------------------------------------------------------------------

var weekSeq atomic.Int64

// week returns 09:00 UTC on a Monday no other test uses.
func week(t *testing.T) time.Time {
	t.Helper()
	first := time.Date(2031, time.January, 6, 9, 0, 0, 0, time.UTC)
	return first.AddDate(0, 0, int(weekSeq.Add(1))*7)
}

func event(title string, start time.Time, dur time.Duration, priority string) map[string]any {
	return map[string]any{
		"title":    title,
		"start":    start.Format(time.RFC3339),
		"end":      start.Add(dur).Format(time.RFC3339),
		"type":     "MEETING",
		"priority": priority,
	}
}

func createEvent(t *testing.T, ts *testServer, token string, body map[string]any) eventJSON {
	t.Helper()
	status, raw := ts.do(t, http.MethodPost, "/api/events", token, body)
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)
	return decode[eventJSON](t, raw)
}
