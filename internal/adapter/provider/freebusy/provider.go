// Package freebusy queries an external availability service for the busy
// intervals of meeting attendees.
package freebusy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// Provider fetches busy intervals over HTTP:
//
//	GET {baseURL}/busy?email=<email>&from=<RFC3339>&to=<RFC3339>
//
// An unknown attendee (HTTP 404) is treated as free.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider for baseURL.
func NewProvider(logger *slog.Logger, baseURL string, timeout time.Duration) *Provider {
	return &Provider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: 500 * time.Millisecond,
		log:        logger.With("adapter", "freebusy"),
	}
}

// Busy returns the busy intervals of every attendee overlapping [from, to).
// Intervals of different attendees are concatenated unmerged.
func (p *Provider) Busy(ctx context.Context, emails []string, from, to time.Time) ([]domain.TimeSlot, error) {
	var out []domain.TimeSlot
	for _, email := range emails {
		busy, err := p.fetch(ctx, email, from, to)
		if err != nil {
			return nil, err
		}
		out = append(out, busy...)
	}
	return out, nil
}

func (p *Provider) fetch(ctx context.Context, email string, from, to time.Time) ([]domain.TimeSlot, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("from", from.UTC().Format(time.RFC3339))
	q.Set("to", to.UTC().Format(time.RFC3339))
	reqURL := p.baseURL + "/busy?" + q.Encode()

	p.log.DebugContext(ctx, "freebusy request", slog.String("email", email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freebusy: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, email)
	if err != nil {
		p.log.ErrorContext(ctx, "freebusy request failed", slog.String("email", email), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freebusy: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("freebusy: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("freebusy: read body: %w", err)
	}

	var r apiResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("freebusy: decode json: %w", err)
	}

	out := make([]domain.TimeSlot, 0, len(r.Busy))
	for _, b := range r.Busy {
		slot, err := domain.NewTimeSlot(b.Start.UTC(), b.End.UTC(), 1, "busy")
		if err != nil {
			p.log.WarnContext(ctx, "freebusy: skipping invalid interval", slog.String("email", email))
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, email string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "freebusy retry", slog.String("email", email), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.httpClient.Do(req)
}

type apiResponse struct {
	Busy []apiInterval `json:"busy"`
}

type apiInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
