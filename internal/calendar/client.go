// Package calendar fetches official month norms from the production
// calendar service.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avzhuravlev/worktime-bot/internal/domain"
)

// Client implements domain.CalendarClient over the service HTTP API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a calendar client for the given base URL,
// e.g. "https://production-calendar.example.com/api/calendar".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// MonthNorm fetches the norm for a month. Any transport failure or
// non-200 status is a hard error for the caller; there is no retry
// and no fallback value.
func (c *Client) MonthNorm(ctx context.Context, month, year int) (*domain.MonthNorm, error) {
	url := fmt.Sprintf("%s/%d/%d", c.baseURL, year, month)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch month norm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar service returned status %d", resp.StatusCode)
	}

	var norm domain.MonthNorm
	if err := json.NewDecoder(resp.Body).Decode(&norm); err != nil {
		return nil, fmt.Errorf("failed to decode month norm: %w", err)
	}

	return &norm, nil
}
