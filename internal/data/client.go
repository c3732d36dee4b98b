package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"battery-benchmark/internal/model"
)

// Client fetches market price series from a transparency-platform style
// JSON API. Both markets share one client; per-market mapping to price
// schedules lives in the sources.
type Client struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewClient creates a new price API client.
func NewClient(apiKey string, baseURL string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the price API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *APIError) Error() string {
	return e.Message
}

// dayaheadRow is one hourly auction clearing price. The same price applies
// to buying and selling energy on the dayahead market.
type dayaheadRow struct {
	IntervalStart time.Time `json:"interval_start"`
	Price         float64   `json:"price"`
}

// imbalanceRow is one quarter-hour settlement row. Short is the price paid
// when consuming (charging), Long the price received when feeding in.
type imbalanceRow struct {
	IntervalStart time.Time `json:"interval_start"`
	ShortPrice    float64   `json:"short_price"`
	LongPrice     float64   `json:"long_price"`
}

// QueryDayaheadPrices fetches hourly dayahead auction prices for an area over
// [start, end], end inclusive. The auction price is used as both charge and
// discharge price.
func (c *Client) QueryDayaheadPrices(ctx context.Context, area string, start, end time.Time) (model.PriceSchedule, error) {
	var rows struct {
		Data []dayaheadRow `json:"data"`
	}
	if err := c.query(ctx, "/v1/prices/dayahead", area, start, end, &rows); err != nil {
		return nil, err
	}

	schedule := make(model.PriceSchedule, 0, len(rows.Data))
	for _, r := range rows.Data {
		schedule = append(schedule, model.PricePoint{
			IntervalStart:  r.IntervalStart,
			ChargePrice:    r.Price,
			DischargePrice: r.Price,
		})
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("dayahead response invalid: %w", err)
	}
	return schedule, nil
}

// QueryImbalancePrices fetches quarter-hourly imbalance settlement prices.
// Short prices map to charging, long prices to discharging.
func (c *Client) QueryImbalancePrices(ctx context.Context, area string, start, end time.Time) (model.PriceSchedule, error) {
	var rows struct {
		Data []imbalanceRow `json:"data"`
	}
	if err := c.query(ctx, "/v1/prices/imbalance", area, start, end, &rows); err != nil {
		return nil, err
	}

	schedule := make(model.PriceSchedule, 0, len(rows.Data))
	for _, r := range rows.Data {
		schedule = append(schedule, model.PricePoint{
			IntervalStart:  r.IntervalStart,
			ChargePrice:    r.ShortPrice,
			DischargePrice: r.LongPrice,
		})
	}
	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("imbalance response invalid: %w", err)
	}
	return schedule, nil
}

func (c *Client) query(ctx context.Context, path string, area string, start, end time.Time, out any) error {
	if c.BaseURL == "" {
		return &APIError{Code: "MISSING_BASE_URL", Message: "price API base URL is not configured"}
	}
	if c.APIKey == "" {
		return &APIError{Code: "MISSING_API_KEY", Message: "price API key is required"}
	}
	if area == "" {
		return fmt.Errorf("area is required")
	}
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("start and end are required")
	}
	if start.After(end) {
		return fmt.Errorf("start must be before end")
	}

	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("area", area)
	q.Set("start", start.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	log.Printf("[PriceAPI] Request: GET %s (area=%s, start=%s, end=%s)",
		u.Path, area, start.Format(time.RFC3339), end.Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Accept", "application/json")

	startedAt := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startedAt)
	if err != nil {
		log.Printf("[PriceAPI] Request failed: %v (duration: %v)", err, duration)
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[PriceAPI] Response: %d %s (duration: %v, area=%s)", resp.StatusCode, resp.Status, duration, area)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusUnauthorized:
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "Unauthorized: invalid API key",
		}
	case http.StatusForbidden:
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "Invalid API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
