package mfapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

const baseURL = "https://api.mfapi.in/mf"

// FundResult is the normalized mutual fund response shape.
type FundResult struct {
	SchemeCode   string  `json:"schemeCode"`
	SchemeName   string  `json:"schemeName"`
	CurrentNAV   float64 `json:"currentNAV"`
	Date         string  `json:"date"`
	FundType     string  `json:"fundType"`
	FundCategory string  `json:"fundCategory"`
}

// ErrProviderReported means the provider payload itself carried an error
// field. Maps to 404 upstream.
var ErrProviderReported = errors.New("provider reported error")

// ErrInvalidPayload means the provider body could not be parsed as JSON.
var ErrInvalidPayload = errors.New("invalid provider payload")

// StatusError carries a non-success upstream status code for passthrough.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.Code)
}

// SchemePayload is the raw provider response for a scheme lookup.
// data is ordered newest-first; only data[0] is consumed.
type SchemePayload struct {
	Meta  map[string]any `json:"meta"`
	Data  []NAVRecord    `json:"data"`
	Error string         `json:"error"`
}

// NAVRecord is one dated NAV entry from the provider.
type NAVRecord struct {
	NAV  string `json:"nav"`
	Date string `json:"date"`
}

// Scheme fetches and normalizes the NAV data for a scheme code.
// Unlike the stock path this surfaces errors: a single trusted source,
// no fallback chain.
func (c *Client) Scheme(ctx context.Context, schemeCode string) (FundResult, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, schemeCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return FundResult{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return FundResult{}, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return FundResult{}, &StatusError{Code: res.StatusCode}
	}

	var payload SchemePayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return FundResult{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if payload.Error != "" {
		return FundResult{}, fmt.Errorf("%w: %s", ErrProviderReported, payload.Error)
	}

	return NormalizeScheme(schemeCode, payload), nil
}

// NormalizeScheme maps a raw provider payload to the uniform FundResult.
// Every meta field is individually optional; NAV and date come from the
// newest entry and default to 0/"" when the series is empty.
func NormalizeScheme(schemeCode string, p SchemePayload) FundResult {
	out := FundResult{
		SchemeCode:   schemeCode,
		SchemeName:   metaString(p.Meta, "scheme_name", "Unknown"),
		FundType:     metaString(p.Meta, "fund_type", "Unknown"),
		FundCategory: metaString(p.Meta, "scheme_category", ""),
	}
	if len(p.Data) > 0 {
		if v, err := strconv.ParseFloat(p.Data[0].NAV, 64); err == nil {
			out.CurrentNAV = v
		}
		out.Date = p.Data[0].Date
	}
	return out
}

func metaString(meta map[string]any, key, def string) string {
	if v, ok := meta[key].(string); ok && v != "" {
		return v
	}
	return def
}
