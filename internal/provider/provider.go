package provider

import (
    "context"
    "errors"
)

// Payload holds the raw field set returned by a stock data provider.
// Field names follow the yfinance "info" convention; provider clients are
// responsible for aliasing their native keys into these names.
type Payload map[string]any

// Sentinel errors classifying provider faults. Handlers and the fallback
// resolver branch on these with errors.Is.
var (
    // ErrTimeout means the provider did not answer within its deadline.
    ErrTimeout = errors.New("provider timeout")
    // ErrNoData means the provider answered but the payload carries no
    // recognized current-price field.
    ErrNoData = errors.New("no data for symbol")
    // ErrUpstream covers network and protocol faults.
    ErrUpstream = errors.New("upstream unavailable")
)

// PriceFieldPrecedence is the canonical ordered list of accepted
// current-price field names. First present non-zero value wins.
var PriceFieldPrecedence = []string{"currentPrice", "regularMarketPrice", "previousClose", "open", "ask"}

// StockFetcher fetches the raw payload for a single provider ticker.
type StockFetcher interface {
    Name() string
    FetchInfo(ctx context.Context, ticker string) (Payload, error)
}

// Price returns the first usable current price per PriceFieldPrecedence.
func (p Payload) Price() (float64, bool) {
    for _, k := range PriceFieldPrecedence {
        if v, ok := p.Float(k); ok && v != 0 {
            return v, true
        }
    }
    return 0, false
}

// Float reads a numeric field, tolerating the types json.Unmarshal produces.
func (p Payload) Float(key string) (float64, bool) {
    switch v := p[key].(type) {
    case float64:
        return v, true
    case float32:
        return float64(v), true
    case int:
        return float64(v), true
    case int64:
        return float64(v), true
    }
    return 0, false
}

// String reads a string field, empty when absent or non-string.
func (p Payload) String(key string) string {
    if v, ok := p[key].(string); ok { return v }
    return ""
}

// CompanyName picks the best available name field, shortName first.
func (p Payload) CompanyName() string {
    if v := p.String("shortName"); v != "" { return v }
    return p.String("longName")
}

// QuoteResult is the uniform stock response shape. Constructed once per
// request and returned as the response body unchanged.
type QuoteResult struct {
    Symbol        string  `json:"symbol"`
    CompanyName   string  `json:"companyName"`
    CurrentPrice  float64 `json:"currentPrice"`
    Exchange      string  `json:"exchange"`
    Source        string  `json:"source"`
    DayHigh       float64 `json:"dayHigh,omitempty"`
    DayLow        float64 `json:"dayLow,omitempty"`
    PreviousClose float64 `json:"previousClose,omitempty"`
    Warning       string  `json:"warning,omitempty"`
}

// Source labels distinguishing real data from degraded data.
const (
    SourcePrimary     = "Yahoo Finance"
    SourceStatic      = "Static Data"
    SourceSecondary   = "NSE India"
    SourcePlaceholder = "Placeholder"
    SourceErrorFall   = "Error Fallback"
)
