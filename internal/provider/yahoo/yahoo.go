package yahoo

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net"
    "net/http"
    "net/url"
    "time"

    "finboard/internal/httpx"
    "finboard/internal/provider"
)

// Config controls the Yahoo quote client behavior.
type Config struct {
    Name           string
    Endpoint       string        // v7 quote endpoint
    AttemptTimeout time.Duration // hard deadline per call
}

// Client fetches a single quote payload from the Yahoo v7 quote endpoint.
// Each call carries its own hard deadline; retrying is the caller's job.
type Client struct {
    cfg    Config
    client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Client {
    if cfg.Name == "" { cfg.Name = "Yahoo Finance" }
    if cfg.Endpoint == "" { cfg.Endpoint = "https://query1.finance.yahoo.com/v7/finance/quote" }
    if cfg.AttemptTimeout <= 0 { cfg.AttemptTimeout = 5 * time.Second }
    return &Client{cfg: cfg, client: hc}
}

func (c *Client) Name() string { return c.cfg.Name }

// aliasMap folds Yahoo's native field names into the canonical payload keys
// the rest of the system matches on.
var aliasMap = map[string]string{
    "regularMarketPreviousClose": "previousClose",
    "regularMarketOpen":          "open",
    "regularMarketDayHigh":       "dayHigh",
    "regularMarketDayLow":        "dayLow",
}

type apiResponse struct {
    QuoteResponse struct {
        Result []map[string]any `json:"result"`
        Error  *struct {
            Code        string `json:"code"`
            Description string `json:"description"`
        } `json:"error"`
    } `json:"quoteResponse"`
}

// FetchInfo fetches the raw payload for one provider ticker. Faults are
// classified into the provider sentinel errors: deadline overrun maps to
// ErrTimeout, a reply without a recognized price field to ErrNoData, and
// network/protocol faults to ErrUpstream.
func (c *Client) FetchInfo(ctx context.Context, ticker string) (provider.Payload, error) {
    callCtx, cancel := context.WithTimeout(ctx, c.cfg.AttemptTimeout)
    defer cancel()

    u, err := url.Parse(c.cfg.Endpoint)
    if err != nil { return nil, fmt.Errorf("%w: endpoint: %v", provider.ErrUpstream, err) }
    q := u.Query()
    q.Set("symbols", ticker)
    u.RawQuery = q.Encode()

    req, err := http.NewRequestWithContext(callCtx, http.MethodGet, u.String(), http.NoBody)
    if err != nil { return nil, fmt.Errorf("%w: %v", provider.ErrUpstream, err) }
    req.Header.Set("Accept", "application/json")

    resp, err := c.client.Do(callCtx, req)
    if err != nil {
        return nil, classify(err)
    }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return nil, fmt.Errorf("%w: GET %s -> %d", provider.ErrUpstream, u.String(), resp.StatusCode)
    }

    var api apiResponse
    if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
        return nil, fmt.Errorf("%w: decode: %v", provider.ErrUpstream, err)
    }
    if len(api.QuoteResponse.Result) == 0 {
        return nil, fmt.Errorf("%w: %s", provider.ErrNoData, ticker)
    }

    payload := make(provider.Payload, len(api.QuoteResponse.Result[0]))
    for k, v := range api.QuoteResponse.Result[0] {
        if canon, ok := aliasMap[k]; ok {
            if _, taken := api.QuoteResponse.Result[0][canon]; !taken {
                payload[canon] = v
            }
            continue
        }
        payload[k] = v
    }
    if _, ok := payload.Price(); !ok {
        return nil, fmt.Errorf("%w: %s", provider.ErrNoData, ticker)
    }
    return payload, nil
}

func classify(err error) error {
    if errors.Is(err, context.DeadlineExceeded) {
        return fmt.Errorf("%w: %v", provider.ErrTimeout, err)
    }
    var ne net.Error
    if errors.As(err, &ne) && ne.Timeout() {
        return fmt.Errorf("%w: %v", provider.ErrTimeout, err)
    }
    return fmt.Errorf("%w: %v", provider.ErrUpstream, err)
}
