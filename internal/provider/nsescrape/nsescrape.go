package nsescrape

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "regexp"
    "strconv"
    "strings"
    "time"

    "github.com/rs/zerolog"
    "golang.org/x/sync/singleflight"
    "golang.org/x/time/rate"

    "finboard/internal/httpx"
)

// Config controls the NSE scrape behavior. The extraction patterns are
// configuration data so they can be updated when the site markup shifts
// without touching resolver logic.
type Config struct {
    Name         string
    QuoteURL     string // HTML quote page, %s = symbol
    APIURL       string // JSON quote endpoint, %s = symbol
    TitlePattern string // extracts company name from the page title
    PricePattern string // extracts price from an inline attribute, fallback
    CallTimeout  time.Duration // per network call, default 10s
    MinInterval  time.Duration // pacing between the two calls, default 500ms
}

// Result is what a successful scrape yields. Price 0 is a valid outcome:
// the company name alone is still useful downstream.
type Result struct {
    CompanyName string
    Price       float64
}

// Scraper pulls a quote from the NSE website best-effort. Its only failure
// mode is "no result" - it never propagates a fault to the caller.
type Scraper struct {
    cfg     Config
    client  *httpx.Client
    titleRe *regexp.Regexp
    priceRe *regexp.Regexp
    limiter *rate.Limiter
    sf      singleflight.Group
    log     zerolog.Logger
}

func New(cfg Config, hc *httpx.Client, log zerolog.Logger) (*Scraper, error) {
    if cfg.Name == "" { cfg.Name = "NSE India" }
    if cfg.QuoteURL == "" { cfg.QuoteURL = "https://www.nseindia.com/get-quotes/equity?symbol=%s" }
    if cfg.APIURL == "" { cfg.APIURL = "https://www.nseindia.com/api/quote-equity?symbol=%s" }
    if cfg.TitlePattern == "" { cfg.TitlePattern = `<title>\s*([^|<]+?)\s*[|<]` }
    if cfg.PricePattern == "" { cfg.PricePattern = `data-price="([0-9,.]+)"` }
    if cfg.CallTimeout <= 0 { cfg.CallTimeout = 10 * time.Second }
    if cfg.MinInterval <= 0 { cfg.MinInterval = 500 * time.Millisecond }

    titleRe, err := regexp.Compile(cfg.TitlePattern)
    if err != nil { return nil, fmt.Errorf("title pattern: %w", err) }
    priceRe, err := regexp.Compile(cfg.PricePattern)
    if err != nil { return nil, fmt.Errorf("price pattern: %w", err) }

    return &Scraper{
        cfg:     cfg,
        client:  hc,
        titleRe: titleRe,
        priceRe: priceRe,
        limiter: rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
        log:     log,
    }, nil
}

func (s *Scraper) Name() string { return s.cfg.Name }

var errMiss = errors.New("no result")

// Lookup scrapes a quote for the display symbol. Concurrent lookups for the
// same symbol are coalesced into one upstream pass.
func (s *Scraper) Lookup(ctx context.Context, symbol string) (Result, bool) {
    v, err, _ := s.sf.Do(strings.ToUpper(symbol), func() (out any, err error) {
        defer func() {
            if rec := recover(); rec != nil {
                s.log.Warn().Interface("panic", rec).Str("symbol", symbol).Msg("scrape panic recovered")
                out, err = nil, errMiss
            }
        }()
        r, ok := s.scrape(ctx, symbol)
        if !ok { return nil, errMiss }
        return r, nil
    })
    if err != nil {
        return Result{}, false
    }
    return v.(Result), true
}

func (s *Scraper) scrape(ctx context.Context, symbol string) (Result, bool) {
    // a) quote page HTML for the company name
    html, ok := s.fetchHTML(ctx, symbol)
    if !ok {
        return Result{}, false
    }
    name := ""
    if m := s.titleRe.FindStringSubmatch(html); len(m) > 1 {
        name = strings.TrimSpace(m[1])
    }

    // b) pace before the JSON call; the site rate-limits informally
    if err := s.limiter.Wait(ctx); err != nil {
        s.log.Debug().Err(err).Msg("scrape pacing interrupted")
        return Result{CompanyName: name}, true
    }

    // c) JSON endpoint first, inline attribute from the HTML second
    price, ok := s.fetchPrice(ctx, symbol)
    if !ok {
        if m := s.priceRe.FindStringSubmatch(html); len(m) > 1 {
            if v, err := ParsePrice(m[1]); err == nil {
                price = v
            }
        }
    }
    return Result{CompanyName: name, Price: price}, true
}

func (s *Scraper) fetchHTML(ctx context.Context, symbol string) (string, bool) {
    callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
    defer cancel()
    u := fmt.Sprintf(s.cfg.QuoteURL, symbol)
    req, err := http.NewRequestWithContext(callCtx, http.MethodGet, u, http.NoBody)
    if err != nil { return "", false }
    req.Header.Set("Accept", "text/html")
    resp, err := s.client.Do(callCtx, req)
    if err != nil {
        s.log.Debug().Err(err).Str("symbol", symbol).Msg("scrape html fetch failed")
        return "", false
    }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        s.log.Debug().Int("status", resp.StatusCode).Str("symbol", symbol).Msg("scrape html non-success")
        return "", false
    }
    b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
    if err != nil { return "", false }
    return string(b), true
}

func (s *Scraper) fetchPrice(ctx context.Context, symbol string) (float64, bool) {
    callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
    defer cancel()
    u := fmt.Sprintf(s.cfg.APIURL, symbol)
    req, err := http.NewRequestWithContext(callCtx, http.MethodGet, u, http.NoBody)
    if err != nil { return 0, false }
    req.Header.Set("Accept", "application/json")
    resp, err := s.client.Do(callCtx, req)
    if err != nil {
        s.log.Debug().Err(err).Str("symbol", symbol).Msg("scrape price fetch failed")
        return 0, false
    }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        return 0, false
    }
    var body struct {
        PriceInfo struct {
            LastPrice any `json:"lastPrice"`
        } `json:"priceInfo"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
        return 0, false
    }
    switch v := body.PriceInfo.LastPrice.(type) {
    case float64:
        return v, true
    case string:
        if p, err := ParsePrice(v); err == nil {
            return p, true
        }
    }
    return 0, false
}

// ParsePrice converts a scraped price string to a float, stripping
// thousands separators first.
func ParsePrice(s string) (float64, error) {
    s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
    return strconv.ParseFloat(s, 64)
}
