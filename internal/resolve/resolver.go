package resolve

import (
    "context"
    "time"

    "github.com/rs/zerolog"

    "finboard/internal/provider"
    "finboard/internal/provider/nsescrape"
    "finboard/internal/provider/static"
    "finboard/internal/symbol"
)

// StaticLookup is the read-only symbol table stage.
type StaticLookup interface {
    Lookup(symbol string) (static.Entry, bool)
}

// Secondary is the scraped last-network-resort stage. A false return is a
// normal miss, never a fault.
type Secondary interface {
    Name() string
    Lookup(ctx context.Context, symbol string) (nsescrape.Result, bool)
}

// Resolver walks the fallback chain for stock lookups:
// primary provider (with retry) -> static table -> secondary scrape ->
// placeholder. Every path terminates in exactly one QuoteResult; provider
// faults degrade the result, they never surface to the caller.
type Resolver struct {
    Primary provider.StockFetcher
    Static  StaticLookup
    Scraper Secondary
    Retry   RetryPolicy
    // Overall caps the whole chain end-to-end. Stages entered after the
    // ceiling lapses are skipped. 0 disables the ceiling.
    Overall time.Duration
    Log     zerolog.Logger
}

// Resolve runs the chain for a raw user query. Stage deadlines are fresh:
// the inbound request context's deadline is deliberately not inherited, so
// one hung stage cannot starve the next.
func (r *Resolver) Resolve(ctx context.Context, rawQuery, exchange string) (out provider.QuoteResult) {
    n := symbol.Normalize(rawQuery, exchange)

    defer func() {
        if rec := recover(); rec != nil {
            r.Log.Error().Interface("panic", rec).Str("symbol", n.DisplaySymbol).Msg("resolver panic recovered")
            out = r.placeholder(n, provider.SourceErrorFall)
        }
    }()

    base := context.WithoutCancel(ctx)
    if r.Overall > 0 {
        var cancel context.CancelFunc
        base, cancel = context.WithTimeout(base, r.Overall)
        defer cancel()
    }

    // 1) primary provider, bounded attempts
    if res, ok := r.tryPrimary(base, n); ok {
        return res
    }

    // static and scrape stages only exist for Indian exchanges
    if symbol.Indian(n.Exchange) {
        // 2) static table
        if e, ok := r.staticLookup(n.DisplaySymbol); ok {
            r.Log.Info().Str("symbol", n.DisplaySymbol).Msg("serving static table data")
            return provider.QuoteResult{
                Symbol:       n.DisplaySymbol,
                CompanyName:  e.CompanyName,
                CurrentPrice: e.Price,
                Exchange:     n.Exchange,
                Source:       provider.SourceStatic,
                Warning:      "Prices are indicative and may be outdated",
            }
        }

        // 3) secondary scrape
        if res, ok := r.tryScrape(base, n); ok {
            return res
        }
    }

    // 4) nothing worked; degrade, never fail
    return r.placeholder(n, provider.SourcePlaceholder)
}

func (r *Resolver) tryPrimary(base context.Context, n symbol.Normalized) (provider.QuoteResult, bool) {
    if r.Primary == nil || expired(base) {
        return provider.QuoteResult{}, false
    }
    var payload provider.Payload
    err := r.Retry.Do(base, func(ctx context.Context) error {
        p, err := r.Primary.FetchInfo(ctx, n.ProviderTicker)
        if err != nil { return err }
        payload = p
        return nil
    })
    if err != nil {
        r.Log.Warn().Err(err).Str("ticker", n.ProviderTicker).Msg("primary provider exhausted")
        return provider.QuoteResult{}, false
    }
    price, ok := payload.Price()
    if !ok {
        return provider.QuoteResult{}, false
    }
    res := provider.QuoteResult{
        Symbol:       n.DisplaySymbol,
        CompanyName:  payload.CompanyName(),
        CurrentPrice: price,
        Exchange:     n.Exchange,
        Source:       provider.SourcePrimary,
    }
    if v, ok := payload.Float("dayHigh"); ok { res.DayHigh = v }
    if v, ok := payload.Float("dayLow"); ok { res.DayLow = v }
    if v, ok := payload.Float("previousClose"); ok { res.PreviousClose = v }
    return res, true
}

func (r *Resolver) staticLookup(displaySymbol string) (static.Entry, bool) {
    if r.Static == nil {
        return static.Entry{}, false
    }
    return r.Static.Lookup(displaySymbol)
}

func (r *Resolver) tryScrape(base context.Context, n symbol.Normalized) (provider.QuoteResult, bool) {
    if r.Scraper == nil || expired(base) {
        return provider.QuoteResult{}, false
    }
    sr, ok := r.Scraper.Lookup(base, n.DisplaySymbol)
    if !ok {
        return provider.QuoteResult{}, false
    }
    res := provider.QuoteResult{
        Symbol:       n.DisplaySymbol,
        CompanyName:  sr.CompanyName,
        CurrentPrice: sr.Price,
        Exchange:     n.Exchange,
        Source:       provider.SourceSecondary,
    }
    if sr.Price == 0 {
        res.Warning = "Price unavailable from fallback source"
    }
    if res.CompanyName == "" {
        res.CompanyName = n.DisplaySymbol
    }
    return res, true
}

func (r *Resolver) placeholder(n symbol.Normalized, source string) provider.QuoteResult {
    return provider.QuoteResult{
        Symbol:       n.DisplaySymbol,
        CompanyName:  n.DisplaySymbol + " (" + n.Exchange + ")",
        CurrentPrice: 0,
        Exchange:     n.Exchange,
        Source:       source,
        Warning:      "Live data unavailable for this symbol; all sources failed",
    }
}

func expired(ctx context.Context) bool {
    if d, ok := ctx.Deadline(); ok {
        return time.Now().After(d)
    }
    return false
}
