package symbol

import "strings"

// Exchange selectors accepted by the API. Anything unrecognized maps to
// ExchangeOther and passes the symbol through unsuffixed.
const (
    ExchangeNSE   = "NSE"
    ExchangeBSE   = "BSE"
    ExchangeOther = "OTHER"
)

// Suffix conventions the quote provider expects per exchange.
const (
    suffixNSE = ".NS"
    suffixBSE = ".BO"
)

// Normalized is a provider-ready ticker derived from a raw user query.
type Normalized struct {
    ProviderTicker string // e.g. "TCS.NS"
    DisplaySymbol  string // e.g. "TCS"
    Exchange       string // normalized exchange selector
}

// ParseExchange uppercases and validates an exchange selector.
// Empty or unrecognized input defaults to NSE per the API contract,
// except explicit non-Indian selectors which map to OTHER.
func ParseExchange(raw string) string {
    switch strings.ToUpper(strings.TrimSpace(raw)) {
    case ExchangeNSE, "":
        return ExchangeNSE
    case ExchangeBSE:
        return ExchangeBSE
    default:
        return ExchangeOther
    }
}

// Normalize maps a raw symbol plus exchange selector to the provider ticker
// format. Pure function, no failure mode: malformed input still yields a
// result; non-empty validation happens at the endpoint boundary.
// Already-suffixed symbols are not suffixed again.
func Normalize(raw, exchange string) Normalized {
    ex := ParseExchange(exchange)
    up := strings.ToUpper(strings.TrimSpace(raw))
    ticker := up
    display := up
    switch ex {
    case ExchangeNSE:
        if strings.HasSuffix(up, suffixNSE) {
            display = strings.TrimSuffix(up, suffixNSE)
        } else {
            ticker = up + suffixNSE
        }
    case ExchangeBSE:
        if strings.HasSuffix(up, suffixBSE) {
            display = strings.TrimSuffix(up, suffixBSE)
        } else {
            ticker = up + suffixBSE
        }
    }
    return Normalized{ProviderTicker: ticker, DisplaySymbol: display, Exchange: ex}
}

// Indian reports whether the exchange participates in the static-table and
// secondary-scrape fallback stages.
func Indian(exchange string) bool {
    return exchange == ExchangeNSE || exchange == ExchangeBSE
}
