package static

import "strings"

// Entry is a known symbol with a deliberately stale last-resort price.
type Entry struct {
    Symbol      string
    CompanyName string
    Price       float64
}

// Table is an immutable symbol lookup populated at startup. It is safe for
// unsynchronized concurrent reads and never written afterwards.
type Table struct {
    entries map[string]Entry // key: upper-cased symbol
}

// NewTable builds a table from entries. Later duplicates win.
func NewTable(entries []Entry) *Table {
    m := make(map[string]Entry, len(entries))
    for _, e := range entries {
        m[strings.ToUpper(e.Symbol)] = e
    }
    return &Table{entries: m}
}

// Lookup matches a display symbol case-insensitively.
func (t *Table) Lookup(symbol string) (Entry, bool) {
    e, ok := t.entries[strings.ToUpper(strings.TrimSpace(symbol))]
    return e, ok
}

// Len reports the number of known symbols.
func (t *Table) Len() int { return len(t.entries) }

// NewDefault returns the built-in table of large-cap NSE/BSE symbols.
// Prices are snapshots, not live data; the resolver marks results from this
// table so the front end can flag them as stale.
func NewDefault() *Table {
    return NewTable([]Entry{
        {Symbol: "TCS", CompanyName: "Tata Consultancy Services Ltd.", Price: 3800.50},
        {Symbol: "RELIANCE", CompanyName: "Reliance Industries Ltd.", Price: 2950.75},
        {Symbol: "INFY", CompanyName: "Infosys Ltd.", Price: 1620.30},
        {Symbol: "HDFCBANK", CompanyName: "HDFC Bank Ltd.", Price: 1710.25},
        {Symbol: "ICICIBANK", CompanyName: "ICICI Bank Ltd.", Price: 1195.60},
        {Symbol: "SBIN", CompanyName: "State Bank of India", Price: 830.45},
        {Symbol: "WIPRO", CompanyName: "Wipro Ltd.", Price: 545.20},
        {Symbol: "ITC", CompanyName: "ITC Ltd.", Price: 465.80},
        {Symbol: "BHARTIARTL", CompanyName: "Bharti Airtel Ltd.", Price: 1580.90},
        {Symbol: "TATAMOTORS", CompanyName: "Tata Motors Ltd.", Price: 990.15},
        {Symbol: "LT", CompanyName: "Larsen & Toubro Ltd.", Price: 3650.00},
        {Symbol: "HINDUNILVR", CompanyName: "Hindustan Unilever Ltd.", Price: 2480.35},
    })
}
