package static

import "testing"

func TestLookup_CaseInsensitive(t *testing.T) {
    tbl := NewDefault()
    for _, q := range []string{"TCS", "tcs", " Tcs "} {
        e, ok := tbl.Lookup(q)
        if !ok { t.Fatalf("lookup %q missed", q) }
        if e.CompanyName != "Tata Consultancy Services Ltd." || e.Price != 3800.50 {
            t.Fatalf("unexpected entry for %q: %+v", q, e)
        }
    }
}

func TestLookup_Miss(t *testing.T) {
    tbl := NewDefault()
    if _, ok := tbl.Lookup("NOSUCHSYM"); ok {
        t.Fatal("unknown symbol must miss")
    }
}

func TestNewTable_LaterDuplicateWins(t *testing.T) {
    tbl := NewTable([]Entry{
        {Symbol: "ABC", CompanyName: "First", Price: 1},
        {Symbol: "abc", CompanyName: "Second", Price: 2},
    })
    e, ok := tbl.Lookup("ABC")
    if !ok || e.CompanyName != "Second" || e.Price != 2 {
        t.Fatalf("unexpected: %+v ok=%v", e, ok)
    }
    if tbl.Len() != 1 { t.Fatalf("len: %d", tbl.Len()) }
}
