package provider

import "testing"

func TestPrice_PrecedenceOrder(t *testing.T) {
    // currentPrice beats regularMarketPrice when both present
    p := Payload{"currentPrice": 101.5, "regularMarketPrice": 99.0}
    v, ok := p.Price()
    if !ok || v != 101.5 {
        t.Fatalf("want currentPrice to win, got %v ok=%v", v, ok)
    }

    p = Payload{"regularMarketPrice": 99.0, "previousClose": 98.0}
    v, ok = p.Price()
    if !ok || v != 99.0 {
        t.Fatalf("want regularMarketPrice, got %v ok=%v", v, ok)
    }

    p = Payload{"ask": 97.25}
    v, ok = p.Price()
    if !ok || v != 97.25 {
        t.Fatalf("want ask as last resort, got %v ok=%v", v, ok)
    }
}

func TestPrice_ZeroValuesSkipped(t *testing.T) {
    p := Payload{"currentPrice": 0.0, "regularMarketPrice": 42.0}
    v, ok := p.Price()
    if !ok || v != 42.0 {
        t.Fatalf("zero currentPrice should be skipped, got %v ok=%v", v, ok)
    }
}

func TestPrice_NoRecognizedField(t *testing.T) {
    p := Payload{"volume": 123456.0, "shortName": "Acme"}
    if _, ok := p.Price(); ok {
        t.Fatal("payload without price fields must not be usable")
    }
}

func TestCompanyName_ShortNameFirst(t *testing.T) {
    p := Payload{"shortName": "Tata Consultancy", "longName": "Tata Consultancy Services Limited"}
    if p.CompanyName() != "Tata Consultancy" {
        t.Fatalf("shortName should win: %q", p.CompanyName())
    }
    p = Payload{"longName": "Tata Consultancy Services Limited"}
    if p.CompanyName() != "Tata Consultancy Services Limited" {
        t.Fatalf("longName fallback: %q", p.CompanyName())
    }
}
