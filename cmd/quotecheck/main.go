// Command quotecheck is a developer utility that checks whether Yahoo
// Finance currently serves a quote for the given symbols, using the
// piquette client directly. Useful when diagnosing empty answers from the
// primary provider without running the whole server.
package main

import (
    "flag"
    "fmt"
    "os"

    "github.com/piquette/finance-go/quote"

    "finboard/internal/symbol"
)

func main() {
    exchange := flag.String("exchange", "NSE", "exchange hint: NSE, BSE or OTHER")
    flag.Parse()

    if flag.NArg() == 0 {
        fmt.Fprintln(os.Stderr, "usage: quotecheck [-exchange NSE|BSE|OTHER] SYMBOL...")
        os.Exit(2)
    }

    failed := 0
    for _, raw := range flag.Args() {
        n := symbol.Normalize(raw, *exchange)
        q, err := quote.Get(n.ProviderTicker)
        if err != nil {
            fmt.Printf("%-12s ERROR %v\n", n.ProviderTicker, err)
            failed++
            continue
        }
        if q == nil {
            fmt.Printf("%-12s NO DATA\n", n.ProviderTicker)
            failed++
            continue
        }
        fmt.Printf("%-12s %s %.2f\n", n.ProviderTicker, q.Symbol, q.RegularMarketPrice)
    }
    if failed > 0 {
        os.Exit(1)
    }
}
