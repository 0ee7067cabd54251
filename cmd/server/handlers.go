package main

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "time"

    "github.com/rs/zerolog"

    "finboard/internal/config"
    "finboard/internal/mfapi"
    "finboard/internal/provider"
    "finboard/internal/resolve"
    "finboard/internal/symbol"
)

// fundClient is the mutual fund lookup surface the handlers depend on.
type fundClient interface {
    Scheme(ctx context.Context, schemeCode string) (mfapi.FundResult, error)
}

type server struct {
    resolver    *resolve.Resolver
    primary     provider.StockFetcher
    funds       fundClient
    fundTimeout time.Duration
    firebase    config.Firebase
    log         zerolog.Logger
}

func (s *server) routes() *http.ServeMux {
    mux := http.NewServeMux()
    mux.HandleFunc("GET /api/stock/search", s.handleStockSearch)
    mux.HandleFunc("GET /api/get_stock_info", s.handleStockInfo)
    mux.HandleFunc("GET /api/mutual-fund/search", s.handleFundSearch)
    mux.HandleFunc("GET /healthz", s.handleHealthz)

    mux.HandleFunc("GET /{$}", s.handlePage("index.html"))
    mux.HandleFunc("GET /login", s.handlePage("login.html"))
    mux.HandleFunc("GET /stocks", s.handlePage("stocks.html"))
    mux.HandleFunc("GET /mutual-funds", s.handlePage("mutual_funds.html"))
    return mux
}

// handleStockSearch is the degrading lookup: once the query parameter is
// present, the answer is always 200. Provider trouble shows up in the
// source and warning fields, never in the status code.
func (s *server) handleStockSearch(w http.ResponseWriter, r *http.Request) {
    query := r.URL.Query().Get("query")
    if query == "" {
        writeError(w, http.StatusBadRequest, "Query parameter is required")
        return
    }
    exchange := r.URL.Query().Get("exchange")

    res := s.resolver.Resolve(r.Context(), query, exchange)
    writeJSON(w, http.StatusOK, res)
}

// stockInfoResponse mirrors the raw single-provider lookup shape.
type stockInfoResponse struct {
    Name          string  `json:"name"`
    Symbol        string  `json:"symbol"`
    CurrentPrice  float64 `json:"currentPrice"`
    DayHigh       float64 `json:"dayHigh,omitempty"`
    DayLow        float64 `json:"dayLow,omitempty"`
    PreviousClose float64 `json:"previousClose,omitempty"`
    Exchange      string  `json:"exchange"`
}

// handleStockInfo is the strict single-provider lookup: no fallback chain,
// faults map to real error statuses.
func (s *server) handleStockInfo(w http.ResponseWriter, r *http.Request) {
    raw := r.URL.Query().Get("symbol")
    if raw == "" {
        writeError(w, http.StatusBadRequest, "Symbol parameter is required")
        return
    }
    n := symbol.Normalize(raw, r.URL.Query().Get("exchange"))

    payload, err := s.primary.FetchInfo(r.Context(), n.ProviderTicker)
    if err != nil {
        switch {
        case errors.Is(err, provider.ErrTimeout):
            writeError(w, http.StatusGatewayTimeout, "Request timed out. The stock data service is not responding.")
        case errors.Is(err, provider.ErrNoData):
            writeError(w, http.StatusNotFound, "Stock not found or no data available")
        default:
            s.log.Error().Err(err).Str("ticker", n.ProviderTicker).Msg("stock info lookup failed")
            writeError(w, http.StatusInternalServerError, "Failed to fetch stock data")
        }
        return
    }

    price, _ := payload.Price()
    out := stockInfoResponse{
        Name:         payload.CompanyName(),
        Symbol:       n.DisplaySymbol,
        CurrentPrice: price,
        Exchange:     n.Exchange,
    }
    if out.Name == "" {
        out.Name = n.DisplaySymbol
    }
    if v, ok := payload.Float("dayHigh"); ok { out.DayHigh = v }
    if v, ok := payload.Float("dayLow"); ok { out.DayLow = v }
    if v, ok := payload.Float("previousClose"); ok { out.PreviousClose = v }
    writeJSON(w, http.StatusOK, out)
}

// handleFundSearch looks up a mutual fund scheme by its numeric code.
// A single trusted source, so unlike the stock search this surfaces errors.
func (s *server) handleFundSearch(w http.ResponseWriter, r *http.Request) {
    code := r.URL.Query().Get("scheme_code")
    if code == "" {
        writeError(w, http.StatusBadRequest, "Scheme code parameter is required")
        return
    }

    ctx := r.Context()
    if s.fundTimeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(ctx, s.fundTimeout)
        defer cancel()
    }

    res, err := s.funds.Scheme(ctx, code)
    if err != nil {
        var se *mfapi.StatusError
        switch {
        case errors.Is(err, mfapi.ErrProviderReported):
            writeError(w, http.StatusNotFound, "Mutual fund scheme not found")
        case errors.As(err, &se):
            writeError(w, se.Code, "External API error")
        case errors.Is(err, mfapi.ErrInvalidPayload):
            writeError(w, http.StatusInternalServerError, "Invalid JSON response from external API")
        default:
            s.log.Error().Err(err).Str("scheme_code", code).Msg("mutual fund lookup failed")
            writeError(w, http.StatusInternalServerError, "Failed to connect to external API")
        }
        return
    }
    writeJSON(w, http.StatusOK, res)
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
    writeJSON(w, status, map[string]string{"error": msg})
}
