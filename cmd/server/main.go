package main

import (
    "compress/gzip"
    "context"
    "io"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "sync"
    "syscall"
    "time"

    "finboard/internal/config"
    "finboard/internal/httpx"
    "finboard/internal/logx"
    "finboard/internal/mfapi"
    "finboard/internal/provider/nsescrape"
    "finboard/internal/provider/static"
    "finboard/internal/provider/yahoo"
    "finboard/internal/resolve"
)

func main() {
    cfgPath := os.Getenv("CONFIG_FILE")
    cfg, err := config.Load(cfgPath)
    if err != nil {
        l := logx.New("error")
        l.Fatal().Err(err).Msg("config")
    }
    log := logx.New(cfg.Server.LogLevel)

    if cfg.Firebase.APIKey == "" {
        log.Warn().Msg("FIREBASE_API_KEY not set; front-end auth will not work")
    }

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

    primary := yahoo.New(yahoo.Config{
        Endpoint:       cfg.Yahoo.Endpoint,
        AttemptTimeout: time.Duration(cfg.Yahoo.AttemptTimeoutSec) * time.Second,
    }, httpClient)

    scraper, err := nsescrape.New(nsescrape.Config{
        QuoteURL:     cfg.NSE.QuoteURL,
        APIURL:       cfg.NSE.APIURL,
        TitlePattern: cfg.NSE.TitlePattern,
        PricePattern: cfg.NSE.PricePattern,
        CallTimeout:  time.Duration(cfg.NSE.CallTimeoutSec) * time.Second,
        MinInterval:  time.Duration(cfg.NSE.MinRequestIntervalMs) * time.Millisecond,
    }, httpClient, log)
    if err != nil {
        log.Fatal().Err(err).Msg("scraper config")
    }

    resolver := &resolve.Resolver{
        Primary: primary,
        Static:  static.NewDefault(),
        Scraper: scraper,
        Retry: resolve.RetryPolicy{
            MaxAttempts:    cfg.Yahoo.MaxAttempts,
            AttemptTimeout: time.Duration(cfg.Yahoo.AttemptTimeoutSec) * time.Second,
        },
        Overall: time.Duration(cfg.Fallback.OverallTimeoutSec) * time.Second,
        Log:     log,
    }

    funds := mfapi.NewClient(
        mfapi.WithBaseURL(cfg.MFAPI.Endpoint),
        mfapi.WithHTTPClient(httpClient.HTTP),
    )

    srvHandlers := &server{
        resolver:    resolver,
        primary:     primary,
        funds:       funds,
        fundTimeout: time.Duration(cfg.MFAPI.TimeoutSec) * time.Second,
        firebase:    cfg.Firebase,
        log:         log,
    }

    srv := &http.Server{
        Addr:              ":" + cfg.Server.Port,
        Handler:           withCORS(withGzip(recoverPanic(limitBody(srvHandlers.routes())))),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      60 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        log.Info().Str("port", cfg.Server.Port).Msg("server listening")
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatal().Err(err).Msg("server")
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        gw := gzipResponseWriter{ResponseWriter: w, Writer: gz}
        next.ServeHTTP(gw, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
    return g.Writer.Write(b)
}

// withCORS allows browser front-ends served from other origins to call the
// read-only API.
func withCORS(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// limitBody caps inbound request bodies. The API is read-only; anything
// beyond a small body is abuse.
func limitBody(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
        next.ServeHTTP(w, r)
    })
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                http.Error(w, "internal server error", http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}
