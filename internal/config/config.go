package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"

    "github.com/joho/godotenv"
    "github.com/kelseyhightower/envconfig"
)

type Server struct {
    Port              string `json:"port"`
    LogLevel          string `json:"log_level"`
    RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Yahoo struct {
    Endpoint          string `json:"endpoint"`
    AttemptTimeoutSec int    `json:"attempt_timeout_sec"`
    MaxAttempts       int    `json:"max_attempts"`
}

type NSE struct {
    QuoteURL              string `json:"quote_url"`
    APIURL                string `json:"api_url"`
    TitlePattern          string `json:"title_pattern"`
    PricePattern          string `json:"price_pattern"`
    CallTimeoutSec        int    `json:"call_timeout_sec"`
    MinRequestIntervalMs  int    `json:"min_request_interval_ms"`
}

type Fallback struct {
    // OverallTimeoutSec caps the whole resolution chain end-to-end.
    // 0 disables the ceiling.
    OverallTimeoutSec int `json:"overall_timeout_sec"`
}

type MFAPI struct {
    Endpoint   string `json:"endpoint"`
    TimeoutSec int    `json:"timeout_sec"`
}

// Firebase is the front-end identity-provider configuration, passed through
// to page templates verbatim. Populated from the environment only.
type Firebase struct {
    APIKey            string `envconfig:"FIREBASE_API_KEY" json:"apiKey"`
    AuthDomain        string `envconfig:"FIREBASE_AUTH_DOMAIN" json:"authDomain"`
    ProjectID         string `envconfig:"FIREBASE_PROJECT_ID" json:"projectId"`
    StorageBucket     string `envconfig:"FIREBASE_STORAGE_BUCKET" json:"storageBucket"`
    MessagingSenderID string `envconfig:"FIREBASE_MESSAGING_SENDER_ID" json:"messagingSenderId"`
    AppID             string `envconfig:"FIREBASE_APP_ID" json:"appId"`
}

type Config struct {
    Server   Server   `json:"server"`
    Yahoo    Yahoo    `json:"yahoo"`
    NSE      NSE      `json:"nse"`
    Fallback Fallback `json:"fallback"`
    MFAPI    MFAPI    `json:"mfapi"`
    Firebase Firebase `json:"-"`
}

func Default() Config {
    return Config{
        Server: Server{Port: "8080", LogLevel: "info", RequestTimeoutSec: 15},
        Yahoo: Yahoo{
            Endpoint:          "https://query1.finance.yahoo.com/v7/finance/quote",
            AttemptTimeoutSec: 5,
            MaxAttempts:       2,
        },
        NSE: NSE{
            QuoteURL:             "https://www.nseindia.com/get-quotes/equity?symbol=%s",
            APIURL:               "https://www.nseindia.com/api/quote-equity?symbol=%s",
            TitlePattern:         `<title>\s*([^|<]+?)\s*[|<]`,
            PricePattern:         `data-price="([0-9,.]+)"`,
            CallTimeoutSec:       10,
            MinRequestIntervalMs: 500,
        },
        Fallback: Fallback{OverallTimeoutSec: 30},
        MFAPI: MFAPI{Endpoint: "https://api.mfapi.in/mf", TimeoutSec: 10},
    }
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. A local .env file is loaded first so environment
// overrides (and the Firebase block) can come from it.
func Load(path string) (Config, error) {
    _ = godotenv.Load()

    cfg := Default()
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    if err := envconfig.Process("", &cfg.Firebase); err != nil {
        return cfg, fmt.Errorf("firebase env: %w", err)
    }
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Server.LogLevel = v }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.RequestTimeoutSec = x }
    }
    if v := os.Getenv("YAHOO_ENDPOINT"); v != "" { cfg.Yahoo.Endpoint = v }
    if v := os.Getenv("YAHOO_ATTEMPT_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Yahoo.AttemptTimeoutSec = x }
    }
    if v := os.Getenv("YAHOO_MAX_ATTEMPTS"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Yahoo.MaxAttempts = x }
    }
    if v := os.Getenv("NSE_QUOTE_URL"); v != "" { cfg.NSE.QuoteURL = v }
    if v := os.Getenv("NSE_API_URL"); v != "" { cfg.NSE.APIURL = v }
    if v := os.Getenv("NSE_CALL_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.NSE.CallTimeoutSec = x }
    }
    if v := os.Getenv("NSE_MIN_INTERVAL_MS"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.NSE.MinRequestIntervalMs = x }
    }
    if v := os.Getenv("FALLBACK_OVERALL_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x >= 0 { cfg.Fallback.OverallTimeoutSec = x }
    }
    if v := os.Getenv("MFAPI_ENDPOINT"); v != "" { cfg.MFAPI.Endpoint = v }
    if v := os.Getenv("MFAPI_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.MFAPI.TimeoutSec = x }
    }
}
