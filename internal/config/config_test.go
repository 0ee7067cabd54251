package config

import (
    "testing"

    "github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
    cfg := Default()
    require.Equal(t, "8080", cfg.Server.Port)
    require.Equal(t, 2, cfg.Yahoo.MaxAttempts)
    require.Equal(t, 5, cfg.Yahoo.AttemptTimeoutSec)
    require.Equal(t, 10, cfg.NSE.CallTimeoutSec)
    require.Equal(t, 30, cfg.Fallback.OverallTimeoutSec)
    require.Equal(t, "https://api.mfapi.in/mf", cfg.MFAPI.Endpoint)
}

func TestEnvOverrides(t *testing.T) {
    t.Setenv("PORT", "9090")
    t.Setenv("YAHOO_MAX_ATTEMPTS", "3")
    t.Setenv("FALLBACK_OVERALL_TIMEOUT_SEC", "12")
    t.Setenv("FIREBASE_PROJECT_ID", "demo-project")

    cfg, err := Load("")
    require.NoError(t, err)
    require.Equal(t, "9090", cfg.Server.Port)
    require.Equal(t, 3, cfg.Yahoo.MaxAttempts)
    require.Equal(t, 12, cfg.Fallback.OverallTimeoutSec)
    require.Equal(t, "demo-project", cfg.Firebase.ProjectID)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
    cfg, err := Load("does-not-exist.json")
    require.NoError(t, err)
    require.Equal(t, Default().Yahoo.Endpoint, cfg.Yahoo.Endpoint)
}
