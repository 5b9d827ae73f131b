package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.App.Env)
	require.True(t, cfg.App.IsDev())
	require.Equal(t, "8080", cfg.App.Port)
	require.True(t, cfg.Checkout.TaxRate.Equal(decimal.RequireFromString("0.08")))
	require.True(t, cfg.Checkout.DeliveryFee.Equal(decimal.RequireFromString("3.99")))
	require.Equal(t, 10*time.Second, cfg.Checkout.SubmitTimeout)
	require.Equal(t, "15-20 minutes", cfg.Orders.PickupETA)
	require.Equal(t, 2*time.Hour, cfg.Sessions.TTL)
	require.False(t, cfg.Redis.Enabled())
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvTaxRate, "0.1")
	t.Setenv(EnvSubmitTimeout, "3s")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvCORSAllowedOrigin, "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Checkout.TaxRate.Equal(decimal.RequireFromString("0.1")))
	require.Equal(t, 3*time.Second, cfg.Checkout.SubmitTimeout)
	require.True(t, cfg.Redis.Enabled())
	require.Len(t, cfg.CORS.AllowedOrigins, 2)
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDeliveryFee, "-1")
	t.Setenv(EnvSubmitTimeout, "0s")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), EnvDeliveryFee)
	require.Contains(t, err.Error(), EnvSubmitTimeout)
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "dev")
}
