package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 3, cfg.Ledger.MaxRetries)
	assert.Equal(t, 20*time.Millisecond, cfg.Ledger.RetryBackoff)
	assert.Equal(t, 7, cfg.Ledger.ExpiringDays)
	assert.Equal(t, time.Hour, cfg.HTTP.IdempotencyTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://postgres:@localhost:5432/stockify?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("LEDGER_MAX_RETRIES", "5")
	v.Set("REDIS_ADDR", "localhost:6379")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")
	v.Set("APP_TIMEZONE", "no/existe")
	v.Set("DB_PORT", "abc")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Ledger.MaxRetries)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
	assert.Equal(t, time.UTC, cfg.App.Location(), "zona desconocida cae a UTC")
	assert.Equal(t, 5432, cfg.DB.Port, "un entero inválido usa el valor por defecto")
}

func TestFromViper_RetriesInvalidos(t *testing.T) {
	v := viper.New()
	v.Set("LEDGER_MAX_RETRIES", 0)

	_, err := fromViper(v)
	assert.Error(t, err)
}
