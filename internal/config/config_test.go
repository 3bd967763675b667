package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORE_TYPE", "")
	t.Setenv("RECONCILE_INTERVAL", "")
	t.Setenv("PAY_RATE_DAY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store.Type)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "12h", cfg.JWT.AccessExpiration)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, time.Hour, cfg.Reconcile)
	assert.True(t, cfg.Pay.DayRate.Equal(payroll.DefaultPayRates().DayRate))
	assert.True(t, cfg.Tax.PersonalAllowance.Equal(payroll.DefaultTaxRates().PersonalAllowance))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("PAY_RATE_EVENING", "4000")
	t.Setenv("TAX_RATE_1", "not-a-number")
	t.Setenv("RECONCILE_INTERVAL", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Pay.EveningRate.String())
	assert.True(t, cfg.Tax.TaxRate1.Equal(payroll.DefaultTaxRates().TaxRate1))
	assert.Equal(t, time.Duration(0), cfg.Reconcile)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("CACHE_TTL", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "CACHE_TTL")
}

func TestConfig_Validate(t *testing.T) {
	base := func() Config {
		return Config{
			Store: StoreConfig{Type: StoreMemory},
			JWT:   JWTConfig{Secret: "s", AccessExpiration: "1h"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "memory ok", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: "JWT_SECRET_KEY"},
		{name: "bad expiration", mutate: func(c *Config) { c.JWT.AccessExpiration = "12" }, wantErr: "JWT_ACCESS_EXPIRATION_TIME"},
		{name: "postgres needs password", mutate: func(c *Config) { c.Store.Type = StorePostgres }, wantErr: "DB_PASSWORD"},
		{name: "postgres ok", mutate: func(c *Config) { c.Store.Type = StorePostgres; c.Database.Password = "pw" }},
		{name: "sheets needs id", mutate: func(c *Config) { c.Store.Type = StoreSheets }, wantErr: "SHEETS_SPREADSHEET_ID"},
		{name: "sheets needs credentials", mutate: func(c *Config) {
			c.Store.Type = StoreSheets
			c.Sheets.SpreadsheetID = "abc"
		}, wantErr: "SHEETS_CREDENTIALS"},
		{name: "sheets ok", mutate: func(c *Config) {
			c.Store.Type = StoreSheets
			c.Sheets.SpreadsheetID = "abc"
			c.Sheets.CredentialsJSON = "{}"
		}},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Type = "excel" }, wantErr: "unknown STORE_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_DatabaseURL(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5433, Name: "launa", SSLMode: "require"}}
	assert.Equal(t, "postgres://u:p@db:5433/launa?sslmode=require", cfg.DatabaseURL())
}

func TestConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{App: AppConfig{LogLevel: "debug"}}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{App: AppConfig{LogLevel: "loud"}}).SlogLevel())
}
