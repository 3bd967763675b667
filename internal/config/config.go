package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/launa-backend-go/internal/domain/payroll"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSheets   = "sheets"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Sheets    SheetsConfig
	Cache     CacheConfig
	JWT       JWTConfig
	Pay       payroll.PayRates
	Tax       payroll.TaxRates
	Reconcile time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	CORSOrigins []string
}

// StoreConfig selects the record store backend
type StoreConfig struct {
	Type string
	// MemoryEmployees seeds the memory backend, "code:Name,code:Name".
	MemoryEmployees string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string
}

type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	config.Store = StoreConfig{
		Type:            strings.ToLower(getEnv("STORE_TYPE", StoreMemory)),
		MemoryEmployees: getEnv("MEMORY_EMPLOYEES", ""),
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "launa"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Sheets = SheetsConfig{
		SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		CredentialsJSON: getEnv("SHEETS_CREDENTIALS_JSON", ""),
		CredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
	}

	cacheTTL, err := getEnvDuration("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	config.Cache = CacheConfig{
		RedisURL: getEnv("REDIS_URL", ""),
		TTL:      cacheTTL,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	pay := payroll.DefaultPayRates()
	config.Pay = payroll.PayRates{
		DayRate:       getEnvDecimal("PAY_RATE_DAY", pay.DayRate),
		EveningRate:   getEnvDecimal("PAY_RATE_EVENING", pay.EveningRate),
		OffsetHours:   getEnvDecimal("PAY_OFFSET_HOURS", pay.OffsetHours),
		DeductionRate: getEnvDecimal("PAY_DEDUCTION_RATE", pay.DeductionRate),
	}

	tax := payroll.DefaultTaxRates()
	config.Tax = payroll.TaxRates{
		PensionRate:       getEnvDecimal("TAX_PENSION_RATE", tax.PensionRate),
		UnionRate:         getEnvDecimal("TAX_UNION_RATE", tax.UnionRate),
		TaxRate1:          getEnvDecimal("TAX_RATE_1", tax.TaxRate1),
		PersonalAllowance: getEnvDecimal("TAX_PERSONAL_ALLOWANCE", tax.PersonalAllowance),
	}

	config.Reconcile, err = getEnvDuration("RECONCILE_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	switch c.Store.Type {
	case StoreMemory:
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreSheets:
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("SHEETS_SPREADSHEET_ID is required")
		}
		if c.Sheets.CredentialsJSON == "" && c.Sheets.CredentialsFile == "" {
			return fmt.Errorf("SHEETS_CREDENTIALS_JSON or SHEETS_CREDENTIALS_FILE is required")
		}
	default:
		return fmt.Errorf("unknown STORE_TYPE %q", c.Store.Type)
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SheetsCredentials returns the service account key, reading the file if no inline JSON is set.
func (c *Config) SheetsCredentials() ([]byte, error) {
	if c.Sheets.CredentialsJSON != "" {
		return []byte(c.Sheets.CredentialsJSON), nil
	}
	data, err := os.ReadFile(c.Sheets.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read SHEETS_CREDENTIALS_FILE: %w", err)
	}
	return data, nil
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	if value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getEnvDecimal keeps the default when the variable is unset or not a number.
func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		slog.Warn("Ignoring invalid decimal setting", "key", key, "value", value)
		return fallback
	}
	return d
}
