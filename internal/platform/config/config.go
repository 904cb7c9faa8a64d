package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Surcharge percentages applied to work recorded on non-normal days.
	SurchargeSaturdayPct decimal.Decimal
	SurchargeSundayPct   decimal.Decimal
	SurchargeHolidayPct  decimal.Decimal

	// Holidays is the list of company holidays the calendar recognizes.
	Holidays []time.Time

	RateLimitPeriod   time.Duration
	RateLimitRequests int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("SURCHARGE_SATURDAY_PCT", "50")
	viper.SetDefault("SURCHARGE_SUNDAY_PCT", "100")
	viper.SetDefault("SURCHARGE_HOLIDAY_PCT", "100")
	viper.SetDefault("HOLIDAY_DATES", "")
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 300)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	var err error
	if cfg.SurchargeSaturdayPct, err = parsePct("SURCHARGE_SATURDAY_PCT"); err != nil {
		return nil, err
	}
	if cfg.SurchargeSundayPct, err = parsePct("SURCHARGE_SUNDAY_PCT"); err != nil {
		return nil, err
	}
	if cfg.SurchargeHolidayPct, err = parsePct("SURCHARGE_HOLIDAY_PCT"); err != nil {
		return nil, err
	}

	cfg.Holidays, err = parseHolidays(viper.GetString("HOLIDAY_DATES"))
	if err != nil {
		return nil, err
	}

	rateLimitPeriodStr := viper.GetString("RATE_LIMIT_PERIOD")
	cfg.RateLimitPeriod, err = time.ParseDuration(rateLimitPeriodStr)
	if err != nil {
		cfg.RateLimitPeriod = time.Minute
		log.Printf("Warning: Invalid value for RATE_LIMIT_PERIOD ('%s'). Defaulting to %s.\n", rateLimitPeriodStr, cfg.RateLimitPeriod)
	}
	cfg.RateLimitRequests = viper.GetInt64("RATE_LIMIT_REQUESTS")
	if cfg.RateLimitRequests <= 0 {
		cfg.RateLimitRequests = 300
	}

	return cfg, nil
}

// SurchargePolicy builds the day type to percentage mapping used by the work
// ledger. NORMAL days carry no surcharge.
func (c *Config) SurchargePolicy() domain.SurchargePolicy {
	return domain.SurchargePolicy{
		domain.DayNormal:   decimal.Zero,
		domain.DaySaturday: c.SurchargeSaturdayPct,
		domain.DaySunday:   c.SurchargeSundayPct,
		domain.DayHoliday:  c.SurchargeHolidayPct,
	}
}

func parsePct(key string) (decimal.Decimal, error) {
	raw := viper.GetString(key)
	pct, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid value for %s: %q", key, raw)
	}
	if pct.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative: %q", key, raw)
	}
	return pct, nil
}

// parseHolidays parses a comma separated list of YYYY-MM-DD dates.
func parseHolidays(raw string) ([]time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	holidays := make([]time.Time, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := time.Parse("2006-01-02", part)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date in HOLIDAY_DATES: %q", part)
		}
		holidays = append(holidays, day)
	}
	return holidays, nil
}
