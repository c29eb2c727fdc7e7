package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App  AppConfig
	Till TillConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Till.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TILL_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"TILL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TILL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// TillConfig carries the register-level settings. The values are passed
// explicitly into pricing and checkout rather than read from globals.
type TillConfig struct {
	TaxRate        decimal.Decimal `envconfig:"TILL_TAX_RATE" default:"0.08"`
	CurrencySymbol string          `envconfig:"TILL_CURRENCY_SYMBOL" default:"$"`
	CatalogPath    string          `envconfig:"TILL_CATALOG_PATH" default:"products.txt"`
	LedgerPath     string          `envconfig:"TILL_LEDGER_PATH" default:"sales.txt"`
	CategoriesPath string          `envconfig:"TILL_CATEGORIES_PATH" default:"categories.json"`
}

func (t TillConfig) validate() error {
	if t.TaxRate.IsNegative() {
		return fmt.Errorf("tax rate must be non-negative, got %s", t.TaxRate)
	}
	if t.CatalogPath == "" {
		return fmt.Errorf("catalog path is required")
	}
	if t.LedgerPath == "" {
		return fmt.Errorf("ledger path is required")
	}
	return nil
}
