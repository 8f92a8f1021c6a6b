package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InstrumentConfig is one registry entry: a known derivatives underlying
// with its exchange expiry convention and contract multiplier.
type InstrumentConfig struct {
	Ticker        string  `yaml:"ticker"`
	Name          string  `yaml:"name"`
	Exchange      string  `yaml:"exchange"`
	ExpiryWeekday int     `yaml:"expiry_weekday"` // 0=Sunday .. 6=Saturday
	LotSize       int     `yaml:"lot_size"`
	TickSize      float64 `yaml:"tick_size"`
}

// CorrectionConfig is one malformed-strike repair rule.
type CorrectionConfig struct {
	Underlying   string `yaml:"underlying"`
	LeadingDigit string `yaml:"leading_digit"`
	MinStrike    int    `yaml:"min_strike"`
	MaxStrike    int    `yaml:"max_strike"`
}

type Config struct {
	Exchange       string             `yaml:"exchange"`
	DefaultLotSize int                `yaml:"default_lot_size"`
	CacheSize      int                `yaml:"cache_size"`
	Instruments    []InstrumentConfig `yaml:"instruments"`
	Corrections    []CorrectionConfig `yaml:"corrections"`
	Kite           struct {
		Enabled   bool     `yaml:"enabled"`
		Exchanges []string `yaml:"exchanges"`
	} `yaml:"kite"`
	Sync struct {
		Enabled        bool `yaml:"enabled"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
	} `yaml:"sync"`
}

func (c *Config) Validate() error {
	if len(c.Instruments) == 0 {
		return errors.New("instruments cannot be empty")
	}
	for _, inst := range c.Instruments {
		if inst.Ticker == "" {
			return errors.New("instrument ticker cannot be empty")
		}
		if inst.ExpiryWeekday < 0 || inst.ExpiryWeekday > 6 {
			return fmt.Errorf("instrument %s: expiry_weekday must be 0-6, got %d", inst.Ticker, inst.ExpiryWeekday)
		}
		if inst.LotSize <= 0 {
			return fmt.Errorf("instrument %s: lot_size must be positive, got %d", inst.Ticker, inst.LotSize)
		}
	}
	for _, cr := range c.Corrections {
		if cr.Underlying == "" {
			return errors.New("correction underlying cannot be empty")
		}
		if len(cr.LeadingDigit) != 1 || cr.LeadingDigit[0] < '0' || cr.LeadingDigit[0] > '9' {
			return fmt.Errorf("correction %s: leading_digit must be a single digit, got %q", cr.Underlying, cr.LeadingDigit)
		}
		if cr.MinStrike <= 0 || cr.MaxStrike <= cr.MinStrike {
			return fmt.Errorf("correction %s: invalid strike range [%d, %d]", cr.Underlying, cr.MinStrike, cr.MaxStrike)
		}
	}
	if c.DefaultLotSize <= 0 {
		return fmt.Errorf("default_lot_size must be positive, got %d", c.DefaultLotSize)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// DefaultConfig returns the built-in registry and correction rules, used
// when no config file is supplied.
func DefaultConfig() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

func applyDefaults(c *Config) {
	if c.Exchange == "" {
		c.Exchange = "NSE"
	}
	if c.DefaultLotSize == 0 {
		c.DefaultLotSize = 1
	}
	if c.CacheSize == 0 {
		c.CacheSize = 4096
	}
	if len(c.Instruments) == 0 {
		c.Instruments = DefaultInstruments()
	}
	if len(c.Corrections) == 0 {
		c.Corrections = DefaultCorrections()
	}
	if len(c.Kite.Exchanges) == 0 {
		c.Kite.Exchanges = []string{"NFO"}
	}
	if c.Sync.TimeoutSeconds == 0 {
		c.Sync.TimeoutSeconds = 20
	}
}

// DefaultInstruments is the built-in underlying table. Index and commodity
// underlyings carry different expiry weekdays; the decoder never assumes a
// global expiry day. New entries sharing a prefix with an existing ticker
// are safe in any order, the registry sorts longest-first itself.
func DefaultInstruments() []InstrumentConfig {
	return []InstrumentConfig{
		{Ticker: "NIFTY", Name: "Nifty 50", Exchange: "NFO", ExpiryWeekday: 4, LotSize: 75, TickSize: 0.05},
		{Ticker: "NIFTYNXT50", Name: "Nifty Next 50", Exchange: "NFO", ExpiryWeekday: 5, LotSize: 25, TickSize: 0.05},
		{Ticker: "BANKNIFTY", Name: "Nifty Bank", Exchange: "NFO", ExpiryWeekday: 3, LotSize: 35, TickSize: 0.05},
		{Ticker: "FINNIFTY", Name: "Nifty Financial Services", Exchange: "NFO", ExpiryWeekday: 2, LotSize: 65, TickSize: 0.05},
		{Ticker: "MIDCPNIFTY", Name: "Nifty Midcap Select", Exchange: "NFO", ExpiryWeekday: 1, LotSize: 140, TickSize: 0.05},
		{Ticker: "SENSEX", Name: "BSE Sensex", Exchange: "BFO", ExpiryWeekday: 5, LotSize: 20, TickSize: 0.05},
		{Ticker: "BANKEX", Name: "BSE Bankex", Exchange: "BFO", ExpiryWeekday: 1, LotSize: 30, TickSize: 0.05},
		{Ticker: "CRUDEOIL", Name: "Crude Oil", Exchange: "MCX", ExpiryWeekday: 1, LotSize: 100, TickSize: 1},
		{Ticker: "CRUDEOILM", Name: "Crude Oil Mini", Exchange: "MCX", ExpiryWeekday: 1, LotSize: 10, TickSize: 1},
		{Ticker: "NATURALGAS", Name: "Natural Gas", Exchange: "MCX", ExpiryWeekday: 2, LotSize: 1250, TickSize: 0.1},
		{Ticker: "GOLD", Name: "Gold", Exchange: "MCX", ExpiryWeekday: 5, LotSize: 100, TickSize: 1},
		{Ticker: "GOLDM", Name: "Gold Mini", Exchange: "MCX", ExpiryWeekday: 5, LotSize: 10, TickSize: 1},
		{Ticker: "SILVER", Name: "Silver", Exchange: "MCX", ExpiryWeekday: 5, LotSize: 30, TickSize: 1},
		{Ticker: "COPPER", Name: "Copper", Exchange: "MCX", ExpiryWeekday: 5, LotSize: 2500, TickSize: 0.05},
	}
}

// DefaultCorrections covers the two index underlyings for which malformed
// six-digit strike segments have been observed in imported data.
func DefaultCorrections() []CorrectionConfig {
	return []CorrectionConfig{
		{Underlying: "NIFTY", LeadingDigit: "2", MinStrike: 18000, MaxStrike: 32000},
		{Underlying: "SENSEX", LeadingDigit: "6", MinStrike: 55000, MaxStrike: 95000},
	}
}
