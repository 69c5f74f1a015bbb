package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// CountryFeeOverride is a processor fee override for one country.
// Fee is a percentage (1.4 = 1.4%), Fixed is in major currency units.
type CountryFeeOverride struct {
	Country string  `mapstructure:"country"`
	Fee     float64 `mapstructure:"fee"`
	Fixed   float64 `mapstructure:"fixed"`
}

type FeeOverrides struct {
	Overrides []CountryFeeOverride `mapstructure:"overrides"`
}

// FeeOverridesHolder serves the country fee override file with hot reload.
// Overrides found here take precedence over the stripe_country_fees table.
type FeeOverridesHolder struct {
	current atomic.Value // holds map[string]CountryFeeOverride
}

func NewFeeOverridesHolder() (*FeeOverridesHolder, error) {
	v := viper.New()

	v.SetConfigName("fees")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/coachpay/config")
	v.AddConfigPath("/etc/coachpay")
	v.AddConfigPath(".")

	holder := &FeeOverridesHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(map[string]CountryFeeOverride{})
		return holder, nil
	}

	var cfg FeeOverrides
	if err := v.UnmarshalKey("fees", &cfg); err != nil {
		return nil, err
	}
	holder.current.Store(indexOverrides(cfg))

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated FeeOverrides
		if err := v.UnmarshalKey("fees", &updated); err != nil {
			log.Printf("[fee-config] reload failed: %v", err)
			return
		}
		holder.current.Store(indexOverrides(updated))
		log.Printf("[fee-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// Lookup returns the override for a two-letter country code, if any.
func (h *FeeOverridesHolder) Lookup(countryCode string) (CountryFeeOverride, bool) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return CountryFeeOverride{}, false
	}
	index := h.current.Load().(map[string]CountryFeeOverride)
	override, ok := index[code]
	return override, ok
}

// Store replaces the override index. Used by tests and admin tooling.
func (h *FeeOverridesHolder) Store(overrides []CountryFeeOverride) {
	h.current.Store(indexOverrides(FeeOverrides{Overrides: overrides}))
}

func (o CountryFeeOverride) FeeDecimal() decimal.Decimal {
	return decimal.NewFromFloat(o.Fee)
}

func (o CountryFeeOverride) FixedDecimal() decimal.Decimal {
	return decimal.NewFromFloat(o.Fixed)
}

func indexOverrides(cfg FeeOverrides) map[string]CountryFeeOverride {
	index := make(map[string]CountryFeeOverride, len(cfg.Overrides))
	for _, override := range cfg.Overrides {
		code := strings.ToUpper(strings.TrimSpace(override.Country))
		if code == "" {
			continue
		}
		index[code] = override
	}
	return index
}
