// Package config loads pipeline configuration from the environment.
//
// All keys are optional and default to the values the published calendar has
// always used. A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ffcal/internal/event"
)

// Environment keys.
const (
	EnvZone         = "FF_IANA_TZ"
	EnvCurrencies   = "FF_CURR_KEEP"
	EnvImpacts      = "FF_IMPACT_KEEP"
	EnvMonthHorizon = "FF_MONTH_HORIZON"
	EnvCalTitle     = "FF_CAL_TITLE"
	EnvEventMinutes = "FF_EVENT_MIN"
	EnvOutputDir    = "FF_OUTPUT_DIR"
)

// Defaults.
const (
	DefaultZone         = "Asia/Bangkok"
	DefaultCurrencies   = "USD"
	DefaultImpacts      = "LOW,MEDIUM,HIGH"
	DefaultMonthHorizon = 1
	DefaultCalTitle     = "Economic Calendar"
	DefaultEventMinutes = 30
	DefaultOutputDir    = "public"
)

// Config holds the validated run configuration.
type Config struct {
	ZoneName      string
	Zone          *time.Location
	Currencies    map[string]bool
	Impacts       map[event.Impact]bool
	MonthHorizon  int
	CalendarTitle string
	EventDuration time.Duration
	OutputDir     string
}

// Load reads configuration from an optional .env file and the environment,
// applies defaults, and validates the result.
func Load() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := &Config{
		ZoneName:      getenv(EnvZone, DefaultZone),
		CalendarTitle: getenv(EnvCalTitle, DefaultCalTitle),
		OutputDir:     getenv(EnvOutputDir, DefaultOutputDir),
	}

	zone, err := time.LoadLocation(cfg.ZoneName)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.ZoneName, err)
	}
	cfg.Zone = zone

	cfg.Currencies, err = parseCurrencies(getenv(EnvCurrencies, DefaultCurrencies))
	if err != nil {
		return nil, err
	}

	cfg.Impacts, err = parseImpacts(getenv(EnvImpacts, DefaultImpacts))
	if err != nil {
		return nil, err
	}

	cfg.MonthHorizon, err = parseHorizon(getenv(EnvMonthHorizon, ""))
	if err != nil {
		return nil, err
	}

	minutes, err := parseMinutes(getenv(EnvEventMinutes, ""))
	if err != nil {
		return nil, err
	}
	cfg.EventDuration = time.Duration(minutes) * time.Minute

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseCurrencies(raw string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, c := range strings.Split(raw, ",") {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if len(c) != 3 {
			return nil, fmt.Errorf("invalid currency code %q: must be 3 letters", c)
		}
		out[c] = true
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("currency allow-list is empty")
	}
	return out, nil
}

func parseImpacts(raw string) (map[event.Impact]bool, error) {
	out := make(map[event.Impact]bool)
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		imp := event.Impact(s)
		// UNKNOWN always passes filtering and is not configurable.
		if !imp.Valid() || imp == event.ImpactUnknown {
			return nil, fmt.Errorf("invalid impact %q: must be LOW, MEDIUM or HIGH", s)
		}
		out[imp] = true
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("impact allow-list is empty")
	}
	return out, nil
}

func parseHorizon(raw string) (int, error) {
	if raw == "" {
		return DefaultMonthHorizon, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", EnvMonthHorizon, raw)
	}
	return n, nil
}

func parseMinutes(raw string) (int, error) {
	if raw == "" {
		return DefaultEventMinutes, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", EnvEventMinutes, raw)
	}
	return n, nil
}

// AllowCurrency reports whether the currency passes the allow-list.
func (c *Config) AllowCurrency(currency string) bool {
	return c.Currencies[strings.ToUpper(currency)]
}

// AllowImpact reports whether the impact passes the allow-list. UNKNOWN
// always passes: an event the source didn't classify is never dropped for it.
func (c *Config) AllowImpact(imp event.Impact) bool {
	if imp == event.ImpactUnknown {
		return true
	}
	return c.Impacts[imp]
}
