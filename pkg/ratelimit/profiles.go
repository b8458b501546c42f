package ratelimit

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Built-in profiles matching the default deployment posture: strict on
// authentication, moderate on the API surface, permissive everywhere else.
var (
	ProfileAuth    = Config{MaxRequests: 5, Window: time.Minute}
	ProfileAPI     = Config{MaxRequests: 20, Window: time.Minute}
	ProfileGeneral = Config{MaxRequests: 60, Window: time.Minute}
)

type routeSettings struct {
	Profile     string `mapstructure:"profile"`
	MaxRequests int    `mapstructure:"max_requests"`
	Window      string `mapstructure:"window"`
}

// ParseSettings turns one route's raw configuration block into a limiter
// Config. A profile name selects a built-in baseline; explicit max_requests
// and window values override it.
func ParseSettings(raw map[string]interface{}) (Config, error) {
	var settings routeSettings
	if err := mapstructure.Decode(raw, &settings); err != nil {
		return Config{}, fmt.Errorf("failed to decode rate limit settings: %w", err)
	}

	cfg := ProfileGeneral
	switch settings.Profile {
	case "", "general":
	case "auth":
		cfg = ProfileAuth
	case "api":
		cfg = ProfileAPI
	default:
		return Config{}, fmt.Errorf("unknown rate limit profile %q", settings.Profile)
	}

	if settings.MaxRequests != 0 {
		cfg.MaxRequests = settings.MaxRequests
	}
	if settings.Window != "" {
		window, err := time.ParseDuration(settings.Window)
		if err != nil {
			return Config{}, fmt.Errorf("invalid rate limit window %q: %w", settings.Window, err)
		}
		cfg.Window = window
	}

	return cfg, nil
}
