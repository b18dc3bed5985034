package commands

import (
	"errors"
	"os"
	"time"

	"employeedir/internal/dummyapi"
	"employeedir/lib/configutil"

	"golang.org/x/time/rate"
)

type RateLimitConfig struct {
	PerSecond float64 `json:"per_second"`
	Burst     int     `json:"burst"`
}

type Config struct {
	BaseUrl          string          `json:"base_url"`
	TimeoutSeconds   int             `json:"timeout_seconds"`
	UserAgent        string          `json:"user_agent"`
	CloudflareBypass bool            `json:"cloudflare_bypass"`
	RateLimit        RateLimitConfig `json:"rate_limit"`
	HttpDumpDir      string          `json:"http_dump_dir"`
	ListenPort       int             `json:"listen_port"`
}

var defaultConfig = Config{
	BaseUrl:        dummyapi.DefaultBaseUrl,
	TimeoutSeconds: 30,
	HttpDumpDir:    ".dev/http",
	ListenPort:     8080,
}

// loadConfig reads employeedir.json5 (searching up from the cwd), a missing
// file means the defaults are used as is.
func loadConfig() (Config, error) {
	cfg, err := configutil.ReadRecursively[Config]("employeedir.json5")
	if errors.Is(err, os.ErrNotExist) {
		return defaultConfig, nil
	}
	if err != nil {
		return Config{}, err
	}
	return configutil.WithDefaults(cfg, defaultConfig)
}

func (c Config) clientOptions() dummyapi.ClientOptions {
	return dummyapi.ClientOptions{
		BaseUrl:          c.BaseUrl,
		Timeout:          time.Duration(c.TimeoutSeconds) * time.Second,
		UserAgent:        c.UserAgent,
		CloudflareBypass: c.CloudflareBypass,
		RateLimit:        rate.Limit(c.RateLimit.PerSecond),
		Burst:            c.RateLimit.Burst,
	}
}
