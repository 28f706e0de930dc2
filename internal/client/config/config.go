package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"
)

// Config holds runtime settings for the linkkeeper CLI.
//
// Units: ErrorDisplay and RequestTimeout are time.Duration values; a zero
// RequestTimeout means requests are never cut short by the client.
type Config struct {
	APIURL            string        `env:"API_URL"`
	IdentityPath      string        `env:"IDENTITY_PATH"`
	ShortDomain       string        `env:"SHORT_DOMAIN"`
	StatePath         string        `env:"STATE_PATH"`
	APIKey            string        `env:"API_KEY"`
	LogLevel          string        `env:"LOG_LEVEL"`
	PageSize          int           `env:"PAGE_SIZE"`
	ErrorDisplay      time.Duration `env:"ERROR_DISPLAY"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT"`
	RequestsPerSecond float64       `env:"REQUESTS_PER_SECOND"`
}

// ShortDomains lists the short-link hosts the service answers on.
var ShortDomains = []string{"sa.died.pw", "sa.ix.tc"}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "https://api.saifabdelrazek.com/v1"
	c.IdentityPath = "/auth/users/me"
	c.ShortDomain = ShortDomains[0]
	c.StatePath = "linkkeeper.db"
	c.APIKey = ""
	c.LogLevel = "warn"
	c.PageSize = 10
	c.ErrorDisplay = 5 * time.Second
	c.RequestTimeout = 0
	c.RequestsPerSecond = 0
}

// LoadConfig constructs a Config from the process arguments and environment:
// defaults, then JSON (if present), then environment, then flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api url %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api url %q: missing host", c.APIURL)
	}
	if !strings.HasPrefix(c.IdentityPath, "/") {
		return fmt.Errorf("identity path %q must start with '/'", c.IdentityPath)
	}
	if !slices.Contains(ShortDomains, c.ShortDomain) {
		return fmt.Errorf("short domain %q: must be one of %s", c.ShortDomain, strings.Join(ShortDomains, ", "))
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.ErrorDisplay <= 0 {
		return fmt.Errorf("error display must be positive, got %s", c.ErrorDisplay)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative, got %v", c.RequestsPerSecond)
	}
	return nil
}
