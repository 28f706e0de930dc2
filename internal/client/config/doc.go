// Package config loads runtime configuration for the linkkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with LINKKEEPER_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the shortener API
//	-s string   path of the local state database
//	-l string   log level (debug, info, warn, error)
//	-k string   developer API key sent as ?apiKey=
//	-p int      links per page
//
// Environment
//
//	LINKKEEPER_API_URL, LINKKEEPER_IDENTITY_PATH, LINKKEEPER_SHORT_DOMAIN,
//	LINKKEEPER_STATE_PATH, LINKKEEPER_API_KEY, LINKKEEPER_LOG_LEVEL,
//	LINKKEEPER_PAGE_SIZE, LINKKEEPER_ERROR_DISPLAY, LINKKEEPER_REQUEST_TIMEOUT,
//	LINKKEEPER_REQUESTS_PER_SECOND
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "5s" or integer
// nanoseconds. Keys that are absent keep their previous value:
//
//	{
//	  "api_url": "https://api.example.com/v1",
//	  "identity_path": "/auth/users/me",
//	  "short_domain": "sa.died.pw",
//	  "state_path": "linkkeeper.db",
//	  "page_size": 10,
//	  "error_display": "5s",
//	  "request_timeout": "0s",
//	  "requests_per_second": 0,
//	  "log_level": "warn"
//	}
//
// Primary API
//
//   - type Config                       runtime settings
//   - func LoadConfig() *Config         defaults, JSON, env, then flags from os.Args
//   - func Load(args []string) *Config  same over explicit arguments
//   - func (*Config) Validate() error   rejects settings the client cannot use
package config
