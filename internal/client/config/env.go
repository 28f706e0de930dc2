package config

import (
	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by parseEnv.
const EnvPrefix = "LINKKEEPER_"

// parseEnv overlays Config with LINKKEEPER_* variables. Unset variables leave
// the current value alone. Panics on malformed values, like parseFlags.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
