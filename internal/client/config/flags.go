package config

import (
	"flag"

	"github.com/dmitrijs2005/linkkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the shortener API
//	-s string   local state database path
//	-l string   log level
//	-k string   developer API key
//	-p int      links per page
//
// Only these flags are looked at (see flagx.FilterArgs), so -c/-config and
// anything unknown pass through untouched.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-l", "-k", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "base URL of the shortener API")
	fs.StringVar(&cfg.StatePath, "s", cfg.StatePath, "path of the local state database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "developer API key")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "links per page")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
