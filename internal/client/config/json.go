package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/linkkeeper/internal/flagx"
	"github.com/dmitrijs2005/linkkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell "absent" apart from a zero value so partial files only override what
// they mention.
type JsonConfig struct {
	APIURL            *string         `json:"api_url"`
	IdentityPath      *string         `json:"identity_path"`
	ShortDomain       *string         `json:"short_domain"`
	StatePath         *string         `json:"state_path"`
	APIKey            *string         `json:"api_key"`
	LogLevel          *string         `json:"log_level"`
	PageSize          *int            `json:"page_size"`
	ErrorDisplay      *timex.Duration `json:"error_display"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	RequestsPerSecond *float64        `json:"requests_per_second"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Without either flag it does nothing. Panics on read or unmarshal
// errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIf(&cfg.APIURL, jc.APIURL)
	setIf(&cfg.IdentityPath, jc.IdentityPath)
	setIf(&cfg.ShortDomain, jc.ShortDomain)
	setIf(&cfg.StatePath, jc.StatePath)
	setIf(&cfg.APIKey, jc.APIKey)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.PageSize, jc.PageSize)
	setIf(&cfg.RequestsPerSecond, jc.RequestsPerSecond)
	if jc.ErrorDisplay != nil {
		cfg.ErrorDisplay = jc.ErrorDisplay.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
