// Package config holds runtime configuration for the URL builders and
// the CLI.  All fields have safe defaults so callers can start with
// Default() and override only what they need.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/urlpix/urlpix/core"
	"github.com/urlpix/urlpix/hooks"
)

// SignerConfig configures URL signing for the slash dialects.
type SignerConfig struct {
	Algorithm string `mapstructure:"algorithm"` // "sha1", "sha256", "sha512"
	Key       string `mapstructure:"key"`
	Truncate  int    `mapstructure:"truncate"` // 0 = full digest
	Unsafe    bool   `mapstructure:"unsafe"`
}

// Signer builds a core.Signer from this configuration.
func (s SignerConfig) Signer() (*core.Signer, error) {
	if s.Unsafe {
		return core.UnsafeSigner(), nil
	}
	signer, err := core.NewSigner(core.Algorithm(s.Algorithm), s.Key)
	if err != nil {
		return nil, err
	}
	if s.Truncate > 0 {
		signer = signer.WithTruncate(s.Truncate)
	}
	return signer, nil
}

// Config is the top-level configuration struct.
type Config struct {
	// Base URLs per dialect.
	ImagorBase  string `mapstructure:"imagor_base"`
	ThumborBase string `mapstructure:"thumbor_base"`
	WsrvBase    string `mapstructure:"wsrv_base"`

	// Signing applies to the imagor and thumbor dialects; wsrv never signs.
	Signer SignerConfig `mapstructure:"signer"`

	// HTTP controls for metadata fetches.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`

	// Logging.
	Log hooks.LogConfig `mapstructure:"log"`
}

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		ImagorBase:  "http://localhost:8000",
		ThumborBase: "http://localhost:8888",
		WsrvBase:    "https://wsrv.nl",
		Signer:      SignerConfig{Algorithm: "sha1", Unsafe: true},
		HTTPTimeout: 10 * time.Second,
		Log:         hooks.LogConfig{Level: "info", MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 28},
	}
}

// Validate returns an error if the configuration is inconsistent.
func Validate(c Config) error {
	if !c.Signer.Unsafe && c.Signer.Key == "" {
		return errors.New("config: Signer.Key is required unless Signer.Unsafe is set")
	}
	switch c.Signer.Algorithm {
	case "", "sha1", "sha256", "sha512":
	default:
		return errors.New("config: Signer.Algorithm must be sha1, sha256 or sha512")
	}
	if c.Signer.Truncate < 0 {
		return errors.New("config: Signer.Truncate must be non-negative")
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("config: HTTPTimeout must be positive")
	}
	return nil
}

// Load reads configuration from the given file (optional), environment
// variables prefixed with URLPIX_, and the defaults, in ascending
// priority order.
func Load(path string) (Config, error) {
	v := viper.New()
	cfg := Default()

	v.SetDefault("imagor_base", cfg.ImagorBase)
	v.SetDefault("thumbor_base", cfg.ThumborBase)
	v.SetDefault("wsrv_base", cfg.WsrvBase)
	v.SetDefault("signer.algorithm", cfg.Signer.Algorithm)
	v.SetDefault("signer.unsafe", cfg.Signer.Unsafe)
	v.SetDefault("http_timeout", cfg.HTTPTimeout)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
	v.SetDefault("log.max_age_days", cfg.Log.MaxAgeDays)

	v.SetEnvPrefix("URLPIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
