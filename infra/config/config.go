package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultInstance        = "https://mastodon.social"
	defaultRefreshPageSize = 50
	defaultOlderPageSize   = 100
	defaultRequestTimeout  = 15 * time.Second
)

// Config holds application-level configuration.
type Config struct {
	InstanceURL     string        `mapstructure:"instance"`   // e.g. "https://mastodon.social"
	Token           string        `mapstructure:"token"`      // Inline access token, wins over TokenPath
	TokenPath       string        `mapstructure:"token-file"` // Path to file containing the access token
	Hashtag         string        `mapstructure:"hashtag"`    // Follow a hashtag instead of the home timeline
	RefreshPageSize int           `mapstructure:"refresh-page-size"`
	OlderPageSize   int           `mapstructure:"older-page-size"`
	RequestTimeout  time.Duration `mapstructure:"request-timeout"`
	SnapshotPath    string        `mapstructure:"snapshot-path"` // Where the timeline is kept between runs
	LogFile         string        `mapstructure:"log-file"`      // Empty disables logging
}

// Load reads configuration from the environment and an optional YAML file.
//
//	OPENFEED_INSTANCE            Mastodon instance URL (default: https://mastodon.social)
//	OPENFEED_TOKEN               Access token
//	OPENFEED_TOKEN_FILE          Path to token file (default: ~/.config/openfeed/token)
//	OPENFEED_HASHTAG             Hashtag timeline to follow (default: home timeline)
//	OPENFEED_REFRESH_PAGE_SIZE   Page size for refreshes (default: 50)
//	OPENFEED_OLDER_PAGE_SIZE     Page size for older pages (default: 100)
//	OPENFEED_REQUEST_TIMEOUT     Per-request timeout (default: 15s)
//	OPENFEED_SNAPSHOT_PATH       Timeline snapshot file (default: ~/.config/openfeed/timeline.json)
//	OPENFEED_LOG_FILE            Debug log file (default: none)
//
// configPath overrides the default file location ~/.config/openfeed/config.yml.
// A missing default file is not an error, a missing configPath is.
func Load(configPath string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "openfeed")

	v := viper.New()
	v.SetEnvPrefix("OPENFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("instance", defaultInstance)
	v.SetDefault("token", "")
	v.SetDefault("token-file", filepath.Join(dir, "token"))
	v.SetDefault("hashtag", "")
	v.SetDefault("refresh-page-size", defaultRefreshPageSize)
	v.SetDefault("older-page-size", defaultOlderPageSize)
	v.SetDefault("request-timeout", defaultRequestTimeout)
	v.SetDefault("snapshot-path", filepath.Join(dir, "timeline.json"))
	v.SetDefault("log-file", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(dir, "config.yml"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		// Only the default location may be absent.
		if !missing || configPath != "" {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	instance, err := normalizeInstance(cfg.InstanceURL)
	if err != nil {
		return Config{}, err
	}
	cfg.InstanceURL = instance
	cfg.Hashtag = strings.TrimSpace(strings.TrimPrefix(cfg.Hashtag, "#"))

	if cfg.RefreshPageSize <= 0 {
		return Config{}, fmt.Errorf("invalid refresh-page-size %d: must be positive", cfg.RefreshPageSize)
	}
	if cfg.OlderPageSize <= 0 {
		return Config{}, fmt.Errorf("invalid older-page-size %d: must be positive", cfg.OlderPageSize)
	}
	if cfg.RequestTimeout < 0 {
		return Config{}, fmt.Errorf("invalid request-timeout %s: must not be negative", cfg.RequestTimeout)
	}

	return cfg, nil
}

func normalizeInstance(instance string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(instance))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid instance: must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid instance: only https is allowed")
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}
