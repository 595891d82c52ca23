package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "AI_RADAR_CONFIG"
	opmlPathEnv    = "AI_RADAR_OPML"
	ledgerPathEnv  = "AI_RADAR_LEDGER"
	digestDirEnv   = "AI_RADAR_DIGEST_DIR"
	windowDaysEnv  = "AI_RADAR_WINDOW_DAYS"
	maxItemsEnv    = "AI_RADAR_MAX_ITEMS"
	skipInitialEnv = "AI_RADAR_SKIP_INITIAL"
	logLevelEnv    = "AI_RADAR_LOG_LEVEL"
	databaseDSNEnv = "DATABASE_DSN"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	Digest  DigestConfig  `yaml:"digest"`
	Feeds   FeedsConfig   `yaml:"feeds"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LedgerConfig locates the persisted ledger. A non-empty DSN selects
// the Postgres store instead of the CSV file.
type LedgerConfig struct {
	Path string `yaml:"path"`
	DSN  string `yaml:"dsn"`
}

// DigestConfig bounds the daily report.
type DigestConfig struct {
	Dir         string `yaml:"dir"`
	WindowDays  int    `yaml:"windowDays"`
	MaxItems    int    `yaml:"maxItems"`
	SkipInitial bool   `yaml:"skipInitial"`
}

// FeedsConfig selects the feed-source list: an OPML outline when a path
// is set, explicit sources otherwise, built-in defaults as last resort.
type FeedsConfig struct {
	OPMLPath string         `yaml:"opmlPath"`
	Sources  []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one explicitly configured feed.
type SourceConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Vertical string `yaml:"vertical"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(ledgerPathEnv); v != "" {
		c.Ledger.Path = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Ledger.DSN = v
	}
	if v := os.Getenv(opmlPathEnv); v != "" {
		c.Feeds.OPMLPath = v
	}
	if v := os.Getenv(digestDirEnv); v != "" {
		c.Digest.Dir = v
	}
	if v := os.Getenv(windowDaysEnv); v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			log.Printf("config: invalid %s=%q: %v (ignored)", windowDaysEnv, v, err)
		} else {
			c.Digest.WindowDays = n
		}
	}
	if v := os.Getenv(maxItemsEnv); v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			log.Printf("config: invalid %s=%q: %v (ignored)", maxItemsEnv, v, err)
		} else {
			c.Digest.MaxItems = n
		}
	}
	if v := os.Getenv(skipInitialEnv); v != "" {
		if b, err := strconv.ParseBool(v); err != nil {
			log.Printf("config: invalid %s=%q: %v (ignored)", skipInitialEnv, v, err)
		} else {
			c.Digest.SkipInitial = b
		}
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Ledger.Path != "" {
		base.Ledger.Path = override.Ledger.Path
	}
	if override.Ledger.DSN != "" {
		base.Ledger.DSN = override.Ledger.DSN
	}

	if override.Digest.Dir != "" {
		base.Digest.Dir = override.Digest.Dir
	}
	if override.Digest.WindowDays != 0 {
		base.Digest.WindowDays = override.Digest.WindowDays
	}
	if override.Digest.MaxItems != 0 {
		base.Digest.MaxItems = override.Digest.MaxItems
	}
	if override.Digest.SkipInitial {
		base.Digest.SkipInitial = true
	}

	if override.Feeds.OPMLPath != "" {
		base.Feeds.OPMLPath = override.Feeds.OPMLPath
	}
	if len(override.Feeds.Sources) > 0 {
		base.Feeds.Sources = override.Feeds.Sources
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Ledger:  LedgerConfig{Path: "products.csv"},
		Digest:  DigestConfig{Dir: "digests"},
	}
}
