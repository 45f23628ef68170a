// The config package loads and validates the variables in the enviroment into a [Config]
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/vertex-lab/socnet/pkg/analytics"

	_ "github.com/joho/godotenv/autoload" // autoloading .env
	"github.com/nbd-wtf/go-nostr"
)

const (
	SourceFile   = "file"
	SourceRedis  = "redis"
	SourceSQLite = "sqlite"
	SourceRelays = "relays"
)

var sources = []string{SourceFile, SourceRedis, SourceSQLite, SourceRelays}

// SourceConfig describes where the follow relationships are loaded from.
type SourceConfig struct {
	Source       string        `envconfig:"SOURCE"`
	FollowsFile  string        `envconfig:"FOLLOWS_FILE"`
	RedisAddress string        `envconfig:"REDIS_ADDRESS"`
	SQLiteURL    string        `envconfig:"SQLITE_URL"`
	Relays       []string      `envconfig:"RELAYS"`
	Authors      []string      `envconfig:"AUTHORS"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT"`
}

func NewSourceConfig() SourceConfig {
	return SourceConfig{
		Source:       SourceFile,
		FollowsFile:  "follows.txt",
		RedisAddress: "localhost:6379",
		SQLiteURL:    "events.sqlite",
		Relays: []string{
			"wss://purplepag.es",
			"wss://relay.damus.io",
			"wss://relay.primal.net",
			"wss://relay.nostr.band",
		},
		FetchTimeout: 15 * time.Second,
	}
}

func (c SourceConfig) Validate() error {
	if !slices.Contains(sources, c.Source) {
		return fmt.Errorf("source %q is not one of %v", c.Source, sources)
	}

	if c.Source == SourceFile && c.FollowsFile == "" {
		return errors.New("follows file cannot be empty")
	}

	for _, relay := range c.Relays {
		if !nostr.IsValidRelayURL(relay) {
			return fmt.Errorf("relay %q is not a valid url", relay)
		}
	}

	if c.Source == SourceRelays && len(c.Authors) == 0 {
		return errors.New("relays source requires at least one author")
	}

	for _, pk := range c.Authors {
		if !nostr.IsValidPublicKey(pk) {
			return fmt.Errorf("authors: %q is not valid hex pubkey", pk)
		}
	}

	if c.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}
	return nil
}

func (c SourceConfig) String() string {
	return fmt.Sprintf("Source:\n"+
		"\tSource: %s\n"+
		"\tFollowsFile: %s\n"+
		"\tRedisAddress: %s\n"+
		"\tSQLiteURL: %s\n"+
		"\tRelays: %v\n"+
		"\tAuthors: %v\n"+
		"\tFetchTimeout: %v\n",
		c.Source, c.FollowsFile, c.RedisAddress, c.SQLiteURL, c.Relays, c.Authors, c.FetchTimeout)
}

type AnalyticsConfig struct {
	// LeaderShare is the minimum fraction of users that must follow a leader.
	LeaderShare float64 `envconfig:"LEADER_SHARE"`

	// CacheSize is the number of users whose distances are kept in memory.
	CacheSize int `envconfig:"CACHE_SIZE"`
}

func NewAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		LeaderShare: analytics.DefaultLeaderShare,
		CacheSize:   1024,
	}
}

func (c AnalyticsConfig) Validate() error {
	if c.LeaderShare <= 0 || c.LeaderShare > 1 {
		return fmt.Errorf("leader share must be in (0,1], got %v", c.LeaderShare)
	}

	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.CacheSize)
	}
	return nil
}

func (c AnalyticsConfig) String() string {
	return fmt.Sprintf("Analytics:\n"+
		"\tLeaderShare: %v\n"+
		"\tCacheSize: %d\n",
		c.LeaderShare, c.CacheSize)
}

// The configuration parameters for loading and analyzing the network
type Config struct {
	Source    SourceConfig
	Analytics AnalyticsConfig
}

// New returns a config with default parameters
func New() Config {
	return Config{
		Source:    NewSourceConfig(),
		Analytics: NewAnalyticsConfig(),
	}
}

func (c Config) Validate() error {
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("Source: %w", err)
	}

	if err := c.Analytics.Validate(); err != nil {
		return fmt.Errorf("Analytics: %w", err)
	}
	return nil
}

func (c Config) String() string {
	return c.Source.String() + c.Analytics.String()
}

// Load creates a new [Config] with default parameters.
// Then, if the corresponding environment variable is set, it overwrites them.
func Load() (Config, error) {
	config := New()

	if err := envconfig.Process("", &config); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	return config, nil
}
