package model

import "time"

// Config holds the full runtime configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Tables TablesConfig `yaml:"tables" mapstructure:"tables"`
	Claims ClaimsConfig `yaml:"claims" mapstructure:"claims"`
}

// StoreConfig configures the remote store client.
type StoreConfig struct {
	// BaseURL of the table service, e.g. https://sheets.example.coop
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Token for the Authorization header. Prefer CLAIMTRACK_STORE_TOKEN.
	Token string `yaml:"token" mapstructure:"token"`

	// Timeout for a single HTTP call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MaxAttempts bounds retries of transient failures per logical call.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`

	// BaseDelay is the first backoff step; it doubles per attempt up to MaxDelay.
	BaseDelay time.Duration `yaml:"base_delay" mapstructure:"base_delay"`
	MaxDelay  time.Duration `yaml:"max_delay" mapstructure:"max_delay"`

	// RequestsPerSecond paces outgoing calls before the remote quota does.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`

	// Cooldown is how long the whole process pauses new calls after the
	// remote store answers with a rate-limit error.
	Cooldown time.Duration `yaml:"cooldown" mapstructure:"cooldown"`
}

// CacheConfig configures the local table cache.
type CacheConfig struct {
	// TTL bounds how stale a table snapshot may be before a read refetches.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// TablesConfig names the two backing tables.
type TablesConfig struct {
	Claims  string `yaml:"claims" mapstructure:"claims"`
	Clients string `yaml:"clients" mapstructure:"clients"`
}

// ClaimsConfig holds claim domain settings.
type ClaimsConfig struct {
	// Timezone used for all stored timestamps.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`

	// RetentionDays is how long resolved claims are kept before purge
	// eligibility. Eligibility is strictly "older than", not "at least".
	RetentionDays int `yaml:"retention_days" mapstructure:"retention_days"`
}

// Sector numbers accepted on claim intake.
const (
	SectorMin = 1
	SectorMax = 17
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Timeout:           30 * time.Second,
			MaxAttempts:       3,
			BaseDelay:         500 * time.Millisecond,
			MaxDelay:          8 * time.Second,
			RequestsPerSecond: 1,
			Burst:             5,
			Cooldown:          60 * time.Second,
		},
		Cache: CacheConfig{
			TTL: 30 * time.Second,
		},
		Tables: TablesConfig{
			Claims:  "reclamos",
			Clients: "clientes",
		},
		Claims: ClaimsConfig{
			Timezone:      "America/Argentina/Buenos_Aires",
			RetentionDays: 30,
		},
	}
}
