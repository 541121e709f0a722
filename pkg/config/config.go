// ABOUTME: Configuration management for the digest pipeline
// ABOUTME: YAML files for sources and interests, environment variables for the rest

package config

import (
	"os"
	"strconv"

	coreerrors "newsdigest/core/errors"
)

// Defaults preserved from the tuned values of the scoring pipeline.
// They are configurable but deliberately not re-derived.
const (
	DefaultFreshnessHours  = 24
	DefaultMaxPerFeed      = 50
	DefaultMinScore        = 6.0
	DefaultDedupeThreshold = 85
	DefaultBodyCap         = 1500
)

// Config holds all application configuration
type Config struct {
	// Sources contains the topic to feed mapping and fetch settings
	Sources SourcesConfig

	// Interests contains the weighted interest profile
	Interests InterestsConfig

	// Ollama contains model backend configuration
	Ollama OllamaConfig

	// Scoring contains filter and scoring stage settings
	Scoring ScoringConfig

	// Email contains SMTP delivery configuration
	Email EmailConfig

	// Cache contains feed cache backend configuration
	Cache CacheConfig
}

// TopicFeeds is one topic with its ordered feed URLs.
type TopicFeeds struct {
	Name string
	URLs []string
}

// SourcesConfig holds the feed source configuration.
// Topics preserve the order they appear in the sources file; fetch output
// ordering depends on it.
type SourcesConfig struct {
	Topics             []TopicFeeds
	FreshnessHours     int
	MaxArticlesPerFeed int
}

// TopicNames returns the configured topic keys in file order.
func (s SourcesConfig) TopicNames() []string {
	names := make([]string, 0, len(s.Topics))
	for _, t := range s.Topics {
		names = append(names, t.Name)
	}
	return names
}

// InterestTopic is one weighted interest with its keywords.
type InterestTopic struct {
	Name     string
	Weight   float64
	Keywords []string
}

// InterestsConfig holds the interest profile configuration.
type InterestsConfig struct {
	Topics []InterestTopic
}

// OllamaConfig holds model backend settings.
type OllamaConfig struct {
	// BaseURL is the Ollama server address
	BaseURL string

	// Model is the model name required for scoring
	Model string

	// TimeoutSeconds bounds a single scoring request
	TimeoutSeconds int

	// RequestsPerSecond throttles scoring calls to keep a local
	// instance responsive
	RequestsPerSecond float64
}

// ScoringConfig holds filter and scoring stage settings.
type ScoringConfig struct {
	// MinScore is the filter threshold, overridable from the CLI
	MinScore float64

	// DedupeThreshold is the 0-100 title similarity above which a later
	// article is dropped as a duplicate
	DedupeThreshold int

	// BodyCap is the maximum number of summary characters sent to the model
	BodyCap int

	// FetchFullContent enables readability extraction for articles whose
	// feed summary is shorter than MinSummaryChars
	FetchFullContent bool

	// MinSummaryChars is the summary length below which full content
	// extraction kicks in
	MinSummaryChars int
}

// EmailConfig holds SMTP delivery settings.
type EmailConfig struct {
	// SMTPHost is the mail server hostname
	SMTPHost string

	// SMTPPort is the mail server port
	SMTPPort int

	// User is the sending account
	User string

	// Password is the account app password
	Password string

	// Recipient is the digest destination address
	Recipient string
}

// Configured reports whether delivery credentials are present.
func (e EmailConfig) Configured() bool {
	return e.User != "" && e.Password != "" && e.Recipient != ""
}

// CacheConfig holds feed cache backend configuration.
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// TTLSeconds is how long fetched feed bodies stay cached
	TTLSeconds int
}

// RedisConfig holds Redis-specific configuration.
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// Load reads the sources and interests files and applies environment
// settings for everything else. A missing or malformed sources file is
// fatal; a missing interests file falls back to an empty profile.
func Load(sourcesPath, interestsPath string) (*Config, error) {
	sources, err := LoadSources(sourcesPath)
	if err != nil {
		return nil, err
	}

	interests, err := LoadInterests(interestsPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Sources:   sources,
		Interests: interests,
		Ollama: OllamaConfig{
			BaseURL:           getEnvOrDefault("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:             getEnvOrDefault("OLLAMA_MODEL", "llama3.1:8b"),
			TimeoutSeconds:    getEnvAsIntOrDefault("OLLAMA_TIMEOUT", 60),
			RequestsPerSecond: getEnvAsFloatOrDefault("OLLAMA_REQUESTS_PER_SECOND", 1),
		},
		Scoring: ScoringConfig{
			MinScore:         getEnvAsFloatOrDefault("MIN_SCORE", DefaultMinScore),
			DedupeThreshold:  getEnvAsIntOrDefault("DEDUPE_THRESHOLD", DefaultDedupeThreshold),
			BodyCap:          getEnvAsIntOrDefault("SCORE_BODY_CAP", DefaultBodyCap),
			FetchFullContent: getEnvOrDefault("SCORE_FETCH_FULL_CONTENT", "") == "true",
			MinSummaryChars:  getEnvAsIntOrDefault("SCORE_MIN_SUMMARY_CHARS", 200),
		},
		Email: EmailConfig{
			SMTPHost:  getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:  getEnvAsIntOrDefault("SMTP_PORT", 587),
			User:      getEnvOrDefault("GMAIL_USER", ""),
			Password:  getEnvOrDefault("GMAIL_APP_PASSWORD", ""),
			Recipient: getEnvOrDefault("EMAIL_RECIPIENT", ""),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			TTLSeconds: getEnvAsIntOrDefault("FEED_CACHE_TTL", 600),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Sources.Topics) == 0 {
		return &coreerrors.ConfigError{Message: "no feed topics configured"}
	}

	for _, topic := range c.Sources.Topics {
		if topic.Name == "" {
			return &coreerrors.ConfigError{Message: "topic with empty name"}
		}
		if len(topic.URLs) == 0 {
			return &coreerrors.ConfigError{Message: "topic " + topic.Name + " has no feeds"}
		}
	}

	if c.Sources.FreshnessHours < 1 {
		return &coreerrors.ConfigError{Message: "freshness_hours must be at least 1"}
	}

	if c.Sources.MaxArticlesPerFeed < 1 {
		return &coreerrors.ConfigError{Message: "max_articles_per_feed must be at least 1"}
	}

	for _, t := range c.Interests.Topics {
		if t.Weight < 0 {
			return &coreerrors.ConfigError{Message: "interest topic " + t.Name + " has negative weight"}
		}
	}

	if c.Scoring.DedupeThreshold < 0 || c.Scoring.DedupeThreshold > 100 {
		return &coreerrors.ConfigError{Message: "dedupe threshold must be in [0, 100]"}
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return &coreerrors.ConfigError{Message: "cache type must be 'redis' or 'memory'"}
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
