package model

import "time"

// Config holds the complete application configuration.
// Scoring functions never read it directly: the thresholds are passed into
// them as explicit parameters so they stay pure and reentrant.
type Config struct {
	Detection   DetectionConfig   `yaml:"detection" mapstructure:"detection"`
	Wiki        WikiConfig        `yaml:"wiki" mapstructure:"wiki"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Proxy       ProxyConfig       `yaml:"proxy" mapstructure:"proxy"`
}

// DetectionConfig holds the scoring thresholds
type DetectionConfig struct {
	SupportThreshold    float64 `yaml:"support_threshold" mapstructure:"support_threshold"`       // Min similarity for a claim to count as supported
	ConfidenceThreshold float64 `yaml:"confidence_threshold" mapstructure:"confidence_threshold"` // Min risk for the hallucinated flag
}

// WikiConfig controls the Wikipedia evidence source
type WikiConfig struct {
	Language     string        `yaml:"language" mapstructure:"language"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxChars     int           `yaml:"max_chars" mapstructure:"max_chars"`           // Max evidence characters kept per page
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"` // Max response bytes to read
	RatePerSec   float64       `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`     // Per-domain request rate
	Burst        int           `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig controls evidence caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir" mapstructure:"dir"` // Disk cache directory; empty for memory-only
}

// ConcurrencyConfig controls worker counts
type ConcurrencyConfig struct {
	VerifyWorkers int `yaml:"verify_workers" mapstructure:"verify_workers"`
	BatchWorkers  int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// ServerConfig controls the REST API server
type ServerConfig struct {
	Host      string `yaml:"host" mapstructure:"host"`
	Port      int    `yaml:"port" mapstructure:"port"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`       // Empty disables auth
	RateLimit int    `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests per minute per client IP; <= 0 disables
}

// LLMConfig controls the optional LLM summary provider
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama; empty disables
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ProxyConfig holds outbound proxy settings
type ProxyConfig struct {
	HTTP  string `yaml:"http" mapstructure:"http"`
	HTTPS string `yaml:"https" mapstructure:"https"`
	No    string `yaml:"no" mapstructure:"no"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			SupportThreshold:    0.45,
			ConfidenceThreshold: 0.5,
		},
		Wiki: WikiConfig{
			Language:     "en",
			UserAgent:    "HallucinationGuard/0.1 (+https://github.com/chumarjamil/hallucination-guard)",
			Timeout:      10 * time.Second,
			MaxChars:     2000,
			MaxBodyBytes: 1_000_000,
			RatePerSec:   5,
			Burst:        5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			VerifyWorkers: 8,
			BatchWorkers:  4,
		},
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8000,
			RateLimit: 60,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 500,
		},
	}
}
