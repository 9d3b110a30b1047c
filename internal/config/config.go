// Package config loads and validates the application configuration.
// Precedence, high to low: CLI flags (bound by the caller), environment
// variables (COOPMATCH_ prefix), the YAML config file, built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Weights is the weight vector for the matcher's composite fit score.
type Weights struct {
	KeywordMatch       float64 `mapstructure:"keyword_match"`
	SemanticCoverage   float64 `mapstructure:"semantic_coverage"`
	SemanticStrength   float64 `mapstructure:"semantic_strength"`
	SeniorityAlignment float64 `mapstructure:"seniority_alignment"`
}

// LLMConfig selects and configures the cover-letter/compensation LLM backend.
type LLMConfig struct {
	Provider string `mapstructure:"provider"` // "groq" or "gemini"
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
}

// TelegramConfig configures the optional streaming notifier.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
	Enabled  bool   `mapstructure:"enabled"`
}

// Config is the single struct every option from the operator-facing
// settings surface is bound into.
type Config struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	TopK                int     `mapstructure:"top_k"`
	Weights             Weights `mapstructure:"weights"`

	MinMatchScore     float64 `mapstructure:"min_match_score"`
	AutoSaveThreshold float64 `mapstructure:"auto_save_threshold"`

	PreferredLocations []string `mapstructure:"preferred_locations"`
	KeywordsToMatch     []string `mapstructure:"keywords_to_match"`
	CompaniesToAvoid    []string `mapstructure:"companies_to_avoid"`

	PortalFolder          string `mapstructure:"portal_folder"`
	ScrapeCheckpointEvery int    `mapstructure:"scrape_checkpoint_every"`

	EmbeddingModelID     string `mapstructure:"embedding_model_id"`
	TechLexiconPath      string `mapstructure:"tech_lexicon_path"`
	NoiseSkipPhrasesPath string `mapstructure:"noise_skip_phrases_path"`

	ResumePath string `mapstructure:"resume_path"`
	DBPath     string `mapstructure:"db_path"`

	LLM      LLMConfig      `mapstructure:"llm"`
	Telegram TelegramConfig `mapstructure:"telegram"`

	PortalBaseURL     string `mapstructure:"portal_base_url"`
	PortalUsername    string `mapstructure:"portal_username"`
	PortalPassword    string `mapstructure:"portal_password"`
	PortalHeadless    bool   `mapstructure:"portal_headless"`
	PortalCookiesPath string `mapstructure:"portal_cookies_path"`

	Debug bool `mapstructure:"debug"`
	JSON  bool `mapstructure:"json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("similarity_threshold", 0.30)
	v.SetDefault("top_k", 8)
	v.SetDefault("weights.keyword_match", 0.35)
	v.SetDefault("weights.semantic_coverage", 0.40)
	v.SetDefault("weights.semantic_strength", 0.10)
	v.SetDefault("weights.seniority_alignment", 0.15)
	v.SetDefault("min_match_score", 0.0)
	v.SetDefault("auto_save_threshold", 70.0)
	v.SetDefault("portal_folder", "coopmatch")
	v.SetDefault("scrape_checkpoint_every", 5)
	v.SetDefault("embedding_model_id", "hash384-v1")
	v.SetDefault("resume_path", "input/resume.pdf")
	v.SetDefault("db_path", "coopmatch.db")
	v.SetDefault("llm.provider", "groq")
	v.SetDefault("portal_headless", true)
}

// Load reads configuration from the given YAML path (if non-empty; a
// missing file is an error), environment variables, and a local .env
// file, then validates the result.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("COOPMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate enforces invariants that defaults alone cannot guarantee.
func (c *Config) Validate() error {
	if c.SimilarityThreshold < -1 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in [-1,1], got %v", c.SimilarityThreshold)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	sum := c.Weights.KeywordMatch + c.Weights.SemanticCoverage + c.Weights.SemanticStrength + c.Weights.SeniorityAlignment
	if sum <= 0 {
		return fmt.Errorf("weights must sum to a positive value, got %v", sum)
	}
	if c.ScrapeCheckpointEvery <= 0 {
		return fmt.Errorf("scrape_checkpoint_every must be positive, got %d", c.ScrapeCheckpointEvery)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	return nil
}
