// Package config provides configuration management for ragtext
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ragtext/ragtext/pkg/types"
)

// Config is the top-level service configuration
type Config struct {
	// Server settings
	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Port     int    `json:"port" yaml:"port" mapstructure:"port" validate:"gt=0,lte=65535"`
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level" validate:"oneof=debug info warn error"`

	// DataDir is the directory globbed for text sources
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir" validate:"required"`

	// Collection is the vector store collection documents are indexed into
	Collection string `json:"collection" yaml:"collection" mapstructure:"collection" validate:"required"`

	// EmbeddingKind selects dense, sparse, or hybrid vector production
	EmbeddingKind types.EmbeddingKind `json:"embedding_kind" yaml:"embedding_kind" mapstructure:"embedding_kind" validate:"oneof=dense sparse hybrid"`

	// TopK is the default number of search results
	TopK int `json:"top_k" yaml:"top_k" mapstructure:"top_k" validate:"gt=0"`

	OpenAI OpenAIConfig `json:"openai" yaml:"openai" mapstructure:"openai"`
	Ollama OllamaConfig `json:"ollama" yaml:"ollama" mapstructure:"ollama"`
	Qdrant QdrantConfig `json:"qdrant" yaml:"qdrant" mapstructure:"qdrant"`
}

// OpenAIConfig configures the OpenAI embedding and chat backends
type OpenAIConfig struct {
	APIKey         string `json:"api_key" yaml:"api_key" mapstructure:"api_key"`
	BaseURL        string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	EmbeddingModel string `json:"embedding_model" yaml:"embedding_model" mapstructure:"embedding_model"`
	ChatModel      string `json:"chat_model" yaml:"chat_model" mapstructure:"chat_model"`
}

// OllamaConfig configures the local Ollama embedding backend
type OllamaConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Model   string `json:"model" yaml:"model" mapstructure:"model"`
}

// QdrantConfig configures the Qdrant vector store connection
type QdrantConfig struct {
	Host              string        `json:"host" yaml:"host" mapstructure:"host" validate:"required"`
	Port              int           `json:"port" yaml:"port" mapstructure:"port" validate:"gt=0,lte=65535"`
	ConnectionTimeout time.Duration `json:"connection_timeout" yaml:"connection_timeout" mapstructure:"connection_timeout"`
	MaxRetries        int           `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
	RetryInterval     time.Duration `json:"retry_interval" yaml:"retry_interval" mapstructure:"retry_interval"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Host:          "0.0.0.0",
		Port:          8080,
		LogLevel:      "info",
		DataDir:       "data",
		Collection:    "rag_chunks",
		EmbeddingKind: types.EmbeddingKindHybrid,
		TopK:          5,
		OpenAI: OpenAIConfig{
			EmbeddingModel: "text-embedding-3-small",
			ChatModel:      "gpt-4o-mini",
		},
		Ollama: OllamaConfig{
			BaseURL: "http://localhost:11434",
			Model:   "nomic-embed-text",
		},
		Qdrant: QdrantConfig{
			Host:              "localhost",
			Port:              6334,
			ConnectionTimeout: 30 * time.Second,
			MaxRetries:        3,
			RetryInterval:     2 * time.Second,
		},
	}
}

// Load reads configuration from an optional YAML file and the environment.
// Environment variables use the RAGTEXT_ prefix with underscores for nesting
// (e.g. RAGTEXT_QDRANT_HOST).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("RAGTEXT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// register keys so AutomaticEnv can see them even without a file
	for _, key := range []string{
		"host", "port", "log_level", "data_dir", "collection", "embedding_kind", "top_k",
		"openai.api_key", "openai.base_url", "openai.embedding_model", "openai.chat_model",
		"ollama.base_url", "ollama.model",
		"qdrant.host", "qdrant.port", "qdrant.connection_timeout", "qdrant.max_retries", "qdrant.retry_interval",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ToYAMLFile saves the configuration to a YAML file
func (c *Config) ToYAMLFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
