package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/common"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/llm"
)

// LoadLLMConfig loads insight provider configuration from Viper, falling
// back to the provider's conventional environment variable for the API key.
func LoadLLMConfig() (llm.Config, error) {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		BaseURL:     viper.GetString("llm.base_url"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}

	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}

	if cfg.APIKey == "" {
		switch cfg.Provider {
		case "openai":
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	if cfg.APIKey == "" {
		return llm.Config{}, fmt.Errorf("no API key configured for LLM provider %s: %w", cfg.Provider, common.ErrMissingConfig)
	}

	return cfg, nil
}
