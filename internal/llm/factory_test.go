package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "openai provider",
			cfg:  Config{Provider: "openai", APIKey: "sk-test"},
		},
		{
			name: "anthropic provider",
			cfg:  Config{Provider: "anthropic", APIKey: "sk-ant-test"},
		},
		{
			name: "provider is case insensitive",
			cfg:  Config{Provider: "OpenAI", APIKey: "sk-test"},
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "cohere", APIKey: "key"},
			wantErr: "unsupported LLM provider",
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: "API key is required",
		},
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}
