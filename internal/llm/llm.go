package llm

import (
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/robelasefa/mafirestaurant/internal/common"
	"github.com/robelasefa/mafirestaurant/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

// NewProvider selects the generation backend from the environment: the
// OpenAI chat-completion API when OPENAI_API_KEY is set, otherwise a
// local echo stub so the service still starts in development.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
			logger.Info("llm: using custom endpoint", "endpoint", endpoint)
			cfg.BaseURL = endpoint
		}
		client := openai.NewClientWithConfig(cfg)
		logger.Info("llm: OpenAI provider selected")
		return providers.NewOpenAIProvider(client)
	}
	logger.Warn("llm: OPENAI_API_KEY not set; falling back to local provider")
	return providers.NewLocalProvider()
}
