package ai

import (
	"SpeechStudio/internal/config"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// NewClient создаёт клиента OpenAI SDK с ключом и базовым URL из конфигурации.
// Ретраи отключены: каждый запрос выполняется ровно один раз.
func NewClient(cfg config.SpeechConfig) openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return openai.NewClient(opts...)
}
