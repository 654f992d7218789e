package ai

import (
	"context"
	"slices"
	"strings"

	"github.com/openai/openai-go/v3"
)

// ModelsClient запрашивает список моделей, доступных по ключу.
// Используется как проверка ключа перед запуском и для утилиты cmd/models.
type ModelsClient struct {
	client *openai.Client
}

func NewModelsClient(client *openai.Client) *ModelsClient {
	return &ModelsClient{client: client}
}

// SpeechModels возвращает отсортированные идентификаторы моделей синтеза речи (содержат "tts").
func (c *ModelsClient) SpeechModels(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		if strings.Contains(m.ID, "tts") {
			ids = append(ids, m.ID)
		}
	}
	slices.Sort(ids)
	return ids, nil
}
