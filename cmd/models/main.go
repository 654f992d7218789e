package main

import (
	"SpeechStudio/internal/ai"
	"SpeechStudio/internal/config"
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// Небольшая утилита: проверяет ключ OpenAI и печатает модели синтеза речи, доступные по нему.
func main() {
	cfg := config.NewConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeoutCause(context.Background(), 15*time.Second, errors.New("openai models request timeout"))
	defer cancel()

	client := ai.NewClient(cfg.Speech)
	models, err := ai.NewModelsClient(&client).SpeechModels(ctx)
	if err != nil {
		fmt.Println("не удалось получить список моделей OpenAI:", err)
		os.Exit(1)
	}
	if len(models) == 0 {
		fmt.Println("по этому ключу не доступно ни одной TTS-модели")
		return
	}
	for _, m := range models {
		fmt.Println(m)
	}
}
