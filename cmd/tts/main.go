package main

import (
	"SpeechStudio/internal/config"
	"SpeechStudio/internal/logging"
	"SpeechStudio/internal/service/tts"
	"SpeechStudio/internal/service/tts/openai"
	"SpeechStudio/internal/service/tts/player"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Утилита: синтезирует речь через OpenAI TTS, сохраняет mp3 в каталог AUDIO_DIR и печатает путь.
// С -play сразу проигрывает результат.
func main() {
	var (
		text string
		play bool
	)
	flag.StringVar(&text, "text", "The quick brown fox jumped over the lazy dog.", "текст для синтеза речи")
	flag.BoolVar(&play, "play", false, "воспроизвести результат после сохранения")

	cfg := config.NewConfig()
	logger, sync := logging.New(cfg.DebugMode)

	err := run(cfg, logger, text, play)
	sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		if tts.KindOf(err) == tts.KindUnexpectedContentType {
			fmt.Fprintln(os.Stderr, "Response details:", tts.DetailOf(err))
		}
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.SugaredLogger, text string, play bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	req, err := tts.NewRequest(text, tts.Model(cfg.Speech.Model), tts.Voice(cfg.Speech.Voice))
	if err != nil {
		return errors.New("please enter a valid prompt")
	}

	ctx := context.Background()
	if cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, cfg.RequestTimeout, errors.New("tts request timeout"))
		defer cancel()
	}

	client := openai.New(cfg.Speech, logger)
	art, err := client.Synthesize(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Готово. Аудио сохранено в: %s\n", art.Path)

	if play {
		if err := player.NewWithVolume(cfg.Player.VolumeDB).Play(art); err != nil {
			return fmt.Errorf("playback: %w", err)
		}
		fmt.Println("Воспроизведение завершено.")
	}
	return nil
}
