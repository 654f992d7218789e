package main

import (
	"SpeechStudio/internal/adapter/web"
	"SpeechStudio/internal/ai"
	"SpeechStudio/internal/config"
	"SpeechStudio/internal/logging"
	"SpeechStudio/internal/service/audio"
	"SpeechStudio/internal/service/tts/openai"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Веб-интерфейс генератора речи: форма ввода, прослушивание и скачивание mp3.
func main() {
	cfg := config.NewConfig()
	logger, sync := logging.New(cfg.DebugMode)
	defer sync()

	if err := cfg.Validate(); err != nil {
		logger.Errorw("Invalid configuration", "error", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Проверяем ключ заранее; неудача не фатальна, синтез вернёт свою ошибку
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client := ai.NewClient(cfg.Speech)
	if models, err := ai.NewModelsClient(&client).SpeechModels(checkCtx); err != nil {
		logger.Warnw("OpenAI key check failed", "error", err)
	} else {
		logger.Infow("OpenAI key check passed", "ttsModels", models)
	}
	cancel()

	synth := openai.New(cfg.Speech, logger)

	cleaner := audio.NewCleaner(logger)
	go cleaner.Run(ctx, cfg.Speech.OutputDir, cfg.AudioTTL, cfg.AudioCleanInterval)

	srv := &http.Server{
		Addr:              cfg.Server.BindAddr,
		Handler:           web.New(synth, cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Infow("Starting server", "addr", "http://"+srv.Addr+"/", "audioDir", cfg.Speech.OutputDir, "debug", cfg.DebugMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("Server error", "error", err)
			stop()
		}
	}()

	// Graceful shutdown on Ctrl+C / SIGTERM
	<-ctx.Done()

	shutdownCtx, cancelShutdown := context.WithTimeoutCause(context.Background(), 5*time.Second, errors.New("shutdown timeout"))
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("Graceful shutdown error", "error", err)
		_ = srv.Close()
	}
	logger.Infow("Server stopped")
}
