package config

import (
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	DebugMode      bool          `env:"DEBUG_MODE"`          // Режим дебага: development-логгер, подробные логи
	RequestTimeout time.Duration `env:"TTS_REQUEST_TIMEOUT"` // Таймаут одного запроса синтеза, накладывается вызывающей стороной

	Speech SpeechConfig // Параметры обращения к OpenAI TTS
	Player PlayerConfig // Воспроизведение в CLI
	Server ServerConfig // Веб-интерфейс

	// Очистка старых аудиофайлов. Ядро синтеза файлы не удаляет, этим занимается только сервер.
	AudioTTL           time.Duration `env:"AUDIO_TTL"`            // 0 — не удалять
	AudioCleanInterval time.Duration `env:"AUDIO_CLEAN_INTERVAL"` // Периодичность проверки
}

// SpeechConfig конфигурация синтеза речи через OpenAI /v1/audio/speech.
type SpeechConfig struct {
	APIKey    string `env:"OPENAI_API_KEY"`      // Bearer-токен. Только из .env/ENV/флага, после загрузки не меняется
	Endpoint  string `env:"OPENAI_TTS_ENDPOINT"` // Полный URL эндпоинта синтеза
	BaseURL   string `env:"OPENAI_BASE_URL"`     // База REST API для клиента SDK (список моделей)
	OutputDir string `env:"AUDIO_DIR"`           // Каталог для mp3, создаётся при первом использовании
	Model     string `env:"TTS_MODEL"`           // tts-1|tts-1-hd
	Voice     string `env:"TTS_VOICE"`           // alloy|echo|fable|onyx|nova|shimmer
}

// PlayerConfig настройки локального плеера.
type PlayerConfig struct {
	VolumeDB float64 `env:"PLAYER_VOLUME_DB"` // Громкость в dB, отрицательные — тише
}

// ServerConfig настройки HTTP-сервера веб-интерфейса.
type ServerConfig struct {
	BindAddr string `env:"SERVER_BIND_ADDR"` // Адрес слушателя, напр. 127.0.0.1:8501
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:      false,
		RequestTimeout: 60 * time.Second,
		Speech: SpeechConfig{
			APIKey:    "", // ключ берём из .env/ENV, если пусто — Validate вернёт ошибку
			Endpoint:  "https://api.openai.com/v1/audio/speech",
			BaseURL:   "https://api.openai.com/v1/",
			OutputDir: "audio_files",
			Model:     "tts-1",
			Voice:     "alloy",
		},
		Server: ServerConfig{
			BindAddr: "127.0.0.1:8501",
		},
		AudioTTL:           0,
		AudioCleanInterval: 10 * time.Minute,
	}
}

// NewConfig загружает конфигурацию приложения из .env, окружения и флагов командной строки.
// Собственные флаги утилиты нужно объявить в flag.CommandLine до вызова.
func NewConfig() *Config {
	cfg, err := Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load регистрирует флаги конфигурации в fs и разбирает args.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	_ = godotenv.Load()

	// Стартуем с дефолтов, затем перекрываем .env/окружением и флагами
	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "таймаут одного запроса синтеза, напр. 60s")
	// OpenAI TTS
	fs.StringVar(&cfg.Speech.APIKey, "openai-api-key", cfg.Speech.APIKey, "API ключ OpenAI (перекрывает ENV)")
	fs.StringVar(&cfg.Speech.Endpoint, "tts-endpoint", cfg.Speech.Endpoint, "URL эндпоинта синтеза речи")
	fs.StringVar(&cfg.Speech.BaseURL, "openai-base-url", cfg.Speech.BaseURL, "базовый URL REST API OpenAI")
	fs.StringVar(&cfg.Speech.OutputDir, "audio-dir", cfg.Speech.OutputDir, "каталог для сгенерированных mp3")
	fs.StringVar(&cfg.Speech.Model, "model", cfg.Speech.Model, "модель синтеза: tts-1|tts-1-hd")
	fs.StringVar(&cfg.Speech.Voice, "voice", cfg.Speech.Voice, "голос: alloy|echo|fable|onyx|nova|shimmer")
	// Плеер
	fs.Float64Var(&cfg.Player.VolumeDB, "player-volume-db", cfg.Player.VolumeDB, "громкость воспроизведения в dB")
	// Сервер и очистка
	fs.StringVar(&cfg.Server.BindAddr, "server-bind-addr", cfg.Server.BindAddr, "адрес веб-интерфейса (напр. 127.0.0.1:8501)")
	fs.DurationVar(&cfg.AudioTTL, "audio-ttl", cfg.AudioTTL, "время жизни mp3 в каталоге, 0 — не удалять")
	fs.DurationVar(&cfg.AudioCleanInterval, "audio-clean-interval", cfg.AudioCleanInterval, "периодичность очистки каталога")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Speech.APIKey = strings.TrimSpace(cfg.Speech.APIKey)
	return cfg, nil
}

// Validate проверяет, что конфигурации хватает для обращения к API.
func (c *Config) Validate() error {
	if c.Speech.APIKey == "" {
		return errors.New("config: OPENAI_API_KEY is not set; use .env/ENV or -openai-api-key")
	}
	if strings.TrimSpace(c.Speech.Endpoint) == "" {
		return errors.New("config: empty tts endpoint")
	}
	if strings.TrimSpace(c.Speech.OutputDir) == "" {
		return errors.New("config: empty audio dir")
	}
	return nil
}
