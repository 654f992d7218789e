package openai

import (
	"SpeechStudio/internal/config"
	"SpeechStudio/internal/service/tts"
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// Размер куска при записи аудиопотока в файл.
	chunkSize = 8192
	// Сколько байт текстового ответа сохраняем как диагностику.
	maxDetailBytes = 64 << 10
)

// Client реализует синтез речи через OpenAI /v1/audio/speech и сохраняет mp3 в каталог вывода.
type Client struct {
	http     *http.Client
	cfg      config.SpeechConfig
	logger   *zap.SugaredLogger
	newToken func() string
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient задаёт HTTP-клиент. По умолчанию http.DefaultClient: без ретраев и таймаутов,
// таймаут вызывающий задаёт через ctx.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenGenerator подменяет генератор идентификаторов файлов.
func WithTokenGenerator(fn func() string) Option {
	return func(c *Client) { c.newToken = fn }
}

func New(cfg config.SpeechConfig, logger *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{http: http.DefaultClient, cfg: cfg, logger: logger, newToken: NewToken}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop().Sugar()
	}
	return c
}

// NewToken возвращает случайный 128-битный токен в виде 32 hex-символов (uuid v4 без дефисов).
func NewToken() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// FileName возвращает имя файла артефакта для токена.
func FileName(token string) string { return "speech_" + token + ".mp3" }

type requestPayload struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

// Synthesize выполняет один запрос к API и сохраняет аудио в новый файл с уникальным именем.
// Ретраев нет: ошибка одного запроса возвращается как есть, тип — в *tts.SynthesisError.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) (*tts.Artifact, error) {
	body, err := json.Marshal(&requestPayload{
		Model: string(req.Model()),
		Voice: string(req.Voice()),
		Input: req.Text(),
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &tts.SynthesisError{Kind: tts.KindTransport, Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debugw("OpenAI TTS request", "model", req.Model(), "voice", req.Voice(), "chars", len([]rune(req.Text())))

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warnw("OpenAI TTS request failed", "error", err)
		return nil, &tts.SynthesisError{Kind: tts.KindTransport, Err: err}
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio") {
		// Не аудио: в теле текст с описанием ошибки от API
		b, readErr := io.ReadAll(io.LimitReader(resp.Body, maxDetailBytes))
		c.logger.Warnw("OpenAI TTS returned non-audio response",
			"status", resp.StatusCode, "contentType", contentType, "body", string(b))
		return nil, &tts.SynthesisError{
			Kind:        tts.KindUnexpectedContentType,
			Status:      resp.StatusCode,
			ContentType: contentType,
			Detail:      string(b),
			Err:         readErr,
		}
	}

	art, err := c.save(resp.Body)
	if err != nil {
		c.logger.Warnw("OpenAI TTS audio was not saved", "error", err)
		return nil, err
	}
	c.logger.Infow("OpenAI TTS synthesize completed",
		"path", art.Path, "bytes", art.Size, "took", time.Since(started).String())
	return art, nil
}

// save пишет поток в speech_<token>.mp3 кусками по chunkSize.
// При любой ошибке после создания файла недописанный файл удаляется.
func (c *Client) save(r io.Reader) (art *tts.Artifact, err error) {
	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		return nil, &tts.SynthesisError{Kind: tts.KindStorage, Err: err}
	}

	token := c.newToken()
	name := FileName(token)
	path := filepath.Join(c.cfg.OutputDir, name)

	// O_EXCL: существующий артефакт никогда не перезаписывается
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, &tts.SynthesisError{Kind: tts.KindStorage, Err: err}
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(path)
		}
	}()

	buf := make([]byte, chunkSize)
	var written int64
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				return nil, &tts.SynthesisError{Kind: tts.KindStorage, Err: werr}
			}
			written += int64(n)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, &tts.SynthesisError{Kind: tts.KindStreamInterrupted, Detail: "audio stream interrupted", Err: readErr}
		}
	}
	if written == 0 {
		return nil, &tts.SynthesisError{Kind: tts.KindStreamInterrupted, Detail: "empty audio stream"}
	}

	if cerr := f.Close(); cerr != nil {
		return nil, &tts.SynthesisError{Kind: tts.KindStorage, Err: cerr}
	}

	return &tts.Artifact{ID: token, Name: name, Path: path, Size: written}, nil
}
