package web

import (
	"SpeechStudio/internal/config"
	"SpeechStudio/internal/service/audio"
	"SpeechStudio/internal/service/tts"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

const defaultPrompt = "The quick brown fox jumped over the lazy dog."

// Handler — веб-интерфейс: форма ввода, вызов синтезатора, прослушивание и скачивание mp3.
type Handler struct {
	synth   tts.Synthesizer
	dir     string
	model   tts.Model
	voice   tts.Voice
	timeout time.Duration
	logger  *zap.SugaredLogger
	mux     *http.ServeMux
}

func New(synth tts.Synthesizer, cfg *config.Config, logger *zap.SugaredLogger) *Handler {
	h := &Handler{
		synth:   synth,
		dir:     cfg.Speech.OutputDir,
		model:   tts.Model(cfg.Speech.Model),
		voice:   tts.Voice(cfg.Speech.Voice),
		timeout: cfg.RequestTimeout,
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /{$}", h.handleIndex)
	h.mux.HandleFunc("POST /generate", h.handleGenerate)
	h.mux.HandleFunc("GET /audio/{name}", h.handleAudio)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type pageData struct {
	Prompt   string
	Models   []tts.Model
	Voices   []tts.Voice
	Model    tts.Model
	Voice    tts.Voice
	Warning  string
	Error    string
	Detail   string
	Artifact *tts.Artifact
}

func (h *Handler) newPage(prompt string, model tts.Model, voice tts.Voice) pageData {
	return pageData{Prompt: prompt, Models: tts.Models(), Voices: tts.Voices(), Model: model, Voice: voice}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.newPage(defaultPrompt, h.model, h.voice))
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	prompt := r.PostFormValue("prompt")
	model := tts.Model(r.PostFormValue("model"))
	voice := tts.Voice(r.PostFormValue("voice"))
	if model == "" {
		model = h.model
	}
	if voice == "" {
		voice = h.voice
	}
	page := h.newPage(prompt, model, voice)

	req, err := tts.NewRequest(prompt, model, voice)
	if err != nil {
		page.Warning = "Please enter a valid prompt."
		h.render(w, http.StatusUnprocessableEntity, page)
		return
	}

	// Таймаут накладываем здесь: сам синтезатор таймаутов не ставит
	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, h.timeout, errors.New("tts request timeout"))
		defer cancel()
	}

	art, err := h.synth.Synthesize(ctx, req)
	if err != nil {
		h.logger.Warnw("Синтез не удался", "kind", tts.KindOf(err).String(), "error", err)
		if tts.KindOf(err) == tts.KindUnexpectedContentType {
			page.Error = "The response is not in MP3 format."
		} else {
			page.Error = "Failed to generate audio."
		}
		page.Detail = tts.DetailOf(err)
		h.render(w, http.StatusBadGateway, page)
		return
	}

	page.Artifact = art
	h.render(w, http.StatusOK, page)
}

func (h *Handler) handleAudio(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !audio.IsArtifactName(name) {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(filepath.Join(h.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		h.logger.Errorw("Не удалось открыть аудиофайл", "name", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	}
	http.ServeContent(w, r, name, fi.ModTime(), f)
}

func (h *Handler) render(w http.ResponseWriter, status int, page pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, page); err != nil {
		h.logger.Errorw("Не удалось отрисовать страницу", "error", err)
	}
}
