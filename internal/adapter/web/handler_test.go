package web

import (
	"SpeechStudio/internal/config"
	"SpeechStudio/internal/service/tts"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const artifactName = "speech_0123456789abcdef0123456789abcdef.mp3"

type fakeSynth struct {
	calls []tts.Request
	art   *tts.Artifact
	err   error
}

func (f *fakeSynth) Synthesize(_ context.Context, req tts.Request) (*tts.Artifact, error) {
	f.calls = append(f.calls, req)
	return f.art, f.err
}

func newTestHandler(t *testing.T, synth tts.Synthesizer) (*Handler, string) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Speech.OutputDir = t.TempDir()
	return New(synth, cfg, zaptest.NewLogger(t).Sugar()), cfg.Speech.OutputDir
}

func postForm(h http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	h, _ := newTestHandler(t, &fakeSynth{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "The quick brown fox jumped over the lazy dog.")
	assert.Contains(t, body, `<option value="tts-1-hd">`)
	assert.Contains(t, body, `<option value="alloy" selected>`)
	assert.Contains(t, body, `<option value="shimmer">`)
}

func TestGenerateSuccess(t *testing.T) {
	synth := &fakeSynth{art: &tts.Artifact{ID: "0123456789abcdef0123456789abcdef", Name: artifactName, Size: 4}}
	h, _ := newTestHandler(t, synth)

	rec := postForm(h, url.Values{"prompt": {"Hello world"}, "model": {"tts-1-hd"}, "voice": {"nova"}})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, synth.calls, 1)
	assert.Equal(t, "Hello world", synth.calls[0].Text())
	assert.Equal(t, tts.ModelHighQuality, synth.calls[0].Model())
	assert.Equal(t, tts.VoiceNova, synth.calls[0].Voice())

	body := rec.Body.String()
	assert.Contains(t, body, "Audio generated successfully!")
	assert.Contains(t, body, `src="/audio/`+artifactName+`"`)
	assert.Contains(t, body, "Download MP3")
}

func TestGenerateBlankPrompt(t *testing.T) {
	synth := &fakeSynth{}
	h, _ := newTestHandler(t, synth)

	rec := postForm(h, url.Values{"prompt": {"   "}, "model": {"tts-1"}, "voice": {"alloy"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a valid prompt.")
	assert.Empty(t, synth.calls)
}

func TestGenerateNonAudioResponse(t *testing.T) {
	synth := &fakeSynth{err: &tts.SynthesisError{
		Kind:        tts.KindUnexpectedContentType,
		Status:      http.StatusOK,
		ContentType: "application/json",
		Detail:      `{"error":"invalid voice"}`,
	}}
	h, _ := newTestHandler(t, synth)

	rec := postForm(h, url.Values{"prompt": {"Hello world"}, "model": {"tts-1"}, "voice": {"robot"}})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "The response is not in MP3 format.")
	// html/template экранирует кавычки
	assert.Contains(t, body, "{&#34;error&#34;:&#34;invalid voice&#34;}")
	assert.NotContains(t, body, "Audio generated successfully!")
}

func TestGenerateTransportError(t *testing.T) {
	synth := &fakeSynth{err: &tts.SynthesisError{Kind: tts.KindTransport, Err: context.DeadlineExceeded}}
	h, _ := newTestHandler(t, synth)

	rec := postForm(h, url.Values{"prompt": {"Hello world"}})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to generate audio.")
	assert.Contains(t, rec.Body.String(), context.DeadlineExceeded.Error())
	require.Len(t, synth.calls, 1)
	assert.Equal(t, tts.ModelFast, synth.calls[0].Model())
	assert.Equal(t, tts.VoiceAlloy, synth.calls[0].Voice())
}

func TestAudioDownload(t *testing.T) {
	h, dir := newTestHandler(t, &fakeSynth{})
	data := []byte("\xFF\xFB\x90\x64")
	require.NoError(t, os.WriteFile(filepath.Join(dir, artifactName), data, 0o644))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audio/"+artifactName+"?download=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="`+artifactName+`"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, data, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audio/"+artifactName, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestAudioRejectsUnknownNames(t *testing.T) {
	h, dir := newTestHandler(t, &fakeSynth{})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("x"), 0o644))

	for _, name := range []string{"secret.txt", artifactName, "speech_zz.mp3"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/audio/"+name, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, name)
	}
}
