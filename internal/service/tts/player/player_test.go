package player

import (
	"SpeechStudio/internal/service/tts"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayRejectsMissingArtifact(t *testing.T) {
	p := NewWithVolume(-2)

	assert.ErrorIs(t, p.Play(nil), ErrEmptyPath)
	assert.ErrorIs(t, p.Play(&tts.Artifact{}), ErrEmptyPath)

	err := p.Play(&tts.Artifact{Path: filepath.Join(t.TempDir(), "speech_missing.mp3")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPlayRejectsNonMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speech_0.mp3")
	require.NoError(t, os.WriteFile(path, []byte(`{"error":"invalid voice"}`), 0o644))

	assert.Error(t, New().Play(&tts.Artifact{Path: path}))
}
