package player

import (
	"SpeechStudio/internal/service/tts"
	"errors"
	"io"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// ErrEmptyPath возвращается, если у артефакта нет пути.
var ErrEmptyPath = errors.New("player: empty artifact path")

// Player воспроизводит сохранённый артефакт.
type Player interface {
	Play(art *tts.Artifact) error
}

// Default проигрывает mp3 через системный вывод звука.
type Default struct{ volumeDB float64 }

// New создаёт плеер без изменения громкости (0 dB).
func New() *Default { return &Default{volumeDB: 0} }

// NewWithVolume создаёт плеер с предустановленной громкостью в dB (отрицательные — тише).
func NewWithVolume(db float64) *Default { return &Default{volumeDB: db} }

// Play блокирует до конца воспроизведения.
func (d *Default) Play(art *tts.Artifact) error {
	if art == nil || art.Path == "" {
		return ErrEmptyPath
	}
	f, err := os.Open(art.Path)
	if err != nil {
		return err
	}
	return playMP3(f, d.volumeDB)
}

func playMP3(r io.ReadCloser, volDB float64) error {
	// StreamSeekCloser закрывает и исходный r
	streamer, format, err := mp3.Decode(r)
	if err != nil {
		_ = r.Close()
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	vol := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   volDB,
		Silent:   false,
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	<-done
	return nil
}
