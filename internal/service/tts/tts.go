package tts

import (
	"context"
	"strings"
)

// Model модель синтеза.
type Model string

const (
	ModelFast        Model = "tts-1"
	ModelHighQuality Model = "tts-1-hd"
)

// Voice голос синтеза.
type Voice string

const (
	VoiceAlloy   Voice = "alloy"
	VoiceEcho    Voice = "echo"
	VoiceFable   Voice = "fable"
	VoiceOnyx    Voice = "onyx"
	VoiceNova    Voice = "nova"
	VoiceShimmer Voice = "shimmer"
)

// Models возвращает поддерживаемые модели в порядке показа пользователю.
func Models() []Model { return []Model{ModelFast, ModelHighQuality} }

// Voices возвращает поддерживаемые голоса в порядке показа пользователю.
func Voices() []Voice {
	return []Voice{VoiceAlloy, VoiceEcho, VoiceFable, VoiceOnyx, VoiceNova, VoiceShimmer}
}

// Request — неизменяемый запрос на синтез. Поля доступны только на чтение.
type Request struct {
	text  string
	model Model
	voice Voice
}

// NewRequest проверяет текст и собирает запрос. Это проверка на стороне вызывающего:
// сам синтезатор пустой текст не отсекает. Модель и голос не проверяются — неизвестное
// значение уйдёт в API и вернётся его ошибкой.
func NewRequest(text string, model Model, voice Voice) (Request, error) {
	if strings.TrimSpace(text) == "" {
		return Request{}, &SynthesisError{Kind: KindInvalidInput, Detail: "empty prompt"}
	}
	return Request{text: text, model: model, voice: voice}, nil
}

func (r Request) Text() string { return r.text }
func (r Request) Model() Model { return r.model }
func (r Request) Voice() Voice { return r.voice }

// Artifact — mp3, сохранённый после успешного синтеза. Не изменяется и не удаляется синтезатором.
type Artifact struct {
	ID   string // 32 hex-символа, случайный 128-битный токен
	Name string // speech_<ID>.mp3
	Path string // полный путь в каталоге вывода
	Size int64  // размер в байтах, всегда > 0
}

// Synthesizer превращает запрос в сохранённый на диске mp3.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*Artifact, error)
}
