package tts

import (
	"errors"
	"fmt"
)

// Kind тип ошибки синтеза.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindTransport
	KindUnexpectedContentType
	KindStreamInterrupted // обрыв после открытия файла; недописанный файл удалён
	KindStorage           // не удалось создать каталог или записать файл
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindTransport:
		return "transport error"
	case KindUnexpectedContentType:
		return "unexpected content type"
	case KindStreamInterrupted:
		return "stream interrupted"
	case KindStorage:
		return "storage error"
	default:
		return "unknown"
	}
}

// SynthesisError ошибка одного запроса синтеза. Не ретраится и не фатальна для процесса.
type SynthesisError struct {
	Kind        Kind
	Status      int    // HTTP-статус, если ответ был получен
	ContentType string // Content-Type ответа, если был получен
	Detail      string // для KindUnexpectedContentType — тело ответа как есть
	Err         error
}

func (e *SynthesisError) Error() string {
	switch {
	case e.Err != nil && e.Detail != "":
		return fmt.Sprintf("tts: %s: %s: %v", e.Kind, e.Detail, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("tts: %s: %v", e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("tts: %s: status=%d, content-type=%q, body=%s", e.Kind, e.Status, e.ContentType, e.Detail)
	default:
		return fmt.Sprintf("tts: %s: %s", e.Kind, e.Detail)
	}
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// KindOf возвращает тип ошибки синтеза или KindUnknown, если err не SynthesisError.
func KindOf(err error) Kind {
	var se *SynthesisError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// DetailOf возвращает диагностическую деталь для показа пользователю.
func DetailOf(err error) string {
	var se *SynthesisError
	if !errors.As(err, &se) {
		return err.Error()
	}
	if se.Detail != "" {
		return se.Detail
	}
	if se.Err != nil {
		return se.Err.Error()
	}
	return se.Kind.String()
}
