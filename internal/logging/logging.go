package logging

import (
	"go.uber.org/zap"
)

// New создаёт SugaredLogger: в режиме дебага — development-конфиг zap, иначе production.
// Возвращаемую функцию нужно вызвать перед выходом, чтобы сбросить буфер.
func New(debug bool) (*zap.SugaredLogger, func()) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}

	sugar := logger.Sugar()
	// сброс буфера логгера
	return sugar, func() {
		if err := logger.Sync(); err != nil {
			sugar.Debugw("Failed to sync logger", "error", err)
		}
	}
}
