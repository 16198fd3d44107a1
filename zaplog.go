package sphincsplus

import (
	"go.uber.org/zap"
)

type zapLogger struct {
	s *zap.SugaredLogger
}

func (logger *zapLogger) Logf(format string, a ...interface{}) {
	logger.s.Debugf(format, a...)
}

// Routes log messages to the given zap logger at debug level.
// Disable logging by passing nil.
func SetZapLogger(logger *zap.Logger) {
	if logger == nil {
		SetLogger(nil)
		return
	}
	SetLogger(&zapLogger{
		s: logger.Named("sphincsplus").Sugar(),
	})
}
