package sphincsplus

import (
	"errors"
	"fmt"
	goLog "log"
)

// Kind of failure reported by an Error.
type ErrorKind uint8

const (
	// Unsupported instance name or inconsistent parameters.
	ErrParameter ErrorKind = iota + 1

	// A signature (or one of its components) has the wrong length.
	ErrMalformedSignature

	// An encoded key has the wrong length.
	ErrMalformedKey

	// A WOTS+ chain was asked to run past its end.
	ErrChainRange

	// The random source failed.
	ErrRandomness
)

func (kind ErrorKind) String() string {
	switch kind {
	case ErrParameter:
		return "parameter error"
	case ErrMalformedSignature:
		return "malformed signature"
	case ErrMalformedKey:
		return "malformed key"
	case ErrChainRange:
		return "chain range error"
	case ErrRandomness:
		return "randomness error"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(kind))
}

type Error interface {
	error
	Kind() ErrorKind // What went wrong
	Inner() error    // Returns the wrapped error, if any
}

type errorImpl struct {
	msg   string
	kind  ErrorKind
	inner error
}

func (err *errorImpl) Kind() ErrorKind { return err.kind }
func (err *errorImpl) Inner() error    { return err.inner }
func (err *errorImpl) Unwrap() error   { return err.inner }

func (err *errorImpl) Error() string {
	if err.inner != nil {
		return fmt.Sprintf("%s: %s: %s", err.kind, err.msg, err.inner.Error())
	}
	return fmt.Sprintf("%s: %s", err.kind, err.msg)
}

// Formats a new Error
func errorf(kind ErrorKind, format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...), kind: kind}
}

// Formats a new Error that wraps another
func wrapErrorf(err error, kind ErrorKind, format string,
	a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...), kind: kind, inner: err}
}

// Returns whether err is (or wraps) an Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind() == kind
}

type Logger interface {
	Logf(format string, a ...interface{})
}

type dummyLogger struct{}
type stdlibLogger struct{}

func (logger *dummyLogger) Logf(format string, a ...interface{}) {}

func (logger *stdlibLogger) Logf(format string, a ...interface{}) {
	goLog.Printf(format, a...)
}

var log Logger = &dummyLogger{}

// Enables logging to log package.  For more flexibility, see SetLogger()
// and SetZapLogger().
func EnableLogging() {
	SetLogger(&stdlibLogger{})
}

// Enables logging.  Disable logging by passing nil.
//
// Use EnableLogging if you want to log to the log package.
func SetLogger(logger Logger) {
	if logger == nil {
		log = &dummyLogger{}
		return
	}
	log = logger
}
