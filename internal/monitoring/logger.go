package monitoring

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logf is the package-level diagnostic logger for progress and summaries.
// Warnf reports recoverable data problems such as missing metadata fields.
// Both default to a zap console logger but may be replaced by SetLogger,
// SetWarnLogger or UseZap. Tests or production code can redirect or mute them.
var (
	Logf  func(format string, v ...interface{})
	Warnf func(format string, v ...interface{})
)

func init() {
	l, err := NewLogger(false)
	if err != nil {
		l = zap.NewNop()
	}
	UseZap(l)
}

// NewLogger builds the console logger used by the CLI. Verbose enables debug
// output.
func NewLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.DisableStacktrace = true
	config.DisableCaller = !verbose
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return config.Build()
}

// UseZap routes Logf and Warnf through the given zap logger.
func UseZap(l *zap.Logger) {
	s := l.Sugar()
	Logf = s.Infof
	Warnf = s.Warnf
}

// SetLogger replaces the info logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	Logf = orNop(f)
}

// SetWarnLogger replaces the warning logger. Passing nil will set a no-op logger.
func SetWarnLogger(f func(format string, v ...interface{})) {
	Warnf = orNop(f)
}

// Mute silences both loggers and returns a func restoring the previous ones.
func Mute() (restore func()) {
	prevLog, prevWarn := Logf, Warnf
	SetLogger(nil)
	SetWarnLogger(nil)
	return func() {
		Logf, Warnf = prevLog, prevWarn
	}
}

func orNop(f func(format string, v ...interface{})) func(format string, v ...interface{}) {
	if f == nil {
		return func(string, ...interface{}) {}
	}
	return f
}
