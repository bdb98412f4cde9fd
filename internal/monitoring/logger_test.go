package monitoring

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	// Save original logger
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")

	if !called {
		t.Error("Custom logger was not called")
	}

	// Setting nil installs a no-op
	called = false
	SetLogger(nil)
	Logf("test message")
	if called {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestSetWarnLogger(t *testing.T) {
	original := Warnf
	defer func() { Warnf = original }()

	var got string
	SetWarnLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Warnf("Parameter %s not in json!", "fwhm_Qbb")

	if got != "Parameter fwhm_Qbb not in json!" {
		t.Errorf("unexpected warning %q", got)
	}
}

func TestMute(t *testing.T) {
	origLog, origWarn := Logf, Warnf
	defer func() { Logf, Warnf = origLog, origWarn }()

	var calls int
	SetLogger(func(string, ...interface{}) { calls++ })
	SetWarnLogger(func(string, ...interface{}) { calls++ })

	restore := Mute()
	Logf("hidden")
	Warnf("hidden")
	if calls != 0 {
		t.Errorf("expected muted loggers, got %d calls", calls)
	}

	restore()
	Logf("visible")
	Warnf("visible")
	if calls != 2 {
		t.Errorf("expected restored loggers, got %d calls", calls)
	}
}

func TestUseZap(t *testing.T) {
	origLog, origWarn := Logf, Warnf
	defer func() { Logf, Warnf = origLog, origWarn }()

	core, logs := observer.New(zap.InfoLevel)
	UseZap(zap.New(core))

	Logf("total mass: %.1f", 163.9)
	Warnf("%s missing dl field", "V06643A")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Message != "total mass: 163.9" || entries[0].Level != zap.InfoLevel {
		t.Errorf("unexpected info entry %+v", entries[0])
	}
	if entries[1].Message != "V06643A missing dl field" || entries[1].Level != zap.WarnLevel {
		t.Errorf("unexpected warn entry %+v", entries[1])
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil || Warnf == nil {
		t.Fatal("loggers should not be nil by default")
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logf panicked: %v", r)
		}
	}()

	Logf("test message: %s", "value")
}

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		l, err := NewLogger(verbose)
		if err != nil {
			t.Fatalf("NewLogger(%v) failed: %v", verbose, err)
		}
		if got := l.Core().Enabled(zap.DebugLevel); got != verbose {
			t.Errorf("NewLogger(%v) debug enabled = %v", verbose, got)
		}
	}
}
