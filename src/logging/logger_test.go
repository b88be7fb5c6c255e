package logging

import (
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	core, logs := observer.New(level)
	defer useCore(core)()
	SetLogLevel("info")

	msg := "[SPX] close=4780.12 delta=+1.5% (100.0% of window) rendered"
	Infof(msg)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	out := entries[0].Message
	if !strings.Contains(out, "(100.0% of window)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "MISSING") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestSetLogLevelFiltersAndIgnoresUnknown(t *testing.T) {
	core, logs := observer.New(level)
	defer useCore(core)()
	defer SetLogLevel("info")

	SetLogLevel("warn")
	Infof("dropped %d", 1)
	Warnf("kept %d", 2)
	SetLogLevel("bogus")
	if GetLogLevel() != zapcore.WarnLevel {
		t.Fatalf("unknown level must not change the level, got %v", GetLogLevel())
	}
	if logs.Len() != 1 || logs.All()[0].Message != "kept 2" {
		t.Fatalf("unexpected entries: %+v", logs.All())
	}
	SetLogLevel("DEBUG")
	if !DebugEnabled() {
		t.Fatalf("debug should be enabled")
	}
}
