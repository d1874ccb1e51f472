package store

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/roach88/projector/internal/projector"
)

// testData returns the store used throughout the package tests.
func testData() projector.Data {
	return projector.Data{Projector: map[string]projector.KeyValueMap{
		"/": {
			"foo": "bar1",
			"fem": "is great",
		},
		"/foo": {
			"foo": "baz",
			"bar": "baz",
		},
		"/foo/bar": {
			"foo": "bar3",
		},
	}}
}

// captureLogger returns a debug-level logger writing to the returned buffer.
func captureLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}
