package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/projector/internal/projector"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// ValidBackends lists the backend names accepted by Open.
var ValidBackends = []string{BackendJSON, BackendSQLite}

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("store: unknown backend")

// Backend loads and saves the full projector store.
type Backend interface {
	// Load returns the persisted store, or an empty one if it is missing or
	// unusable. It never returns an error.
	Load(ctx context.Context) projector.Data

	// Save replaces the persisted store with data.
	Save(ctx context.Context, data projector.Data) error

	// Path returns the backing file location.
	Path() string
}

// Option configures a backend.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for load diagnostics.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Open returns the backend named kind, backed by path.
// Nothing is read or written until Load or Save is called.
func Open(kind, path string, opts ...Option) (Backend, error) {
	switch kind {
	case BackendJSON, "":
		return NewFileStore(path, opts...), nil
	case BackendSQLite:
		return NewSQLStore(path, opts...), nil
	default:
		return nil, fmt.Errorf("%w %q: must be one of %v", ErrUnknownBackend, kind, ValidBackends)
	}
}
