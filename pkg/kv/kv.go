// Package kv is the persistence layer: a primary key-value backend with a
// best-effort fallback. Callers never see storage errors; failed reads fall
// through to the fallback and failed writes are logged and dropped.
package kv

import (
	"context"
	"log/slog"
)

// Backend is a key-value store that can fail.
type Backend interface {
	// Get returns the raw value for key. ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Store reads and writes through a primary backend, falling back to a second
// backend when the primary reports an error. A nil primary means the primary
// was unavailable at construction and every call goes to the fallback.
type Store struct {
	primary  Backend
	fallback Backend
	log      *slog.Logger
}

// NewStore builds a Store from its two backends. fallback must not be nil.
func NewStore(primary, fallback Backend, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{primary: primary, fallback: fallback, log: log.With("component", "kv")}
}

// Open opens the SQLite primary at dbPath and the file fallback under
// fallbackDir. If the primary cannot be opened the store runs on the
// fallback alone. The returned close func releases the primary.
func Open(dbPath, fallbackDir string, log *slog.Logger) (*Store, func() error, error) {
	if log == nil {
		log = slog.Default()
	}
	fallback, err := NewFileBackend(fallbackDir)
	if err != nil {
		return nil, nil, err
	}

	primary, err := NewSQLiteBackend(dbPath)
	if err != nil {
		log.Warn("primary storage unavailable, using local fallback",
			slog.String("path", dbPath), slog.Any("error", err))
		return NewStore(nil, fallback, log), func() error { return nil }, nil
	}
	return NewStore(primary, fallback, log), primary.Close, nil
}

// Get returns the value for key, or ok == false when it is absent.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	if s.primary != nil {
		v, ok, err := s.primary.Get(ctx, key)
		if err == nil {
			return v, ok
		}
		s.log.Warn("storage error, falling back to local storage",
			slog.String("op", "get"), slog.String("key", key), slog.Any("error", err))
	}

	v, ok, err := s.fallback.Get(ctx, key)
	if err != nil {
		s.log.Error("local storage read failed",
			slog.String("key", key), slog.Any("error", err))
		return "", false
	}
	return v, ok
}

// Set stores value under key. It always returns; a write that fails on both
// backends is logged and lost.
func (s *Store) Set(ctx context.Context, key, value string) {
	if s.primary != nil {
		err := s.primary.Set(ctx, key, value)
		if err == nil {
			return
		}
		s.log.Warn("storage error, falling back to local storage",
			slog.String("op", "set"), slog.String("key", key), slog.Any("error", err))
	}

	if err := s.fallback.Set(ctx, key, value); err != nil {
		s.log.Error("local storage write failed, value dropped",
			slog.String("key", key), slog.Any("error", err))
	}
}

// UsingFallback reports whether the primary was unavailable at construction.
func (s *Store) UsingFallback() bool {
	return s.primary == nil
}
