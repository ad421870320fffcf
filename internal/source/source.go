// Package source acquires Doxygen XML inputs for conversion, either
// from a local directory tree or from a URL.
package source

import (
	"context"

	"github.com/samber/oops"

	"github.com/g5becks/doxmd/internal/config"
	"github.com/g5becks/doxmd/internal/lockfile"
)

// Input is one XML document to convert. Name is the output file stem.
type Input struct {
	Name    string
	Path    string
	Content []byte
}

// FetchResult reports what a fetch produced.
type FetchResult struct {
	Inputs    []Input
	Skipped   bool
	LockEntry *lockfile.LockEntry
}

// FetchOptions controls source fetch behavior.
type FetchOptions struct {
	Force bool
}

// Source yields XML inputs for one configured documentation source.
type Source interface {
	Fetch(ctx context.Context, prevLock *lockfile.LockEntry, opts FetchOptions) (*FetchResult, error)
}

// New creates a Source from config.
func New(name string, cfg config.Source, root string) (Source, error) {
	switch cfg.Type {
	case "dir":
		return NewDir(name, cfg, root), nil
	case "url":
		return NewURL(name, cfg), nil
	default:
		return nil, oops.
			Code("UNKNOWN_SOURCE_TYPE").
			With("type", cfg.Type).
			Hint("Supported types: dir, url").
			Errorf("unknown source type %q for source %q", cfg.Type, name)
	}
}
