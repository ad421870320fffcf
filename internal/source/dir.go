package source

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/oops"

	"github.com/g5becks/doxmd/internal/config"
	"github.com/g5becks/doxmd/internal/lockfile"
)

type dirSource struct {
	name   string
	source config.Source
	root   string
}

// NewDir creates a source that reads XML files matching the configured
// patterns under root.
func NewDir(name string, cfg config.Source, root string) Source {
	return &dirSource{
		name:   name,
		source: cfg,
		root:   root,
	}
}

func (s *dirSource) Fetch(
	ctx context.Context,
	_ *lockfile.LockEntry,
	_ FetchOptions,
) (*FetchResult, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, oops.
			Code("SOURCE_NOT_FOUND").
			With("source", s.name).
			With("path", s.root).
			Hint("Point the source path at a Doxygen XML output directory").
			Wrapf(err, "checking source directory")
	}

	var paths []string
	walkErr := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return relErr
		}

		rel = filepath.ToSlash(rel)
		included, matchErr := matchesAny(s.source.Patterns, rel)
		if matchErr != nil {
			return matchErr
		}

		if !included {
			return nil
		}

		excluded, matchErr := matchesAny(s.source.Exclude, rel)
		if matchErr != nil {
			return matchErr
		}

		if !excluded {
			paths = append(paths, path)
		}

		return nil
	})
	if walkErr != nil {
		return nil, oops.
			Code("READ_FAILED").
			With("source", s.name).
			With("path", s.root).
			Wrapf(walkErr, "walking source directory")
	}

	sort.Strings(paths)

	inputs := make([]Input, 0, len(paths))
	for _, path := range paths {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, oops.
				Code("READ_FAILED").
				With("source", s.name).
				With("path", path).
				Wrapf(readErr, "reading source file")
		}

		inputs = append(inputs, Input{
			Name:    fileStem(path),
			Path:    path,
			Content: content,
		})
	}

	return &FetchResult{
		Inputs: inputs,
		LockEntry: &lockfile.LockEntry{
			Type:     "dir",
			SyncedAt: time.Now().UTC(),
		},
	}, nil
}

func matchesAny(patterns []string, candidate string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.PathMatch(pattern, candidate)
		if err != nil {
			return false, oops.
				Code("CONFIG_INVALID").
				With("pattern", pattern).
				With("path", candidate).
				Wrapf(err, "invalid glob pattern")
		}

		if matched {
			return true, nil
		}
	}

	return false, nil
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
