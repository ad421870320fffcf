// Package generate orchestrates a full conversion run: fetch XML from
// every configured source, convert each document to Markdown, group the
// results, and record them in the manifest.
package generate

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	stdsync "sync"
	"time"

	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"

	"github.com/g5becks/doxmd/internal/config"
	"github.com/g5becks/doxmd/internal/doxygen"
	"github.com/g5becks/doxmd/internal/lockfile"
	"github.com/g5becks/doxmd/internal/manifest"
	"github.com/g5becks/doxmd/internal/outline"
	"github.com/g5becks/doxmd/internal/render"
	"github.com/g5becks/doxmd/internal/source"
)

const defaultMaxParallel = 3

type EventKind string

const (
	EventWrote           EventKind = "wrote"
	EventSkippedInput    EventKind = "skipped_input"
	EventSourceUnchanged EventKind = "source_unchanged"
	EventSourceFailed    EventKind = "source_failed"
)

// Event reports progress during a run. Input identifies the XML
// document, Path the output file relative to the output root.
type Event struct {
	Kind   EventKind
	Source string
	Input  string
	Path   string
	Err    error
}

type Options struct {
	SourceNames []string
	Force       bool
	DryRun      bool
	Clean       bool
	MaxParallel int
	OnEvent     func(Event)
}

type Stats struct {
	Written   int
	Skipped   int
	Unchanged int
	Failed    int
	Groups    int
}

type runState struct {
	files     []manifest.FileInfo
	lockEntry *lockfile.LockEntry
	skipped   int
	unchanged bool
	err       error
}

// Run converts every selected source and returns aggregate stats. A
// source that fails entirely is counted and reported at the end;
// individual malformed documents are skipped, not fatal.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Stats, error) {
	if cfg == nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			Errorf("config is required")
	}

	outputDir := cfg.Output
	if opts.Clean && !opts.DryRun {
		if err := os.RemoveAll(outputDir); err != nil {
			return nil, oops.
				Code("WRITE_FAILED").
				With("path", outputDir).
				Wrapf(err, "cleaning output directory")
		}
	}

	lock, err := lockfile.Load(outputDir)
	if err != nil {
		return nil, err
	}

	// The previous manifest carries forward entries for url sources
	// that come back unchanged.
	previous, prevErr := manifest.Load(outputDir)
	if prevErr != nil {
		previous = nil
	}

	sourceNames, err := resolveSourceNames(cfg.Sources, opts.SourceNames)
	if err != nil {
		return nil, err
	}

	maxParallel := opts.MaxParallel
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}

	results := make(map[string]*runState, len(sourceNames))
	var resultsMu stdsync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallel)

	for _, sourceName := range sourceNames {
		sourceCfg := cfg.Sources[sourceName]

		group.Go(func() error {
			state := runSource(groupCtx, cfg, sourceName, sourceCfg, lock.GetEntry(sourceName), opts)

			resultsMu.Lock()
			results[sourceName] = state
			resultsMu.Unlock()
			return nil
		})
	}

	if waitErr := group.Wait(); waitErr != nil {
		return nil, oops.Wrapf(waitErr, "waiting for conversion workers")
	}

	stats := &Stats{}
	m := manifest.New()

	for _, sourceName := range sourceNames {
		state := results[sourceName]
		if state == nil {
			continue
		}

		if state.err != nil {
			stats.Failed++
			emit(opts, Event{Kind: EventSourceFailed, Source: sourceName, Err: state.err})
			continue
		}

		stats.Skipped += state.skipped

		if state.unchanged {
			stats.Unchanged++
			carryForward(m, previous, sourceName)
		}

		for _, info := range state.files {
			m.AddFile(groupOf(info.Path), info)
			stats.Written++
		}

		if !opts.DryRun && state.lockEntry != nil {
			lock.SetEntry(sourceName, state.lockEntry)
		}
	}

	stats.Groups = len(m.Groups)

	if !opts.DryRun {
		if saveErr := lock.Save(outputDir); saveErr != nil {
			return stats, saveErr
		}

		if saveErr := m.Save(outputDir); saveErr != nil {
			return stats, saveErr
		}
	}

	if stats.Failed > 0 {
		return stats, oops.
			Code("GENERATE_FAILED").
			With("failed_sources", stats.Failed).
			Errorf("%d source(s) failed during generation", stats.Failed)
	}

	return stats, nil
}

func runSource(
	ctx context.Context,
	cfg *config.Config,
	sourceName string,
	sourceCfg config.Source,
	prevLock *lockfile.LockEntry,
	opts Options,
) *runState {
	state := &runState{}

	src, err := source.New(sourceName, sourceCfg, cfg.SourcePath(sourceCfg))
	if err != nil {
		state.err = err
		return state
	}

	result, err := src.Fetch(ctx, prevLock, source.FetchOptions{Force: opts.Force})
	if err != nil {
		state.err = err
		return state
	}

	state.lockEntry = result.LockEntry
	if result.Skipped {
		state.unchanged = true
		emit(opts, Event{Kind: EventSourceUnchanged, Source: sourceName})
		return state
	}

	for _, input := range result.Inputs {
		doc, parseErr := doxygen.Parse(input.Content)
		if parseErr != nil {
			state.skipped++
			emit(opts, Event{
				Kind:   EventSkippedInput,
				Source: sourceName,
				Input:  input.Path,
				Err:    parseErr,
			})
			continue
		}

		md := render.Markdown(doc)
		relPath := path.Join(doc.Group(), input.Name+".md")

		if !opts.DryRun {
			if writeErr := writeOutput(cfg.Output, relPath, md); writeErr != nil {
				state.err = writeErr
				return state
			}
		}

		extracted := outline.Extract([]byte(md))
		state.files = append(state.files, manifest.FileInfo{
			Path:        relPath,
			Source:      sourceName,
			Compounds:   len(doc.Compounds),
			Members:     len(doc.Members),
			Lines:       strings.Count(md, "\n"),
			Size:        int64(len(md)),
			Generated:   time.Now().UTC(),
			Description: extracted.Description,
			Outline:     extracted.Outline,
		})

		emit(opts, Event{
			Kind:   EventWrote,
			Source: sourceName,
			Input:  input.Path,
			Path:   relPath,
		})
	}

	return state
}

func carryForward(m *manifest.Manifest, previous *manifest.Manifest, sourceName string) {
	if previous == nil {
		return
	}

	groupNames := make([]string, 0, len(previous.Groups))
	for name := range previous.Groups {
		groupNames = append(groupNames, name)
	}
	slices.Sort(groupNames)

	for _, groupName := range groupNames {
		for _, info := range previous.Groups[groupName].Files {
			if info.Source == sourceName {
				m.AddFile(groupName, info)
			}
		}
	}
}

func resolveSourceNames(
	sourceConfigs map[string]config.Source,
	requestedNames []string,
) ([]string, error) {
	if len(requestedNames) == 0 {
		sourceNames := make([]string, 0, len(sourceConfigs))
		for sourceName := range sourceConfigs {
			sourceNames = append(sourceNames, sourceName)
		}

		slices.Sort(sourceNames)
		return sourceNames, nil
	}

	sourceNames := make([]string, 0, len(requestedNames))
	seen := make(map[string]struct{}, len(requestedNames))

	for _, sourceName := range requestedNames {
		if _, ok := sourceConfigs[sourceName]; !ok {
			return nil, oops.
				Code("SOURCE_NOT_FOUND").
				With("source", sourceName).
				Hint("Run 'doxmd groups' to inspect generated output or check the config").
				Errorf("source %q not found in config", sourceName)
		}

		if _, exists := seen[sourceName]; exists {
			continue
		}

		seen[sourceName] = struct{}{}
		sourceNames = append(sourceNames, sourceName)
	}

	return sourceNames, nil
}

func groupOf(relPath string) string {
	dir := path.Dir(relPath)
	if dir == "." {
		return doxygen.GlobalGroup
	}

	return dir
}

func writeOutput(outputDir, relPath, content string) error {
	fullPath := filepath.Join(outputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", fullPath).
			Wrapf(err, "creating group directory")
	}

	return writeFileAtomic(fullPath, []byte(content))
}

func emit(opts Options, event Event) {
	if opts.OnEvent != nil {
		opts.OnEvent(event)
	}
}
