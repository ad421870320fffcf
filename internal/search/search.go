// Package search finds generated documentation by fuzzy-matching
// manifest metadata or scanning file content.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/oops"

	"github.com/g5becks/doxmd/internal/manifest"
)

// MetadataResult represents a single match from metadata search.
type MetadataResult struct {
	Group       string `json:"group"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	MatchField  string `json:"match_field"`
	MatchValue  string `json:"match_value"`
	Score       int    `json:"score"`
}

// MetadataOptions configures metadata search behavior.
type MetadataOptions struct {
	Query string
	Group string
	Limit int
}

type indexEntry struct {
	Group       string
	Path        string
	Description string
	MatchField  string
	MatchValue  string
}

type searchIndex struct {
	entries []indexEntry
}

func (s searchIndex) String(i int) string {
	return s.entries[i].MatchValue
}

func (s searchIndex) Len() int {
	return len(s.entries)
}

// Metadata performs fuzzy search across manifest metadata fields:
// file paths, descriptions, and heading text.
func Metadata(m *manifest.Manifest, opts MetadataOptions) ([]MetadataResult, error) {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil, oops.
			Code("INVALID_ARGS").
			Hint("Provide a non-empty search query").
			Errorf("search query cannot be empty")
	}

	if opts.Group != "" {
		if _, exists := m.Groups[opts.Group]; !exists {
			return nil, oops.
				Code("GROUP_NOT_FOUND").
				With("group", opts.Group).
				Hint("Run 'doxmd groups' to see available groups").
				Errorf("group %q not found", opts.Group)
		}
	}

	names := make([]string, 0, len(m.Groups))
	for name := range m.Groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var entries []indexEntry
	for _, name := range names {
		if opts.Group != "" && name != opts.Group {
			continue
		}

		group := m.Groups[name]
		for _, file := range group.Files {
			entries = append(entries, indexEntry{
				Group:       name,
				Path:        file.Path,
				Description: file.Description,
				MatchField:  "path",
				MatchValue:  file.Path,
			})

			if file.Description != "" {
				entries = append(entries, indexEntry{
					Group:       name,
					Path:        file.Path,
					Description: file.Description,
					MatchField:  "description",
					MatchValue:  file.Description,
				})
			}

			if file.Outline == nil {
				continue
			}

			for _, heading := range file.Outline.Headings {
				entries = append(entries, indexEntry{
					Group:       name,
					Path:        file.Path,
					Description: file.Description,
					MatchField:  "heading",
					MatchValue:  heading.Text,
				})
			}
		}
	}

	index := searchIndex{entries: entries}
	matches := fuzzy.FindFrom(query, index)

	deduped := make(map[string]MetadataResult)
	for _, match := range matches {
		if match.Score < 0 {
			continue
		}
		entry := entries[match.Index]
		key := entry.Group + "\x00" + entry.Path

		if existing, exists := deduped[key]; !exists || match.Score > existing.Score {
			deduped[key] = MetadataResult{
				Group:       entry.Group,
				Path:        entry.Path,
				Description: entry.Description,
				MatchField:  entry.MatchField,
				MatchValue:  entry.MatchValue,
				Score:       match.Score,
			}
		}
	}

	results := make([]MetadataResult, 0, len(deduped))
	for _, result := range deduped {
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Group != results[j].Group {
			return results[i].Group < results[j].Group
		}
		return results[i].Path < results[j].Path
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}
