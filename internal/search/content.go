package search

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/samber/oops"

	"github.com/g5becks/doxmd/internal/manifest"
)

// ContentResult represents a single match from content search.
type ContentResult struct {
	Group string `json:"group"`
	Path  string `json:"path"`
	Line  int    `json:"line"`
	Text  string `json:"text"`
}

// ContentOptions configures content search behavior.
type ContentOptions struct {
	OutputDir string
	Query     string
	Group     string
	UseRegex  bool
	Limit     int
}

// Content performs literal or regex search across generated Markdown
// files, in group then path order. Files listed in the manifest but
// missing on disk are skipped.
func Content(m *manifest.Manifest, opts ContentOptions) ([]ContentResult, error) {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil, oops.
			Code("INVALID_ARGS").
			Hint("Provide a non-empty search query").
			Errorf("search query cannot be empty")
	}

	var matcher func(line string) bool
	if opts.UseRegex {
		re, err := regexp.Compile(query)
		if err != nil {
			return nil, oops.
				Code("INVALID_ARGS").
				With("query", query).
				Hint("Fix the regular expression or drop --regex").
				Wrapf(err, "compiling search pattern")
		}

		matcher = re.MatchString
	} else {
		lowered := strings.ToLower(query)
		matcher = func(line string) bool {
			return strings.Contains(strings.ToLower(line), lowered)
		}
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

	var results []ContentResult
	for _, name := range names {
		if opts.Group != "" && name != opts.Group {
			continue
		}

		for _, file := range m.Groups[name].Files {
			fullPath := filepath.Join(opts.OutputDir, filepath.FromSlash(file.Path))
			content, err := os.ReadFile(fullPath)
			if err != nil {
				continue
			}

			for lineIdx, line := range strings.Split(string(content), "\n") {
				if !matcher(line) {
					continue
				}

				results = append(results, ContentResult{
					Group: name,
					Path:  file.Path,
					Line:  lineIdx + 1,
					Text:  strings.TrimSpace(line),
				})

				if opts.Limit > 0 && len(results) >= opts.Limit {
					return results, nil
				}
			}
		}
	}

	return results, nil
}
