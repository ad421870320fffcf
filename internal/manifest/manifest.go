// Package manifest records what a generate run produced: every output
// group and the Markdown files written into it.
package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"

	"github.com/g5becks/doxmd/internal/outline"
)

const (
	CurrentVersion = "1.0.0"
	ManifestFile   = "manifest.json"
)

type Manifest struct {
	Version   string            `json:"version"`
	Generated time.Time         `json:"generated"`
	Groups    map[string]*Group `json:"groups"`
}

// Group is one output bucket: a namespace, a scope prefix, or the
// fixed "global" bucket.
type Group struct {
	Name      string     `json:"name"`
	Dir       string     `json:"dir"`
	FileCount int        `json:"file_count"`
	TotalSize int64      `json:"total_size"`
	Files     []FileInfo `json:"files"`
}

type FileInfo struct {
	Path        string           `json:"path"`
	Source      string           `json:"source"`
	Compounds   int              `json:"compounds"`
	Members     int              `json:"members"`
	Lines       int              `json:"lines"`
	Size        int64            `json:"size"`
	Generated   time.Time        `json:"generated"`
	Description string           `json:"description"`
	Outline     *outline.Outline `json:"outline,omitempty"`
}

func New() *Manifest {
	return &Manifest{
		Version:   CurrentVersion,
		Generated: time.Now(),
		Groups:    make(map[string]*Group),
	}
}

// AddFile records a generated file under its group, creating the group
// entry on first use and keeping the aggregate counters current.
func (m *Manifest) AddFile(groupName string, info FileInfo) {
	group, ok := m.Groups[groupName]
	if !ok {
		group = &Group{
			Name: groupName,
			Dir:  groupName,
		}
		m.Groups[groupName] = group
	}

	group.Files = append(group.Files, info)
	group.FileCount = len(group.Files)
	group.TotalSize += info.Size
}

func Load(outputDir string) (*Manifest, error) {
	manifestPath := Path(outputDir)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oops.
				Code("MANIFEST_NOT_FOUND").
				With("path", manifestPath).
				Hint("Run 'doxmd generate' to produce the manifest").
				Errorf("manifest not found at %q", manifestPath)
		}

		return nil, oops.
			Code("MANIFEST_READ_ERROR").
			With("path", manifestPath).
			Wrapf(err, "reading manifest file")
	}

	m := &Manifest{}
	if unmarshalErr := json.Unmarshal(data, m); unmarshalErr != nil {
		return nil, oops.
			Code("MANIFEST_CORRUPTED").
			With("path", manifestPath).
			Hint("Delete manifest.json and run 'doxmd generate'").
			Wrapf(unmarshalErr, "parsing manifest file")
	}

	if m.Groups == nil {
		m.Groups = make(map[string]*Group)
	}

	return m, nil
}

func (m *Manifest) Save(outputDir string) error {
	if m == nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			Hint("Initialize manifest before saving").
			Errorf("cannot save nil manifest")
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", outputDir).
			Wrapf(err, "creating manifest directory")
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			Wrapf(err, "encoding manifest")
	}

	data = append(data, '\n')
	manifestPath := Path(outputDir)

	tempFile, err := os.CreateTemp(outputDir, ManifestFile+".*.tmp")
	if err != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", outputDir).
			Wrapf(err, "creating temporary manifest file")
	}

	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, writeErr := tempFile.Write(data); writeErr != nil {
		_ = tempFile.Close()
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", tempPath).
			Wrapf(writeErr, "writing temporary manifest file")
	}

	if closeErr := tempFile.Close(); closeErr != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", tempPath).
			Wrapf(closeErr, "closing temporary manifest file")
	}

	if renameErr := os.Rename(tempPath, manifestPath); renameErr != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("from", tempPath).
			With("to", manifestPath).
			Wrapf(renameErr, "replacing manifest file")
	}

	return nil
}

func Path(outputDir string) string {
	return filepath.Join(outputDir, ManifestFile)
}
