package source

import (
	"context"
	"io"
	"net/http"
	neturl "net/url"
	"path"
	"strings"
	"time"

	"github.com/samber/oops"
	"resty.dev/v3"

	"github.com/g5becks/doxmd/internal/config"
	"github.com/g5becks/doxmd/internal/lockfile"
)

type urlSource struct {
	name   string
	source config.Source
	stem   string
	client *resty.Client
}

// NewURL creates a source that fetches a single XML document over
// HTTP, using conditional requests when a previous lock entry exists.
func NewURL(name string, cfg config.Source) Source {
	stem := cfg.Name
	if stem == "" {
		stem = stemFromURL(name, cfg.URL)
	}

	return &urlSource{
		name:   name,
		source: cfg,
		stem:   stem,
		client: resty.New(),
	}
}

func (s *urlSource) Fetch(
	ctx context.Context,
	prevLock *lockfile.LockEntry,
	opts FetchOptions,
) (*FetchResult, error) {
	request := s.client.R().SetContext(ctx)
	if !opts.Force && prevLock != nil {
		if prevLock.ETag != "" {
			request.SetHeader("If-None-Match", prevLock.ETag)
		}
		if prevLock.LastMod != "" {
			request.SetHeader("If-Modified-Since", prevLock.LastMod)
		}
	}

	response, err := request.Get(s.source.URL)
	if err != nil {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("source", s.name).
			With("url", s.source.URL).
			Wrapf(err, "downloading url source")
	}

	if response.StatusCode() == http.StatusNotModified {
		lock := prevLock
		if lock == nil {
			lock = &lockfile.LockEntry{Type: "url"}
		}

		lock.Type = "url"
		lock.SyncedAt = time.Now().UTC()

		return &FetchResult{
			Skipped:   true,
			LockEntry: lock,
		}, nil
	}

	if response.StatusCode() < http.StatusOK || response.StatusCode() >= http.StatusMultipleChoices {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("source", s.name).
			With("url", s.source.URL).
			With("status", response.StatusCode()).
			Errorf("url source returned non-success status %d", response.StatusCode())
	}

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("source", s.name).
			With("url", s.source.URL).
			Wrapf(err, "reading response body")
	}

	return &FetchResult{
		Inputs: []Input{{
			Name:    s.stem,
			Path:    s.source.URL,
			Content: content,
		}},
		LockEntry: &lockfile.LockEntry{
			Type:     "url",
			ETag:     response.Header().Get("ETag"),
			LastMod:  response.Header().Get("Last-Modified"),
			SyncedAt: time.Now().UTC(),
		},
	}, nil
}

func stemFromURL(sourceName string, rawURL string) string {
	parsed, err := neturl.Parse(rawURL)
	if err == nil {
		baseName := path.Base(parsed.Path)
		if baseName != "" && baseName != "." && baseName != "/" {
			return strings.TrimSuffix(baseName, path.Ext(baseName))
		}
	}

	return sourceName
}
