package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/packcal/internal/common"
	"github.com/Veraticus/packcal/internal/model"
)

// DefaultTimeout bounds a remote dataset fetch.
const DefaultTimeout = 15 * time.Second

// maxDatasetBytes caps how much of a dataset source is read.
const maxDatasetBytes = 32 << 20

// LoadResult is the outcome of loading a dataset. Dataset is always usable;
// Advisories explain anything that was substituted or skipped.
type LoadResult struct {
	Dataset    *model.Dataset
	Source     string
	Advisories []string
	Failed     bool
}

// Loader reads the base dataset from a file path or an http(s) URL.
type Loader struct {
	Client  *http.Client
	Source  string
	Timeout time.Duration
}

// NewLoader creates a loader for source.
func NewLoader(source string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{
		Source:  source,
		Timeout: timeout,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Load fetches and normalizes the dataset. Failures never propagate: the
// result then carries an empty dataset and an advisory describing the problem.
func (l *Loader) Load(ctx context.Context) LoadResult {
	res := LoadResult{Source: l.Source}

	raw, err := l.read(ctx)
	if err != nil {
		res.Dataset = Empty()
		res.Failed = true
		res.Advisories = []string{err.Error()}
		return res
	}

	ds, advisories := Normalize(raw)
	res.Dataset = ds
	res.Advisories = advisories
	return res
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if strings.TrimSpace(l.Source) == "" {
		return nil, fmt.Errorf("%w: no dataset source configured", common.ErrDatasetUnavailable)
	}
	if isRemote(l.Source) {
		return l.fetch(ctx)
	}

	f, err := os.Open(l.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", common.ErrDatasetUnavailable, l.Source, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, maxDatasetBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", common.ErrDatasetUnavailable, l.Source, err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dataset URL %s: %v", common.ErrDatasetUnavailable, l.Source, err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load %s: %v", common.ErrDatasetUnavailable, l.Source, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: failed to load %s (HTTP %d)", common.ErrDatasetUnavailable, l.Source, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", common.ErrDatasetUnavailable, l.Source, err)
	}
	return data, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
