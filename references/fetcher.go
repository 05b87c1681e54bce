package references

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/speakeasy-api/apireader/internal/utils"
	"github.com/speakeasy-api/apireader/system"
	"golang.org/x/sync/singleflight"
)

// Fetcher returns the raw bytes of an external document given its absolute location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// DefaultFetcher reads file locations from a VirtualFS and URLs through an HTTP client. Concurrent
// fetches of the same location are collapsed and successful results are cached.
type DefaultFetcher struct {
	fs     system.VirtualFS
	client system.Client

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string][]byte
}

var _ Fetcher = (*DefaultFetcher)(nil)

// NewFetcher creates a DefaultFetcher. A nil fsys uses the operating system and a nil client uses http.DefaultClient.
func NewFetcher(fsys system.VirtualFS, client system.Client) *DefaultFetcher {
	if fsys == nil {
		fsys = &system.FileSystem{}
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &DefaultFetcher{
		fs:     fsys,
		client: client,
		cache:  make(map[string][]byte),
	}
}

func (f *DefaultFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	f.mu.RLock()
	data, ok := f.cache[location]
	f.mu.RUnlock()
	if ok {
		return data, nil
	}

	v, err, _ := f.group.Do(location, func() (any, error) {
		data, err := f.fetch(ctx, location)
		if err != nil {
			return nil, err
		}

		f.mu.Lock()
		f.cache[location] = data
		f.mu.Unlock()

		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}

func (f *DefaultFetcher) fetch(ctx context.Context, location string) ([]byte, error) {
	classification, err := utils.ClassifyReference(location)
	if err != nil {
		return nil, err
	}

	switch classification.Type {
	case utils.ReferenceTypeURL:
		u := classification.ParsedURL
		if strings.EqualFold(u.Scheme, "file") {
			return f.readFile(u.Path)
		}
		return f.get(ctx, u)
	case utils.ReferenceTypeFilePath:
		return f.readFile(location)
	default:
		return nil, fmt.Errorf("unsupported external location: %s", location)
	}
}

func (f *DefaultFetcher) get(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP request failed with status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (f *DefaultFetcher) readFile(name string) ([]byte, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
