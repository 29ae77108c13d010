package mocks

import (
	"context"
	"path"
	"sync"

	"github.com/phrazzld/marvel-api/internal/imagecache"
)

// MockImageCache implements the image cache used by the service layer.
// By default an empty URL yields no image and any other URL is "cached" as
// images/<last path segment>.
type MockImageCache struct {
	// FetchFn allows test cases to mock the Fetch behavior
	FetchFn func(ctx context.Context, sourceURL string) imagecache.Result

	mu      sync.Mutex
	sources []string
}

// Fetch implements the image cache interface
func (m *MockImageCache) Fetch(ctx context.Context, sourceURL string) imagecache.Result {
	m.mu.Lock()
	m.sources = append(m.sources, sourceURL)
	m.mu.Unlock()

	if m.FetchFn != nil {
		return m.FetchFn(ctx, sourceURL)
	}
	if sourceURL == "" {
		return imagecache.Result{}
	}
	location := "images/" + path.Base(sourceURL)
	return imagecache.Result{Path: &location}
}

// Sources returns every URL passed to Fetch, in call order.
func (m *MockImageCache) Sources() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sources...)
}
