package mocks

import (
	"context"
	"net/url"
	"sync"

	"github.com/phrazzld/marvel-api/internal/marvel"
)

// MockUpstream implements the upstream fetcher used by the service layer.
type MockUpstream struct {
	// FetchFn allows test cases to mock the Fetch behavior
	FetchFn func(ctx context.Context, rawURL string) (marvel.Results, error)

	// Results maps a request path, base path included (e.g.
	// "/v1/public/comics/1"), to its results.
	// Paths without an entry are absent.
	Results map[string]marvel.Results

	mu   sync.Mutex
	urls []string
}

// Fetch implements the upstream interface
func (m *MockUpstream) Fetch(ctx context.Context, rawURL string) (marvel.Results, error) {
	m.mu.Lock()
	m.urls = append(m.urls, rawURL)
	m.mu.Unlock()

	if m.FetchFn != nil {
		return m.FetchFn(ctx, rawURL)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil
	}
	return m.Results[u.EscapedPath()], nil
}

// URLs returns every URL passed to Fetch, in call order.
func (m *MockUpstream) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...)
}
