package imagecache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/phrazzld/marvel-api/internal/events"
	"github.com/phrazzld/marvel-api/internal/platform/logger"
	"github.com/phrazzld/marvel-api/internal/redact"
)

var (
	// ErrUnsupportedURL is returned for URLs that are not absolute http(s) URLs.
	ErrUnsupportedURL = errors.New("unsupported image url")

	// ErrNoFileName is returned when a URL has no usable final path segment.
	ErrNoFileName = errors.New("image url has no file name")
)

// Result is the outcome of a cache lookup. Path is nil when there is no image
// to reference; Degraded is set when that happened because of a failure,
// which is then described by Err.
type Result struct {
	Path     *string
	Degraded bool
	Err      error
}

// Cache downloads images into a Store.
type Cache struct {
	store   Store
	http    *resty.Client
	emitter events.EventEmitter
	logger  *slog.Logger
}

// New creates a Cache. A nil emitter disables degradation events.
func New(store Store, emitter events.EventEmitter, timeout time.Duration, l *slog.Logger) *Cache {
	if l == nil {
		l = slog.Default()
	}
	return &Cache{
		store:   store,
		http:    resty.New().SetTimeout(timeout),
		emitter: emitter,
		logger:  l.With(slog.String("component", "image_cache")),
	}
}

// Fetch returns the stored location of the image at sourceURL, downloading
// it first if the store does not have a file with the same name. An empty
// sourceURL means no image and is not a failure.
func (c *Cache) Fetch(ctx context.Context, sourceURL string) Result {
	if sourceURL == "" {
		return Result{}
	}

	name, err := fileName(sourceURL)
	if err != nil {
		return c.degrade(ctx, sourceURL, err)
	}

	exists, err := c.store.Exists(ctx, name)
	if err != nil {
		return c.degrade(ctx, sourceURL, err)
	}
	if !exists {
		if err := c.download(ctx, sourceURL, name); err != nil {
			return c.degrade(ctx, sourceURL, err)
		}
	}

	location := c.store.Location(name)
	return Result{Path: &location}
}

func (c *Cache) download(ctx context.Context, sourceURL, name string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(sourceURL)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		return fmt.Errorf("failed to download image: unexpected status %d", resp.StatusCode())
	}

	return c.store.Put(ctx, name, body)
}

func (c *Cache) degrade(ctx context.Context, sourceURL string, err error) Result {
	log := logger.FromContextOrDefault(ctx, c.logger)
	log.DebugContext(ctx, "thumbnail not cached",
		slog.String("url", redact.URL(sourceURL)),
		slog.String("error", redact.Error(err)))

	if c.emitter != nil {
		event := events.NewDegradationEvent(events.KindThumbnailFallback, "", "", sourceURL, err)
		if emitErr := c.emitter.EmitEvent(ctx, event); emitErr != nil {
			log.DebugContext(ctx, "failed to emit degradation event",
				slog.String("error", redact.Error(emitErr)))
		}
	}

	return Result{Degraded: true, Err: err}
}

// fileName returns the last path segment of an absolute http(s) URL.
func fileName(sourceURL string) (string, error) {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedURL, u.Scheme)
	}

	name := path.Base(u.Path)
	switch name {
	case "", ".", "/", "..":
		return "", ErrNoFileName
	}
	return name, nil
}
