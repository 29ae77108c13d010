package imagecache

import (
	"context"
	"fmt"
	"io"

	"github.com/phrazzld/marvel-api/internal/config"
)

// Store persists image files by name.
type Store interface {
	// Exists reports whether a file with this name is already stored.
	Exists(ctx context.Context, name string) (bool, error)

	// Put stores the content of r under name. An existing file is kept.
	Put(ctx context.Context, name string, r io.Reader) error

	// Location returns the reference saved in an entity's thumbnail field.
	Location(name string) string
}

// NewStore builds the Store selected by cfg.Driver.
func NewStore(ctx context.Context, cfg config.ImagesConfig) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.Dir), nil
	case "s3":
		client, err := NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix), nil
	default:
		return nil, fmt.Errorf("unknown image store driver %q", cfg.Driver)
	}
}
