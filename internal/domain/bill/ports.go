package bill

import (
	"context"
	"time"
)

// Canvas is a raster drawing surface. Close releases its bitmap and must be
// called once the canvas is no longer needed, whether drawing succeeded or not.
type Canvas interface {
	Bytes() ([]byte, error)
	Close() error
}

type Renderer interface {
	GenerateSVG(b *Bill) ([]byte, error)
	NewRasterCanvas(f Format) (Canvas, error)
	Draw(b *Bill, c Canvas) error
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}
