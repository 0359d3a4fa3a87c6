package provider

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/maptile"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
)

// TileCache is a filesystem-backed raster tile store. Entries are written
// once and never evicted; the cache directory persists across runs. Writes
// are atomic at file granularity (write-temp-then-rename), so concurrent
// writers racing on the same tile both leave valid bytes behind.
type TileCache struct {
	root   string
	logger *slog.Logger
}

// NewTileCache creates the cache root if needed.
func NewTileCache(root string, logger *slog.Logger) (*TileCache, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(errors.ErrCacheIO, "create cache root %s: %v", root, err)
	}

	return &TileCache{root: root, logger: logger}, nil
}

// Path returns the on-disk location of a tile, one file per tile named
// {zoom}_{x}_{y}.png.
func (c *TileCache) Path(tile maptile.Tile) string {
	return filepath.Join(c.root, fmt.Sprintf("%d_%d_%d.png", tile.Z, tile.X, tile.Y))
}

// Get returns the cached bytes for a tile, reporting whether it was found.
func (c *TileCache) Get(tile maptile.Tile) ([]byte, bool, error) {
	data, err := os.ReadFile(c.Path(tile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(errors.ErrCacheIO, "read tile %s: %v", c.Path(tile), err)
	}

	return data, true, nil
}

// Put stores tile bytes, writing to a temp file and renaming into place.
func (c *TileCache) Put(tile maptile.Tile, data []byte) error {
	tmp, err := os.CreateTemp(c.root, "tile-*.tmp")
	if err != nil {
		return errors.Wrapf(errors.ErrCacheIO, "create temp tile: %v", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrapf(errors.ErrCacheIO, "write temp tile: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(errors.ErrCacheIO, "close temp tile: %v", err)
	}

	if err := os.Rename(tmpName, c.Path(tile)); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(errors.ErrCacheIO, "store tile %s: %v", c.Path(tile), err)
	}

	return nil
}
