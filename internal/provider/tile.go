package provider

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"

	_ "image/png" // tile rasters are PNG

	"github.com/paulmach/orb/maptile"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

// Tile returns the decoded raster for a slippy-map tile, reading through
// the disk cache.
func (c *Client) Tile(ctx context.Context, tile maptile.Tile) (image.Image, error) {
	data, err := c.TileBytes(ctx, tile)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProvider, "decode tile %d/%d/%d: %v", tile.Z, tile.X, tile.Y, err)
	}

	return img, nil
}

// TileBytes returns the raw bytes for a tile. A cache miss downloads the
// tile and stores it before returning, so a second call for the same tile
// performs no network I/O and returns byte-identical content.
func (c *Client) TileBytes(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	if err := geo.ValidateZoom(int(tile.Z)); err != nil {
		return nil, err
	}

	data, ok, err := c.cache.Get(tile)
	if err != nil {
		return nil, err
	}
	if ok {
		return data, nil
	}

	data, err = c.downloadTile(ctx, tile)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Put(tile, data); err != nil {
		return nil, err
	}

	return data, nil
}

func (c *Client) downloadTile(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	url := fmt.Sprintf("%s/%d/%d/%d.png", c.tileURL, tile.Z, tile.X, tile.Y)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProvider, "build tile request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProvider, "tile request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrProvider, "tile request: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProvider, "read tile response: %v", err)
	}

	c.logger.Debug("tile downloaded", slog.String("url", url), slog.Int("bytes", len(data)))

	return data, nil
}
