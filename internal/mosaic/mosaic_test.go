package mosaic

import (
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeFetcher paints each tile with a color derived from its coordinates
// so the paste positions are checkable in the stitched raster.
type fakeFetcher struct {
	calls []maptile.Tile
	err   error
}

func (f *fakeFetcher) Tile(_ context.Context, tile maptile.Tile) (image.Image, error) {
	f.calls = append(f.calls, tile)
	if f.err != nil {
		return nil, f.err
	}

	img := image.NewRGBA(image.Rect(0, 0, geo.TileSize, geo.TileSize))
	fill := color.RGBA{R: uint8(tile.X), G: uint8(tile.Y), A: 255}
	for px := 0; px < geo.TileSize; px++ {
		for py := 0; py < geo.TileSize; py++ {
			img.Set(px, py, fill)
		}
	}

	return img, nil
}

func TestAssembler_Assemble(t *testing.T) {
	t.Parallel()

	// This box spans tiles (1..2, 1..2) at zoom 2.
	bbox := geo.BoundingBox{MinLat: -40, MinLon: -45, MaxLat: 40, MaxLon: 45}
	fetcher := &fakeFetcher{}

	mosaic, err := NewAssembler(fetcher, testLogger()).Assemble(context.Background(), bbox, 2)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), mosaic.MinX)
	assert.Equal(t, uint32(1), mosaic.MinY)
	assert.Equal(t, uint32(2), mosaic.MaxX)
	assert.Equal(t, uint32(2), mosaic.MaxY)
	assert.Len(t, fetcher.calls, 4)

	bounds := mosaic.Image.Bounds()
	assert.Equal(t, 512, bounds.Dx())
	assert.Equal(t, 512, bounds.Dy())

	// Each tile landed at its (x, y) offset.
	for _, tile := range fetcher.calls {
		px := int(tile.X-mosaic.MinX) * geo.TileSize
		py := int(tile.Y-mosaic.MinY) * geo.TileSize
		r, g, _, _ := mosaic.Image.At(px, py).RGBA()
		assert.Equal(t, uint32(tile.X), r>>8, "red channel at %d,%d", px, py)
		assert.Equal(t, uint32(tile.Y), g>>8, "green channel at %d,%d", px, py)
	}
}

func TestAssembler_ExtentContainsBoundingBox(t *testing.T) {
	t.Parallel()

	bbox := geo.BoundingBox{
		MinLat: 37.365739, MinLon: -122.39625356,
		MaxLat: 37.6130184, MaxLon: -121.905370,
	}

	mosaic, err := NewAssembler(&fakeFetcher{}, testLogger()).Assemble(context.Background(), bbox, AutoZoom(bbox))
	require.NoError(t, err)

	extent := mosaic.Extent()
	assert.True(t, extent.Contains(bbox.TopLeft()), "extent misses the NW corner")
	assert.True(t, extent.Contains(bbox.BottomRight()), "extent misses the SE corner")
	assert.True(t, extent.Contains(bbox.TopRight()))
	assert.True(t, extent.Contains(bbox.BottomLeft()))
}

func TestAssembler_SingleTile(t *testing.T) {
	t.Parallel()

	bbox := geo.BoundingBox{MinLat: 37.5, MinLon: -122.2, MaxLat: 37.5, MaxLon: -122.2}
	fetcher := &fakeFetcher{}

	mosaic, err := NewAssembler(fetcher, testLogger()).Assemble(context.Background(), bbox, 10)
	require.NoError(t, err)

	assert.Len(t, fetcher.calls, 1)
	assert.Equal(t, 256, mosaic.Image.Bounds().Dx())
	assert.Equal(t, 256, mosaic.Image.Bounds().Dy())
}

func TestAssembler_InvalidZoom(t *testing.T) {
	t.Parallel()

	bbox := geo.BoundingBox{MinLat: 37.4, MinLon: -122.4, MaxLat: 37.6, MaxLon: -122.2}

	_, err := NewAssembler(&fakeFetcher{}, testLogger()).Assemble(context.Background(), bbox, 20)
	assert.ErrorIs(t, err, errors.ErrInvalidParameter)
}

func TestAssembler_FetchErrorAborts(t *testing.T) {
	t.Parallel()

	bbox := geo.BoundingBox{MinLat: -40, MinLon: -45, MaxLat: 40, MaxLon: 45}
	fetcher := &fakeFetcher{err: errors.ErrProvider}

	_, err := NewAssembler(fetcher, testLogger()).Assemble(context.Background(), bbox, 2)
	assert.ErrorIs(t, err, errors.ErrProvider)
	assert.Len(t, fetcher.calls, 1, "assembly aborts on the first failed tile")
}

func TestAssembler_Cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bbox := geo.BoundingBox{MinLat: -40, MinLon: -45, MaxLat: 40, MaxLon: 45}
	_, err := NewAssembler(&fakeFetcher{}, testLogger()).Assemble(ctx, bbox, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
