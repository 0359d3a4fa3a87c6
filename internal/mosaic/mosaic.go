package mosaic

import (
	"context"
	"image"
	"image/draw"
	"log/slog"

	"github.com/paulmach/orb/maptile"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

// TileFetcher supplies decoded rasters, normally the provider client
// reading through its disk cache.
type TileFetcher interface {
	Tile(ctx context.Context, tile maptile.Tile) (image.Image, error)
}

// Mosaic is a stitched raster and the tile range it covers. Its geographic
// extent is the union of the tile extents, which contains the requested
// bounding box.
type Mosaic struct {
	Image *image.RGBA
	Zoom  int
	MinX  uint32
	MinY  uint32
	MaxX  uint32
	MaxY  uint32
}

// Extent returns the geographic rectangle the mosaic raster covers.
func (m *Mosaic) Extent() geo.BoundingBox {
	zoom := maptile.Zoom(m.Zoom)
	nw := geo.TileToDeg(maptile.Tile{X: m.MinX, Y: m.MinY, Z: zoom})
	se := geo.TileToDeg(maptile.Tile{X: m.MaxX + 1, Y: m.MaxY + 1, Z: zoom})

	return geo.BoundingBox{MinLat: se.Lat, MinLon: nw.Lon, MaxLat: nw.Lat, MaxLon: se.Lon}
}

// Assembler stitches tiles fetched through a cache-backed fetcher.
type Assembler struct {
	fetcher TileFetcher
	logger  *slog.Logger
}

// NewAssembler creates a mosaic assembler.
func NewAssembler(fetcher TileFetcher, logger *slog.Logger) *Assembler {
	return &Assembler{fetcher: fetcher, logger: logger}
}

// Assemble fetches every tile in the range covering the bounding box at
// the given zoom and pastes them into one raster. Tiles paste
// deterministically by (x, y); a failed fetch aborts the whole mosaic.
// Cancellation between fetches discards the partial raster.
func (a *Assembler) Assemble(ctx context.Context, bbox geo.BoundingBox, zoom int) (*Mosaic, error) {
	if err := geo.ValidateZoom(zoom); err != nil {
		return nil, err
	}

	nw := bbox.TopLeft()
	se := bbox.BottomRight()
	minTile, err := geo.DegToTile(nw.Lat, nw.Lon, zoom)
	if err != nil {
		return nil, err
	}
	maxTile, err := geo.DegToTile(se.Lat, se.Lon, zoom)
	if err != nil {
		return nil, err
	}

	cols := int(maxTile.X-minTile.X) + 1
	rows := int(maxTile.Y-minTile.Y) + 1
	canvas := image.NewRGBA(image.Rect(0, 0, cols*geo.TileSize, rows*geo.TileSize))

	for x := minTile.X; x <= maxTile.X; x++ {
		for y := minTile.Y; y <= maxTile.Y; y++ {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, "mosaic assembly canceled")
			}

			tile := maptile.Tile{X: x, Y: y, Z: maptile.Zoom(zoom)}
			img, err := a.fetcher.Tile(ctx, tile)
			if err != nil {
				return nil, errors.Wrapf(err, "fetch tile %d/%d/%d", zoom, x, y)
			}

			offset := image.Pt(int(x-minTile.X)*geo.TileSize, int(y-minTile.Y)*geo.TileSize)
			target := image.Rectangle{Min: offset, Max: offset.Add(image.Pt(geo.TileSize, geo.TileSize))}
			draw.Draw(canvas, target, img, img.Bounds().Min, draw.Src)
		}
	}

	a.logger.Info("mosaic assembled",
		slog.Int("zoom", zoom),
		slog.Int("tiles", cols*rows),
		slog.Int("width_px", cols*geo.TileSize),
		slog.Int("height_px", rows*geo.TileSize),
	)

	return &Mosaic{
		Image: canvas,
		Zoom:  zoom,
		MinX:  minTile.X,
		MinY:  minTile.Y,
		MaxX:  maxTile.X,
		MaxY:  maxTile.Y,
	}, nil
}
