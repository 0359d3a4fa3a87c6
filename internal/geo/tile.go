package geo

import (
	"math"

	"github.com/paulmach/orb/maptile"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
)

// MaxZoom is the deepest slippy-map zoom level served by the tile provider.
const MaxZoom = 19

// TileSize is the pixel width and height of a slippy-map raster tile.
const TileSize = 256

// tileEpsilon absorbs the transcendental rounding of the Mercator
// formulas, so converting a tile's NW corner back to tile coordinates
// lands in that tile rather than one row up. It is under 1 µm of ground
// distance at the deepest zoom (~0.76 µm at the equator).
const tileEpsilon = 1e-8

// ValidateZoom rejects zoom levels outside [0, MaxZoom].
func ValidateZoom(zoom int) error {
	if zoom < 0 || zoom > MaxZoom {
		return errors.Wrapf(errors.ErrInvalidParameter, "zoom %d outside [0,%d]", zoom, MaxZoom)
	}

	return nil
}

// DegToTile converts a geodetic position to the slippy-map tile containing
// it at the given zoom, following the standard Web Mercator formulas. Tile
// indices are floored into [0, 2^zoom).
func DegToTile(lat, lon float64, zoom int) (maptile.Tile, error) {
	if err := ValidateZoom(zoom); err != nil {
		return maptile.Tile{}, err
	}

	latRad := lat * math.Pi / 180
	n := math.Exp2(float64(zoom))
	xf := (lon + 180) / 360 * n
	yf := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n

	maxIndex := uint32(1)<<zoom - 1

	return maptile.Tile{
		X: clampTileIndex(math.Floor(xf+tileEpsilon), maxIndex),
		Y: clampTileIndex(math.Floor(yf+tileEpsilon), maxIndex),
		Z: maptile.Zoom(zoom),
	}, nil
}

// TileToDeg returns the NW corner of the tile as a waypoint.
func TileToDeg(tile maptile.Tile) Waypoint {
	n := math.Exp2(float64(tile.Z))
	lon := float64(tile.X)/n*360 - 180
	latRad := math.Atan(math.Sinh(math.Pi * (1 - 2*float64(tile.Y)/n)))

	return NewWaypoint(latRad*180/math.Pi, lon)
}

func clampTileIndex(v float64, maxIndex uint32) uint32 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > float64(maxIndex) {
		return maxIndex
	}

	return uint32(v)
}
