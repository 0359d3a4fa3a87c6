// Package mosaic assembles adjacent slippy-map tiles into one raster
// covering a bounding box.
package mosaic

import (
	"math"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

// AutoZoom picks the zoom level whose tile span matches the bounding box:
// ceil(log2(360 / max(Δlat, Δlon))) + 1, clamped to the valid range. A
// degenerate box collapses to the deepest zoom.
func AutoZoom(bbox geo.BoundingBox) int {
	maxDiff := math.Max(bbox.MaxLat-bbox.MinLat, bbox.MaxLon-bbox.MinLon)
	if maxDiff <= 0 {
		return geo.MaxZoom
	}

	zoom := int(math.Ceil(math.Log2(360/maxDiff))) + 1
	if zoom < 0 {
		return 0
	}
	if zoom > geo.MaxZoom {
		return geo.MaxZoom
	}

	return zoom
}
