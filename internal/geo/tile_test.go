package geo

import (
	"testing"

	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
)

func TestDegToTile(t *testing.T) {
	t.Parallel()

	// At zoom 0 the whole world is tile (0,0).
	tile, err := DegToTile(37.5, -122.2, 0)
	require.NoError(t, err)
	assert.Equal(t, maptile.Tile{X: 0, Y: 0, Z: 0}, tile)

	// The origin is the NW corner of the south-east quadrant tile at zoom 1.
	tile, err = DegToTile(0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), tile.X)
	assert.Equal(t, uint32(1), tile.Y)
}

func TestDegToTile_InvalidZoom(t *testing.T) {
	t.Parallel()

	_, err := DegToTile(37.5, -122.2, -1)
	assert.ErrorIs(t, err, errors.ErrInvalidParameter)

	_, err = DegToTile(37.5, -122.2, MaxZoom+1)
	assert.ErrorIs(t, err, errors.ErrInvalidParameter)
}

func TestTileToDeg_NWCornerRoundTrip(t *testing.T) {
	t.Parallel()

	tiles := []maptile.Tile{
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 2, Z: 3},
		{X: 163, Y: 395, Z: 10},
		{X: 20815, Y: 50545, Z: 17},
	}

	for _, tile := range tiles {
		nw := TileToDeg(tile)
		back, err := DegToTile(nw.Lat, nw.Lon, int(tile.Z))
		require.NoError(t, err)
		assert.Equal(t, tile, back, "round trip through NW corner of %v", tile)
	}
}
