package roadgraph

import (
	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

// NearestEdge returns the edge geometrically closest to the position along
// with the distance to its closest on-edge point in meters. Ties resolve
// to the lowest edge id; callers must not rely on a specific choice. An
// empty graph yields ErrOffNetwork.
//
// The scan is linear over the edge arena, which is adequate for the
// bounding-box-scoped graphs this store loads.
func (g *Graph) NearestEdge(lat, lon float64) (EdgeID, float64, error) {
	if len(g.edges) == 0 {
		return 0, 0, errors.Wrapf(errors.ErrOffNetwork, "no edges near (%v, %v)", lat, lon)
	}

	pose := geo.NewWaypoint(lat, lon)
	best := EdgeID(0)
	bestDist := -1.0

	for id, edge := range g.edges {
		projected := geo.ProjectOntoSegment(
			g.nodes[edge.From].Waypoint(),
			g.nodes[edge.To].Waypoint(),
			pose,
		)
		dist := pose.Distance(projected)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = EdgeID(id)
		}
	}

	return best, bestDist, nil
}
