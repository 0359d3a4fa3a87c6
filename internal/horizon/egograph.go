package horizon

import (
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/roadgraph"
)

// EgoGraph is the pose-local subgraph of the road network: the edge
// carrying the vehicle, the projected ego pose on it, and every edge
// reachable within the expansion budgets. Nodes and edges keep the ids of
// the source graph; attributes are copied so the ego graph can outlive it.
type EgoGraph struct {
	Nodes   map[roadgraph.NodeIdx]roadgraph.Node
	Edges   map[roadgraph.EdgeID]roadgraph.Edge
	EgoEdge roadgraph.EdgeID
	EgoPose geo.Waypoint
}

// NumNodes returns the node count.
func (eg *EgoGraph) NumNodes() int {
	return len(eg.Nodes)
}

// NumEdges returns the edge count.
func (eg *EgoGraph) NumEdges() int {
	return len(eg.Edges)
}

// Segments flattens the ego graph into endpoint pairs, one per edge, the
// shape map renderers consume.
func (eg *EgoGraph) Segments() [][2]geo.Waypoint {
	segments := make([][2]geo.Waypoint, 0, len(eg.Edges))
	for _, edge := range eg.Edges {
		segments = append(segments, [2]geo.Waypoint{
			eg.Nodes[edge.From].Waypoint(),
			eg.Nodes[edge.To].Waypoint(),
		})
	}

	return segments
}
