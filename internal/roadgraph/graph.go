// Package roadgraph stores a directed road multigraph loaded from an
// OpenStreetMap extract. Nodes and edges live in arenas addressed by
// integer ids; parallel edges between the same ordered node pair are
// distinguished by a per-pair key.
package roadgraph

import (
	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

// NodeIdx addresses a node in the graph arena.
type NodeIdx int32

// EdgeID addresses an edge in the graph arena.
type EdgeID int32

// Node is a road-network junction or shape point.
type Node struct {
	OSMID int64
	Lat   float64
	Lon   float64
}

// Waypoint returns the node position.
func (n Node) Waypoint() geo.Waypoint {
	return geo.NewWaypoint(n.Lat, n.Lon)
}

// Edge is one directed road segment. LengthM is the geodesic distance
// between its endpoint nodes and is always positive.
type Edge struct {
	From    NodeIdx
	To      NodeIdx
	Key     int
	LengthM float64
	Highway string
}

// Graph is the directed road multigraph. It is mutable during load and
// treated as read-only afterwards.
type Graph struct {
	nodes   []Node
	edges   []Edge
	byOSMID map[int64]NodeIdx
	out     [][]EdgeID
	in      [][]EdgeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{byOSMID: make(map[int64]NodeIdx)}
}

// AddNode inserts a node, deduplicating by OSM id, and returns its index.
func (g *Graph) AddNode(osmID int64, lat, lon float64) NodeIdx {
	if idx, ok := g.byOSMID[osmID]; ok {
		return idx
	}

	idx := NodeIdx(len(g.nodes))
	g.nodes = append(g.nodes, Node{OSMID: osmID, Lat: lat, Lon: lon})
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.byOSMID[osmID] = idx

	return idx
}

// AddEdge inserts a directed edge between two existing nodes. The key is
// the number of edges already present for the ordered pair, so keys for a
// pair grow 0, 1, 2, … in insertion order. Edges between coincident nodes
// are rejected.
func (g *Graph) AddEdge(from, to NodeIdx, highway string) (EdgeID, error) {
	if int(from) >= len(g.nodes) || int(to) >= len(g.nodes) || from < 0 || to < 0 {
		return 0, errors.Wrapf(errors.ErrInvalidParameter, "edge references unknown node %d -> %d", from, to)
	}

	length := g.nodes[from].Waypoint().Distance(g.nodes[to].Waypoint())
	if length <= 0 {
		return 0, errors.Wrapf(errors.ErrInvalidParameter, "edge %d -> %d has zero length", from, to)
	}

	key := 0
	for _, id := range g.out[from] {
		if g.edges[id].To == to {
			key++
		}
	}

	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{From: from, To: to, Key: key, LengthM: length, Highway: highway})
	g.out[from] = append(g.out[from], id)
	g.in[to] = append(g.in[to], id)

	return id, nil
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// Node returns the node at idx.
func (g *Graph) Node(idx NodeIdx) Node {
	return g.nodes[idx]
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id EdgeID) Edge {
	return g.edges[id]
}

// NodeByOSMID looks a node up by its OSM id.
func (g *Graph) NodeByOSMID(osmID int64) (NodeIdx, bool) {
	idx, ok := g.byOSMID[osmID]

	return idx, ok
}

// OutEdges returns the ids of edges leaving the node, in insertion order.
func (g *Graph) OutEdges(n NodeIdx) []EdgeID {
	return g.out[n]
}

// InEdges returns the ids of edges entering the node, in insertion order.
func (g *Graph) InEdges(n NodeIdx) []EdgeID {
	return g.in[n]
}

// Successors returns the ids of nodes reachable over one outgoing edge.
func (g *Graph) Successors(n NodeIdx) []NodeIdx {
	ids := make([]NodeIdx, 0, len(g.out[n]))
	for _, edgeID := range g.out[n] {
		ids = append(ids, g.edges[edgeID].To)
	}

	return ids
}

// Predecessors returns the ids of nodes with one edge into this node.
func (g *Graph) Predecessors(n NodeIdx) []NodeIdx {
	ids := make([]NodeIdx, 0, len(g.in[n]))
	for _, edgeID := range g.in[n] {
		ids = append(ids, g.edges[edgeID].From)
	}

	return ids
}

// HighwayClassCounts returns the number of edges per highway class.
func (g *Graph) HighwayClassCounts() map[string]int {
	counts := make(map[string]int)
	for _, edge := range g.edges {
		counts[edge.Highway]++
	}

	return counts
}
