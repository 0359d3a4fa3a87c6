// Package horizon computes the electronic horizon: for each vehicle pose,
// the bounded subgraph of the road network ahead of and behind the pose.
package horizon

import (
	"context"
	"log/slog"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/roadgraph"
)

// Config bounds the horizon expansion in meters of accumulated arc length.
type Config struct {
	ForwardBudget  float64
	BackwardBudget float64
}

// DefaultConfig returns the standard driving horizon: a kilometer ahead,
// 250 m behind.
func DefaultConfig() Config {
	return Config{ForwardBudget: 1000, BackwardBudget: 250}
}

// Engine map-matches poses onto a road graph and expands their horizons.
// The graph is treated as read-only.
type Engine struct {
	graph  *roadgraph.Graph
	config Config
	logger *slog.Logger
}

// New validates the budgets and returns an engine over the graph.
func New(graph *roadgraph.Graph, config Config, logger *slog.Logger) (*Engine, error) {
	if config.ForwardBudget < 0 || config.BackwardBudget < 0 {
		return nil, errors.Wrapf(errors.ErrInvalidParameter, "horizon budgets must be non-negative, got %v/%v",
			config.ForwardBudget, config.BackwardBudget)
	}

	return &Engine{graph: graph, config: config, logger: logger}, nil
}

type direction int

const (
	forward direction = iota
	backward
)

type queueItem struct {
	node roadgraph.NodeIdx
	dist float64
	dir  direction
}

// At computes the ego graph for one pose. The pose is matched onto the
// nearest edge and projected onto it; expansion then walks successors
// forward and predecessors backward until each direction's budget is
// exhausted. A graph without edges fails with ErrOffNetwork, which is
// fatal to the pose only, not to the stream; otherwise every pose is
// matched to its nearest edge, with no limit on the match distance.
func (e *Engine) At(pose geo.Waypoint) (*EgoGraph, error) {
	egoEdgeID, matchDist, err := e.graph.NearestEdge(pose.Lat, pose.Lon)
	if err != nil {
		return nil, err
	}
	egoEdge := e.graph.Edge(egoEdgeID)

	tail := e.graph.Node(egoEdge.From)
	head := e.graph.Node(egoEdge.To)
	egoPose := geo.ProjectOntoSegment(tail.Waypoint(), head.Waypoint(), pose)

	ego := &EgoGraph{
		Nodes:   map[roadgraph.NodeIdx]roadgraph.Node{egoEdge.From: tail, egoEdge.To: head},
		Edges:   map[roadgraph.EdgeID]roadgraph.Edge{egoEdgeID: egoEdge},
		EgoEdge: egoEdgeID,
		EgoPose: egoPose,
	}

	queue := []queueItem{
		{node: egoEdge.To, dist: egoPose.Distance(head.Waypoint()), dir: forward},
		{node: egoEdge.From, dist: egoPose.Distance(tail.Waypoint()), dir: backward},
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if item.dist >= e.budget(item.dir) {
			continue
		}

		for _, edgeID := range e.edgesInDirection(item.node, item.dir) {
			edge := e.graph.Edge(edgeID)
			neighbor := edge.To
			if item.dir == backward {
				neighbor = edge.From
			}
			if _, ok := ego.Nodes[neighbor]; ok {
				continue
			}

			ego.Nodes[neighbor] = e.graph.Node(neighbor)
			ego.Edges[edgeID] = edge
			queue = append(queue, queueItem{node: neighbor, dist: item.dist + edge.LengthM, dir: item.dir})
		}
	}

	e.logger.Debug("horizon computed",
		slog.Float64("match_dist_m", matchDist),
		slog.Int("nodes", ego.NumNodes()),
		slog.Int("edges", ego.NumEdges()),
	)

	return ego, nil
}

// Result pairs a pose index with its horizon or its per-pose failure.
type Result struct {
	Index int
	Ego   *EgoGraph
	Err   error
}

// AtAll computes horizons for a pose sequence in index order. Off-network
// poses surface in their Result and processing continues; cancellation
// between poses discards the partial stream.
func (e *Engine) AtAll(ctx context.Context, poses []geo.Waypoint) ([]Result, error) {
	results := make([]Result, 0, len(poses))
	for i, pose := range poses {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "horizon stream canceled")
		}

		ego, err := e.At(pose)
		if err != nil {
			e.logger.Warn("pose skipped",
				slog.Int("index", i),
				slog.Any("error", err),
			)
		}
		results = append(results, Result{Index: i, Ego: ego, Err: err})
	}

	return results, nil
}

func (e *Engine) budget(dir direction) float64 {
	if dir == forward {
		return e.config.ForwardBudget
	}

	return e.config.BackwardBudget
}

func (e *Engine) edgesInDirection(node roadgraph.NodeIdx, dir direction) []roadgraph.EdgeID {
	if dir == forward {
		return e.graph.OutEdges(node)
	}

	return e.graph.InEdges(node)
}
