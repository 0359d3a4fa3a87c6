package roadgraph

import (
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/qedus/osmpbf"

	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
)

// LoadOptions constrains which part of an OSM extract becomes the graph.
type LoadOptions struct {
	// BBox limits nodes to a geodetic rectangle.
	BBox geo.BoundingBox

	// HighwayClasses lists the highway tag values to keep, e.g.
	// {motorway, motorway_link}.
	HighwayClasses []string
}

// roadWay is a filtered OSM way retained between the two decode passes.
type roadWay struct {
	nodeIDs []int64
	highway string
	oneWay  bool
}

// LoadPBF builds the road graph from an OSM PBF extract. The first pass
// collects the ways matching the highway filter, the second pass resolves
// node locations inside the bounding box; edges connect consecutive way
// nodes, with a reverse edge unless the way is one-way.
func LoadPBF(path string, opts LoadOptions, logger *slog.Logger) (*Graph, error) {
	if len(opts.HighwayClasses) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidParameter, "at least one highway class is required")
	}
	classes := make(map[string]struct{}, len(opts.HighwayClasses))
	for _, class := range opts.HighwayClasses {
		classes[class] = struct{}{}
	}

	ways, wanted, err := collectWays(path, classes)
	if err != nil {
		return nil, err
	}

	graph := New()
	if err := addNodes(graph, path, opts.BBox, wanted); err != nil {
		return nil, err
	}

	for _, way := range ways {
		addWayEdges(graph, way)
	}

	logger.Info("road graph loaded",
		slog.String("source", path),
		slog.Int("nodes", graph.NumNodes()),
		slog.Int("edges", graph.NumEdges()),
	)

	return graph, nil
}

// collectWays decodes the extract once, keeping ways whose highway tag is
// in the filter and recording the node ids they reference.
func collectWays(path string, classes map[string]struct{}) ([]roadWay, map[int64]struct{}, error) {
	var ways []roadWay
	wanted := make(map[int64]struct{})

	err := decodePBF(path, func(obj any) {
		way, ok := obj.(*osmpbf.Way)
		if !ok {
			return
		}
		highway, ok := way.Tags["highway"]
		if !ok {
			return
		}
		if _, ok := classes[highway]; !ok {
			return
		}

		nodeIDs := make([]int64, len(way.NodeIDs))
		copy(nodeIDs, way.NodeIDs)
		ways = append(ways, roadWay{
			nodeIDs: nodeIDs,
			highway: highway,
			oneWay:  isOneWay(way.Tags),
		})
		for _, id := range nodeIDs {
			wanted[id] = struct{}{}
		}
	})
	if err != nil {
		return nil, nil, err
	}

	return ways, wanted, nil
}

// addNodes decodes the extract again, adding the referenced nodes that
// fall inside the bounding box.
func addNodes(graph *Graph, path string, bbox geo.BoundingBox, wanted map[int64]struct{}) error {
	return decodePBF(path, func(obj any) {
		node, ok := obj.(*osmpbf.Node)
		if !ok {
			return
		}
		if _, ok := wanted[node.ID]; !ok {
			return
		}
		if !bbox.Contains(geo.NewWaypoint(node.Lat, node.Lon)) {
			return
		}
		graph.AddNode(node.ID, node.Lat, node.Lon)
	})
}

// addWayEdges connects consecutive way nodes that made it into the graph.
// Edge insertion rejects coincident nodes; those segments are skipped.
func addWayEdges(graph *Graph, way roadWay) {
	for i := 0; i < len(way.nodeIDs)-1; i++ {
		from, ok1 := graph.NodeByOSMID(way.nodeIDs[i])
		to, ok2 := graph.NodeByOSMID(way.nodeIDs[i+1])
		if !ok1 || !ok2 {
			continue
		}

		if _, err := graph.AddEdge(from, to, way.highway); err != nil {
			continue
		}
		if !way.oneWay {
			_, _ = graph.AddEdge(to, from, way.highway)
		}
	}
}

// isOneWay reports whether a way carries traffic in tag order only.
// Roundabouts are implicitly one-way.
func isOneWay(tags map[string]string) bool {
	if tags["oneway"] == "yes" {
		return true
	}

	return tags["junction"] == "roundabout"
}

// decodePBF streams every object of the extract through visit.
func decodePBF(path string, visit func(any)) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open OSM extract %s", path)
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return errors.Wrap(err, "start OSM decoder")
	}

	for {
		obj, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "decode OSM extract")
		}
		visit(obj)
	}
}
