// Command horizon replays a recorded drive trace against a road graph
// loaded from an OSM extract and computes the electronic horizon at every
// pose.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.uber.org/fx"

	"github.com/ssharma1991/autonomous-car-map-tools/config"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/horizon"
	logs "github.com/ssharma1991/autonomous-car-map-tools/internal/infra/log"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/roadgraph"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/trace"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/util"
)

type runParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func main() {
	app := fx.New(
		fx.Provide(
			config.New,
			logs.New,
		),
		fx.Invoke(run),
	)
	if err := app.Err(); err != nil {
		slog.Error("horizon replay failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(params runParams) error {
	ctx := context.Background()
	start := time.Now()
	cfg := params.Config
	logger := params.Logger

	samples, err := trace.ReadFile(cfg.Horizon.TracePath)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return errors.Wrap(errors.ErrEmpty, "drive trace holds no samples")
	}

	// High-rate traces are thinned to ~1 Hz before horizon computation.
	samples = trace.Downsample(samples)
	poses := make([]geo.Waypoint, 0, len(samples))
	for _, sample := range samples {
		poses = append(poses, sample.Waypoint)
	}
	logger.Info("drive trace loaded",
		slog.String("path", cfg.Horizon.TracePath),
		slog.Int("poses", len(poses)),
	)

	bbox, err := geo.NewBoundingBox(poses)
	if err != nil {
		return err
	}

	graph, err := roadgraph.LoadPBF(cfg.Horizon.OSMPath, roadgraph.LoadOptions{
		BBox:           bbox.Pad(0.01),
		HighwayClasses: cfg.Horizon.HighwayClasses,
	}, logger)
	if err != nil {
		return err
	}
	for class, count := range graph.HighwayClassCounts() {
		logger.Info("highway class", slog.String("class", class), slog.Int("edges", count))
	}

	engine, err := horizon.New(graph, horizon.Config{
		ForwardBudget:  cfg.Horizon.ForwardBudget,
		BackwardBudget: cfg.Horizon.BackwardBudget,
	}, logger)
	if err != nil {
		return err
	}

	results, err := engine.AtAll(ctx, poses)
	if err != nil {
		return err
	}

	var offNetwork, totalNodes, totalEdges int
	for _, result := range results {
		if result.Err != nil {
			offNetwork++

			continue
		}
		totalNodes += result.Ego.NumNodes()
		totalEdges += result.Ego.NumEdges()
	}

	matched := len(results) - offNetwork
	summary := logger.With(
		slog.Int("poses", len(results)),
		slog.Int("off_network", offNetwork),
	)
	if matched > 0 {
		summary = summary.With(
			slog.Float64("avg_ego_nodes", float64(totalNodes)/float64(matched)),
			slog.Float64("avg_ego_edges", float64(totalEdges)/float64(matched)),
		)
	}
	summary.Info("horizon replay complete", slog.String("elapsed", util.FormatDuration(time.Since(start))))

	return nil
}
