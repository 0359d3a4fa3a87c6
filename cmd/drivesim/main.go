// Command drivesim simulates a ground-vehicle drive: it routes the
// configured waypoints, resamples the route into a GNSS-like trace, writes
// the trace CSV, and optionally assembles a basemap mosaic of the area.
package main

import (
	"context"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/ssharma1991/autonomous-car-map-tools/config"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/drive"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/errors"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/geo"
	logs "github.com/ssharma1991/autonomous-car-map-tools/internal/infra/log"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/mosaic"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/provider"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/route"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/trace"
	"github.com/ssharma1991/autonomous-car-map-tools/internal/util"
)

type runParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Builder   *route.Builder
	Assembler *mosaic.Assembler
}

func main() {
	app := fx.New(
		injectInfra(),
		injectPipeline(),
		fx.Invoke(run),
	)
	if err := app.Err(); err != nil {
		slog.Error("drive simulation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		newTileCache,
	)
}

func injectPipeline() fx.Option {
	return fx.Provide(
		newProviderClient,
		newRouteBuilder,
		newAssembler,
	)
}

func newTileCache(cfg *config.Config, logger *slog.Logger) (*provider.TileCache, error) {
	return provider.NewTileCache(cfg.Cache.Root, logger)
}

func newProviderClient(cfg *config.Config, cache *provider.TileCache, logger *slog.Logger) *provider.Client {
	return provider.New(cfg.Provider, cache, logger)
}

func newRouteBuilder(client *provider.Client, logger *slog.Logger) *route.Builder {
	return route.NewBuilder(client, logger)
}

func newAssembler(client *provider.Client, logger *slog.Logger) *mosaic.Assembler {
	return mosaic.NewAssembler(client, logger)
}

func run(params runParams) error {
	ctx := context.Background()
	start := time.Now()
	cfg := params.Config
	logger := params.Logger.With(slog.String("run_id", uuid.New().String()))

	waypoints := make([]geo.Waypoint, 0, len(cfg.Drive.Waypoints))
	for _, wp := range cfg.Drive.Waypoints {
		waypoints = append(waypoints, geo.NewWaypoint(wp.Lat, wp.Lon))
	}

	line, err := params.Builder.Build(ctx, waypoints)
	if err != nil {
		return err
	}

	resampler, err := drive.NewResampler(line, cfg.Drive.Speed, cfg.Drive.Freq, cfg.Drive.Epoch)
	if err != nil {
		return err
	}
	samples := resampler.All()
	if len(samples) == 0 {
		return errors.Wrap(errors.ErrEmpty, "route produced no drive samples")
	}

	if err := trace.WriteFile(cfg.Drive.TracePath, samples); err != nil {
		return err
	}
	logger.Info("drive trace written",
		slog.String("path", cfg.Drive.TracePath),
		slog.Int("samples", len(samples)),
	)

	metrics, err := trace.ComputeMetrics(line, samples)
	if err != nil {
		return err
	}
	metrics.LogTo(logger)

	if cfg.Mosaic.Enabled {
		if err := assembleBasemap(ctx, params, waypoints); err != nil {
			return err
		}
	}

	logger.Info("virtual drive complete", slog.String("elapsed", util.FormatDuration(time.Since(start))))

	return nil
}

func assembleBasemap(ctx context.Context, params runParams, waypoints []geo.Waypoint) error {
	cfg := params.Config

	bbox, err := geo.NewBoundingBox(waypoints)
	if err != nil {
		return err
	}

	zoom := mosaic.AutoZoom(bbox)
	if cfg.Mosaic.Zoom != nil {
		zoom = *cfg.Mosaic.Zoom
	}

	stitched, err := params.Assembler.Assemble(ctx, bbox, zoom)
	if err != nil {
		return err
	}

	file, err := os.Create(cfg.Mosaic.OutputPath)
	if err != nil {
		return errors.Wrap(err, "create mosaic output")
	}
	defer file.Close()

	if err := png.Encode(file, stitched.Image); err != nil {
		return errors.Wrap(err, "encode mosaic")
	}

	info, err := file.Stat()
	if err != nil {
		return errors.Wrap(err, "stat mosaic output")
	}
	params.Logger.Info("basemap mosaic written",
		slog.String("path", cfg.Mosaic.OutputPath),
		slog.Int("zoom", stitched.Zoom),
		slog.String("size", util.FormatBytes(info.Size())),
	)

	return nil
}
