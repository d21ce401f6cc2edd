package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/npcwander/internal/ai"
	"github.com/udisondev/npcwander/internal/anim"
	"github.com/udisondev/npcwander/internal/config"
	"github.com/udisondev/npcwander/internal/db"
	"github.com/udisondev/npcwander/internal/game/geo"
	"github.com/udisondev/npcwander/internal/model"
	"github.com/udisondev/npcwander/internal/spawn"
	"github.com/udisondev/npcwander/internal/world"
)

const ConfigPath = "config/npcsim.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("NPCWANDER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("npcsim starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"tick_interval", cfg.TickInterval,
		"workers", cfg.Workers)

	grid, w, err := buildScene(cfg.World)
	if err != nil {
		return err
	}

	profiles, err := buildProfiles(cfg)
	if err != nil {
		return err
	}

	repo, closeDB, err := spawnSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	tracker := anim.NewTracker()
	poses := anim.Multi{tracker, anim.NewLogSink(nil)}

	ticks := ai.NewTickManager(cfg.TickInterval, cfg.Workers)
	spawner := spawn.NewManager(profiles, grid, w, ticks, poses, cfg.Seed)

	if err := spawner.LoadSpawns(ctx, repo); err != nil {
		return err
	}
	if err := spawner.SpawnAll(); err != nil {
		// Partial spawns keep running; the failures are already logged per spawn.
		slog.Warn("some spawns failed", "err", err)
	}

	traffic, err := newTraffic(w, cfg.Traffic)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ticks.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("tick manager: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := traffic.Run(gctx, cfg.TickInterval); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("traffic: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulation error: %w", err)
	}

	counts := ticks.Counts()
	slog.Info("npcsim stopped",
		"ticks", ticks.Ticks(),
		"agents", spawner.AgentCount(),
		"patrolling", counts.Patrolling,
		"idle", counts.Idle,
		"disabled", counts.Disabled,
		"poses", tracker.Summary())
	return nil
}

// buildScene creates the navigation grid and the spatial world with static props.
func buildScene(wc config.WorldConfig) (*geo.Grid, *world.World, error) {
	grid, err := geo.NewGrid(wc.MinX, wc.MinZ, wc.Width, wc.Depth, wc.CellSize, wc.GroundY)
	if err != nil {
		return nil, nil, fmt.Errorf("building navigation grid: %w", err)
	}
	for _, r := range wc.Blocked {
		grid.Block(geo.Rect{MinX: r.MinX, MinZ: r.MinZ, MaxX: r.MaxX, MaxZ: r.MaxZ})
	}

	w, err := world.New(world.Bounds{
		MinX:       wc.MinX,
		MinZ:       wc.MinZ,
		Width:      wc.Width,
		Depth:      wc.Depth,
		RegionSize: wc.RegionSize,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("building world: %w", err)
	}
	for _, p := range wc.Props {
		pos := model.Vec3{X: p.Position.X, Y: p.Position.Y, Z: p.Position.Z}
		if _, err := w.Spawn(model.ClassProp, pos, p.Radius, true); err != nil {
			return nil, nil, fmt.Errorf("placing prop: %w", err)
		}
	}

	cols, rows := grid.Size()
	slog.Info("scene built",
		"cells", int(cols)*int(rows),
		"regions", w.RegionCount(),
		"blocked_areas", len(wc.Blocked),
		"props", len(wc.Props))
	return grid, w, nil
}

func buildProfiles(cfg config.Simulation) (map[string]spawn.Profile, error) {
	out := make(map[string]spawn.Profile, len(cfg.Profiles))
	for name, p := range cfg.Profiles {
		params, err := p.Params(cfg.World.MaxY)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		out[name] = spawn.Profile{Params: params, Radius: p.Radius}
	}
	return out, nil
}

// spawnSource returns the database repository when enabled, else the config spawns.
func spawnSource(ctx context.Context, cfg config.Simulation) (spawn.SpawnRepository, func(), error) {
	if !cfg.Database.Enabled {
		points := make([]model.SpawnPoint, 0, len(cfg.Spawns))
		for _, s := range cfg.Spawns {
			points = append(points, model.SpawnPoint{
				Profile:  s.Profile,
				Position: model.Vec3{X: s.Position.X, Y: s.Position.Y, Z: s.Position.Z},
				Count:    s.Count,
			})
		}
		return spawn.NewStaticRepository(points), func() {}, nil
	}

	dsn := cfg.Database.DSN()
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected")

	if err := db.RunMigrations(ctx, dsn); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	return database.Spawns(), database.Close, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
