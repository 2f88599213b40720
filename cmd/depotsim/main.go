// Profiling:
// go build ./cmd/depotsim
// ./depotsim -ticks 20 -profile cpu
// go tool pprof -http=":8000" ./depotsim cpu.pprof

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/TheBitDrifter/depot"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

type frame struct {
	tick int
	dt   float64
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settingsPath := flag.String("settings", "", "settings file (.toml, .yaml or .yml)")
	ticks := flag.Int("ticks", 10, "number of ticks to simulate")
	movers := flag.Int("movers", 1000, "initial number of moving entities")
	spawnEvery := flag.Int("spawn-every", 4, "ticks between spawner generations (0 disables)")
	mode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	switch *mode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *mode)
	}

	settings := &depot.Settings{
		InitialCapacity: 64,
		MatchCache:      depot.MatchCacheSettings{Enabled: true, Capacity: 128},
		Logging:         depot.LoggingSettings{Level: "info", Format: "console"},
	}
	if *settingsPath != "" {
		loaded, err := depot.LoadSettings(*settingsPath)
		if err != nil {
			return err
		}
		settings = loaded
	}

	log, err := newLogger(settings.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	settings.Apply()
	depot.Config.SetLogger(log.Named("depot"))

	world := depot.Factory.NewWorld(bootstrap, &simulation{movers: *movers, spawnEvery: *spawnEvery})
	defer world.Close()
	world.Flush()

	log.Info("world ready",
		zap.Int("entities", world.EntityCount()),
		zap.Int("systems", world.SystemCount()),
	)

	position := depot.FactoryNewComponent[Position]()
	velocity := depot.FactoryNewComponent[Velocity]()
	moving := depot.QueryOf(position, velocity)

	start := time.Now()
	for tick := range *ticks {
		world.RunSystems(&frame{tick: tick, dt: 1.0 / 60})
		pending := world.Commands().Len()
		world.Flush()
		log.Debug("tick",
			zap.Int("tick", tick),
			zap.Int("applied", pending),
			zap.Int("entities", world.EntityCount()),
		)
	}

	children, _ := world.RelationshipSources("ChildOf", 0)
	log.Info("simulation finished",
		zap.Int("ticks", *ticks),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("entities", world.EntityCount()),
		zap.Int("moving", world.CountMatching(moving)),
		zap.Int("children_of_root", children.Len()),
	)
	return nil
}

type simulation struct {
	movers     int
	spawnEvery int
}

// bootstrap seeds a root entity, a field of movers parented to it, and the
// systems that drive them.
func bootstrap(cmds *depot.CommandQueue, ctx any) {
	sim := ctx.(*simulation)
	position := depot.FactoryNewComponent[Position]()
	velocity := depot.FactoryNewComponent[Velocity]()
	root := depot.FactoryNewTag("Root")
	spawner := depot.FactoryNewTag("Spawner")

	rootID := cmds.ReserveEntity()
	root.Enqueue(cmds, rootID)
	position.Enqueue(cmds, rootID, Position{})

	for i := range sim.movers {
		e := cmds.ReserveEntity()
		position.Enqueue(cmds, e, Position{X: float64(i)})
		velocity.Enqueue(cmds, e, Velocity{X: 1, Y: float64(i%3) - 1})
		cmds.InsertRelationship(e, "ChildOf", rootID)
		if i%100 == 0 {
			spawner.Enqueue(cmds, e)
		}
	}

	cmds.RegisterSystem(depot.QueryOf(position, velocity), func(_ *depot.CommandQueue, it *depot.QueryIterator, ctx any) {
		f := ctx.(*frame)
		for it.Next() {
			pos := position.FromIterator(it, 0)
			vel := velocity.FromIterator(it, 1)
			pos.X += vel.X * f.dt
			pos.Y += vel.Y * f.dt
		}
	})

	// Roots are excluded so the spawner tree only grows from movers.
	spawners := depot.QueryOf(spawner, position).WithoutComponents(root)
	cmds.RegisterSystem(spawners, func(cmds *depot.CommandQueue, it *depot.QueryIterator, ctx any) {
		f := ctx.(*frame)
		if sim.spawnEvery <= 0 || f.tick%sim.spawnEvery != 0 {
			return
		}
		for it.Next() {
			parent := it.EntityID()
			pos := position.FromIterator(it, 1)
			child := cmds.ReserveEntity()
			position.Enqueue(cmds, child, *pos)
			velocity.Enqueue(cmds, child, Velocity{X: -1})
			cmds.InsertRelationship(child, "ChildOf", parent)
		}
	})
}

func newLogger(cfg depot.LoggingSettings) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
