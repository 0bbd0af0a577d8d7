// Package sandbox runs the demo simulation shared by the ebiten game and the
// OpenGL binary.
package sandbox

import (
	"flag"
	"fmt"
	"log"

	"github.com/milk9111/instanced/ecs"
	"github.com/milk9111/instanced/ecs/component"
	"github.com/milk9111/instanced/ecs/entity"
	"github.com/milk9111/instanced/ecs/system"
	"github.com/milk9111/instanced/instance"
	"github.com/milk9111/instanced/prefabs"
	"github.com/milk9111/instanced/render"
)

type Config struct {
	Scene  string
	Models string
	Debug  bool
	Seed   int64
	// Drifters replaces every drifter group's count when not negative.
	Drifters int
}

// RegisterFlags binds the shared command-line flags into a Config.
func RegisterFlags(fs *flag.FlagSet) *Config {
	cfg := &Config{Models: "models.yaml"}
	fs.StringVar(&cfg.Scene, "scene", "scene.yaml", "scene file under prefabs/")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging and start with the physics overlay on")
	fs.Int64Var(&cfg.Seed, "seed", 0, "drifter placement seed (0 keeps the scene's)")
	fs.IntVar(&cfg.Drifters, "drifters", -1, "drifters per scene group (-1 keeps the scene's)")
	return cfg
}

type Sandbox struct {
	cfg  Config
	keys system.KeySource

	Registry *instance.Registry
	Layout   *instance.VertexLayout
	World    *ecs.World
	Scene    *prefabs.SceneSpec

	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	spin      *system.SpinSystem
	batch     *system.BatchSystem
	player    ecs.Entity

	watcher *prefabs.Watcher
	debug   bool
	tick    int
}

// New loads the model registry and spawns the configured scene. The registry
// is fixed for the sandbox's lifetime.
func New(cfg Config, keys system.KeySource) (*Sandbox, error) {
	if cfg.Models == "" {
		cfg.Models = "models.yaml"
	}
	if cfg.Scene == "" {
		cfg.Scene = "scene.yaml"
	}

	reg, err := prefabs.LoadRegistry(cfg.Models)
	if err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}

	s := &Sandbox{
		cfg:      cfg,
		keys:     keys,
		Registry: reg,
		Layout:   instance.NewVertexLayout(reg),
		World:    ecs.NewWorld(),
		debug:    cfg.Debug,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	if cfg.Debug {
		log.Printf("sandbox: %d models, %d layout vertices, %d entities", reg.Len(), s.Layout.Vertices(), s.World.Len())
	}
	return s, nil
}

func (s *Sandbox) load() error {
	scene, err := prefabs.LoadSceneSpec(s.cfg.Scene)
	if err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}

	world := ecs.NewWorld()
	opts := entity.SceneOptions{Seed: s.cfg.Seed}
	if s.cfg.Drifters >= 0 {
		opts.DrifterCount = s.cfg.Drifters
		opts.OverrideCount = true
	}
	spawned, err := entity.SpawnScene(world, s.Registry, scene, opts)
	if err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}

	dt := 1.0 / float64(scene.TickRate)
	s.physics = system.NewPhysicsSystem(dt, scene.Damping)
	s.physics.SetDebug(s.cfg.Debug)
	s.spin = system.NewSpinSystem(dt)
	s.batch = system.NewBatchSystem()
	s.scheduler = ecs.NewScheduler(
		system.NewInputSystem(s.keys),
		system.NewControlSystem(),
		s.spin,
		s.physics,
		system.NewCameraSystem(),
		s.batch,
	)

	s.World = world
	s.Scene = scene
	s.player = spawned.Player
	return nil
}

// Reload re-reads the scene, its prefabs and scripts, then respawns. On
// failure the running scene is kept.
func (s *Sandbox) Reload() error {
	prevWorld, prevScene, prevPlayer := s.World, s.Scene, s.player
	prevPhysics, prevSpin, prevBatch, prevScheduler := s.physics, s.spin, s.batch, s.scheduler
	if err := s.load(); err != nil {
		s.World, s.Scene, s.player = prevWorld, prevScene, prevPlayer
		s.physics, s.spin, s.batch, s.scheduler = prevPhysics, prevSpin, prevBatch, prevScheduler
		return err
	}
	entity.Clear(prevWorld)
	prevPhysics.Reset()
	log.Printf("sandbox: reloaded scene %q (%d entities)", s.Scene.Name, s.World.Len())
	return nil
}

// Tick advances the simulation one step and rebuilds the instance batch.
func (s *Sandbox) Tick() {
	s.pollWatcher()
	s.tick++
	s.scheduler.Update(s.World)
	s.handleEvents()
}

func (s *Sandbox) handleEvents() {
	for _, evt := range s.World.Events().Drain() {
		switch evt.Type {
		case ecs.EventToggleDebug:
			s.debug = !s.debug
		case ecs.EventSnapshot:
			s.CopySnapshot()
		case ecs.EventBodyRemoved:
			if s.cfg.Debug {
				log.Printf("sandbox: body removed for %v", evt.Data)
			}
		}
	}
}

// Batch is the instance batch built by the latest Tick.
func (s *Sandbox) Batch() *instance.Batch {
	return s.batch.Latest()
}

func (s *Sandbox) Physics() *system.PhysicsSystem {
	return s.physics
}

// Debug reports whether the physics overlay is on.
func (s *Sandbox) Debug() bool {
	return s.debug
}

func (s *Sandbox) Ticks() int {
	return s.tick
}

func (s *Sandbox) Player() ecs.Entity {
	return s.player
}

// Drifters counts the spawned non-player entities.
func (s *Sandbox) Drifters() int {
	return len(s.World.Query(component.DrifterTagComponent.Kind()))
}

// View centres on the first camera in the world.
func (s *Sandbox) View(width, height int) render.View {
	v := render.View{Zoom: s.Scene.Camera.Zoom, Width: width, Height: height}
	if e, ok := s.World.First(component.CameraComponent.Kind()); ok {
		cam, _ := ecs.Get(s.World, e, component.CameraComponent)
		v.CenterX, v.CenterY = cam.X, cam.Y
		if cam.Zoom > 0 {
			v.Zoom = cam.Zoom
		}
	}
	return v
}
