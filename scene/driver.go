package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/stewi1014/bullseye/programs"
)

var (
	ErrNotRunning     = errors.New("driver is not running")
	ErrAlreadyRunning = errors.New("driver is already running")
)

type State int

const (
	Uninitialized State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Driver runs the per-frame update of the full-screen effect.
// It borrows the world it is handed on each call and keeps none of it.
type Driver struct {
	Quads   QuadManager
	Updater Updater
	Log     *slog.Logger

	state State
}

func NewDriver(log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		Quads:   QuadManager{Log: log},
		Updater: Updater{Log: log},
		Log:     log,
	}
}

func (d *Driver) log() *slog.Logger {
	if d.Log == nil {
		return slog.Default()
	}
	return d.Log
}

func (d *Driver) State() State {
	return d.state
}

// Startup registers material and the full-screen quad that draws it.
// The material starts at time zero with the window's resolution.
func (d *Driver) Startup(world *World, window Window, material programs.ShadeMaterial) error {
	if d.state == Running {
		return ErrAlreadyRunning
	}

	size, err := primarySize(window)
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}

	material.Time = 0
	material.Resolution = size.Vec2()
	mh := world.Materials.Add(material)

	qh, err := d.Quads.Initialize(world.Quads, window, mh)
	if err != nil {
		world.Materials.Remove(mh)
		return fmt.Errorf("startup failed: %w", err)
	}

	d.state = Running
	d.log().Info("full-screen quad ready", "quad", qh, "material", mh, "width", size.Width, "height", size.Height)
	return nil
}

// Update applies pending resizes in arrival order, then advances material time to elapsed seconds.
func (d *Driver) Update(world *World, elapsed float32) error {
	if d.state != Running {
		return ErrNotRunning
	}

	world.Resizes.Drain(func(size Size) {
		d.Quads.Resize(world.Quads, size)
		d.Updater.Resolution(world.Materials, size)
	})

	d.Updater.Tick(world.Materials, elapsed)
	return nil
}
