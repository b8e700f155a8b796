package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stewi1014/bullseye/config"
	"github.com/stewi1014/bullseye/programs"
	"github.com/stewi1014/bullseye/scene"
)

// effect is the part of a host shared between windowing backends:
// the world it owns, the driver updating it, and the renderer drawing it.
type effect struct {
	cfg config.Config
	log *slog.Logger

	world    *scene.World
	driver   *scene.Driver
	renderer *Renderer
}

func newEffect(cfg config.Config, log *slog.Logger) *effect {
	return &effect{
		cfg:    cfg,
		log:    log,
		world:  scene.NewWorld(),
		driver: scene.NewDriver(log),
	}
}

func (e *effect) material() programs.ShadeMaterial {
	var m programs.ShadeMaterial
	if e.cfg.Shader != "" {
		m.Shader = programs.ShaderRef{
			FS:   os.DirFS(filepath.Dir(e.cfg.Shader)),
			Path: filepath.Base(e.cfg.Shader),
		}
	}
	return m
}

// start runs once the host's GL context is current and window reports its size.
func (e *effect) start(window scene.Window) error {
	renderer, err := NewRenderer(e.log, e.cfg.Debug)
	if err != nil {
		return err
	}

	material := e.material()
	program, err := programs.Build(&material, material.Uniforms)
	if err != nil {
		return fmt.Errorf("building program failed: %w", err)
	}

	err = renderer.LoadProgram(program)
	if err != nil {
		return err
	}

	err = e.driver.Startup(e.world, window, material)
	if err != nil {
		renderer.Delete()
		return err
	}

	e.renderer = renderer
	return nil
}

func (e *effect) resize(width, height int) {
	e.world.Resizes.Push(float32(width), float32(height))
}

// frame updates the world to elapsed seconds and draws it.
func (e *effect) frame(elapsed float32, viewport scene.Size) error {
	err := e.driver.Update(e.world, elapsed)
	if err != nil {
		return err
	}

	e.renderer.Draw(e.world, viewport)
	return nil
}

func (e *effect) stop() {
	if e.renderer != nil {
		e.renderer.Delete()
		e.renderer = nil
	}
}
