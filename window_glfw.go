package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/bullseye/config"
	"github.com/stewi1014/bullseye/scene"
)

// GLFWHost runs the effect in a GLFW window on the calling thread,
// which must be the main OS thread.
type GLFWHost struct {
	cfg    config.Config
	log    *slog.Logger
	effect *effect
	window *glfw.Window
}

func NewGLFWHost(cfg config.Config, log *slog.Logger) *GLFWHost {
	return &GLFWHost{
		cfg:    cfg,
		log:    log,
		effect: newEffect(cfg, log),
	}
}

func (h *GLFWHost) Size() (scene.Size, bool) {
	if h.window == nil {
		return scene.Size{}, false
	}

	width, height := h.window.GetFramebufferSize()
	return scene.Size{Width: float32(width), Height: float32(height)}, true
}

func (h *GLFWHost) Run(ctx context.Context) error {
	err := glfw.Init()
	if err != nil {
		return fmt.Errorf("glfw.Init failed: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if h.cfg.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	window, err := glfw.CreateWindow(h.cfg.Width, h.cfg.Height, h.cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("glfw.CreateWindow failed: %w: %w", scene.ErrNoPrimaryWindow, err)
	}
	defer window.Destroy()
	h.window = window

	window.MakeContextCurrent()
	if h.cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		h.effect.resize(width, height)
	})

	err = h.effect.start(h)
	if err != nil {
		return err
	}
	defer h.effect.stop()

	glfw.SetTime(0)
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			return shutdownCause(ctx)
		}

		glfw.PollEvents()

		viewport, _ := h.Size()
		err := h.effect.frame(float32(glfw.GetTime()), viewport)
		if err != nil {
			return err
		}

		window.SwapBuffers()
	}

	h.log.Info("window closed")
	return nil
}

// shutdownCause is nil for an ordinary cancellation.
func shutdownCause(ctx context.Context) error {
	err := context.Cause(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
