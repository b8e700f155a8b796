package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/bullseye/config"
	"github.com/stewi1014/bullseye/scene"
)

const frameInterval = 16 // ms

// GTKHost runs the effect in a GLArea inside a GTK application window.
type GTKHost struct {
	cfg    config.Config
	log    *slog.Logger
	effect *effect

	window   *gtk.ApplicationWindow
	gla      *gtk.GLArea
	start    time.Time
	viewport scene.Size
	quit     context.CancelCauseFunc
}

func NewGTKHost(cfg config.Config, log *slog.Logger) *GTKHost {
	return &GTKHost{
		cfg:    cfg,
		log:    log,
		effect: newEffect(cfg, log),
	}
}

func (h *GTKHost) Size() (scene.Size, bool) {
	if h.gla == nil {
		return scene.Size{}, false
	}

	scale := h.gla.GetScaleFactor()
	return scene.Size{
		Width:  float32(h.gla.GetAllocatedWidth() * scale),
		Height: float32(h.gla.GetAllocatedHeight() * scale),
	}, true
}

func (h *GTKHost) Run(ctx context.Context) error {
	gtk.Init(&os.Args)
	app, err := gtk.ApplicationNew("com.github.stewi1014.bullseye", glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	h.quit = appQuit
	app.Connect("activate", func() {
		defer CatchPanicToContext(appQuit)
		h.activate(app, appContext)
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(func() {
			app.Quit()
		})
	}()
	app.Run(nil)

	appQuit(nil)
	return shutdownCause(appContext)
}

func (h *GTKHost) activate(app *gtk.Application, ctx context.Context) {
	var err error
	h.window, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		h.quit(fmt.Errorf("gtk.ApplicationWindowNew: %w: %w", scene.ErrNoPrimaryWindow, err))
		return
	}

	h.window.SetTitle(h.cfg.Title)
	h.window.SetDefaultSize(h.cfg.Width, h.cfg.Height)
	h.window.Connect("destroy", func() {
		h.quit(nil)
	})

	h.gla, err = gtk.GLAreaNew()
	if err != nil {
		h.quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return
	}

	h.gla.SetRequiredVersion(4, 6)
	h.gla.Connect("realize", h.realize)
	h.gla.Connect("render", h.render)
	h.gla.Connect("resize", h.resize)
	h.gla.Connect("unrealize", h.unrealize)

	h.window.Add(h.gla)
	h.window.ShowAll()

	glib.TimeoutAdd(frameInterval, func() bool {
		if ctx.Err() != nil {
			return false
		}
		h.gla.QueueRender()
		return true
	})
}

func (h *GTKHost) fail(err error) {
	h.log.Error("render window failed", "err", err)
	NewErrorDialog(h.window, err)
	h.quit(err)
}

func (h *GTKHost) realize(gla *gtk.GLArea) {
	defer CatchPanicToContext(h.quit)
	gla.MakeCurrent()
	if err := gla.GetError(); err != nil {
		h.fail(fmt.Errorf("GLArea context: %w", err))
		return
	}

	h.viewport, _ = h.Size()
	err := h.effect.start(h)
	if err != nil {
		h.fail(err)
		return
	}
	h.start = time.Now()
}

func (h *GTKHost) render(gla *gtk.GLArea) bool {
	defer CatchPanicToContext(h.quit)
	if h.effect.driver.State() != scene.Running {
		return true
	}

	gla.AttachBuffers()
	err := h.effect.frame(float32(time.Since(h.start).Seconds()), h.viewport)
	if err != nil {
		h.fail(err)
	}
	return true
}

func (h *GTKHost) resize(gla *gtk.GLArea, width, height int) {
	h.viewport = scene.Size{Width: float32(width), Height: float32(height)}
	h.effect.resize(width, height)
}

func (h *GTKHost) unrealize(gla *gtk.GLArea) {
	gla.MakeCurrent()
	h.effect.stop()
}
