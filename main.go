package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/stewi1014/bullseye/config"
)

func init() {
	// GLFW and GTK both require the main OS thread.
	runtime.LockOSThread()
}

// Host owns the window, the GL context and the frame loop.
type Host interface {
	Run(ctx context.Context) error
}

func main() {
	cfg, cfgErr := config.Load(config.File)
	log := newLogger(cfg)
	slog.SetDefault(log)
	if cfgErr != nil {
		log.Error("loading configuration failed", "err", cfgErr)
		os.Exit(1)
	}

	mainContext, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var host Host
	switch cfg.Host {
	case config.HostGTK:
		host = NewGTKHost(cfg, log)
	default:
		host = NewGLFWHost(cfg, log)
	}

	err := host.Run(mainContext)
	stop()
	if err != nil {
		log.Error("render loop stopped", "host", cfg.Host, "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
