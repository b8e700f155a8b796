package scene

import (
	"log/slog"

	"github.com/stewi1014/bullseye/programs"
)

// Updater writes per-frame uniform state into every live material.
type Updater struct {
	Log *slog.Logger
}

func (u *Updater) log() *slog.Logger {
	if u.Log == nil {
		return slog.Default()
	}
	return u.Log
}

// Tick sets the time of every material to elapsed seconds.
// A material's time never moves backwards.
func (u *Updater) Tick(materials *Registry[programs.ShadeMaterial], elapsed float32) {
	if n := materials.Len(); n > 1 {
		u.log().Debug("updating several materials", "count", n)
	}

	materials.Each(func(_ Handle, m *programs.ShadeMaterial) {
		if elapsed > m.Time {
			m.Time = elapsed
		}
	})
}

// Resolution sets the resolution of every material.
func (u *Updater) Resolution(materials *Registry[programs.ShadeMaterial], size Size) {
	if !size.Valid() {
		return
	}

	materials.Each(func(_ Handle, m *programs.ShadeMaterial) {
		m.Resolution = size.Vec2()
	})
}
