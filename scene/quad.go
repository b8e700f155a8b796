package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrNoPrimaryWindow = errors.New("no primary window")

// Size is a viewport size in framebuffer pixels.
type Size struct {
	Width, Height float32
}

func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

func (s Size) Vec2() mgl32.Vec2 {
	return mgl32.Vec2{s.Width, s.Height}
}

func (s Size) Scale() mgl32.Vec3 {
	return mgl32.Vec3{s.Width, s.Height, 1}
}

// Window reports the current size of the primary window.
// ok is false when there is no window to report on.
type Window interface {
	Size() (size Size, ok bool)
}

// Quad is a mesh drawn with a material and scaled in both axes.
type Quad struct {
	Mesh     *Mesh
	Material Handle
	Scale    mgl32.Vec3
}

func (q *Quad) Model() mgl32.Mat4 {
	return mgl32.Scale3D(q.Scale.X(), q.Scale.Y(), q.Scale.Z())
}

func primarySize(window Window) (Size, error) {
	if window == nil {
		return Size{}, ErrNoPrimaryWindow
	}
	size, ok := window.Size()
	if !ok {
		return Size{}, ErrNoPrimaryWindow
	}
	if !size.Valid() {
		return Size{}, fmt.Errorf("%w: window has size %vx%v", ErrNoPrimaryWindow, size.Width, size.Height)
	}
	return size, nil
}

// QuadManager keeps a single quad covering the window.
type QuadManager struct {
	Log *slog.Logger
}

func (m *QuadManager) log() *slog.Logger {
	if m.Log == nil {
		return slog.Default()
	}
	return m.Log
}

// Initialize spawns the full-screen quad at the current window size.
func (m *QuadManager) Initialize(quads *Registry[Quad], window Window, material Handle) (Handle, error) {
	size, err := primarySize(window)
	if err != nil {
		return 0, err
	}

	h := quads.Add(Quad{
		Mesh:     UnitRectangle(),
		Material: material,
		Scale:    size.Scale(),
	})
	return h, nil
}

// Resize scales the full-screen quad to size. It reports whether a quad was changed.
//
// With no quad it does nothing. With several, only the oldest is resized.
func (m *QuadManager) Resize(quads *Registry[Quad], size Size) bool {
	h, quad, ok := quads.First()
	if !ok {
		return false
	}

	if !size.Valid() {
		m.log().Debug("ignoring degenerate resize", "width", size.Width, "height", size.Height)
		return false
	}

	if n := quads.Len(); n > 1 {
		m.log().Warn("more than one full-screen quad", "count", n, "resized", h)
	}

	quad.Scale = size.Scale()
	return true
}
