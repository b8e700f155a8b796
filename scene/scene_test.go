package scene

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/bullseye/programs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	size Size
	ok   bool
}

func (w *fakeWindow) Size() (Size, bool) {
	return w.size, w.ok
}

func window(width, height float32) *fakeWindow {
	return &fakeWindow{size: Size{Width: width, Height: height}, ok: true}
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func onlyQuad(t *testing.T, world *World) *Quad {
	t.Helper()
	require.Equal(t, 1, world.Quads.Len())
	_, q, _ := world.Quads.First()
	return q
}

func onlyMaterial(t *testing.T, world *World) *programs.ShadeMaterial {
	t.Helper()
	require.Equal(t, 1, world.Materials.Len())
	_, m, _ := world.Materials.First()
	return m
}

func TestQuadInitialize(t *testing.T) {
	quads := NewRegistry[Quad]()
	m := &QuadManager{}

	h, err := m.Initialize(quads, window(1200, 1200), 4)
	require.NoError(t, err)

	q, ok := quads.Get(h)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1200, 1200, 1}, q.Scale)
	assert.Equal(t, Handle(4), q.Material)
	assert.Same(t, UnitRectangle(), q.Mesh)
}

func TestQuadInitializeNoWindow(t *testing.T) {
	m := &QuadManager{}
	for name, w := range map[string]Window{
		"nil":    nil,
		"absent": &fakeWindow{},
		"empty":  window(0, 600),
	} {
		quads := NewRegistry[Quad]()
		_, err := m.Initialize(quads, w, 1)
		assert.ErrorIs(t, err, ErrNoPrimaryWindow, name)
		assert.Equal(t, 0, quads.Len(), name)
	}
}

func TestQuadResize(t *testing.T) {
	var buf bytes.Buffer
	quads := NewRegistry[Quad]()
	m := &QuadManager{Log: testLogger(&buf)}

	h, err := m.Initialize(quads, window(1200, 1200), 1)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.True(t, m.Resize(quads, Size{800, 600}))
		q, _ := quads.Get(h)
		assert.Equal(t, mgl32.Vec3{800, 600, 1}, q.Scale)
	}
	assert.Empty(t, buf.String())

	assert.False(t, m.Resize(quads, Size{0, 0}))
	q, _ := quads.Get(h)
	assert.Equal(t, mgl32.Vec3{800, 600, 1}, q.Scale)
}

func TestQuadResizeAbsent(t *testing.T) {
	quads := NewRegistry[Quad]()
	m := &QuadManager{}

	assert.False(t, m.Resize(quads, Size{800, 600}))
	assert.Equal(t, 0, quads.Len())

	assert.False(t, m.Resize(nil, Size{800, 600}))
}

func TestQuadResizeSeveral(t *testing.T) {
	var buf bytes.Buffer
	quads := NewRegistry[Quad]()
	m := &QuadManager{Log: testLogger(&buf)}

	first := quads.Add(Quad{Mesh: UnitRectangle(), Scale: mgl32.Vec3{1, 1, 1}})
	second := quads.Add(Quad{Mesh: UnitRectangle(), Scale: mgl32.Vec3{1, 1, 1}})

	assert.True(t, m.Resize(quads, Size{400, 300}))

	q, _ := quads.Get(first)
	assert.Equal(t, mgl32.Vec3{400, 300, 1}, q.Scale)
	q, _ = quads.Get(second)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, q.Scale)

	assert.Contains(t, buf.String(), "more than one full-screen quad")
	assert.Contains(t, buf.String(), "count=2")
}

func TestUnitRectangle(t *testing.T) {
	mesh := UnitRectangle()
	assert.Equal(t, int32(6), mesh.VertexCount())

	q := Quad{Mesh: mesh, Scale: Size{800, 600}.Scale()}
	model := q.Model()
	for i := 0; i < len(mesh.Vertices); i += 2 {
		v := model.Mul4x1(mgl32.Vec4{mesh.Vertices[i], mesh.Vertices[i+1], 0, 1})
		assert.Equal(t, float32(400), abs(v.X()))
		assert.Equal(t, float32(300), abs(v.Y()))
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func TestUpdaterTick(t *testing.T) {
	materials := NewRegistry[programs.ShadeMaterial]()
	materials.Add(programs.ShadeMaterial{})
	materials.Add(programs.ShadeMaterial{})
	u := &Updater{}

	times := []float32{0.016, 0.5, 1, 60.25, 3600}
	prev := float32(0)
	for _, elapsed := range times {
		u.Tick(materials, elapsed)
		materials.Each(func(_ Handle, m *programs.ShadeMaterial) {
			assert.Equal(t, elapsed, m.Time)
			assert.Greater(t, m.Time, prev)
		})
		prev = elapsed
	}

	u.Tick(materials, 10)
	materials.Each(func(_ Handle, m *programs.ShadeMaterial) {
		assert.Equal(t, float32(3600), m.Time)
	})

	u.Tick(nil, 1)
}

func TestUpdaterResolution(t *testing.T) {
	materials := NewRegistry[programs.ShadeMaterial]()
	h := materials.Add(programs.ShadeMaterial{})
	u := &Updater{}

	u.Resolution(materials, Size{800, 600})
	m, _ := materials.Get(h)
	assert.Equal(t, mgl32.Vec2{800, 600}, m.Resolution)

	u.Resolution(materials, Size{-1, 600})
	assert.Equal(t, mgl32.Vec2{800, 600}, m.Resolution)
}

func TestResizeQueue(t *testing.T) {
	var q ResizeQueue
	q.Push(800, 600)
	q.Push(400, 300)
	assert.Equal(t, 2, q.Len())

	var got []Size
	q.Drain(func(s Size) {
		got = append(got, s)
	})
	assert.Equal(t, []Size{{800, 600}, {400, 300}}, got)
	assert.Equal(t, 0, q.Len())

	q.Drain(func(Size) {
		t.Fatal("drained empty queue")
	})
}
