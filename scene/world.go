package scene

import "github.com/stewi1014/bullseye/programs"

// ResizeQueue holds window resize notifications until the next frame.
type ResizeQueue struct {
	pending []Size
}

func (q *ResizeQueue) Push(width, height float32) {
	q.pending = append(q.pending, Size{Width: width, Height: height})
}

func (q *ResizeQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.pending)
}

// Drain calls fn for each pending size in arrival order and empties the queue.
func (q *ResizeQueue) Drain(fn func(Size)) {
	if q == nil {
		return
	}
	for _, s := range q.pending {
		fn(s)
	}
	q.pending = q.pending[:0]
}

// World is the entity and resource store owned by a rendering host.
type World struct {
	Quads     *Registry[Quad]
	Materials *Registry[programs.ShadeMaterial]
	Resizes   *ResizeQueue
}

func NewWorld() *World {
	return &World{
		Quads:     NewRegistry[Quad](),
		Materials: NewRegistry[programs.ShadeMaterial](),
		Resizes:   &ResizeQueue{},
	}
}
