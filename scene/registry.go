package scene

// Handle addresses a value in a Registry. The zero Handle is never issued.
type Handle uint32

// Registry owns values addressed by handles and iterates them in insertion order.
// A nil *Registry behaves as an empty one for reads.
type Registry[T any] struct {
	next  Handle
	items map[Handle]*T
	order []Handle
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[Handle]*T),
	}
}

func (r *Registry[T]) Add(v T) Handle {
	if r.items == nil {
		r.items = make(map[Handle]*T)
	}

	r.next++
	r.items[r.next] = &v
	r.order = append(r.order, r.next)
	return r.next
}

func (r *Registry[T]) Get(h Handle) (*T, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.items[h]
	return v, ok
}

func (r *Registry[T]) Remove(h Handle) bool {
	if r == nil {
		return false
	}
	if _, ok := r.items[h]; !ok {
		return false
	}

	delete(r.items, h)
	for i, o := range r.order {
		if o == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// First returns the oldest live value.
func (r *Registry[T]) First() (Handle, *T, bool) {
	if r.Len() == 0 {
		return 0, nil, false
	}
	h := r.order[0]
	return h, r.items[h], true
}

func (r *Registry[T]) Each(fn func(Handle, *T)) {
	if r == nil {
		return
	}
	for _, h := range r.order {
		fn(h, r.items[h])
	}
}
