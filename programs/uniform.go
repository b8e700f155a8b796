package programs

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrBindingMismatch is returned when a linked program does not expose a uniform the way
// the uniform block declares it.
var ErrBindingMismatch = errors.New("uniform binding mismatch")

// Uniforms is the per-frame state read by the fragment shader.
//
// Time is single precision; past roughly 2^24 seconds consecutive frames stop
// producing distinct values.
type Uniforms struct {
	Time       float32    `uniform:"time" slot:"0"`
	Resolution mgl32.Vec2 `uniform:"resolution" slot:"1"`
}

type UniformType int

const (
	Unknown UniformType = iota
	Float
	Vec2
	Vec3
	Vec4
	Mat4
	Int
	Uint
)

func (t UniformType) String() string {
	switch t {
	case Float:
		return "float"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case Mat4:
		return "mat4"
	case Int:
		return "int"
	case Uint:
		return "uint"
	}
	return "unknown"
}

var uniformTypes = map[reflect.Type]UniformType{
	reflect.TypeOf(float32(0)):   Float,
	reflect.TypeOf(mgl32.Vec2{}): Vec2,
	reflect.TypeOf(mgl32.Vec3{}): Vec3,
	reflect.TypeOf(mgl32.Vec4{}): Vec4,
	reflect.TypeOf(mgl32.Mat4{}): Mat4,
	reflect.TypeOf(int32(0)):     Int,
	reflect.TypeOf(uint32(0)):    Uint,
}

// Binding is one uniform slot declared by a uniform block.
type Binding struct {
	Name  string
	Slot  int32
	Type  UniformType
	Field int
}

func (b Binding) String() string {
	return fmt.Sprintf("%v %v (slot %v)", b.Type, b.Name, b.Slot)
}

// ActiveUniform is a uniform as reported by a linked program.
type ActiveUniform struct {
	Location int32
	Type     UniformType
}

// Bindings reads the uniform and slot tags of a uniform block struct.
// The result is ordered by slot.
func Bindings(uniforms any) ([]Binding, error) {
	t := reflect.TypeOf(uniforms)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("uniform block must be a struct, got %v", t)
	}

	var bindings []Binding
	slots := make(map[int32]string)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, ok := f.Tag.Lookup("uniform")
		if !ok {
			continue
		}

		slot, err := strconv.ParseInt(f.Tag.Get("slot"), 10, 32)
		if err != nil || slot < 0 {
			return nil, fmt.Errorf("uniform %q has invalid slot %q", name, f.Tag.Get("slot"))
		}

		typ, ok := uniformTypes[f.Type]
		if !ok {
			return nil, fmt.Errorf("uniform %q has unsupported type %v", name, f.Type)
		}

		if other, taken := slots[int32(slot)]; taken {
			return nil, fmt.Errorf("uniforms %q and %q both claim slot %v", other, name, slot)
		}
		slots[int32(slot)] = name

		bindings = append(bindings, Binding{
			Name:  name,
			Slot:  int32(slot),
			Type:  typ,
			Field: i,
		})
	}

	sort.Slice(bindings, func(i, j int) bool {
		return bindings[i].Slot < bindings[j].Slot
	})
	return bindings, nil
}

// CheckBindings verifies every declared binding against the active uniforms of a linked program.
func CheckBindings(declared []Binding, active map[string]ActiveUniform) error {
	for _, b := range declared {
		a, ok := active[b.Name]
		if !ok {
			return fmt.Errorf("%w: %v is not an active uniform", ErrBindingMismatch, b)
		}
		if a.Location != b.Slot {
			return fmt.Errorf("%w: %v is bound at location %v", ErrBindingMismatch, b, a.Location)
		}
		if a.Type != b.Type {
			return fmt.Errorf("%w: %v is declared as %v in the shader", ErrBindingMismatch, b, a.Type)
		}
	}
	return nil
}
