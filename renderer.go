package main

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/bullseye/programs"
	"github.com/stewi1014/bullseye/scene"
)

const vertexAttrib = 0

// Renderer draws the quads of a world with a single linked program.
// All methods must be called with the host's GL context current.
type Renderer struct {
	log *slog.Logger

	program      uint32
	transformLoc int32
	bindings     []programs.Binding

	meshes map[*scene.Mesh]meshBuffers
}

type meshBuffers struct {
	vao   uint32
	vbo   uint32
	count int32
}

func NewRenderer(log *slog.Logger, debug bool) (*Renderer, error) {
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}

	r := &Renderer{
		log:    log,
		meshes: make(map[*scene.Mesh]meshBuffers),
	}

	log.Info("OpenGL ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)

	if debug {
		gl.Enable(gl.DEBUG_OUTPUT)
		gl.DebugMessageCallback(r.glDebugMessage, nil)
	}

	return r, nil
}

func (r *Renderer) glDebugMessage(
	source,
	gltype,
	id,
	severity uint32,
	length int32,
	message string,
	user unsafe.Pointer,
) {
	level := slog.LevelDebug
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		level = slog.LevelError
	case gl.DEBUG_SEVERITY_MEDIUM:
		level = slog.LevelWarn
	case gl.DEBUG_SEVERITY_LOW:
		level = slog.LevelInfo
	}

	sourceStr := "unknown"
	switch source {
	case gl.DEBUG_SOURCE_API:
		sourceStr = "api"
	case gl.DEBUG_SOURCE_APPLICATION:
		sourceStr = "application"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		sourceStr = "shaderCompiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		sourceStr = "thirdParty"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		sourceStr = "windowSystem"
	case gl.DEBUG_SOURCE_OTHER:
		sourceStr = "other"
	}

	typeStr := "unknown"
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		typeStr = "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		typeStr = "deprecatedBehavior"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		typeStr = "undefinedBehavior"
	case gl.DEBUG_TYPE_PERFORMANCE:
		typeStr = "performance"
	case gl.DEBUG_TYPE_PORTABILITY:
		typeStr = "portability"
	case gl.DEBUG_TYPE_MARKER:
		typeStr = "marker"
	case gl.DEBUG_TYPE_OTHER:
		typeStr = "other"
	}

	r.log.Log(context.Background(), level, message, "source", sourceStr, "type", typeStr, "id", id)
}

// LoadProgram compiles and links program, replacing any previous one.
// The linked program must expose every binding of program exactly.
func (r *Renderer) LoadProgram(program programs.Program) error {
	vertexShader, err := compileShader(program.VertexShader+"\x00", gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(program.FragmentShader+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fragmentShader)

	p := gl.CreateProgram()
	gl.AttachShader(p, vertexShader)
	gl.AttachShader(p, fragmentShader)
	gl.BindAttribLocation(p, vertexAttrib, gl.Str("vert\x00"))
	gl.BindFragDataLocation(p, 0, gl.Str("outputColor\x00"))
	gl.LinkProgram(p)

	var status int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(p, l, nil, gl.Str(log))
		gl.DeleteProgram(p)
		return fmt.Errorf("failed to link program %v: %v", program.Name, log)
	}

	active := activeUniforms(p)
	if err := programs.CheckBindings(program.Bindings, active); err != nil {
		gl.DeleteProgram(p)
		return fmt.Errorf("program %v: %w", program.Name, err)
	}

	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	r.program = p
	r.bindings = program.Bindings
	r.transformLoc = gl.GetUniformLocation(p, gl.Str("transform\x00"))

	r.log.Debug("program loaded", "name", program.Name, "uniforms", len(active))
	return nil
}

func activeUniforms(program uint32) map[string]programs.ActiveUniform {
	var count, maxLength int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLength)

	active := make(map[string]programs.ActiveUniform, count)
	name := make([]uint8, maxLength+1)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, i, maxLength+1, &length, &size, &xtype, &name[0])

		n := string(name[:length])
		active[n] = programs.ActiveUniform{
			Location: gl.GetUniformLocation(program, gl.Str(n+"\x00")),
			Type:     uniformType(xtype),
		}
	}
	return active
}

func uniformType(xtype uint32) programs.UniformType {
	switch xtype {
	case gl.FLOAT:
		return programs.Float
	case gl.FLOAT_VEC2:
		return programs.Vec2
	case gl.FLOAT_VEC3:
		return programs.Vec3
	case gl.FLOAT_VEC4:
		return programs.Vec4
	case gl.FLOAT_MAT4:
		return programs.Mat4
	case gl.INT:
		return programs.Int
	case gl.UNSIGNED_INT:
		return programs.Uint
	}
	return programs.Unknown
}

func (r *Renderer) mesh(m *scene.Mesh) meshBuffers {
	if b, ok := r.meshes[m]; ok {
		return b
	}

	b := meshBuffers{count: m.VertexCount()}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(vertexAttrib)
	gl.VertexAttribPointerWithOffset(vertexAttrib, 2, gl.FLOAT, false, 2*4, 0)

	r.meshes[m] = b
	return b
}

// Draw renders every quad of world into a viewport-sized framebuffer.
// The camera puts the origin at the viewport centre with one unit per pixel.
func (r *Renderer) Draw(world *scene.World, viewport scene.Size) {
	if !viewport.Valid() || r.program == 0 {
		return
	}

	gl.Viewport(0, 0, int32(viewport.Width), int32(viewport.Height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(r.program)

	w, h := viewport.Width/2, viewport.Height/2
	projection := mgl32.Ortho2D(-w, w, -h, h)

	world.Quads.Each(func(_ scene.Handle, q *scene.Quad) {
		material, ok := world.Materials.Get(q.Material)
		if !ok {
			return
		}

		transform := projection.Mul4(q.Model())
		gl.UniformMatrix4fv(r.transformLoc, 1, false, &transform[0])
		r.loadUniforms(&material.Uniforms)

		b := r.mesh(q.Mesh)
		gl.BindVertexArray(b.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, b.count)
	})
}

func (r *Renderer) loadUniforms(uniforms *programs.Uniforms) {
	v := reflect.ValueOf(uniforms).Elem()
	for _, b := range r.bindings {
		ptr := v.Field(b.Field).Addr().UnsafePointer()

		switch b.Type {
		case programs.Float:
			gl.Uniform1fv(b.Slot, 1, (*float32)(ptr))
		case programs.Vec2:
			gl.Uniform2fv(b.Slot, 1, (*float32)(ptr))
		case programs.Vec3:
			gl.Uniform3fv(b.Slot, 1, (*float32)(ptr))
		case programs.Vec4:
			gl.Uniform4fv(b.Slot, 1, (*float32)(ptr))
		case programs.Mat4:
			gl.UniformMatrix4fv(b.Slot, 1, false, (*float32)(ptr))
		case programs.Int:
			gl.Uniform1iv(b.Slot, 1, (*int32)(ptr))
		case programs.Uint:
			gl.Uniform1uiv(b.Slot, 1, (*uint32)(ptr))
		}
	}
}

// Delete releases every GL object owned by the renderer.
func (r *Renderer) Delete() {
	for m, b := range r.meshes {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
		delete(r.meshes, m)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader\n\"\n%v\n\"\nfailed to compile: %v", source, log)
	}

	return shader, nil
}
