// Package scene renders packed grid meshes with OpenGL.
package scene

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/trianglegrid/internal/engine/shader"
	"github.com/Faultbox/trianglegrid/internal/engine/terrain"
	"github.com/Faultbox/trianglegrid/internal/logger"
	"github.com/Faultbox/trianglegrid/pkg/math"
)

var errEmptyMesh = errors.New("mesh has no vertices or indices")

// GridRenderer draws grid meshes. It implements terrain.MeshBuilder.
type GridRenderer struct {
	program uint32

	locViewProj int32
	locLightDir int32
	locAmbient  int32

	Wireframe bool
}

// GridMesh is a grid mesh resident on the GPU.
type GridMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	bound      map[terrain.AttributeKind]bool
}

// NewGridRenderer compiles the grid shader. A current OpenGL context is required.
func NewGridRenderer() (*GridRenderer, error) {
	program, err := shader.CompileProgram(gridVertexShader, gridFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("grid shader: %w", err)
	}

	return &GridRenderer{
		program:     program,
		locViewProj: shader.GetUniform(program, "uViewProj"),
		locLightDir: shader.GetUniform(program, "uLightDir"),
		locAmbient:  shader.GetUniform(program, "uAmbient"),
	}, nil
}

// BuildMesh uploads packed buffers, binding each layout entry to the shader input of the same name.
func (r *GridRenderer) BuildMesh(data *terrain.MeshData) (terrain.MeshHandle, error) {
	if len(data.Vertices) == 0 || len(data.Indices) == 0 {
		return nil, errEmptyMesh
	}

	m := &GridMesh{
		indexCount: int32(len(data.Indices)),
		bound:      make(map[terrain.AttributeKind]bool),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*4, unsafe.Pointer(&data.Vertices[0]), gl.STATIC_DRAW)

	stride := int32(data.VertexSize())
	for _, attr := range data.Layout {
		loc := shader.GetAttrib(r.program, attr.Name)
		if loc < 0 {
			continue
		}
		if attr.Packed {
			gl.VertexAttribPointerWithOffset(uint32(loc), int32(attr.Components), gl.UNSIGNED_BYTE, true, stride, uintptr(attr.Offset))
		} else {
			gl.VertexAttribPointerWithOffset(uint32(loc), int32(attr.Components), gl.FLOAT, false, stride, uintptr(attr.Offset))
		}
		gl.EnableVertexAttribArray(uint32(loc))
		m.bound[attr.Kind] = true
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, unsafe.Pointer(&data.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	logger.Debug("grid mesh uploaded",
		zap.Int("vertices", data.VertexCount),
		zap.Int("indices", len(data.Indices)),
		zap.Int("stride", int(stride)),
	)
	return m, nil
}

// Release frees the GPU buffers. It is safe to call more than once.
func (m *GridMesh) Release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}

// Render draws a mesh built by this renderer.
func (r *GridRenderer) Render(h terrain.MeshHandle, viewProj math.Mat4, lightDir math.Vec3) {
	m, ok := h.(*GridMesh)
	if !ok || m.vao == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(r.locLightDir, lightDir.X, lightDir.Y, lightDir.Z)
	gl.Uniform1f(r.locAmbient, 0.35)

	gl.BindVertexArray(m.vao)
	r.setMissingDefaults(m)

	if r.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// setMissingDefaults gives shader inputs the mesh does not carry a constant value.
func (r *GridRenderer) setMissingDefaults(m *GridMesh) {
	if loc := shader.GetAttrib(r.program, terrain.Color.ShaderName()); loc >= 0 && !m.bound[terrain.Color] {
		gl.VertexAttrib4f(uint32(loc), 0.8, 0.8, 0.8, 1)
	}
	if loc := shader.GetAttrib(r.program, terrain.Normal.ShaderName()); loc >= 0 && !m.bound[terrain.Normal] {
		gl.VertexAttrib3f(uint32(loc), 0, 0, 0)
	}
}

// Destroy releases the shader program.
func (r *GridRenderer) Destroy() {
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
