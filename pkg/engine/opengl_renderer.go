package engine

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"globe/internal/logger"
	"globe/pkg/assets"
	"globe/pkg/globe"
	"globe/pkg/scene"
	"globe/pkg/starfield"
)

// Vertex attribute locations shared by every program
const (
	positionAttrib = 0
	normalAttrib   = 1
	uvAttrib       = 2
)

// geometryBuffers holds the GPU copy of one geometry
type geometryBuffers struct {
	vao         uint32
	positionVBO uint32
	normalVBO   uint32
	uvVBO       uint32
	ebo         uint32
	indexCount  int32
	vertexCount int32
	version     uint64
}

// drawItem is an object queued for drawing with its world transform
type drawItem struct {
	object *scene.Object
	world  mgl32.Mat4
}

// OpenGLRenderer draws a scene graph with one shader program per material
type OpenGLRenderer struct {
	window *glfw.Window
	logger *logger.Logger
	width  int
	height int

	programs map[string]uint32
	textures map[string]uint32
	buffers  map[*scene.Geometry]*geometryBuffers
	missing  map[string]bool // programs already reported missing

	opaque      []drawItem
	transparent []drawItem
}

// NewOpenGLRenderer compiles the shader programs and uploads the textures.
// The window's GL context must be current.
func NewOpenGLRenderer(window *glfw.Window, shaders assets.ShaderSet, textures map[string]*image.RGBA, log *logger.Logger) (*OpenGLRenderer, error) {
	width, height := window.GetSize()
	renderer := &OpenGLRenderer{
		window:   window,
		logger:   log,
		width:    width,
		height:   height,
		programs: make(map[string]uint32),
		textures: make(map[string]uint32),
		buffers:  make(map[*scene.Geometry]*geometryBuffers),
		missing:  make(map[string]bool),
	}

	if err := renderer.initOpenGL(shaders); err != nil {
		renderer.Close()
		return nil, err
	}

	for name, img := range textures {
		renderer.textures[name] = uploadTexture(img)
		renderer.logger.Debugf("Uploaded texture %q (%dx%d)", name, img.Rect.Dx(), img.Rect.Dy())
	}

	return renderer, nil
}

// initOpenGL sets global state and builds every program
func (r *OpenGLRenderer) initOpenGL(shaders assets.ShaderSet) error {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)

	programs := map[string]assets.Program{
		globe.ProgramGlobe:      shaders.Globe,
		globe.ProgramAtmosphere: shaders.Atmosphere,
		starfield.ProgramName:   shaders.Stars,
	}
	for name, src := range programs {
		program, err := r.createShaderProgram(src.Vertex, src.Fragment)
		if err != nil {
			return fmt.Errorf("%s program: %w", name, err)
		}
		r.programs[name] = program
	}

	return nil
}

// createShaderProgram compiles and links a shader program from source
func (r *OpenGLRenderer) createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	// Vertex shader
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	// Fragment shader
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)

		return 0, fmt.Errorf("shader program linking failed: %v", log)
	}

	// Shaders are owned by the program once linked
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

// compileShader compiles a shader from source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("shader compilation failed: %v", log)
	}

	return shader, nil
}

// uploadTexture creates a mipmapped texture from RGBA rows, top row first
func uploadTexture(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(img.Rect.Dx()),
		int32(img.Rect.Dy()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return tex
}

// SetSize records the logical viewport size. The framebuffer size is read
// at draw time since it differs on high-DPI displays.
func (r *OpenGLRenderer) SetSize(width, height int) {
	r.width = width
	r.height = height
}

// Render draws every visible object: opaque ones first, then transparent
// ones without depth writes
func (r *OpenGLRenderer) Render(s *scene.Scene, camera *scene.PerspectiveCamera) {
	fbWidth, fbHeight := r.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.ClearColor(0, 0, 0, 1)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if s == nil || camera == nil {
		return
	}

	r.opaque = r.opaque[:0]
	r.transparent = r.transparent[:0]
	s.Traverse(func(o *scene.Object, world mgl32.Mat4) bool {
		if o.Kind == scene.KindGroup || o.Geometry == nil {
			return true
		}
		item := drawItem{object: o, world: world}
		if o.Material.Transparent {
			r.transparent = append(r.transparent, item)
		} else {
			r.opaque = append(r.opaque, item)
		}
		return true
	})

	view := camera.ViewMatrix()
	projection := camera.ProjectionMatrix()

	for _, item := range r.opaque {
		r.draw(item, view, projection, fbHeight)
	}
	for _, item := range r.transparent {
		r.draw(item, view, projection, fbHeight)
	}

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

// draw issues one draw call with the material's pipeline state. Point sizes
// are in framebuffer pixels, so fbHeight sets the attenuation scale.
func (r *OpenGLRenderer) draw(item drawItem, view, projection mgl32.Mat4, fbHeight int) {
	o := item.object
	mat := o.Material

	program, ok := r.programs[mat.Program]
	if !ok {
		if !r.missing[mat.Program] {
			r.logger.Warnf("No shader program %q for object %q", mat.Program, o.Name)
			r.missing[mat.Program] = true
		}
		return
	}

	buffers := r.upload(o.Geometry)
	if buffers == nil {
		return
	}

	r.applyMaterial(o.Kind, mat)

	gl.UseProgram(program)
	modelView := view.Mul4(item.world)
	normalMatrix := modelView.Mat3().Inv().Transpose()

	gl.UniformMatrix4fv(uniform(program, "modelMatrix"), 1, false, &item.world[0])
	gl.UniformMatrix4fv(uniform(program, "viewMatrix"), 1, false, &view[0])
	gl.UniformMatrix4fv(uniform(program, "projectionMatrix"), 1, false, &projection[0])
	gl.UniformMatrix3fv(uniform(program, "normalMatrix"), 1, false, &normalMatrix[0])
	gl.Uniform3f(uniform(program, "color"), mat.Color[0], mat.Color[1], mat.Color[2])
	gl.Uniform1f(uniform(program, "size"), mat.Size)
	gl.Uniform1f(uniform(program, "scale"), pointScale(fbHeight))

	if mat.Texture != "" {
		if tex, ok := r.textures[mat.Texture]; ok {
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.Uniform1i(uniform(program, mat.Texture+"Texture"), 0)
		}
	}

	gl.BindVertexArray(buffers.vao)
	switch o.Kind {
	case scene.KindPoints:
		gl.DrawArrays(gl.POINTS, 0, buffers.vertexCount)
	default:
		gl.DrawElements(gl.TRIANGLES, buffers.indexCount, gl.UNSIGNED_INT, nil)
	}
}

// applyMaterial sets culling, blending and depth writes for a material
func (r *OpenGLRenderer) applyMaterial(kind scene.ObjectKind, mat scene.Material) {
	if kind == scene.KindPoints {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		if mat.Side == scene.BackSide {
			gl.CullFace(gl.FRONT)
		} else {
			gl.CullFace(gl.BACK)
		}
	}

	switch {
	case mat.Blending == scene.AdditiveBlending:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	case mat.Transparent:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	default:
		gl.Disable(gl.BLEND)
	}

	gl.DepthMask(!mat.Transparent)
}

// upload returns the GPU buffers of geo, creating them on first use and
// refreshing them whenever the geometry version moved
func (r *OpenGLRenderer) upload(geo *scene.Geometry) *geometryBuffers {
	if geo.Disposed() {
		return nil
	}

	b, ok := r.buffers[geo]
	if ok && b.version == geo.Version() {
		return b
	}

	usage := uint32(gl.STATIC_DRAW)
	if !ok {
		b = &geometryBuffers{}
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(1, &b.positionVBO)
		r.buffers[geo] = b
		geo.OnDispose(r.release)
	} else {
		// geometry that changes once tends to keep changing
		usage = gl.DYNAMIC_DRAW
	}

	gl.BindVertexArray(b.vao)

	bufferAttrib(b.positionVBO, positionAttrib, 3, geo.Positions, usage)
	if len(geo.Normals) > 0 {
		if b.normalVBO == 0 {
			gl.GenBuffers(1, &b.normalVBO)
		}
		bufferAttrib(b.normalVBO, normalAttrib, 3, geo.Normals, usage)
	}
	if len(geo.UVs) > 0 {
		if b.uvVBO == 0 {
			gl.GenBuffers(1, &b.uvVBO)
		}
		bufferAttrib(b.uvVBO, uvAttrib, 2, geo.UVs, usage)
	}
	if len(geo.Indices) > 0 {
		if b.ebo == 0 {
			gl.GenBuffers(1, &b.ebo)
		}
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geo.Indices)*4, gl.Ptr(geo.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	b.indexCount = int32(len(geo.Indices))
	b.vertexCount = int32(geo.VertexCount())
	b.version = geo.Version()
	return b
}

func bufferAttrib(vbo, location uint32, components int32, data []float32, usage uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, usage)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)
	}
	gl.VertexAttribPointer(location, components, gl.FLOAT, false, components*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(location)
}

// release frees the buffers of a disposed geometry
func (r *OpenGLRenderer) release(geo *scene.Geometry) {
	b, ok := r.buffers[geo]
	if !ok {
		return
	}
	delete(r.buffers, geo)
	deleteBuffers(b)
}

func deleteBuffers(b *geometryBuffers) {
	for _, vbo := range []uint32{b.positionVBO, b.normalVBO, b.uvVBO, b.ebo} {
		if vbo != 0 {
			gl.DeleteBuffers(1, &vbo)
		}
	}
	gl.DeleteVertexArrays(1, &b.vao)
}

// pointScale converts a world-space point size into framebuffer pixels
func pointScale(fbHeight int) float32 {
	return float32(fbHeight) / 2
}

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Close releases all OpenGL resources
func (r *OpenGLRenderer) Close() {
	for geo, b := range r.buffers {
		deleteBuffers(b)
		delete(r.buffers, geo)
	}
	for name, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
		delete(r.textures, name)
	}
	for name, program := range r.programs {
		gl.DeleteProgram(program)
		delete(r.programs, name)
	}
}
