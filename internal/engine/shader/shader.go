// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is a linked shader program with cached uniform locations.
type Program struct {
	ID       uint32
	uniforms map[string]int32
}

// NewProgram compiles and links a vertex and fragment shader pair.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Program{ID: id, uniforms: make(map[string]int32)}, nil
}

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Uniform returns the location of a uniform, -1 if it is missing or inactive.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// SetMat4 uploads a column-major 4x4 matrix.
func (p *Program) SetMat4(name string, m *[16]float32) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}

// Delete frees the GL program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", msg)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, msg)
	}

	return shader, nil
}

func infoLog(obj uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var n int32
	getiv(obj, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return ""
	}
	buf := make([]byte, n)
	getLog(obj, n, nil, &buf[0])
	return string(buf)
}
