package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileError reports which program and stage failed, with the driver log.
type CompileError struct {
	Program string
	Stage   string
	Log     string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to %s %s program: %s", verb(e.Stage), e.Program, e.Log)
}

func verb(stage string) string {
	if stage == "link" {
		return "link"
	}
	return "compile " + stage + " shader of"
}

func stageName(shaderType uint32) string {
	if shaderType == gl.VERTEX_SHADER {
		return "vertex"
	}
	return "fragment"
}

// CompileShaderFromSource compiles one stage. A GL context must be current.
func CompileShaderFromSource(program, source string, shaderType uint32) (uint32, error) {
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
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logMsg))
		gl.DeleteShader(shader)
		return 0, &CompileError{
			Program: program,
			Stage:   stageName(shaderType),
			Log:     strings.TrimRight(logMsg, "\x00\n "),
		}
	}

	return shader, nil
}

// LinkProgram compiles both stages and links them. The intermediate shader
// objects are always released.
func LinkProgram(name, vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := CompileShaderFromSource(name, vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := CompileShaderFromSource(name, fragmentSrc, gl.FRAGMENT_SHADER)
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
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logMsg))
		gl.DeleteProgram(program)
		return 0, &CompileError{
			Program: name,
			Stage:   "link",
			Log:     strings.TrimRight(logMsg, "\x00\n "),
		}
	}

	return program, nil
}
