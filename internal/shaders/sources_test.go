package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourcesDeclareUniforms(t *testing.T) {
	tests := []struct {
		src      Source
		uniforms []string
	}{
		{Particles, []string{"uColor", "uPointSize"}},
		{Mesh, []string{"uOffset", "uScale", "uColor", "uTime"}},
		{Vignette, []string{"uResolution", "uStrength"}},
	}

	for _, tt := range tests {
		t.Run(tt.src.Name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(tt.src.Vertex, "#version 410 core"))
			assert.True(t, strings.HasPrefix(tt.src.Fragment, "#version 410 core"))

			both := tt.src.Vertex + tt.src.Fragment
			for _, u := range tt.uniforms {
				assert.Regexp(t, `uniform\s+\w+\s+`+u+`;`, both)
			}
		})
	}
}
