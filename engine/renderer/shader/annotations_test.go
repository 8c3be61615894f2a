package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotation(t *testing.T) {
	a, err := parseAnnotation("  //@oxy:uniform cameraPosition vec3", 3)
	require.NoError(t, err)
	assert.Equal(t, &Annotation{Type: AnnotationTypeUniform, Name: "cameraPosition", Uniform: UniformTypeVec3, Line: 3}, a)

	a, err = parseAnnotation("// @oxy:texture3d tex", 7)
	require.NoError(t, err)
	assert.Equal(t, &Annotation{Type: AnnotationTypeTexture3D, Name: "tex", Line: 7}, a)
}

func TestParseAnnotationIgnoresOtherLines(t *testing.T) {
	for _, line := range []string{"", "let x = 1.0;", "// plain comment", "let s = \"@oxy:uniform a f32\";"} {
		a, err := parseAnnotation(line, 1)
		assert.NoError(t, err)
		assert.Nil(t, a)
	}
}

func TestParseAnnotationErrors(t *testing.T) {
	for _, line := range []string{
		"//@oxy:",
		"//@oxy:uniform size",
		"//@oxy:uniform size vec9",
		"//@oxy:uniform 9lives f32",
		"//@oxy:texture3d",
		"//@oxy:texture3d a b",
		"//@oxy:include camera",
	} {
		_, err := parseAnnotation(line, 1)
		assert.ErrorIs(t, err, ErrUnknownAnnotation, line)
	}
}
