package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d of %v vs %v", i, want, got)
	}
}

func newTestCamera(t *testing.T, options ...CameraBuilderOption) Camera {
	t.Helper()
	c, err := NewCamera(options...)
	require.NoError(t, err)
	return c
}

func TestNewCameraDefaults(t *testing.T) {
	c := newTestCamera(t)

	assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, c.Target())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.IsType(t, Perspective{}, c.Projection())
	assertVec(t, mgl32.Vec3{0, 0, -1}, c.ViewDirection())
	assertVec(t, mgl32.Vec3{1, 0, 0}, c.RightDirection())
	assertVec(t, mgl32.Vec3{0, 1, 0}, c.UpDirection())
	assert.InDelta(t, 5, c.DistanceToTarget(), tol)
}

func TestNewCameraRejectsInvalidOptions(t *testing.T) {
	_, err := NewCamera(WithView(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 1, 0}))
	assert.ErrorIs(t, err, ErrInvalidView)

	_, err = NewCamera(WithPerspective(1, 10, 1))
	assert.ErrorIs(t, err, ErrInvalidProjection)

	_, err = NewCamera(WithOrthographic(0, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidProjection)
}

func TestSetViewNormalizesUp(t *testing.T) {
	c := newTestCamera(t)
	require.NoError(t, c.SetView(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 3, 0}))
	assertVec(t, mgl32.Vec3{0, 1, 0}, c.Up())
}

func TestSetViewRejectsDegenerateInput(t *testing.T) {
	cases := map[string][3]mgl32.Vec3{
		"coincident":  {{1, 2, 3}, {1, 2, 3}, {0, 1, 0}},
		"zero up":     {{0, 0, 5}, {0, 0, 0}, {0, 0, 0}},
		"parallel up": {{0, 5, 0}, {0, 0, 0}, {0, 1, 0}},
		"non-finite":  {{float32(math.Inf(1)), 0, 0}, {0, 0, 0}, {0, 1, 0}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestCamera(t)
			before := c.ViewMatrix()
			err := c.SetView(in[0], in[1], in[2])
			assert.ErrorIs(t, err, ErrInvalidView)
			assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Position())
			assert.Equal(t, before, c.ViewMatrix())
		})
	}
}

func TestSetProjectionKeepsPreviousOnError(t *testing.T) {
	c := newTestCamera(t)
	require.NoError(t, c.SetOrthographicProjection(4, 2, 10))
	assert.ErrorIs(t, c.SetPerspectiveProjection(-1, 0.1, 10), ErrInvalidProjection)
	assert.Equal(t, Orthographic{Width: 4, Height: 2, Depth: 10}, c.Projection())

	require.NoError(t, c.SetPerspectiveProjection(1, 0.1, 10))
	assert.Equal(t, Perspective{FieldOfView: 1, Near: 0.1, Far: 10}, c.Projection())
}

func TestSetViewportUpdatesAspect(t *testing.T) {
	c := newTestCamera(t)
	c.SetViewport(common.NewViewportAtOrigo(200, 100))
	assert.Equal(t, uint32(200), c.Viewport().Width)

	p := c.ProjectionMatrix()
	assert.InDelta(t, p[5]/2, p[0], tol)
}

func TestFrustumContainsTarget(t *testing.T) {
	c := newTestCamera(t, WithViewport(common.NewViewportAtOrigo(800, 600)))
	f := c.Frustum()
	assert.True(t, f.ContainsSphere(mgl32.Vec3{}, 0.5))
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, 20}, 0.5))
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, -200}, 0.5))
}

func TestProjectionMapsDepthToUnitRange(t *testing.T) {
	c := newTestCamera(t, WithPerspective(mgl32.DegToRad(60), 1, 50))
	vp := c.ViewProjectionMatrix()

	near := vp.Mul4x1(mgl32.Vec4{0, 0, 4, 1})
	far := vp.Mul4x1(mgl32.Vec4{0, 0, -45, 1})
	assert.InDelta(t, 0, near[2]/near[3], tol)
	assert.InDelta(t, 1, far[2]/far[3], tol)
}
