package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/engine/model"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewGameObjectDefaults(t *testing.T) {
	a, b := NewGameObject(), NewGameObject()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Enabled())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, a.Scale())
	assert.Equal(t, mgl32.Ident4(), a.ModelMatrix())
	assert.Nil(t, a.Model())
	assert.Nil(t, a.Material())
	assert.Zero(t, a.WorldRadius())
}

func TestGameObjectOptions(t *testing.T) {
	m := material.NewDepthMaterial()
	cube := model.NewCube()
	obj := NewGameObject(WithID(7), WithEnabled(false), WithModel(cube), WithMaterial(m))

	assert.Equal(t, uint64(7), obj.ID())
	assert.False(t, obj.Enabled())
	assert.Same(t, cube, obj.Model())
	assert.Equal(t, m, obj.Material())
}

func TestModelMatrixAppliesScaleRotationTranslation(t *testing.T) {
	obj := NewGameObject(
		WithPosition(mgl32.Vec3{10, 0, 0}),
		WithRotation(mgl32.Vec3{0, 90, 0}),
		WithScale(mgl32.Vec3{2, 1, 1}),
	)
	// x is scaled to 2, rotated about y onto -z, then translated
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, obj.ModelMatrix())
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{10, 0, -2}, 1e-5), "got %v", p)
}

func TestWorldBoundsFollowTransform(t *testing.T) {
	obj := NewGameObject(WithModel(model.NewCube()), WithPosition(mgl32.Vec3{1, 2, 3}), WithScale(mgl32.Vec3{1, -4, 2}))
	assert.True(t, obj.WorldCenter().ApproxEqual(mgl32.Vec3{1, 2, 3}))
	assert.InDelta(t, model.NewCube().Bounds().Radius()*4, obj.WorldRadius(), 1e-5)

	obj.SetPosition(0, 0, -5)
	obj.SetEnabled(false)
	assert.True(t, obj.WorldCenter().ApproxEqual(mgl32.Vec3{0, 0, -5}))
	assert.False(t, obj.Enabled())
}
