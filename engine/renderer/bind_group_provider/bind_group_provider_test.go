package bind_group_provider

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("cube", WithIndexCount(36))
	assert.Equal(t, "cube", p.Label())
	assert.Equal(t, 36, p.IndexCount())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.UniformBuffer())
	assert.Nil(t, p.VertexBuffer())
}

func TestStaleWithoutBindGroup(t *testing.T) {
	p := NewBindGroupProvider("object")
	assert.True(t, p.Stale(nil))
	assert.True(t, p.Stale([]uuid.UUID{uuid.New()}))
}

func TestSetBindingsCopiesTextureIDs(t *testing.T) {
	p := NewBindGroupProvider("object")
	ids := []uuid.UUID{uuid.New()}
	p.SetBindings(nil, nil, nil, ids)

	ids[0] = uuid.New()
	assert.NotEqual(t, ids[0], p.TextureIDs()[0])
}

func TestReleaseWithoutResources(t *testing.T) {
	p := NewBindGroupProvider("object", WithIndexCount(3))
	p.SetBindings(nil, nil, nil, []uuid.UUID{uuid.New()})
	assert.NotPanics(t, p.Release)
	assert.Empty(t, p.TextureIDs())
	assert.Zero(t, p.IndexCount())
}

func TestStaleAfterBinding(t *testing.T) {
	p := NewBindGroupProvider("object")
	ids := []uuid.UUID{uuid.New()}
	p.SetBindings(nil, nil, nil, ids)

	assert.False(t, p.Stale(ids))
	assert.True(t, p.Stale([]uuid.UUID{uuid.New()}))
	assert.True(t, p.Stale(nil))

	p.Release()
	assert.True(t, p.Stale(ids))
}

func TestHasMeshAfterSetMesh(t *testing.T) {
	p := NewBindGroupProvider("cube")
	assert.False(t, p.HasMesh())

	p.SetMesh(nil, nil, 36)
	assert.True(t, p.HasMesh())
	assert.Equal(t, 36, p.IndexCount())

	p.Release()
	assert.False(t, p.HasMesh())
}
