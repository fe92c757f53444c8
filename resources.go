package gg3d

import (
	"fmt"

	"github.com/gogpu/gg3d/internal/arena"
)

// Handle addresses a mesh, material, texture or cubemap in Resources.
// The zero Handle means "none".
type Handle = arena.Handle

// Resources holds the handle-keyed arenas shaders and draw calls read from.
// It is safe for concurrent use, so shadow maps rendering on other
// goroutines can share it with the main renderer.
type Resources struct {
	meshes    *arena.Arena[*Mesh]
	materials *arena.Arena[Material]
	textures  *arena.Arena[*Texture]
	cubemaps  *arena.Arena[*Cubemap]
}

// NewResources returns empty arenas.
func NewResources() *Resources {
	return &Resources{
		meshes:    arena.New[*Mesh](16),
		materials: arena.New[Material](16),
		textures:  arena.New[*Texture](8),
		cubemaps:  arena.New[*Cubemap](2),
	}
}

// AddMesh stores m and returns its handle.
func (r *Resources) AddMesh(m *Mesh) Handle {
	return r.meshes.Insert(m)
}

// Mesh returns the mesh for h, or an error wrapping ErrMeshNotFound.
func (r *Resources) Mesh(h Handle) (*Mesh, error) {
	m, ok := r.meshes.Get(h)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrMeshNotFound, h)
	}
	return m, nil
}

// RemoveMesh deletes the mesh for h. Handles to it become invalid.
func (r *Resources) RemoveMesh(h Handle) bool {
	_, ok := r.meshes.Remove(h)
	return ok
}

// AddMaterial stores m and returns its handle.
func (r *Resources) AddMaterial(m Material) Handle {
	return r.materials.Insert(m)
}

// Material returns the material for h. The zero handle resolves to
// DefaultMaterial; any other unknown handle returns an error wrapping
// ErrMaterialNotFound.
func (r *Resources) Material(h Handle) (Material, error) {
	if h.IsZero() {
		return DefaultMaterial(), nil
	}
	m, ok := r.materials.Get(h)
	if !ok {
		return Material{}, fmt.Errorf("%w: %v", ErrMaterialNotFound, h)
	}
	return m, nil
}

// SetMaterial replaces the material for h.
func (r *Resources) SetMaterial(h Handle, m Material) error {
	if !r.materials.Set(h, m) {
		return fmt.Errorf("%w: %v", ErrMaterialNotFound, h)
	}
	return nil
}

// RemoveMaterial deletes the material for h.
func (r *Resources) RemoveMaterial(h Handle) bool {
	_, ok := r.materials.Remove(h)
	return ok
}

// AddTexture stores t and returns its handle.
func (r *Resources) AddTexture(t *Texture) Handle {
	return r.textures.Insert(t)
}

// Texture returns the texture for h, or an error wrapping ErrTextureNotFound.
func (r *Resources) Texture(h Handle) (*Texture, error) {
	t, ok := r.textures.Get(h)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrTextureNotFound, h)
	}
	return t, nil
}

// AddCubemap stores c and returns its handle.
func (r *Resources) AddCubemap(c *Cubemap) Handle {
	return r.cubemaps.Insert(c)
}

// Cubemap returns the cubemap for h, or an error wrapping ErrCubemapNotFound.
func (r *Resources) Cubemap(h Handle) (*Cubemap, error) {
	c, ok := r.cubemaps.Get(h)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrCubemapNotFound, h)
	}
	return c, nil
}

// validateMaterial resolves h and checks the handles it references.
func (r *Resources) validateMaterial(h Handle) (Material, error) {
	m, err := r.Material(h)
	if err != nil {
		return m, err
	}
	if !m.AlbedoMap.IsZero() && !r.textures.Contains(m.AlbedoMap) {
		return m, fmt.Errorf("material %v: %w: %v", h, ErrTextureNotFound, m.AlbedoMap)
	}
	return m, nil
}
