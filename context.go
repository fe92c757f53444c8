package gg3d

import "github.com/gogpu/gg3d/math3d"

// DirectionalLight is a light infinitely far away, such as the sun.
// Direction points from the light toward the scene.
type DirectionalLight struct {
	Direction math3d.Vec3
	Color     math3d.Vec3
	Intensity float32

	// Shadow is the light's shadow map, or nil for no shadows.
	Shadow *ShadowMap
}

// PointLight emits in all directions from Position. Range bounds the
// smooth distance falloff; zero means unbounded inverse-square falloff.
type PointLight struct {
	Position  math3d.Vec3
	Color     math3d.Vec3
	Intensity float32
	Range     float32
}

// SpotLight is a point light restricted to a cone. The cone angles are in
// radians; light fades between InnerCone and OuterCone.
type SpotLight struct {
	Position  math3d.Vec3
	Direction math3d.Vec3
	Color     math3d.Vec3
	Intensity float32
	Range     float32
	InnerCone float32
	OuterCone float32
}

// AmbientLight adds constant light to every lit sample.
type AmbientLight struct {
	Color     math3d.Vec3
	Intensity float32
}

// ShaderContext is the state every shader invocation reads: camera and
// entity transforms, the active material, lights and viewport size.
//
// The camera is set once per frame with SetCamera and the entity transform
// once per draw call with SetWorld. Shaders never mutate the context; the
// renderer alone swaps the active material, and restores it with
// PopMaterial, so nested renders (shadow passes) leave it as they found it.
type ShaderContext struct {
	World               math3d.Mat4
	View                math3d.Mat4
	Projection          math3d.Mat4
	ViewProjection      math3d.Mat4
	WorldView           math3d.Mat4
	WorldViewProjection math3d.Mat4
	InverseView         math3d.Mat4
	NormalMatrix        math3d.Mat4
	CameraPosition      math3d.Vec3

	ViewportWidth  int
	ViewportHeight int

	DirectionalLights []DirectionalLight
	PointLights       []PointLight
	SpotLights        []SpotLight
	AmbientLights     []AmbientLight

	// Environment is a cubemap used for image-based lighting, or the zero
	// handle for none.
	Environment Handle

	material      Handle
	materialStack []Handle
}

// NewShaderContext returns a context with identity transforms and no lights.
func NewShaderContext() *ShaderContext {
	c := &ShaderContext{}
	c.SetCamera(math3d.Identity4(), math3d.Identity4())
	return c
}

// SetViewport sets the viewport size in pixels.
func (c *ShaderContext) SetViewport(width, height int) {
	c.ViewportWidth, c.ViewportHeight = width, height
}

// SetCamera sets the view and projection matrices and recomputes the
// derived transforms.
func (c *ShaderContext) SetCamera(view, projection math3d.Mat4) {
	c.View = view
	c.Projection = projection
	c.ViewProjection = view.Mul(projection)
	inv, ok := view.Inverse()
	if !ok {
		inv = math3d.Identity4()
	}
	c.InverseView = inv
	c.CameraPosition = math3d.V3(0, 0, 0).TransformPoint(inv)
	c.SetWorld(c.World)
}

// SetWorld sets the entity transform and recomputes the derived transforms.
// The zero matrix is taken as the identity.
func (c *ShaderContext) SetWorld(world math3d.Mat4) {
	world = orIdentity(world)
	c.World = world
	c.WorldView = world.Mul(c.View)
	c.WorldViewProjection = world.Mul(c.ViewProjection)
	c.NormalMatrix = world.NormalMatrix()
}

// ActiveMaterial returns the handle of the material bound for the current
// draw call. The zero handle means the default material.
func (c *ShaderContext) ActiveMaterial() Handle {
	return c.material
}

// PushMaterial binds h as the active material, remembering the previous one.
func (c *ShaderContext) PushMaterial(h Handle) {
	c.materialStack = append(c.materialStack, c.material)
	c.material = h
}

// PopMaterial restores the material that was active before the matching
// PushMaterial. Popping an empty stack binds the zero handle.
func (c *ShaderContext) PopMaterial() {
	n := len(c.materialStack)
	if n == 0 {
		c.material = Handle{}
		return
	}
	c.material = c.materialStack[n-1]
	c.materialStack = c.materialStack[:n-1]
}

// ClearLights removes every light.
func (c *ShaderContext) ClearLights() {
	c.DirectionalLights = c.DirectionalLights[:0]
	c.PointLights = c.PointLights[:0]
	c.SpotLights = c.SpotLights[:0]
	c.AmbientLights = c.AmbientLights[:0]
}

// AddDirectionalLight appends a directional light.
func (c *ShaderContext) AddDirectionalLight(l DirectionalLight) {
	c.DirectionalLights = append(c.DirectionalLights, l)
}

// AddPointLight appends a point light.
func (c *ShaderContext) AddPointLight(l PointLight) {
	c.PointLights = append(c.PointLights, l)
}

// AddSpotLight appends a spot light.
func (c *ShaderContext) AddSpotLight(l SpotLight) {
	c.SpotLights = append(c.SpotLights, l)
}

// AddAmbientLight appends an ambient light.
func (c *ShaderContext) AddAmbientLight(l AmbientLight) {
	c.AmbientLights = append(c.AmbientLights, l)
}

func orIdentity(m math3d.Mat4) math3d.Mat4 {
	if m == (math3d.Mat4{}) {
		return math3d.Identity4()
	}
	return m
}
