package main

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d"
	"github.com/gogpu/gg3d/math3d"
	"github.com/gogpu/gg3d/shader"
)

var fragmentShaders = map[string]gg3d.FragmentShader{
	"pbr":     shader.PBR,
	"phong":   shader.BlinnPhong,
	"flat":    shader.Flat,
	"normals": shader.Normals,
}

// demoScene is a checkered floor with a cube, a metal sphere, a glass
// pane and an emissive ball, lit by a low sun and a warm point light.
type demoScene struct {
	entities []gg3d.Entity
	// spin is the index of the entity turned by the turntable.
	spin int
	sun  *gg3d.ShadowMap
}

func buildScene(ctx *gg3d.ShaderContext, res *gg3d.Resources, s Settings) *demoScene {
	floorMap := res.AddTexture(checker(8, math3d.V3(0.8, 0.8, 0.78), math3d.V3(0.25, 0.27, 0.3)))

	floor := res.AddMaterial(gg3d.Material{
		Albedo:    math3d.V3(1, 1, 1),
		Alpha:     1,
		Roughness: 0.8,
		Specular:  0.2,
		AlbedoMap: floorMap,
	})
	clay := res.AddMaterial(gg3d.Material{
		Albedo:    math3d.V3(0.85, 0.3, 0.2),
		Alpha:     1,
		Roughness: 0.45,
		Specular:  0.5,
	})
	chrome := res.AddMaterial(gg3d.Material{
		Albedo:    math3d.V3(0.95, 0.93, 0.88),
		Alpha:     1,
		Roughness: 0.15,
		Metallic:  1,
		Specular:  1,
	})
	glass := res.AddMaterial(gg3d.Material{
		Albedo:    math3d.V3(0.3, 0.6, 1),
		Alpha:     0.35,
		Roughness: 0.05,
		Specular:  1,
	})
	lamp := res.AddMaterial(gg3d.Material{
		Albedo:   math3d.V3(1, 0.8, 0.5),
		Alpha:    1,
		Emissive: math3d.V3(6, 4.5, 2.5),
		Unlit:    true,
	})

	plane := res.AddMesh(gg3d.NewPlane(12, 8))
	cube := res.AddMesh(gg3d.NewCube(1.4))
	sphere := res.AddMesh(gg3d.NewUVSphere(0.8, 32, 16))
	ball := res.AddMesh(gg3d.NewUVSphere(0.2, 12, 6))
	pane := res.AddMesh(gg3d.NewQuad(2.2, 1.6))

	ctx.Environment = res.AddCubemap(gg3d.NewGradientCubemap(32,
		math3d.V3(0.25, 0.45, 0.9), math3d.V3(0.75, 0.8, 0.85), math3d.V3(0.2, 0.18, 0.15)))

	sun := gg3d.DirectionalLight{
		Direction: math3d.V3(-0.6, -1, -0.4),
		Color:     math3d.V3(1, 0.96, 0.9),
		Intensity: 2.5,
	}
	var sm *gg3d.ShadowMap
	if s.Shadows {
		sm = gg3d.NewShadowMap(s.ShadowSize, res)
		sun.Shadow = sm
	}
	ctx.ClearLights()
	ctx.AddDirectionalLight(sun)
	ctx.AddPointLight(gg3d.PointLight{
		Position:  math3d.V3(1.6, 0.6, 1.4),
		Color:     math3d.V3(1, 0.75, 0.45),
		Intensity: 3,
		Range:     6,
	})
	ctx.AddAmbientLight(gg3d.AmbientLight{Color: math3d.V3(0.6, 0.7, 0.9), Intensity: 0.15})

	return &demoScene{
		entities: []gg3d.Entity{
			{World: math3d.Identity4(), Mesh: plane, Material: floor},
			{World: math3d.Translation(math3d.V3(-1.3, 0.7, 0)), Mesh: cube, Material: clay},
			{World: math3d.Translation(math3d.V3(1.2, 0.8, -0.6)), Mesh: sphere, Material: chrome},
			{World: math3d.Translation(math3d.V3(1.6, 0.6, 1.4)), Mesh: ball, Material: lamp},
			{
				World:    math3d.RotationY(-0.5).Mul(math3d.Translation(math3d.V3(-0.2, 0.8, 1.8))),
				Mesh:     pane,
				Material: glass,
			},
		},
		spin: 1,
		sun:  sm,
	}
}

// turn rotates the spinning entity to angle radians about its own origin.
func (d *demoScene) turn(angle float32) {
	e := &d.entities[d.spin]
	pos := math3d.Vec3{}.TransformPoint(e.World)
	e.World = math3d.RotationY(angle).Mul(math3d.Translation(pos))
}

// camera returns the view and projection for an orbit at angle radians.
func camera(angle float32, aspect float32) (view, proj math3d.Mat4) {
	s, c := math32.Sincos(angle)
	eye := math3d.V3(6*s, 3.2, 6*c)
	view = math3d.LookAt(eye, math3d.V3(0, 0.6, 0), math3d.V3(0, 1, 0))
	proj = math3d.Perspective(math32.Pi/4, aspect, 0.1, 60)
	return view, proj
}

// checker returns an n×n two-color checkerboard texture with nearest
// filtering and repeat wrapping.
func checker(n int, a, b math3d.Vec3) *gg3d.Texture {
	t := gg3d.NewTexture(n, n)
	t.Filter = gg3d.FilterNearest
	for y := range n {
		for x := range n {
			c := a
			if (x+y)%2 == 1 {
				c = b
			}
			t.Set(x, y, c.Vec4(1))
		}
	}
	return t
}
