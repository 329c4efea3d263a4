package main

import (
	"fmt"
	"strconv"

	"bloom-gl/assets"
	"bloom-gl/config"
	"bloom-gl/effects"
	"bloom-gl/libgl"
	"bloom-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type Drawable struct {
	Mesh  *Mesh
	Model mgl32.Mat4
	Tint  mgl32.Vec3
}

// Scene draws lit geometry, emissive objects and the skybox into the capture target.
type Scene struct {
	cfg       config.Scene
	threshold float32
	camera    *Camera
	state     *effects.BloomState
	lights    []config.PointLight

	litShader      libgl.UnboundShaderPipeline
	emissiveShader libgl.UnboundShaderPipeline
	sampler        libgl.UnboundSampler
	white          libgl.UnboundTexture
	sky            *Sky

	meshes   []*Mesh
	lit      []Drawable
	emissive []Drawable
}

func NewScene(cfg config.Scene, threshold float32, camera *Camera, state *effects.BloomState, sky *Sky) (scene *Scene, err error) {
	scene = &Scene{
		threshold: threshold,
		camera:    camera,
		state:     state,
		sky:       sky,
	}
	defer func() {
		if err != nil {
			scene.Delete()
			scene = nil
		}
	}()

	defs := map[string]string{"MAX_LIGHTS": strconv.Itoa(config.MaxLights)}
	if scene.litShader, err = LoadPipeline("Scene", Res_SceneVshSrc, Res_SceneFshSrc, defs); err != nil {
		return nil, err
	}
	if scene.emissiveShader, err = LoadPipeline("Sun", Res_SceneVshSrc, Res_SunFshSrc, nil); err != nil {
		return nil, err
	}

	scene.sampler = libgl.NewSampler()
	scene.sampler.FilterMode(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR)
	scene.sampler.WrapMode(gl.REPEAT, gl.REPEAT, 0)
	scene.sampler.SetDebugLabel("Scene")

	scene.white = assets.UploadTexture(assets.Solid(255, 255, 255, 255), true)
	scene.white.SetDebugLabel("White")

	scene.Apply(cfg)
	return scene, nil
}

// Apply rebuilds the geometry when the variant changes and takes over lights and materials.
func (s *Scene) Apply(cfg config.Scene) {
	rebuild := s.meshes == nil || cfg.Variant != s.cfg.Variant || cfg.ModelScale != s.cfg.ModelScale || cfg.Sun != s.cfg.Sun
	s.cfg = cfg
	if !rebuild {
		s.lights = sceneLights(cfg)
		return
	}
	s.deleteMeshes()
	switch cfg.Variant {
	case "street":
		s.buildStreet()
	default:
		s.buildGrass()
	}
	s.lights = sceneLights(cfg)
	logger.Infof("built %s scene: %d lit, %d emissive, %d lights", cfg.Variant, len(s.lit), len(s.emissive), len(s.lights))
}

func (s *Scene) SetBrightThreshold(threshold float32) {
	s.threshold = threshold
}

func (s *Scene) upload(label string, data *MeshData) *Mesh {
	mesh := UploadMesh(label, data)
	s.meshes = append(s.meshes, mesh)
	return mesh
}

func (s *Scene) sun() Drawable {
	sphere := s.upload("Sun", UvSphere(24, 48))
	sun := s.cfg.Sun
	return Drawable{
		Mesh:  sphere,
		Model: mgl32.Translate3D(sun.Position[0], sun.Position[1], sun.Position[2]).Mul4(mgl32.Scale3D(sun.Scale, sun.Scale, sun.Scale)),
		Tint:  mgl32.Vec3(sun.Color),
	}
}

func (s *Scene) buildGrass() {
	patch := &MeshData{}
	patch.Append(Plane(100, 1), mgl32.Ident4())
	// tufts scattered in a fixed pattern
	for i := 0; i < 64; i++ {
		x := float32(i%8)*10 - 35
		z := float32(i/8)*10 - 35
		h := 1.5 + float32((i*7)%5)*0.5
		patch.Append(Box(0.6, h, 0.6), mgl32.Translate3D(x, 0, z))
	}
	scale := s.cfg.ModelScale
	s.lit = append(s.lit, Drawable{
		Mesh:  s.upload("Grass", patch),
		Model: mgl32.Scale3D(scale, scale, scale),
		Tint:  mgl32.Vec3{0.25, 0.55, 0.15},
	})
	s.emissive = append(s.emissive, s.sun())
}

// streetLampPositions are the lamp heads of the street variant.
var streetLampPositions = []mgl32.Vec3{
	{-12, 9, -20}, {12, 9, -20}, {-12, 9, -45}, {12, 9, -45},
}

func (s *Scene) buildStreet() {
	scale := s.cfg.ModelScale
	model := mgl32.Scale3D(scale, scale, scale)

	ground := &MeshData{}
	ground.Append(Plane(200, 1), mgl32.Ident4())
	s.lit = append(s.lit, Drawable{Mesh: s.upload("Road", ground), Model: model, Tint: mgl32.Vec3{0.2, 0.2, 0.22}})

	platform := &MeshData{}
	platform.Append(Box(40, 1, 80), mgl32.Translate3D(0, 0, -30))
	s.lit = append(s.lit, Drawable{Mesh: s.upload("Platform", platform), Model: model, Tint: mgl32.Vec3{0.5, 0.5, 0.5}})

	building := &MeshData{}
	building.Append(Box(30, 60, 20), mgl32.Translate3D(-40, 0, -60))
	building.Append(Box(20, 40, 20), mgl32.Translate3D(40, 0, -60))
	s.lit = append(s.lit, Drawable{Mesh: s.upload("Buildings", building), Model: model, Tint: mgl32.Vec3{0.6, 0.45, 0.35}})

	poles := &MeshData{}
	for _, p := range streetLampPositions {
		poles.Append(Box(0.3, p[1], 0.3), mgl32.Translate3D(p[0], 0, p[2]))
	}
	s.lit = append(s.lit, Drawable{Mesh: s.upload("Poles", poles), Model: model, Tint: mgl32.Vec3{0.1, 0.1, 0.1}})

	bulb := s.upload("Lamps", UvSphere(12, 24))
	for i, p := range streetLampPositions {
		pos := p.Mul(scale)
		s.emissive = append(s.emissive, Drawable{
			Mesh:  bulb,
			Model: mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(0.5, 0.5, 0.5)),
			Tint:  lampColor(i).Mul(6),
		})
	}
	s.emissive = append(s.emissive, s.sun())
}

// lampColor spreads warm hues over the street lamps.
func lampColor(i int) mgl32.Vec3 {
	hue := 0.08 + 0.03*float32(i%3)
	return libutil.Hsl2rgb(mgl32.Vec3{hue, 0.9, 0.7})
}

// sceneLights returns the configured lights, plus one per lamp for the street variant.
func sceneLights(cfg config.Scene) []config.PointLight {
	lights := append([]config.PointLight{}, cfg.Lights...)
	if cfg.Variant != "street" {
		return lights
	}
	for i, p := range streetLampPositions {
		if len(lights) >= config.MaxLights {
			break
		}
		pos := p.Mul(cfg.ModelScale)
		lights = append(lights, config.PointLight{
			Position:  config.Vec3{pos[0], pos[1] - 0.5, pos[2]},
			Color:     config.Vec3(lampColor(i)),
			Ambient:   0.05,
			Diffuse:   4,
			Specular:  1,
			Constant:  1,
			Linear:    0.09,
			Quadratic: 0.032,
		})
	}
	return lights
}

func (s *Scene) DrawScene(target *effects.CaptureTarget) {
	defer libgl.PushGroup("Scene")()

	viewProj := s.camera.ProjectionMatrix().Mul4(s.camera.ViewMatrix())

	libgl.State.CullBack()
	libgl.State.SetEnabled(libgl.DepthTest, libgl.CullFace)
	libgl.State.DepthFunc(libgl.DepthFuncLess)
	libgl.State.DepthMask(true)

	s.litShader.Bind()
	vsh, fsh := s.litShader.Get(gl.VERTEX_SHADER), s.litShader.Get(gl.FRAGMENT_SHADER)
	vsh.SetUniform("u_view_projection_mat", viewProj)
	fsh.SetUniform("u_camera_position", s.camera.Position)
	fsh.SetUniform("u_shininess", s.cfg.Shininess)
	fsh.SetUniform("u_bright_threshold", s.threshold)
	fsh.SetUniform("u_light_count", len(s.lights))
	for i, light := range s.lights {
		color := mgl32.Vec3(light.Color)
		prefix := fmt.Sprintf("u_lights[%d].", i)
		fsh.SetUniform(prefix+"position", mgl32.Vec3(light.Position))
		fsh.SetUniform(prefix+"ambient", color.Mul(light.Ambient))
		fsh.SetUniform(prefix+"diffuse", color.Mul(light.Diffuse))
		fsh.SetUniform(prefix+"specular", color.Mul(light.Specular))
		fsh.SetUniform(prefix+"constant", light.Constant)
		fsh.SetUniform(prefix+"linear", light.Linear)
		fsh.SetUniform(prefix+"quadratic", light.Quadratic)
	}
	s.sampler.Bind(0)
	s.white.Bind(0)
	for _, d := range s.lit {
		vsh.SetUniform("u_model_mat", d.Model)
		fsh.SetUniform("u_tint", d.Tint)
		d.Mesh.Draw()
	}

	s.emissiveShader.Bind()
	vsh, fsh = s.emissiveShader.Get(gl.VERTEX_SHADER), s.emissiveShader.Get(gl.FRAGMENT_SHADER)
	vsh.SetUniform("u_view_projection_mat", viewProj)
	fsh.SetUniform("u_bright_threshold", s.threshold)
	for _, d := range s.emissive {
		vsh.SetUniform("u_model_mat", d.Model)
		fsh.SetUniform("u_light_color", d.Tint)
		fsh.SetUniform("u_tint", mgl32.Vec3{1, 1, 1})
		d.Mesh.Draw()
	}

	if s.sky != nil {
		s.sky.Draw(s.camera, s.state.Snapshot().Enabled, s.threshold)
	}
}

func (s *Scene) deleteMeshes() {
	for _, m := range s.meshes {
		m.Delete()
	}
	s.meshes = nil
	s.lit = nil
	s.emissive = nil
}

func (s *Scene) Delete() {
	s.deleteMeshes()
	cleanup := []libutil.Deleter{s.sampler, s.white}
	if s.litShader != nil {
		DeletePipeline(s.litShader)
	}
	if s.emissiveShader != nil {
		DeletePipeline(s.emissiveShader)
	}
	libutil.DeleteAll(cleanup)
}
