package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"bloom-gl/effects"
	"bloom-gl/log"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slices"
)

var ErrInvalid = errors.New("invalid config")

var Scenes = []string{"grass", "street"}

type Vec3 [3]float32

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	Vsync  bool   `toml:"vsync"`
}

type Camera struct {
	Position    Vec3    `toml:"position"`
	Yaw         float32 `toml:"yaw"`
	Pitch       float32 `toml:"pitch"`
	Fov         float32 `toml:"fov"`
	Near        float32 `toml:"near"`
	Far         float32 `toml:"far"`
	Speed       float32 `toml:"speed"`
	Sensitivity float32 `toml:"sensitivity"`
}

type PointLight struct {
	Position  Vec3    `toml:"position"`
	Color     Vec3    `toml:"color"`
	Ambient   float32 `toml:"ambient"`
	Diffuse   float32 `toml:"diffuse"`
	Specular  float32 `toml:"specular"`
	Constant  float32 `toml:"constant"`
	Linear    float32 `toml:"linear"`
	Quadratic float32 `toml:"quadratic"`
}

type Sun struct {
	Position Vec3    `toml:"position"`
	Scale    float32 `toml:"scale"`
	Color    Vec3    `toml:"color"`
}

type Scene struct {
	Variant    string       `toml:"variant"`
	ModelScale float32      `toml:"model_scale"`
	Shininess  float32      `toml:"shininess"`
	Camera     Camera       `toml:"camera"`
	Lights     []PointLight `toml:"lights"`
	Sun        Sun          `toml:"sun"`
}

type Assets struct {
	Dir       string    `toml:"dir"`
	Skybox    [6]string `toml:"skybox"`
	CacheSize int       `toml:"cache_size"`
}

type Log struct {
	Level string `toml:"level"`
}

type Config struct {
	Window Window         `toml:"window"`
	Bloom  effects.Config `toml:"bloom"`
	Scene  Scene          `toml:"scene"`
	Assets Assets         `toml:"assets"`
	Log    Log            `toml:"log"`
}

func Default() *Config {
	return &Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "Bloom",
			Vsync:  true,
		},
		Bloom: effects.DefaultConfig(),
		Scene: Scene{
			Variant:    "grass",
			ModelScale: 0.4,
			Shininess:  32,
			Camera: Camera{
				Position:    Vec3{0, 15, 0},
				Yaw:         -90,
				Pitch:       0,
				Fov:         45,
				Near:        0.1,
				Far:         1000,
				Speed:       2.5,
				Sensitivity: 0.1,
			},
			Lights: []PointLight{{
				Position:  Vec3{0, 40, 0},
				Color:     Vec3{1, 1, 1},
				Ambient:   50,
				Diffuse:   5,
				Specular:  1,
				Constant:  1,
				Linear:    0.09,
				Quadratic: 0.032,
			}},
			Sun: Sun{
				Position: Vec3{0, 65, -90},
				Scale:    4,
				Color:    Vec3{10, 10, 10},
			},
		},
		Assets: Assets{
			Dir: "resources",
			Skybox: [6]string{
				"cubemaps/default/right.jpg",
				"cubemaps/default/left.jpg",
				"cubemaps/default/top.jpg",
				"cubemaps/default/bottom.jpg",
				"cubemaps/default/front.jpg",
				"cubemaps/default/back.jpg",
			},
			CacheSize: 16,
		},
		Log: Log{Level: "notice"},
	}
}

// Load reads a TOML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overwrites the fields present in data. Unknown keys are an error.
// A lights array in data replaces the existing lights instead of extending them.
func Decode(data []byte, cfg *Config) error {
	lights := cfg.Scene.Lights
	cfg.Scene.Lights = nil
	defer func() {
		if cfg.Scene.Lights == nil {
			cfg.Scene.Lights = lights
		}
	}()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var details *toml.DecodeError
		if errors.As(err, &details) {
			row, col := details.Position()
			return fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return err
	}
	return nil
}

func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *Config) Validate() error {
	if err := c.Bloom.Validate(); err != nil {
		return err
	}
	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if !slices.Contains(Scenes, c.Scene.Variant) {
		return fmt.Errorf("%w: unknown scene %q, expected one of %v", ErrInvalid, c.Scene.Variant, Scenes)
	}
	cam := c.Scene.Camera
	if !(cam.Fov > 0 && cam.Fov < 180) {
		return fmt.Errorf("%w: camera fov must be in (0, 180), got %v", ErrInvalid, cam.Fov)
	}
	if !(cam.Near > 0 && cam.Far > cam.Near) {
		return fmt.Errorf("%w: camera planes must satisfy 0 < near < far, got %v and %v", ErrInvalid, cam.Near, cam.Far)
	}
	if len(c.Scene.Lights) > MaxLights {
		return fmt.Errorf("%w: at most %d lights are supported, got %d", ErrInvalid, MaxLights, len(c.Scene.Lights))
	}
	for i, face := range c.Assets.Skybox {
		if face == "" {
			return fmt.Errorf("%w: skybox face %d is empty", ErrInvalid, i)
		}
	}
	if c.Assets.CacheSize < 1 {
		return fmt.Errorf("%w: asset cache size must be positive, got %d", ErrInvalid, c.Assets.CacheSize)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// MaxLights matches the light array size of the scene shader.
const MaxLights = 8
