package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/platformer/locomotion"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type TransformSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

type SpriteSpec struct {
	Width   float64   `yaml:"width"`
	Height  float64   `yaml:"height"`
	Tint    YAMLColor `yaml:"tint"`
	Outline YAMLColor `yaml:"outline"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
	Layer    uint    `yaml:"layer"`
}

// LocomotionSpec overrides locomotion.DefaultConfig. Zero fields keep the
// default.
type LocomotionSpec struct {
	HorizontalAxis  string  `yaml:"horizontal_axis"`
	JumpButton      string  `yaml:"jump_button"`
	WalkSpeed       float64 `yaml:"walk_speed"`
	RunSpeed        float64 `yaml:"run_speed"`
	RunThreshold    float64 `yaml:"run_threshold"`
	JumpStrength    float64 `yaml:"jump_strength"`
	Gravity         float64 `yaml:"gravity"`
	GravityScale    float64 `yaml:"gravity_scale"`
	SlideSpeed      float64 `yaml:"slide_speed"`
	SlopeLimit      float64 `yaml:"slope_limit"`
	InertiaDuration float64 `yaml:"inertia_duration"`
	RayLift         float64 `yaml:"ray_lift"`
	RayDistance     float64 `yaml:"ray_distance"`
	GroundLayer     uint    `yaml:"ground_layer"`
}

// Config merges the spec over the defaults. It does not validate.
func (s LocomotionSpec) Config() locomotion.Config {
	cfg := locomotion.DefaultConfig()
	if s.HorizontalAxis != "" {
		cfg.HorizontalAxis = s.HorizontalAxis
	}
	if s.JumpButton != "" {
		cfg.JumpButton = s.JumpButton
	}
	overrides := []struct {
		dst *float64
		v   float64
	}{
		{&cfg.WalkSpeed, s.WalkSpeed},
		{&cfg.RunSpeed, s.RunSpeed},
		{&cfg.RunThreshold, s.RunThreshold},
		{&cfg.JumpStrength, s.JumpStrength},
		{&cfg.Gravity, s.Gravity},
		{&cfg.GravityScale, s.GravityScale},
		{&cfg.SlideSpeed, s.SlideSpeed},
		{&cfg.SlopeLimit, s.SlopeLimit},
		{&cfg.InertiaDuration, s.InertiaDuration},
		{&cfg.RayLift, s.RayLift},
		{&cfg.RayDistance, s.RayDistance},
	}
	for _, o := range overrides {
		if o.v != 0 {
			*o.dst = o.v
		}
	}
	if s.GroundLayer != 0 {
		cfg.GroundLayer = s.GroundLayer
	}
	return cfg
}

type ClipSpec struct {
	Name   string    `yaml:"name"`
	Frames int       `yaml:"frames"`
	FPS    float64   `yaml:"fps"`
	Color  YAMLColor `yaml:"color"`
}

type BindingSpec struct {
	State string `yaml:"state"`
	Clip  string `yaml:"clip"`
}

type TransitionRuleSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Via  string `yaml:"via"`
}

type AnimationSpec struct {
	Clips       []ClipSpec           `yaml:"clips"`
	Bindings    []BindingSpec        `yaml:"bindings"`
	Transitions []TransitionRuleSpec `yaml:"transitions"`
}

// AudioSpec describes a generated tone sweeping from Frequency to
// EndFrequency over Duration seconds.
type AudioSpec struct {
	Name         string  `yaml:"name"`
	Frequency    float64 `yaml:"frequency"`
	EndFrequency float64 `yaml:"end_frequency"`
	Duration     float64 `yaml:"duration"`
	Volume       float64 `yaml:"volume"`
}

type PlayerSpec struct {
	Name         string         `yaml:"name"`
	Transform    TransformSpec  `yaml:"transform"`
	Sprite       SpriteSpec     `yaml:"sprite"`
	Collider     ColliderSpec   `yaml:"collider"`
	Locomotion   LocomotionSpec `yaml:"locomotion"`
	Animation    AnimationSpec  `yaml:"animation"`
	InitialState string         `yaml:"initial_state"`
	Audio        []AudioSpec    `yaml:"audio"`
}

// Validate checks authoring data that would otherwise fail silently at
// runtime.
func (s *PlayerSpec) Validate() error {
	var errs []error
	if err := s.Locomotion.Config().Validate(); err != nil {
		errs = append(errs, err)
	}
	if s.InitialState != "" {
		if _, ok := locomotion.ParseState(s.InitialState); !ok {
			errs = append(errs, fmt.Errorf("%w: unknown initial_state %q", ErrInvalidSpec, s.InitialState))
		}
	}
	clips := make(map[string]bool, len(s.Animation.Clips))
	for _, c := range s.Animation.Clips {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("%w: clip without name", ErrInvalidSpec))
			continue
		}
		if clips[c.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate clip %q", ErrInvalidSpec, c.Name))
		}
		clips[c.Name] = true
	}
	for _, b := range s.Animation.Bindings {
		if b.Clip != "" && !clips[b.Clip] {
			errs = append(errs, fmt.Errorf("%w: binding %q uses unknown clip %q", ErrInvalidSpec, b.State, b.Clip))
		}
	}
	for _, t := range s.Animation.Transitions {
		if t.Via != "" && !clips[t.Via] {
			errs = append(errs, fmt.Errorf("%w: transition %s->%s uses unknown clip %q", ErrInvalidSpec, t.From, t.To, t.Via))
		}
	}
	return errors.Join(errs...)
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: player.yaml: %w", err)
	}
	return &spec, nil
}

type CameraSpec struct {
	Name      string   `yaml:"name"`
	Target    string   `yaml:"target"`
	Offset    Vec2Spec `yaml:"offset"`
	Min       Vec2Spec `yaml:"min"`
	Max       Vec2Spec `yaml:"max"`
	Smoothing float64  `yaml:"smoothing"`
	Zoom      float64  `yaml:"zoom"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Min.X > spec.Max.X || spec.Min.Y > spec.Max.Y {
		return nil, fmt.Errorf("prefabs: camera.yaml: %w: min exceeds max", ErrInvalidSpec)
	}
	return &spec, nil
}

type CurveKeySpec struct {
	T float64 `yaml:"t"`
	V float64 `yaml:"v"`
}

type FollowerSpec struct {
	Name            string         `yaml:"name"`
	Target          string         `yaml:"target"`
	FollowDistance  float64        `yaml:"follow_distance"`
	Smoothing       float64        `yaml:"smoothing"`
	FloatHeight     float64        `yaml:"float_height"`
	FloatIdleOffset float64        `yaml:"float_idle_offset"`
	Curve           []CurveKeySpec `yaml:"curve"`
	GroundLayer     uint           `yaml:"ground_layer"`
	Radius          float64        `yaml:"radius"`
	Color           YAMLColor      `yaml:"color"`
}

func LoadFollowerSpec() (*FollowerSpec, error) {
	spec, err := LoadSpec[FollowerSpec]("follower.yaml")
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(spec.Curve); i++ {
		if spec.Curve[i].T < spec.Curve[i-1].T {
			return nil, fmt.Errorf("prefabs: follower.yaml: %w: curve keys out of order", ErrInvalidSpec)
		}
	}
	return &spec, nil
}

// FlashSpec attaches a color response to the Attach entity, watching the
// Target character.
type FlashSpec struct {
	Target        string    `yaml:"target"`
	Attach        string    `yaml:"attach"`
	ResponseState string    `yaml:"response_state"`
	ResponseColor YAMLColor `yaml:"response_color"`
	Script        string    `yaml:"script"`
}

func LoadFlashSpec() (*FlashSpec, error) {
	spec, err := LoadSpec[FlashSpec]("flash.yaml")
	if err != nil {
		return nil, err
	}
	if _, ok := locomotion.ParseState(spec.ResponseState); !ok {
		return nil, fmt.Errorf("prefabs: flash.yaml: %w: unknown response_state %q", ErrInvalidSpec, spec.ResponseState)
	}
	return &spec, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.NRGBA
	Set bool
}

func (c YAMLColor) Or(fallback color.NRGBA) color.NRGBA {
	if !c.Set {
		return fallback
	}
	return c.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.NRGBA = color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}
		c.Set = true
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	c.Set = true
	return nil
}
