package prefabs

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/platformer/locomotion"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedPrefabsLoad(t *testing.T) {
	cases := []struct {
		name string
		load func() error
	}{
		{"player", func() error { _, err := LoadPlayerSpec(); return err }},
		{"camera", func() error { _, err := LoadCameraSpec(); return err }},
		{"follower", func() error { _, err := LoadFollowerSpec(); return err }},
		{"flash", func() error { _, err := LoadFlashSpec(); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.load(); err != nil {
				t.Fatalf("load: %v", err)
			}
		})
	}
}

func TestPlayerSpecContents(t *testing.T) {
	spec, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := spec.Locomotion.Config()
	if cfg.WalkSpeed != 8 || cfg.RunSpeed != 15 || cfg.SlopeLimit != 45 || cfg.GroundLayer != 1 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.RayDistance != 0 {
		t.Fatalf("expected an unbounded slope ray, got %v", cfg.RayDistance)
	}
	if spec.InitialState != "idle" {
		t.Fatalf("expected initial state idle, got %q", spec.InitialState)
	}
	for _, s := range locomotion.States() {
		found := false
		for _, b := range spec.Animation.Bindings {
			found = found || b.State == s.Name()
		}
		if !found {
			t.Fatalf("state %s has no clip binding", s.Name())
		}
	}
	if len(spec.Animation.Transitions) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(spec.Animation.Transitions))
	}
	if want := (color.NRGBA{R: 0x4f, G: 0x8f, B: 0xd6, A: 0xff}); spec.Sprite.Tint.NRGBA != want {
		t.Fatalf("expected tint %v, got %v", want, spec.Sprite.Tint.NRGBA)
	}
}

func TestLocomotionSpecConfigOverlaysDefaults(t *testing.T) {
	def := locomotion.DefaultConfig()
	if got := (LocomotionSpec{}).Config(); got != def {
		t.Fatalf("empty spec should give the defaults, got %+v", got)
	}

	got := LocomotionSpec{WalkSpeed: 3, JumpButton: "Fire", GroundLayer: 4}.Config()
	want := def
	want.WalkSpeed = 3
	want.JumpButton = "Fire"
	want.GroundLayer = 4
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestPlayerSpecValidate(t *testing.T) {
	base := func() PlayerSpec {
		return PlayerSpec{
			InitialState: "idle",
			Animation: AnimationSpec{
				Clips:       []ClipSpec{{Name: "idle"}, {Name: "run"}, {Name: "idle_to_run"}},
				Bindings:    []BindingSpec{{State: "idle", Clip: "idle"}, {State: "run", Clip: "run"}},
				Transitions: []TransitionRuleSpec{{From: "idle", To: "run", Via: "idle_to_run"}},
			},
		}
	}
	cases := []struct {
		name   string
		mutate func(*PlayerSpec)
		want   error
	}{
		{"valid", func(*PlayerSpec) {}, nil},
		{"bad_config", func(s *PlayerSpec) { s.Locomotion.RunSpeed = 1 }, locomotion.ErrInvalidConfig},
		{"unknown_initial_state", func(s *PlayerSpec) { s.InitialState = "fly" }, ErrInvalidSpec},
		{"unnamed_clip", func(s *PlayerSpec) { s.Animation.Clips = append(s.Animation.Clips, ClipSpec{}) }, ErrInvalidSpec},
		{"duplicate_clip", func(s *PlayerSpec) { s.Animation.Clips = append(s.Animation.Clips, ClipSpec{Name: "run"}) }, ErrInvalidSpec},
		{"binding_unknown_clip", func(s *PlayerSpec) { s.Animation.Bindings[0].Clip = "nope" }, ErrInvalidSpec},
		{"transition_unknown_clip", func(s *PlayerSpec) { s.Animation.Transitions[0].Via = "nope" }, ErrInvalidSpec},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := base()
			tc.mutate(&s)
			err := s.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		want    color.NRGBA
		wantErr bool
	}{
		{"hex", `c: "#ff8000"`, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"hex_alpha", `c: "#00ff0080"`, color.NRGBA{G: 0xff, A: 0x80}, false},
		{"bare_hex", `c: "102030"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"name", `c: crimson`, color.NRGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff}, false},
		{"name_any_case", `c: Crimson`, color.NRGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0xff}, false},
		{"short", `c: "#fff"`, color.NRGBA{}, true},
		{"not_hex", `c: "#gggggg"`, color.NRGBA{}, true},
		{"not_scalar", `c: [1, 2]`, color.NRGBA{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v struct {
				C YAMLColor `yaml:"c"`
			}
			err := yaml.Unmarshal([]byte(tc.src), &v)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %v", v.C)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !v.C.Set || v.C.NRGBA != tc.want {
				t.Fatalf("expected %v, got %v (set=%v)", tc.want, v.C.NRGBA, v.C.Set)
			}
		})
	}
}

func TestYAMLColorOr(t *testing.T) {
	fallback := color.NRGBA{R: 1, A: 255}
	if got := (YAMLColor{}).Or(fallback); got != fallback {
		t.Fatalf("unset color should fall back, got %v", got)
	}
	black := YAMLColor{NRGBA: color.NRGBA{A: 255}, Set: true}
	if got := black.Or(fallback); got != black.NRGBA {
		t.Fatalf("set color should win, got %v", got)
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })

	camera := "target: follower\nmin: {x: 0, y: 0}\nmax: {x: 1, y: 1}\n"
	if err := os.WriteFile(filepath.Join(dir, "camera.yaml"), []byte(camera), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	spec, err := LoadCameraSpec()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Target != "follower" {
		t.Fatalf("expected the disk copy, got target %q", spec.Target)
	}

	// Files missing on disk still come from the embedded copy.
	if _, err := LoadFollowerSpec(); err != nil {
		t.Fatalf("embedded fallback: %v", err)
	}

	bad := "min: {x: 5, y: 0}\nmax: {x: 1, y: 1}\n"
	if err := os.WriteFile(filepath.Join(dir, "camera.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCameraSpec(); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestLoadPaths(t *testing.T) {
	cases := []struct {
		name   string
		clean  func(string) string
		in     string
		expect string
	}{
		{"prefab_bare", cleanPrefabPath, "player.yaml", "player.yaml"},
		{"prefab_prefixed", cleanPrefabPath, "prefabs/player.yaml", "player.yaml"},
		{"prefab_empty", cleanPrefabPath, "", ""},
		{"script_bare", cleanScriptPath, "respond.tengo", "scripts/respond.tengo"},
		{"script_prefixed", cleanScriptPath, "prefabs/scripts/respond.tengo", "scripts/respond.tengo"},
		{"script_dir", cleanScriptPath, "scripts/respond.tengo", "scripts/respond.tengo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.clean(tc.in); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}

	if _, err := LoadScript("respond.tengo"); err != nil {
		t.Fatalf("embedded script: %v", err)
	}
	if _, err := Load(""); err == nil {
		t.Fatalf("empty name should fail")
	}
}

func TestLoadFlashSpecRejectsUnknownState(t *testing.T) {
	dir := t.TempDir()
	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })

	if err := os.WriteFile(filepath.Join(dir, "flash.yaml"), []byte("response_state: fly\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFlashSpec(); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}
