package system

import (
	"math"
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/locomotion"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestVirtualAxisStep(t *testing.T) {
	const dt = 1.0 / 60
	cases := []struct {
		name  string
		start float64
		raw   []float64
		want  float64
	}{
		{"ramps_up", 0, repeat(1, 10), 0.5},
		{"saturates", 0, repeat(1, 40), 1},
		{"returns_to_rest", 1, repeat(0, 10), 0.5},
		{"rest_stops_at_zero", 0.1, repeat(0, 10), 0},
		{"snaps_on_reversal", 0.8, []float64{-1}, -0.05},
		{"clamps_raw", 0.99, []float64{5}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := VirtualAxis{Sensitivity: 3, Gravity: 3, Snap: true}
			a.Set(tc.start)
			for _, r := range tc.raw {
				a.Step(r, dt)
			}
			if !approx(a.Value(), tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, a.Value())
			}
		})
	}
}

func TestVirtualAxisWithoutSnapReversesGradually(t *testing.T) {
	a := VirtualAxis{Sensitivity: 3, Gravity: 3}
	a.Set(0.5)
	a.Step(-1, 1.0/60)
	if !approx(a.Value(), 0.45) {
		t.Fatalf("expected 0.45, got %v", a.Value())
	}
}

func TestInputSystemWritesComponents(t *testing.T) {
	cases := []struct {
		name     string
		raw      RawInput
		wantAxis float64
	}{
		{"keyboard_ramps", RawInput{Digital: 1, Jump: true, JumpPressed: true}, 0.05},
		{"stick_passes_through", RawInput{Stick: -0.8}, -0.8},
		{"idle", RawInput{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := w.CreateEntity()
			if err := ecs.Add(w, e, component.InputComponent, component.NewInput()); err != nil {
				t.Fatalf("add input: %v", err)
			}
			blank := w.CreateEntity()
			if err := ecs.Add(w, blank, component.InputComponent, &component.Input{}); err != nil {
				t.Fatalf("add input: %v", err)
			}
			partial := w.CreateEntity()
			if err := ecs.Add(w, partial, component.InputComponent, &component.Input{Axes: map[string]float64{}}); err != nil {
				t.Fatalf("add input: %v", err)
			}

			sys := NewInputSystem()
			sys.sample = func() RawInput { return tc.raw }
			sys.Update(w)

			for _, ent := range []ecs.Entity{e, blank, partial} {
				in, _ := ecs.Get(w, ent, component.InputComponent)
				if !approx(in.Axis(AxisHorizontal), tc.wantAxis) {
					t.Fatalf("entity %v: expected axis %v, got %v", ent, tc.wantAxis, in.Axis(AxisHorizontal))
				}
				if in.PressedThisFrame(ButtonJump) != tc.raw.JumpPressed {
					t.Fatalf("entity %v: pressed mismatch", ent)
				}
				if in.Held[ButtonJump] != tc.raw.Jump {
					t.Fatalf("entity %v: held mismatch", ent)
				}
			}
		})
	}
}

func TestInputCrossesRunThresholdOverTime(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.InputComponent, component.NewInput())

	sys := NewInputSystem()
	sys.sample = func() RawInput { return RawInput{Digital: 1} }

	frames := 0
	for {
		sys.Update(w)
		frames++
		in, _ := ecs.Get(w, e, component.InputComponent)
		if in.Axis(AxisHorizontal) > 0.6 {
			break
		}
		if frames > 60 {
			t.Fatalf("axis never crossed the run threshold")
		}
	}
	if frames < 10 {
		t.Fatalf("expected a gradual ramp, crossed after %d frames", frames)
	}
}

func TestInputSystemUsesControllerInputNames(t *testing.T) {
	cfg := locomotion.DefaultConfig()
	cfg.HorizontalAxis = "Move"
	cfg.JumpButton = "Fire"
	controller, err := locomotion.NewController(cfg, nil, nil)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}

	w := ecs.NewWorld()
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.InputComponent, component.NewInput())
	_ = ecs.Add(w, e, component.LocomotionComponent, &component.Locomotion{Controller: controller})

	sys := NewInputSystem()
	sys.sample = func() RawInput { return RawInput{Stick: 0.6, Jump: true, JumpPressed: true} }
	sys.Update(w)

	in, _ := ecs.Get(w, e, component.InputComponent)
	if !approx(in.Axis("Move"), 0.6) {
		t.Fatalf("expected Move 0.6, got %v", in.Axis("Move"))
	}
	if !in.PressedThisFrame("Fire") || !in.Held["Fire"] {
		t.Fatalf("expected Fire pressed and held: %+v", in)
	}
	if _, ok := in.Axes[AxisHorizontal]; ok {
		t.Fatalf("default axis written for a controller that reads %q", cfg.HorizontalAxis)
	}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
