package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// Virtual input names written to Input components whose entity has no
// locomotion controller naming its own.
const (
	AxisHorizontal = "Horizontal"
	ButtonJump     = "Jump"
)

const stickDeadzone = 0.2

// RawInput is one frame of device state before axis smoothing.
type RawInput struct {
	// Digital is the keyboard direction: -1, 0 or 1.
	Digital float64
	// Stick is the analog value, already dead-zoned. Zero when idle.
	Stick       float64
	Jump        bool
	JumpPressed bool
}

// VirtualAxis ramps a digital direction toward its target at Sensitivity
// units per second and back to rest at Gravity units per second. With Snap
// set, reversing direction restarts from zero.
type VirtualAxis struct {
	Sensitivity float64
	Gravity     float64
	Snap        bool

	value float64
}

func (a *VirtualAxis) Value() float64 { return a.value }

// Set overrides the axis value, e.g. when an analog stick takes over.
func (a *VirtualAxis) Set(v float64) { a.value = common.Clamp(v, -1, 1) }

func (a *VirtualAxis) Step(raw, dt float64) float64 {
	if raw == 0 {
		a.value = common.MoveTowards(a.value, 0, a.Gravity*dt)
		return a.value
	}
	if a.Snap && a.value != 0 && common.Sign(raw) != common.Sign(a.value) {
		a.value = 0
	}
	a.value = common.MoveTowards(a.value, common.Clamp(raw, -1, 1), a.Sensitivity*dt)
	return a.value
}

type InputSystem struct {
	horizontal VirtualAxis
	dt         float64
	sample     func() RawInput
}

func NewInputSystem() *InputSystem {
	return &InputSystem{
		horizontal: VirtualAxis{Sensitivity: 3, Gravity: 3, Snap: true},
		dt:         1.0 / common.TPS,
		sample:     sampleDevices,
	}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}

	raw := RawInput{}
	if i.sample != nil {
		raw = i.sample()
	}

	var moveX float64
	if raw.Stick != 0 {
		i.horizontal.Set(raw.Stick)
		moveX = i.horizontal.Value()
	} else {
		moveX = i.horizontal.Step(raw.Digital, i.dt)
	}

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		if input.Axes == nil {
			input.Axes = make(map[string]float64)
		}
		if input.Held == nil {
			input.Held = make(map[string]bool)
		}
		if input.Pressed == nil {
			input.Pressed = make(map[string]bool)
		}
		axis, jump := inputNames(w, e)
		input.Axes[axis] = moveX
		input.Held[jump] = raw.Jump
		input.Pressed[jump] = raw.JumpPressed
	})
}

// inputNames returns the axis and button names e's controller reads.
func inputNames(w *ecs.World, e ecs.Entity) (axis, jump string) {
	axis, jump = AxisHorizontal, ButtonJump
	loco, ok := ecs.Get(w, e, component.LocomotionComponent)
	if !ok || loco.Controller == nil {
		return axis, jump
	}
	cfg := loco.Controller.Config()
	if cfg.HorizontalAxis != "" {
		axis = cfg.HorizontalAxis
	}
	if cfg.JumpButton != "" {
		jump = cfg.JumpButton
	}
	return axis, jump
}

func sampleDevices() RawInput {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)

	raw := RawInput{
		Jump:        ebiten.IsKeyPressed(ebiten.KeySpace),
		JumpPressed: inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
	if left {
		raw.Digital -= 1
	}
	if right {
		raw.Digital += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			raw.Stick = leftX
		}
		raw.Jump = raw.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		raw.JumpPressed = raw.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}
	return raw
}
