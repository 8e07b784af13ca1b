package system

import (
	"math"

	"github.com/milk9111/platformer/animation"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// AnimationSystem advances every playback track by one fixed step, starting
// queued clips once their start time is reached.
type AnimationSystem struct {
	dt float64
}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{dt: 1.0 / common.TPS}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.AnimatorComponent, func(_ ecs.Entity, anim *component.Animator) {
		for i := range anim.Tracks {
			advanceTrack(anim, &anim.Tracks[i], a.dt)
		}
	})
}

func advanceTrack(anim *component.Animator, t *component.Track, dt float64) {
	if t.Clip == animation.NoClip {
		return
	}
	t.Time += dt

	for len(t.Queue) > 0 && t.Time >= t.Queue[0].StartAt {
		next := t.Queue[0]
		rest := t.Queue[1:]
		for i := range rest {
			rest[i].StartAt -= next.StartAt
		}
		*t = component.Track{Clip: next.Clip, Loop: next.Loop, Time: t.Time - next.StartAt, Queue: rest}
	}

	def := anim.Library[t.Clip]
	dur := def.Duration()
	switch {
	case dur <= 0:
		t.Frame = 0
	case t.Loop:
		t.Frame = int(math.Mod(t.Time, dur)*def.FPS) % def.Frames
	case t.Time >= dur:
		t.Frame = def.Frames - 1
		t.Done = true
	default:
		t.Frame = int(t.Time * def.FPS)
	}
}
