package component

import (
	"image/color"
	"math"

	"github.com/milk9111/platformer/animation"
)

// ClipDef describes a clip known to the playback engine.
type ClipDef struct {
	Frames int
	FPS    float64
	Color  color.NRGBA
}

// Duration is one play-through in seconds.
func (d ClipDef) Duration() float64 {
	if d.Frames <= 0 || d.FPS <= 0 {
		return 0
	}
	return float64(d.Frames) / d.FPS
}

// QueuedClip starts once its track time reaches StartAt.
type QueuedClip struct {
	Clip    animation.Clip
	Loop    bool
	StartAt float64
}

// Track is one playback layer.
type Track struct {
	Clip  animation.Clip
	Loop  bool
	Time  float64
	Frame int
	Done  bool
	Queue []QueuedClip
}

// Animator is the per-entity playback engine state. Its methods implement
// animation.Engine; the animation system advances time.
type Animator struct {
	Library map[animation.Clip]ClipDef
	Tracks  []Track
}

func (a *Animator) track(layer int) *Track {
	if a == nil || layer < 0 {
		return nil
	}
	for len(a.Tracks) <= layer {
		a.Tracks = append(a.Tracks, Track{})
	}
	return &a.Tracks[layer]
}

func (a *Animator) duration(clip animation.Clip) float64 {
	if a == nil {
		return 0
	}
	return a.Library[clip].Duration()
}

// SetClip replaces whatever plays on the layer and drops its queue.
func (a *Animator) SetClip(layer int, clip animation.Clip, loop bool) {
	t := a.track(layer)
	if t == nil {
		return
	}
	*t = Track{Clip: clip, Loop: loop}
}

// QueueClip plays clip after the current entry (or the last queued one)
// completes, plus delay seconds. An empty track starts it immediately.
func (a *Animator) QueueClip(layer int, clip animation.Clip, loop bool, delay float64) {
	t := a.track(layer)
	if t == nil {
		return
	}
	if t.Clip == animation.NoClip {
		*t = Track{Clip: clip, Loop: loop}
		return
	}

	var base float64
	if n := len(t.Queue); n > 0 {
		last := t.Queue[n-1]
		base = last.StartAt + a.duration(last.Clip)
	} else {
		base = a.duration(t.Clip)
		if t.Loop && base > 0 && t.Time > base {
			base = math.Ceil(t.Time/base) * base
		}
	}
	t.Queue = append(t.Queue, QueuedClip{Clip: clip, Loop: loop, StartAt: math.Max(0, base+delay)})
}

// CurrentClip returns what is playing on the layer.
func (a *Animator) CurrentClip(layer int) (animation.Clip, bool) {
	if a == nil || layer < 0 || layer >= len(a.Tracks) {
		return animation.NoClip, false
	}
	c := a.Tracks[layer].Clip
	return c, c != animation.NoClip
}

var AnimatorComponent = NewComponent[Animator]()
