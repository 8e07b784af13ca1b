package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/locomotion"
)

// Cue names requested from locomotion events.
const (
	CueJump = "jump"
	CueLand = "land"
)

type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

// Subscribe requests jump and land cues on the emitting entity's Audio
// component.
func (a *AudioSystem) Subscribe(w *ecs.World, bus *ecs.EventBus) func() {
	return bus.Subscribe(func(evt ecs.LocomotionEvent) {
		var cue string
		switch evt.Kind {
		case locomotion.EventJumped:
			cue = CueJump
		case locomotion.EventLanded:
			cue = CueLand
		default:
			return
		}
		if audioComp, ok := ecs.Get(w, evt.Entity, component.AudioComponent); ok {
			audioComp.Request(cue)
		}
	})
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent, func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Players), len(audioComp.Stop), len(audioComp.Volume))

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			if player := audioComp.Players[i]; player != nil {
				player.SetVolume(audioComp.Volume[i])
				if err := player.Rewind(); err == nil {
					player.Play()
				}
			}
			audioComp.Play[i] = false
		}

		for i := 0; i < count; i++ {
			if !audioComp.Stop[i] {
				continue
			}
			if player := audioComp.Players[i]; player != nil && player.IsPlaying() {
				player.Pause()
			}
			audioComp.Stop[i] = false
		}
	})
}
