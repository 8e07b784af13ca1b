package entity

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

const SampleRate = 44100

func buildAudioComponent(ctx *audio.Context, audioSpecs []prefabs.AudioSpec) *component.Audio {
	n := len(audioSpecs)
	if n == 0 || ctx == nil {
		return nil
	}

	names := make([]string, 0, n)
	players := make([]*audio.Player, 0, n)
	volume := make([]float64, 0, n)
	play := make([]bool, 0, n)
	stop := make([]bool, 0, n)

	for _, clip := range audioSpecs {
		names = append(names, clip.Name)
		players = append(players, ctx.NewPlayerFromBytes(synthTone(clip, ctx.SampleRate())))
		volume = append(volume, clip.Volume)
		play = append(play, false)
		stop = append(stop, false)
	}

	return &component.Audio{
		Names:   names,
		Players: players,
		Volume:  volume,
		Play:    play,
		Stop:    stop,
	}
}

// synthTone renders a linear frequency sweep with a linear decay envelope
// as 16-bit little-endian stereo PCM.
func synthTone(spec prefabs.AudioSpec, sampleRate int) []byte {
	if spec.Duration <= 0 || sampleRate <= 0 {
		return nil
	}
	end := spec.EndFrequency
	if end <= 0 {
		end = spec.Frequency
	}
	samples := int(spec.Duration * float64(sampleRate))
	buf := make([]byte, samples*4)
	phase := 0.0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		freq := spec.Frequency + (end-spec.Frequency)*t
		phase += 2 * math.Pi * freq / float64(sampleRate)
		v := int16(math.Sin(phase) * (1 - t) * 0.3 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
