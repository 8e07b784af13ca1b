// Command clipview previews the player's state bindings and transition
// clips without physics. Keys 1-5 request each movement state.
package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/platformer/animation"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/locomotion"
	"github.com/milk9111/platformer/prefabs"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	screenW = 512
	screenH = 512
)

var stateKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

type previewGame struct {
	world     *ecs.World
	preview   ecs.Entity
	selector  *animation.Selector
	animation *system.AnimationSystem
	render    *system.RenderSystem
	face      text.Face
	requested string
	facing    float64
}

func newPreviewGame(spec *prefabs.PlayerSpec) (*previewGame, error) {
	w := ecs.NewWorld()
	e := w.CreateEntity()

	transform := &component.Transform{ScaleX: 1, ScaleY: 1}
	animator := entity.NewAnimator(spec.Animation.Clips)
	binding, transitions, err := entity.BuildAnimationRules(spec.Animation)
	if err != nil {
		return nil, err
	}

	for _, err := range []error{
		ecs.Add(w, e, component.TransformComponent, transform),
		ecs.Add(w, e, component.SpriteComponent, &component.Sprite{Width: 4, Height: 8, Tint: spec.Sprite.Tint.NRGBA, Outline: spec.Sprite.Outline.NRGBA}),
		ecs.Add(w, e, component.AnimatorComponent, animator),
	} {
		if err != nil {
			return nil, err
		}
	}

	g := &previewGame{
		world:     w,
		preview:   e,
		selector:  animation.NewSelector(binding, transitions, animator, transform),
		animation: system.NewAnimationSystem(),
		render:    system.NewRenderSystem(),
		face:      text.NewGoXFace(basicfont.Face7x13),
		requested: locomotion.Idle.Name(),
		facing:    1,
	}
	g.render.ShowHUD = false
	g.selector.PlayForState(g.requested, 0)
	return g, nil
}

func (g *previewGame) Update() error {
	for i, key := range stateKeys {
		if inpututil.IsKeyJustPressed(key) && i < len(locomotion.States()) {
			g.requested = locomotion.States()[i].Name()
			g.selector.PlayForState(g.requested, 0)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.facing = -g.facing
		g.selector.SetFacing(g.facing)
	}
	g.animation.Update(g.world)
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	lines := []string{"1-5: idle walk run jump slide   F: flip", "requested: " + g.requested}
	if anim, ok := ecs.Get(g.world, g.preview, component.AnimatorComponent); ok && len(anim.Tracks) > 0 {
		t := anim.Tracks[0]
		lines = append(lines, fmt.Sprintf("playing: %s frame %d loop %t", t.Clip, t.Frame, t.Loop))
		for _, q := range t.Queue {
			lines = append(lines, fmt.Sprintf("queued: %s at %.2fs", q.Clip, q.StartAt))
		}
	}
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(10, 10+float64(i)*16)
		op.ColorScale.ScaleWithColor(colornames.White)
		text.Draw(screen, line, g.face, op)
	}
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatal(err)
	}
	game, err := newPreviewGame(spec)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("clipview")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
