package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// View maps y-up world units to screen pixels centered on a camera.
type View struct {
	CamX, CamY float64
	Zoom       float64
	ScreenW    float64
	ScreenH    float64
}

func (v View) scale() float64 {
	zoom := v.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return common.PixelsPerUnit * zoom
}

// ToScreen converts a world point to screen pixels.
func (v View) ToScreen(x, y float64) (float64, float64) {
	s := v.scale()
	return (x-v.CamX)*s + v.ScreenW/2, v.ScreenH/2 - (y-v.CamY)*s
}

type RenderSystem struct {
	camEntity ecs.Entity
	face      text.Face
	ShowHUD   bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{face: text.NewGoXFace(basicfont.Face7x13), ShowHUD: true}
}

func (r *RenderSystem) view(w *ecs.World, screen *ebiten.Image) View {
	b := screen.Bounds()
	v := View{Zoom: 1, ScreenW: float64(b.Dx()), ScreenH: float64(b.Dy())}
	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraComponent); ok {
			r.camEntity = camEntity
		}
	}
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent); ok {
		v.CamX, v.CamY = camTransform.X, camTransform.Y
	}
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent); ok && camComp.Zoom > 0 {
		v.Zoom = camComp.Zoom
	}
	return v
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Midnightblue)
	v := r.view(w, screen)

	r.drawSegments(w, screen, v)
	r.drawSprites(w, screen, v)
	r.drawFollowers(w, screen, v)
	if r.ShowHUD {
		r.drawHUD(w, screen)
	}
}

func (r *RenderSystem) drawSegments(w *ecs.World, screen *ebiten.Image, v View) {
	ecs.ForEach(w, component.StaticSegmentComponent, func(_ ecs.Entity, seg *component.StaticSegment) {
		x0, y0 := v.ToScreen(seg.AX, seg.AY)
		x1, y1 := v.ToScreen(seg.BX, seg.BY)
		width := float32(max(seg.Radius*2*v.scale(), 2))
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), width, colornames.Darkolivegreen, true)
	})
}

func (r *RenderSystem) drawSprites(w *ecs.World, screen *ebiten.Image, v View) {
	entities := w.Query(component.TransformComponent.ID(), component.SpriteComponent.ID())
	sort.SliceStable(entities, func(i, j int) bool { return uint64(entities[i]) < uint64(entities[j]) })

	s := v.scale()
	for _, e := range entities {
		if ecs.Has(w, e, component.FollowerComponent) {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)
		sp, _ := ecs.Get(w, e, component.SpriteComponent)
		cx, cy := v.ToScreen(t.X, t.Y)
		pw, ph := sp.Width*s, sp.Height*s
		left, top := cx-pw/2, cy-ph/2

		vector.DrawFilledRect(screen, float32(left), float32(top), float32(pw), float32(ph), sp.Tint, false)
		if sp.Outline.A > 0 {
			vector.StrokeRect(screen, float32(left), float32(top), float32(pw), float32(ph), 2, sp.Outline, false)
		}

		// Facing marker on the leading side.
		eyeX := cx + pw*0.25 - pw*0.1
		if t.ScaleX < 0 {
			eyeX = cx - pw*0.25 - pw*0.1
		}
		vector.DrawFilledRect(screen, float32(eyeX), float32(top+ph*0.15), float32(pw*0.2), float32(ph*0.1), color.White, false)

		if anim, ok := ecs.Get(w, e, component.AnimatorComponent); ok {
			drawPoseBar(screen, anim, left, top+ph*0.7, pw, ph*0.15)
		}
	}
}

// drawPoseBar shows the clip on layer 0 as a colored band whose fill
// tracks frame progress.
func drawPoseBar(screen *ebiten.Image, anim *component.Animator, x, y, width, height float64) {
	clip, ok := anim.CurrentClip(0)
	if !ok {
		return
	}
	def := anim.Library[clip]
	track := anim.Tracks[0]
	progress := 1.0
	if def.Frames > 0 {
		progress = float64(track.Frame+1) / float64(def.Frames)
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), color.NRGBA{A: 96}, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width*progress), float32(height), def.Color, false)
}

func (r *RenderSystem) drawFollowers(w *ecs.World, screen *ebiten.Image, v View) {
	ecs.ForEach2(w, component.FollowerComponent, component.TransformComponent, func(e ecs.Entity, f *component.Follower, t *component.Transform) {
		clr := f.Color
		if sp, ok := ecs.Get(w, e, component.SpriteComponent); ok {
			clr = sp.Tint
		}
		cx, cy := v.ToScreen(t.X, t.Y)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(f.Radius*v.scale()), clr, true)
	})
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	player, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}
	loco, ok := ecs.Get(w, player, component.LocomotionComponent)
	if !ok || loco.Controller == nil {
		return
	}
	c := loco.Controller
	vel := c.Velocity()
	clip := "-"
	if loco.Selector != nil && loco.Selector.Target() != "" {
		clip = string(loco.Selector.Target())
	}
	lines := []string{
		fmt.Sprintf("state: %s (prev %s)", c.State(), c.PreviousState()),
		fmt.Sprintf("velocity: %6.2f %6.2f", vel.X, vel.Y),
		fmt.Sprintf("input: %5.2f grounded: %t sliding: %t", c.Input(), c.Grounded(), c.Sliding()),
		fmt.Sprintf("clip: %s", clip),
	}
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(10, 10+float64(i)*16)
		op.ColorScale.ScaleWithColor(colornames.White)
		text.Draw(screen, line, r.face, op)
	}
}
