package main

import (
	"errors"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

type GameConfig struct {
	Level string
	Debug bool
	Watch bool
	Audio *audio.Context
}

type Game struct {
	cfg GameConfig

	world     *ecs.World
	bus       *ecs.EventBus
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	flash     *system.ColorFlashSystem
	scene     *entity.Scene
	unsub     []func()

	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI
	paused  bool
	restart bool
	quit    bool
}

func NewGame(cfg GameConfig) (*Game, error) {
	g := &Game{cfg: cfg, render: system.NewRenderSystem()}
	if err := g.build(); err != nil {
		return nil, err
	}
	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.DiskDir, "levels", "prefabs/scripts")
		if err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// build creates a fresh world and systems. On error the previous world is
// left running.
func (g *Game) build() error {
	lvl, err := levels.Load(g.cfg.Level)
	if err != nil {
		return err
	}
	specs, err := entity.LoadSpecs()
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	bus := ecs.NewEventBus()
	scene, err := entity.BuildScene(world, lvl, specs, entity.Options{Bus: bus, Audio: g.cfg.Audio})
	if err != nil {
		return err
	}

	physics := system.NewPhysicsSystem()
	flash := system.NewColorFlashSystem()
	audioSys := system.NewAudioSystem()
	scheduler := ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewLocomotionSystem(physics),
		physics,
		system.NewAnimationSystem(),
		system.NewCameraSystem(),
		system.NewFollowerSystem(physics),
		audioSys,
	)

	for _, unsub := range g.unsub {
		unsub()
	}
	g.unsub = []func(){
		flash.Subscribe(world, bus),
		audioSys.Subscribe(world, bus),
	}
	if g.cfg.Debug {
		g.unsub = append(g.unsub, system.LogLocomotionEvents(bus))
	}

	g.world, g.bus, g.scheduler, g.flash, g.scene = world, bus, scheduler, flash, scene
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.applyChanges()
	if g.restart || inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart = false
		if err := g.build(); err != nil {
			log.Printf("game: restart: %v", err)
		}
	}

	g.scheduler.Update(g.world)
	g.bus.Dispatch()
	return nil
}

// applyChanges reacts to files reported by the watcher. Player prefab edits
// swap the controller in place; anything else rebuilds the scene.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("game: watcher: %v", err)
		}
	default:
	}
	for _, change := range g.watcher.Drain() {
		switch {
		case change.Kind == prefabs.ChangeScript:
			g.flash.ClearScripts()
			log.Printf("game: reloaded scripts (%s)", change.Base())
		case change.Base() == "player.yaml":
			if err := g.reloadPlayer(); err != nil {
				log.Printf("game: reload player: %v", err)
			}
		default:
			if err := g.build(); err != nil {
				log.Printf("game: reload %s: %v", change.Base(), err)
			}
		}
	}
}

func (g *Game) reloadPlayer() error {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	if g.scene == nil {
		return errors.New("no scene")
	}
	return entity.RebuildLocomotion(g.world, g.scene.Player, spec, entity.Options{Bus: g.bus, Audio: g.cfg.Audio})
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
