package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs/entity"
)

func main() {
	debug := flag.Bool("debug", false, "log every locomotion event")
	watch := flag.Bool("watch", false, "hot reload prefabs, levels and scripts from disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("platformer")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(GameConfig{
		Level: *levelName,
		Debug: *debug,
		Watch: *watch,
		Audio: audio.NewContext(entity.SampleRate),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
