package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// Specs bundles every prefab a scene is built from.
type Specs struct {
	Player   *prefabs.PlayerSpec
	Camera   *prefabs.CameraSpec
	Follower *prefabs.FollowerSpec
	Flash    *prefabs.FlashSpec
}

// LoadSpecs reads all prefabs. A missing follower or flash prefab only
// drops that feature.
func LoadSpecs() (Specs, error) {
	var s Specs
	var err error
	if s.Player, err = prefabs.LoadPlayerSpec(); err != nil {
		return s, err
	}
	if s.Camera, err = prefabs.LoadCameraSpec(); err != nil {
		return s, err
	}
	if s.Follower, err = prefabs.LoadFollowerSpec(); err != nil {
		log.Printf("scene: no follower: %v", err)
		s.Follower = nil
	}
	if s.Flash, err = prefabs.LoadFlashSpec(); err != nil {
		log.Printf("scene: no color flash: %v", err)
		s.Flash = nil
	}
	return s, nil
}

// Scene is what BuildScene created.
type Scene struct {
	Level    *levels.Level
	Player   ecs.Entity
	Camera   ecs.Entity
	Follower ecs.Entity
	Segments []ecs.Entity
}

func BuildScene(w *ecs.World, lvl *levels.Level, specs Specs, opts Options) (*Scene, error) {
	if lvl == nil {
		return nil, fmt.Errorf("scene: nil level")
	}
	scene := &Scene{Level: lvl}

	var err error
	if scene.Segments, err = LoadLevelToWorld(w, lvl); err != nil {
		return nil, err
	}
	if scene.Player, err = NewPlayer(w, specs.Player, lvl.Spawn.X, lvl.Spawn.Y, opts); err != nil {
		return nil, err
	}
	if scene.Camera, err = NewCameraAt(w, specs.Camera, lvl.Spawn.X, lvl.Spawn.Y); err != nil {
		return nil, err
	}
	if specs.Follower != nil {
		fx := lvl.Spawn.X - specs.Follower.FollowDistance
		fy := lvl.Spawn.Y + specs.Follower.FloatHeight
		if scene.Follower, err = NewFollowerAt(w, specs.Follower, fx, fy); err != nil {
			return nil, err
		}
	}
	if specs.Flash != nil {
		target := scene.Player
		if specs.Flash.Attach == "follower" && scene.Follower.Valid() {
			target = scene.Follower
		}
		if err := AttachFlash(w, target, specs.Flash); err != nil {
			return nil, err
		}
	}
	return scene, nil
}
