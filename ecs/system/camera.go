package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CameraSystem eases the camera transform toward its target plus offset,
// clamped to the camera bounds. It runs after physics so it frames the
// settled position.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	dt           float64
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{dt: 1.0 / common.TPS}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !cs.camEntity.Valid() || !w.IsAlive(cs.camEntity) {
		if camEntity, ok := ecs.First(w, component.CameraComponent); ok {
			cs.camEntity = camEntity
		}
	}
	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return
	}
	if !cs.targetEntity.Valid() || !w.IsAlive(cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, camComp.Target)
	}

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent)
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent)
	if !ok {
		return
	}

	goalX := common.Clamp(target.X+camComp.OffsetX, camComp.MinX, camComp.MaxX)
	goalY := common.Clamp(target.Y+camComp.OffsetY, camComp.MinY, camComp.MaxY)
	t := camComp.Smoothing * cs.dt
	camTransform.X = common.Lerp(camTransform.X, goalX, t)
	camTransform.Y = common.Lerp(camTransform.Y, goalY, t)
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	switch name {
	case "player", "":
		if e, ok := ecs.First(w, component.PlayerTagComponent); ok {
			return e
		}
	case "follower":
		if e, ok := ecs.First(w, component.FollowerTagComponent); ok {
			return e
		}
	}
	return 0
}
