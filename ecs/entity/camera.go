package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// NewCameraAt builds the camera centered on (x, y).
func NewCameraAt(w *ecs.World, spec *prefabs.CameraSpec, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("camera: nil spec")
	}

	camera := w.CreateEntity()
	if err := ecs.Add(w, camera, component.CameraTagComponent, &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent, &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	smoothing := spec.Smoothing
	if smoothing == 0 {
		smoothing = 5
	}
	if err := ecs.Add(w, camera, component.CameraComponent, &component.Camera{
		Target:    spec.Target,
		OffsetX:   spec.Offset.X,
		OffsetY:   spec.Offset.Y,
		MinX:      spec.Min.X,
		MinY:      spec.Min.Y,
		MaxX:      spec.Max.X,
		MaxY:      spec.Max.Y,
		Smoothing: smoothing,
		Zoom:      spec.Zoom,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return camera, nil
}
