package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
)

// LoadLevelToWorld creates one static segment entity per level segment.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) ([]ecs.Entity, error) {
	if lvl == nil {
		return nil, fmt.Errorf("level: nil level")
	}
	out := make([]ecs.Entity, 0, len(lvl.Segments))
	for i, seg := range lvl.Segments {
		e := w.CreateEntity()
		radius := seg.Radius
		if radius <= 0 {
			radius = 0.1
		}
		if err := ecs.Add(w, e, component.StaticSegmentComponent, &component.StaticSegment{
			AX: seg.A.X, AY: seg.A.Y,
			BX: seg.B.X, BY: seg.B.Y,
			Radius:   radius,
			Friction: seg.Friction,
			Layer:    lvl.GroundLayer,
		}); err != nil {
			return nil, fmt.Errorf("level: segment %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}
