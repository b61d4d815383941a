package system

import (
	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
	"github.com/1000nettles/heywait/settings"
)

// ZoneAppearanceSystem keeps enabled zones hidden from players and their
// marker image in step with their triggered state.
type ZoneAppearanceSystem struct {
	settings settings.Settings
}

func NewZoneAppearanceSystem(s settings.Settings) *ZoneAppearanceSystem {
	return &ZoneAppearanceSystem{settings: s}
}

func (zs *ZoneAppearanceSystem) SetSettings(s settings.Settings) {
	zs.settings = s
}

func (zs *ZoneAppearanceSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.TriggerZoneComponent.Kind(), func(_ ecs.Entity, z *component.TriggerZone) {
		if !z.Enabled {
			return
		}
		z.Hidden = true
		z.Image = zs.settings.ImageFor(z.Triggered)
	})
}
