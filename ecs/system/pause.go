package system

import (
	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
)

// PauseSystem applies PauseRequests to the singleton Pause state and
// announces every change.
type PauseSystem struct{}

func NewPauseSystem() *PauseSystem { return &PauseSystem{} }

func (ps *PauseSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	reqs := w.Query(component.PauseRequestComponent.Kind())
	if len(reqs) == 0 {
		return
	}

	pauseEnt, ok := w.First(component.PauseComponent.Kind())
	if !ok {
		pauseEnt = w.CreateEntity()
		_ = ecs.Add(w, pauseEnt, component.PauseComponent, component.Pause{})
	}
	state, _ := ecs.Get(w, pauseEnt, component.PauseComponent)

	for _, ent := range reqs {
		req, _ := ecs.Get(w, ent, component.PauseRequestComponent)
		w.DestroyEntity(ent)
		if req.Paused == state.Paused {
			continue
		}
		state.Paused = req.Paused
		w.Events().Push(ecs.Event{Type: ecs.EventPaused, Data: component.PauseChanged{
			Paused: req.Paused,
			Reason: req.Reason,
		}})
	}

	_ = ecs.Add(w, pauseEnt, component.PauseComponent, state)
}
