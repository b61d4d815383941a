package system

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/1000nettles/heywait/common"
	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
)

// CameraSystem animates the camera towards the latest CameraPanRequest.
type CameraSystem struct {
	tweenX     *gween.Tween
	tweenY     *gween.Tween
	tweenScale *gween.Tween
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Panning reports whether a pan is still running.
func (cs *CameraSystem) Panning() bool {
	return cs.tweenX != nil
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	camEnt, cam, ok := currentCamera(w)
	if !ok {
		camEnt = w.CreateEntity()
		cam = component.Camera{Scale: 1}
	}

	reqs := w.Query(component.CameraPanRequestComponent.Kind())
	if len(reqs) > 0 {
		// Later requests replace earlier ones.
		req, _ := ecs.Get(w, reqs[len(reqs)-1], component.CameraPanRequestComponent)
		for _, ent := range reqs {
			w.DestroyEntity(ent)
		}
		if req.Scale <= 0 {
			req.Scale = cam.Scale
		}

		w.Events().Push(ecs.Event{Type: ecs.EventCameraPan, Data: component.CameraPan{
			X:        req.X,
			Y:        req.Y,
			Scale:    req.Scale,
			Duration: req.Duration,
		}})

		if req.Duration <= 0 {
			cs.stop()
			cam.X, cam.Y, cam.Scale = req.X, req.Y, req.Scale
		} else {
			cs.tweenX = gween.New(float32(cam.X), float32(req.X), req.Duration, ease.OutQuad)
			cs.tweenY = gween.New(float32(cam.Y), float32(req.Y), req.Duration, ease.OutQuad)
			cs.tweenScale = gween.New(float32(cam.Scale), float32(req.Scale), req.Duration, ease.OutQuad)
		}
	}

	if cs.tweenX != nil {
		x, doneX := cs.tweenX.Update(common.TickSeconds)
		y, doneY := cs.tweenY.Update(common.TickSeconds)
		s, doneS := cs.tweenScale.Update(common.TickSeconds)
		cam.X, cam.Y, cam.Scale = float64(x), float64(y), float64(s)
		if doneX && doneY && doneS {
			cs.stop()
		}
	}

	_ = ecs.Add(w, camEnt, component.CameraComponent, cam)
}

func (cs *CameraSystem) stop() {
	cs.tweenX = nil
	cs.tweenY = nil
	cs.tweenScale = nil
}
