package system

import (
	"log"
	"math"
	"sort"

	"github.com/1000nettles/heywait/collision"
	"github.com/1000nettles/heywait/ecs"
	"github.com/1000nettles/heywait/ecs/component"
	"github.com/1000nettles/heywait/geom"
	"github.com/1000nettles/heywait/settings"
)

// TriggerSystem applies token moves and fires every zone whose boundary a
// move crosses. A zone fires at most once; firing marks it triggered and
// asks for a pause and a camera pan, as the settings allow.
type TriggerSystem struct {
	settings settings.Settings
	scripts  *ZoneScripts
	index    *collision.Index
}

func NewTriggerSystem(s settings.Settings, scripts *ZoneScripts) *TriggerSystem {
	return &TriggerSystem{
		settings: s,
		scripts:  scripts,
		index:    collision.NewIndex(),
	}
}

// SetSettings swaps the settings used for the next moves.
func (ts *TriggerSystem) SetSettings(s settings.Settings) {
	ts.settings = s
}

func (ts *TriggerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	reqEnts := w.Query(component.MoveRequestComponent.Kind())
	if len(reqEnts) == 0 {
		return
	}
	reqs := make([]component.MoveRequest, 0, len(reqEnts))
	for _, ent := range reqEnts {
		req, _ := ecs.Get(w, ent, component.MoveRequestComponent)
		reqs = append(reqs, req)
		w.DestroyEntity(ent)
	}
	sort.SliceStable(reqs, func(i, j int) bool { return reqs[i].Seq < reqs[j].Seq })

	zones := ts.syncIndex(w)
	paused := isPaused(w)
	for _, req := range reqs {
		if ts.move(w, req, zones, paused) {
			paused = true
		}
	}
}

// syncIndex brings the broadphase in line with the zone entities.
func (ts *TriggerSystem) syncIndex(w *ecs.World) map[string]ecs.Entity {
	zones := zonesByID(w)
	for id, ent := range zones {
		z, _ := ecs.Get(w, ent, component.TriggerZoneComponent)
		ts.index.Upsert(id, z.Bounds.Rect())
	}
	for _, id := range ts.index.IDs() {
		if _, ok := zones[id]; !ok {
			ts.index.Remove(id)
		}
	}
	return zones
}

// move applies one request and reports whether it paused the game.
func (ts *TriggerSystem) move(w *ecs.World, req component.MoveRequest, zones map[string]ecs.Entity, paused bool) bool {
	tokEnt, tok, ok := findToken(w, req.Token)
	if !ok {
		log.Printf("trigger: move for unknown token %q dropped", req.Token)
		return false
	}

	tr, _ := ecs.Get(w, tokEnt, component.TransformComponent)
	from := geom.Pt(tr.X, tr.Y)

	final := req.To
	defer func() {
		_ = ecs.Add(w, tokEnt, component.TransformComponent, component.Transform{X: final.X, Y: final.Y})
	}()

	// Nothing moved, or play is paused and only the game master moves things.
	if from == req.To || paused {
		return false
	}

	grid := sceneGridSize(w)
	fp := collision.Footprint{WidthUnits: tok.Width, HeightUnits: tok.Height, GridSize: grid}
	if err := fp.Validate(); err != nil {
		log.Printf("trigger: token %q: %v", tok.Name, err)
		return false
	}
	det := collision.NewDetector(grid)
	start := fp.Center(from)

	var (
		fired      bool
		pause      bool
		pan        bool
		stop       geom.Point
		hasStop    bool
		stopDistSq = math.Inf(1)
	)

	for _, id := range ts.index.Candidates(geom.Seg(start, fp.Center(req.To))) {
		ent, ok := zones[id]
		if !ok {
			continue
		}
		zone, _ := ecs.Get(w, ent, component.TriggerZoneComponent)
		if !zone.Enabled || zone.Triggered {
			continue
		}

		res := det.Check(collision.Zone{Rect: zone.Bounds.Rect(), Unlimited: zone.Unlimited}, fp, from, req.To)
		if !res.Collided {
			continue
		}

		zone.Triggered = true
		zone.Image = ts.settings.ImageFor(true)
		_ = ecs.Add(w, ent, component.TriggerZoneComponent, zone)
		fired = true

		w.Events().Push(ecs.Event{Type: ecs.EventZoneTriggered, Data: component.ZoneTriggered{
			ZoneID:       zone.ID,
			ZoneName:     zone.Name,
			Token:        tok.Name,
			Intersection: res.Intersection,
			Stop:         res.Stop,
			HasStop:      res.HasStop,
		}})

		outcome := ScriptOutcome{Pause: ts.settings.PauseOnTrigger, Pan: ts.settings.PanOnTrigger}
		if zone.Script != "" && ts.scripts != nil {
			outcome = ts.scripts.Run(zone, tok, req.To, outcome)
		}
		if outcome.Message != "" {
			w.Events().Push(ecs.Event{Type: ecs.EventScriptMessage, Data: component.ScriptMessage{
				ZoneID:  zone.ID,
				Token:   tok.Name,
				Message: outcome.Message,
			}})
		}
		pause = pause || outcome.Pause
		pan = pan || outcome.Pan

		// The first boundary along the path wins.
		if res.HasStop {
			if d := res.Intersection.DistSq(start); d < stopDistSq {
				stopDistSq = d
				stop = res.Stop
				hasStop = true
			}
		}
	}

	if !fired {
		return false
	}

	if ts.settings.StopAtBoundary && hasStop && stop != req.To {
		final = stop
		w.Events().Push(ecs.Event{Type: ecs.EventTokenCorrected, Data: component.TokenCorrected{
			Token:     tok.Name,
			Requested: req.To,
			Stop:      stop,
		}})
	}

	if pause {
		reqEnt := w.CreateEntity()
		_ = ecs.Add(w, reqEnt, component.PauseRequestComponent, component.PauseRequest{
			Paused: true,
			Reason: "zone triggered by " + tok.Name,
		})
	}

	if pan {
		scale := 1.0
		if _, cam, ok := currentCamera(w); ok {
			scale = math.Max(1, cam.Scale)
		}
		target := fp.RoundedCenter(final)
		reqEnt := w.CreateEntity()
		_ = ecs.Add(w, reqEnt, component.CameraPanRequestComponent, component.CameraPanRequest{
			X:        target.X,
			Y:        target.Y,
			Scale:    scale,
			Duration: float32(ts.settings.PanDuration().Seconds()),
		})
	}

	return pause
}
