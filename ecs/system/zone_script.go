package system

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/1000nettles/heywait/ecs/component"
	"github.com/1000nettles/heywait/geom"
)

const zoneScriptTimeout = 100 * time.Millisecond

// ScriptOutcome is what a zone script decided about a trigger.
type ScriptOutcome struct {
	Pause   bool
	Pan     bool
	Message string
}

// ZoneScripts compiles and runs the tengo scripts attached to zones. A script
// sees `zone` and `token` maps and may overwrite the `pause`, `pan` and
// `message` globals.
type ZoneScripts struct {
	load  func(name string) ([]byte, error)
	cache map[string]*tengo.Compiled
}

func NewZoneScripts(load func(name string) ([]byte, error)) *ZoneScripts {
	return &ZoneScripts{load: load, cache: map[string]*tengo.Compiled{}}
}

// Invalidate drops a compiled script so the next trigger reloads it. An
// empty name drops everything.
func (zs *ZoneScripts) Invalidate(name string) {
	if zs == nil {
		return
	}
	if name == "" {
		zs.cache = map[string]*tengo.Compiled{}
		return
	}
	delete(zs.cache, scriptKey(name))
}

// Run executes the zone's script. On any error the defaults are returned
// unchanged so the trigger still takes effect.
func (zs *ZoneScripts) Run(zone component.TriggerZone, tok component.Token, at geom.Point, defaults ScriptOutcome) ScriptOutcome {
	if zs == nil || strings.TrimSpace(zone.Script) == "" {
		return defaults
	}

	compiled, err := zs.compiled(zone.Script)
	if err != nil {
		log.Printf("trigger: zone=%s load script %s: %v", zone.ID, zone.Script, err)
		return defaults
	}

	globals := map[string]any{
		"zone": map[string]any{
			"id":        zone.ID,
			"name":      zone.Name,
			"x":         zone.Bounds.X,
			"y":         zone.Bounds.Y,
			"width":     zone.Bounds.W,
			"height":    zone.Bounds.H,
			"unlimited": zone.Unlimited,
		},
		"token": map[string]any{
			"name":   tok.Name,
			"x":      at.X,
			"y":      at.Y,
			"width":  tok.Width,
			"height": tok.Height,
		},
		"pause":   defaults.Pause,
		"pan":     defaults.Pan,
		"message": defaults.Message,
	}
	for name, v := range globals {
		if err := compiled.Set(name, v); err != nil {
			log.Printf("trigger: zone=%s script %s set %s: %v", zone.ID, zone.Script, name, err)
			return defaults
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), zoneScriptTimeout)
	defer cancel()
	if err := compiled.RunContext(ctx); err != nil {
		log.Printf("trigger: zone=%s script %s: %v", zone.ID, zone.Script, err)
		return defaults
	}

	return ScriptOutcome{
		Pause:   compiled.Get("pause").Bool(),
		Pan:     compiled.Get("pan").Bool(),
		Message: compiled.Get("message").String(),
	}
}

func (zs *ZoneScripts) compiled(name string) (*tengo.Compiled, error) {
	key := scriptKey(name)
	if c, ok := zs.cache[key]; ok {
		return c, nil
	}
	if zs.load == nil {
		return nil, fmt.Errorf("no script loader")
	}

	src, err := zs.load(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	_ = script.Add("zone", map[string]any{})
	_ = script.Add("token", map[string]any{})
	_ = script.Add("pause", false)
	_ = script.Add("pan", false)
	_ = script.Add("message", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	zs.cache[key] = compiled
	return compiled, nil
}

func scriptKey(name string) string {
	s := strings.TrimSpace(name)
	s = strings.TrimPrefix(s, "scripts/")
	return strings.TrimSuffix(s, ".tengo")
}
