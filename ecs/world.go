package ecs

import (
	"sort"

	"github.com/1000nettles/heywait/ecs/component"
)

// World owns entities, their components and the pending event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: map[component.ComponentID]*SparseSet{}}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity drops the entity and all of its components. It reports
// whether the entity was alive.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in creation slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddComponent sets the component value of the given kind, replacing any
// previous value.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(id, true).Set(e, value)
	return nil
}

func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	return w.store(id, false).Remove(e)
}

func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Has(e)
}

func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.HasComponent(e, id) {
		return nil, false
	}
	return w.store(id, false).Get(e), true
}

// Query returns the live entities holding every given kind, ordered by
// entity slot so systems see a stable order.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}

	stores := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		stores = append(stores, s)
	}

	// walk the smallest store
	sort.Slice(stores, func(i, j int) bool { return stores[i].Len() < stores[j].Len() })

	var out []Entity
	for _, e := range stores[0].Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		matched := true
		for _, s := range stores[1:] {
			if !s.Has(e) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].id() < out[j].id() })
	return out
}

// First returns the lowest-slot entity holding kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
