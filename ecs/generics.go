package ecs

import "github.com/1000nettles/heywait/ecs/component"

func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	return w.AddComponent(e, handle.Kind().ID(), value)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle.Kind().ID())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle.Kind().ID())
}

// Get returns a copy of the component. Write changes back with Add.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	value, ok := w.GetComponent(e, handle.Kind().ID())
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// ForEach calls fn for every entity holding kind. Changes made through the
// pointer are stored back after fn returns.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	for _, e := range w.Query(ka) {
		a, ok := getKind(w, e, ka)
		if !ok {
			continue
		}
		fn(e, &a)
		if w.IsAlive(e) {
			_ = w.AddComponent(e, ka.ID(), a)
		}
	}
}

// ForEach2 is ForEach over entities holding both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ka, kb) {
		a, okA := getKind(w, e, ka)
		b, okB := getKind(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, &a, &b)
		if w.IsAlive(e) {
			_ = w.AddComponent(e, ka.ID(), a)
			_ = w.AddComponent(e, kb.ID(), b)
		}
	}
}

func getKind[T any](w *World, e Entity, kind component.ComponentKind[T]) (T, bool) {
	var zero T
	value, ok := w.GetComponent(e, kind.ID())
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	return cast, ok
}
