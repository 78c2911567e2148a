package surface

import (
	"reflect"
	"sync"

	"glhost/internal/graphics/renderer"
)

// A renderer may be bound to at most one surface at a time. Only pointer
// renderers have an identity to track; value renderers are copies, so two of
// them are never the same renderer and are always accepted.
var (
	bindMu sync.Mutex
	bound  = make(map[renderer.Renderer]*Surface)
)

func trackable(r renderer.Renderer) bool {
	return reflect.ValueOf(r).Kind() == reflect.Pointer
}

func bind(r renderer.Renderer, s *Surface) error {
	if !trackable(r) {
		return nil
	}
	bindMu.Lock()
	defer bindMu.Unlock()
	if owner, ok := bound[r]; ok && owner != s {
		return ErrRendererBound
	}
	bound[r] = s
	return nil
}

func unbind(r renderer.Renderer, s *Surface) {
	if !trackable(r) {
		return
	}
	bindMu.Lock()
	defer bindMu.Unlock()
	if bound[r] == s {
		delete(bound, r)
	}
}
