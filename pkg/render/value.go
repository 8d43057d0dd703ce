package render

import (
	"context"
	"reflect"
	"sync"

	"github.com/hydrohtml/hydro/pkg/registry"
	"github.com/hydrohtml/hydro/pkg/template"
)

// Emitter is handed to extension kind handlers so they can write output and
// dispatch nested values without reaching into the walker.
type Emitter struct {
	s    *session
	info renderInfo
}

// Emit writes one literal chunk to the stream.
func (e *Emitter) Emit(chunk string) error {
	return e.s.emit(chunk)
}

// Dispatch renders a nested value with full dispatch semantics.
func (e *Emitter) Dispatch(v any) error {
	return e.s.renderValue(v, nil, e.info)
}

// KindHandler renders one value of a registered extension kind. Bracket
// markers around the handler's whole output are emitted by the renderer.
type KindHandler func(e *Emitter, v any) error

type valueKind struct {
	match  func(any) bool
	render KindHandler
}

var (
	kindsMu sync.RWMutex
	kinds   []valueKind
)

// RegisterKind adds a value kind to the dispatcher's open extension point.
// Kinds are probed in registration order after the built-in set and before
// the stringify fallback. Registration is process-wide and intended for
// init-time wiring.
func RegisterKind(match func(any) bool, render KindHandler) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	kinds = append(kinds, valueKind{match: match, render: render})
}

func lookupKind(v any) (KindHandler, bool) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	for _, k := range kinds {
		if k.match(v) {
			return k.render, true
		}
	}
	return nil, false
}

// renderValue dispatches one dynamic value. Every dispatched value's output
// is bracketed by part markers; a nested template's opening marker carries
// its digest. Dispatch never skips or reorders values.
func (s *session) renderValue(v any, children childProvider, info renderInfo) error {
	// deferred values resolve in place, preserving document order
	for resolved := false; !resolved; {
		switch fn := v.(type) {
		case func(context.Context) (any, error):
			var err error
			if v, err = fn(s.ctx); err != nil {
				return err
			}
		case func() any:
			v = fn()
		default:
			resolved = true
		}
	}

	switch t := v.(type) {
	case template.Result:
		if t.IsZero() {
			return s.emit(partOpen + partClose)
		}
		if err := s.emit(partOpenFor(t.Template().Digest())); err != nil {
			return err
		}
		if err := s.renderTemplateResult(t, children, info); err != nil {
			return err
		}
		return s.emit(partClose)

	case nil:
		return s.emit(partOpen + partClose)

	case template.NothingType:
		return s.emit(partOpen + partClose)

	case *template.RepeatDirective:
		if err := s.emit(partOpen); err != nil {
			return err
		}
		for i, item := range t.Items {
			out := item
			if t.Render != nil {
				out = t.Render(item, i)
			}
			if err := s.renderValue(out, nil, info); err != nil {
				return err
			}
		}
		return s.emit(partClose)

	case *template.ClassMapDirective:
		return s.emit(partOpen + t.Resolve() + partClose)

	case *template.RenderLightDirective:
		if inst := info.nearestInstance(); inst != nil {
			if lr, ok := inst.(registry.LightRenderer); ok {
				return s.renderValue(lr.RenderLight(), nil, info)
			}
		}
		return s.emit(partOpen + partClose)

	case []byte:
		return s.renderText(string(t), info)

	case string:
		return s.renderText(t, info)
	}

	if handler, ok := lookupKind(v); ok {
		if err := s.emit(partOpen); err != nil {
			return err
		}
		if err := handler(&Emitter{s: s, info: info}, v); err != nil {
			return err
		}
		return s.emit(partClose)
	}

	// arrays dispatch per element, each with its own brackets
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if err := s.renderValue(rv.Index(i).Interface(), nil, info); err != nil {
				return err
			}
		}
		return nil
	}

	return s.renderText(stringify(v), info)
}

// renderText emits a primitive in child position. A named projection
// request selects no text content, so only the placeholder brackets appear.
func (s *session) renderText(text string, info renderInfo) error {
	if info.hasSlotReq && info.slotName != "" {
		return s.emit(partOpen + partClose)
	}
	return s.emit(partOpen + text + partClose)
}
