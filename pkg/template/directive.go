package template

import "sort"

// Directive is a dynamic value with its own render contract. The set of
// directive kinds known to the renderer is closed; additional value kinds
// can be plugged in through the renderer's kind registry instead of
// implementing this interface.
type Directive interface {
	directive()
}

// NothingType is the empty sentinel. Rendering it produces only the
// bracketing part markers, no content.
type NothingType struct{}

func (NothingType) directive() {}

// Nothing renders no content while still occupying its value slot.
var Nothing = NothingType{}

// RepeatDirective renders a block of repeated items. Each item's output is
// dispatched independently; the whole block is bracketed by one pair of part
// markers.
type RepeatDirective struct {
	Items  []any
	Render func(item any, index int) any
}

func (*RepeatDirective) directive() {}

// Repeat maps items through render and emits the results in order. A nil
// render function emits the items themselves.
func Repeat(items []any, render func(item any, index int) any) *RepeatDirective {
	return &RepeatDirective{Items: items, Render: render}
}

// ClassMapDirective resolves to a space-separated class list. It is valid in
// attribute position and, in child position, renders its resolved string.
type ClassMapDirective struct {
	Classes map[string]bool
}

func (*ClassMapDirective) directive() {}

// ClassMap selects the class names mapped to true.
func ClassMap(classes map[string]bool) *ClassMapDirective {
	return &ClassMapDirective{Classes: classes}
}

// Resolve returns the enabled class names in lexical order.
func (d *ClassMapDirective) Resolve() string {
	names := make([]string, 0, len(d.Classes))
	for name, on := range d.Classes {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := ""
	for i, name := range names {
		if i > 0 {
			out += " "
		}
		out += name
	}
	return out
}

// RenderLightDirective renders the light-DOM output of the nearest enclosing
// component instance in place of the value.
type RenderLightDirective struct{}

func (*RenderLightDirective) directive() {}

// RenderLight resolves the nearest enclosing component and dispatches its
// light-DOM render output. Components opt in by implementing
// registry.LightRenderer; without one in scope the directive renders
// nothing.
func RenderLight() *RenderLightDirective {
	return &RenderLightDirective{}
}
