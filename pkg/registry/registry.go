// Package registry maps custom-element tag names to server-side component
// constructors and holds the property-to-attribute reflection tables the
// renderer consults when resolving bound attributes.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hydrohtml/hydro/pkg/template"
)

// Component is the server-side representation of a custom element. Render
// returns the component's internal (shadow) template.
type Component interface {
	Render() template.Result
}

// LightRenderer is implemented by components whose light-DOM output can be
// rendered by the render-light directive.
type LightRenderer interface {
	RenderLight() any
}

// PropertySetter receives values bound through property-form attributes
// (".name" bindings). Components that take no properties can omit it.
type PropertySetter interface {
	SetProperty(name string, value any)
}

// Constructor builds a fresh component instance for one render. A returned
// error is recovered by the renderer: the element renders as a plain tag.
type Constructor func() (Component, error)

// Definition describes one registered component.
type Definition struct {
	// TagName is the custom-element name. It must be lowercase and
	// contain a hyphen.
	TagName string
	New     Constructor
	// Reflect maps property names to the attribute each one is mirrored
	// to in the rendered markup. Properties absent from the map are not
	// reflected.
	Reflect map[string]string
}

// Registry is a thread-safe tag-to-definition table.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a component definition. Duplicate tag names and malformed
// definitions return an error.
func (r *Registry) Register(def Definition) error {
	if def.New == nil {
		return fmt.Errorf("registry: constructor is required for %q", def.TagName)
	}
	if err := validateTagName(def.TagName); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.TagName]; exists {
		return fmt.Errorf("registry: tag %q already registered", def.TagName)
	}
	r.defs[def.TagName] = def
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Lookup retrieves the definition for a tag name.
func (r *Registry) Lookup(tag string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[tag]
	return def, ok
}

// ReflectedAttribute returns the attribute name the given property of the
// given tag reflects to, if any.
func (r *Registry) ReflectedAttribute(tag, property string) (string, bool) {
	def, ok := r.Lookup(tag)
	if !ok {
		return "", false
	}
	attr, ok := def.Reflect[property]
	return attr, ok
}

// TagNames returns the registered tag names in lexical order.
func (r *Registry) TagNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered components.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.defs)
}

func validateTagName(tag string) error {
	if tag == "" {
		return fmt.Errorf("registry: tag name is required")
	}
	if strings.ToLower(tag) != tag {
		return fmt.Errorf("registry: tag %q must be lowercase", tag)
	}
	if !strings.Contains(tag, "-") {
		return fmt.Errorf("registry: tag %q must contain a hyphen", tag)
	}
	if strings.ContainsAny(tag, " \t\n\f\r\"'<>/=") {
		return fmt.Errorf("registry: tag %q contains invalid characters", tag)
	}
	return nil
}
