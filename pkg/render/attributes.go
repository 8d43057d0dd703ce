package render

import (
	"strconv"
	"strings"

	"github.com/hydrohtml/hydro/internal/parser"
	"github.com/hydrohtml/hydro/pkg/registry"
)

// resolveAttributes rewrites the bound attributes of a start tag in source
// order. Property-form bindings (sigil-prefixed names) assign onto the
// component instance and reflect to a plain attribute when the definition
// declares one; attribute-form bindings substitute each embedded marker
// with the stringified value. After the last bound attribute the hidden
// count attribute is appended so hydration knows how many bindings the tag
// carries. The cursor ends exactly at the close of the start tag.
func (w *walk) resolveAttributes(n *parser.Node, instance registry.Component, def registry.Definition, hasDef bool) error {
	parts := w.parsed.attrParts[n]
	if len(parts) == 0 {
		return nil
	}

	for _, ap := range parts {
		attr := n.Attrs[ap.attrIndex]
		if err := w.flush(attr.WsStart); err != nil {
			return err
		}
		w.skipTo(attr.End)

		if ap.property {
			var v any
			if len(ap.valueIndices) == 1 {
				v = w.value(ap.valueIndices[0])
			} else {
				// a property bound through mixed literal text
				// degrades to its substituted string
				v = w.substitute(attr.Value, ap.valueIndices, false)
			}
			prop := strings.TrimPrefix(ap.name, ".")
			if instance != nil {
				if setter, ok := instance.(registry.PropertySetter); ok {
					setter.SetProperty(prop, v)
				}
			}
			if hasDef {
				if refl, ok := def.Reflect[prop]; ok {
					out := " " + refl + `="` + escapeAttr(stringify(v)) + `"`
					if err := w.s.emit(out); err != nil {
						return err
					}
				}
			}
			continue
		}

		val := w.substitute(attr.Value, ap.valueIndices, true)
		if err := w.s.emit(" " + ap.name + `="` + val + `"`); err != nil {
			return err
		}
	}

	if err := w.flush(n.AttrsEnd); err != nil {
		return err
	}
	count := " " + countAttributeName + `="` + strconv.Itoa(len(parts)) + `"`
	if err := w.s.emit(count); err != nil {
		return err
	}
	return w.flush(n.StartTagEnd)
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
