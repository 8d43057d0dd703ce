package render

import (
	"fmt"
	"strings"

	"github.com/hydrohtml/hydro/internal/parser"
	"github.com/hydrohtml/hydro/pkg/registry"
	"github.com/hydrohtml/hydro/pkg/template"
)

// childProvider renders the content distributed into one projection point.
// It is supplied to a component's internal template so its <slot> elements
// can resolve against the caller's light children.
type childProvider func(slotName string) error

// walk is the offset-driven traversal of one parsed template. It owns a
// read cursor into the cached markup; "flush" emits literal text up to an
// offset, "skip" swallows it (marker comments, bound attribute source,
// suppressed light children). One walk instance serves one template level
// of one render call and is never shared.
type walk struct {
	s      *session
	parsed *parsedTemplate
	values []any

	cursor   int
	consumed []bool
	count    int

	// claimed holds nodes already rendered through slot distribution; the
	// main traversal skips them entirely.
	claimed  map[*parser.Node]bool
	children childProvider
	info     renderInfo
}

// renderTemplateResult walks one template result: fetch the cached parse,
// traverse depth-first interleaving literal spans with dispatched values,
// and verify that every value was consumed exactly once.
func (s *session) renderTemplateResult(res template.Result, children childProvider, info renderInfo) error {
	tpl := res.Template()
	parsed, err := s.opts.cache.get(tpl)
	if err != nil {
		return err
	}
	values := res.Values()
	if parsed.partCount != len(values) {
		return &ConsistencyError{
			Digest:   tpl.Digest(),
			Consumed: parsed.partCount,
			Expected: len(values),
			Reason:   "marker count does not match bound values",
		}
	}

	w := &walk{
		s:        s,
		parsed:   parsed,
		values:   values,
		consumed: make([]bool, len(values)),
		claimed:  make(map[*parser.Node]bool),
		children: children,
		info:     info,
	}
	if info.hasSlotReq {
		err = w.walkProjected()
	} else {
		err = w.walkAll()
	}
	if err != nil {
		return err
	}
	if w.count != len(values) {
		return &ConsistencyError{
			Digest:   tpl.Digest(),
			Consumed: w.count,
			Expected: len(values),
			Reason:   "values left unconsumed after traversal",
		}
	}
	return nil
}

func (w *walk) walkAll() error {
	for _, c := range w.parsed.root.Children {
		if err := w.node(c); err != nil {
			return err
		}
	}
	return w.flush(len(w.parsed.markup))
}

// flush emits markup[cursor:to] and advances the cursor. Flushing backwards
// means the traversal lost its position and is a consistency fault.
func (w *walk) flush(to int) error {
	if to < w.cursor {
		return &ConsistencyError{
			Reason: fmt.Sprintf("cursor at %d asked to flush backwards to %d", w.cursor, to),
		}
	}
	chunk := w.parsed.markup[w.cursor:to]
	w.cursor = to
	return w.s.emit(chunk)
}

// skipTo advances the cursor without emitting. It never moves backwards.
func (w *walk) skipTo(to int) {
	if to > w.cursor {
		w.cursor = to
	}
}

// value consumes the part at idx.
func (w *walk) value(idx int) any {
	w.consumed[idx] = true
	w.count++
	return w.values[idx]
}

func (w *walk) node(n *parser.Node) error {
	switch n.Type {
	case parser.TextNode, parser.DoctypeNode:
		return w.flush(n.End)

	case parser.CommentNode:
		if idx, ok := w.parsed.childParts[n]; ok {
			if err := w.flush(n.Start); err != nil {
				return err
			}
			w.skipTo(n.End)
			if w.consumed[idx] {
				// already satisfied by slot distribution:
				// placeholder markers only
				return w.s.emit(partOpen + partClose)
			}
			return w.s.renderValue(w.value(idx), w.children, w.info)
		}
		if indices, ok := w.parsed.commentParts[n]; ok {
			if err := w.flush(n.Start); err != nil {
				return err
			}
			w.skipTo(n.End)
			return w.s.emit("<!--" + w.substitute(n.Data, indices, false) + "-->")
		}
		return w.flush(n.End)

	case parser.ElementNode:
		if w.claimed[n] {
			if err := w.flush(n.Start); err != nil {
				return err
			}
			w.skipTo(n.End)
			return nil
		}
		return w.elementBody(n)
	}
	return w.flush(n.End)
}

// elementBody renders an element without consulting the claimed set, so
// slot distribution can reuse it for nodes it just claimed.
func (w *walk) elementBody(n *parser.Node) error {
	if n.Tag == "slot" && w.info.flatten {
		return w.slotElement(n)
	}
	if w.s.opts.registry != nil {
		if def, ok := w.s.opts.registry.Lookup(n.Tag); ok {
			return w.expandComponent(n, def)
		}
	}

	if err := w.resolveAttributes(n, nil, registry.Definition{}, false); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := w.node(c); err != nil {
			return err
		}
	}
	return w.flush(n.End)
}

// substitute rewrites a marker-bearing source string, replacing each marker
// with the stringified next value. Attribute values are HTML-escaped;
// comment bodies are emitted as-is.
func (w *walk) substitute(raw string, indices []int, escape bool) string {
	segs := markerPattern.Split(raw, -1)
	var b strings.Builder
	for i, seg := range segs {
		b.WriteString(seg)
		if i < len(indices) {
			s := stringify(w.value(indices[i]))
			if escape {
				s = escapeAttr(s)
			}
			b.WriteString(s)
		}
	}
	return b.String()
}

// stringify converts a value for textual substitution. The empty sentinel
// and nil produce empty text; a class-map resolves to its class list.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case template.NothingType:
		return ""
	case *template.ClassMapDirective:
		return t.Resolve()
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(v)
	}
}
