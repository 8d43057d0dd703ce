package render

import (
	"fmt"

	"github.com/hydrohtml/hydro/internal/parser"
	"github.com/hydrohtml/hydro/pkg/registry"
)

// expandComponent renders an element whose tag is registered: construct a
// server-side instance, resolve its bound attributes (assigning properties
// onto the instance), then splice the instance's own template inline after
// the start tag. The element's literal children are not rendered at their
// original position when flattening; they reach the output only through
// the slot provider handed to the nested render.
//
// A constructor fault is recovered: it is logged and the element renders as
// a plain tag.
func (w *walk) expandComponent(n *parser.Node, def registry.Definition) error {
	instance, cerr := construct(def)
	if cerr != nil {
		fault := &ConstructionError{TagName: n.Tag, Err: cerr}
		w.s.opts.logger.Warn(w.s.ctx, fault, "component construction failed, rendering plain element", "tag", n.Tag)
		instance = nil
	}

	if err := w.resolveAttributes(n, instance, def, true); err != nil {
		return err
	}
	if err := w.flush(n.StartTagEnd); err != nil {
		return err
	}

	scoped := w.info.push(n.Tag, instance)

	if instance == nil {
		return w.scopedChildren(n, scoped)
	}

	provider := w.slotProviderFor(n, scoped)
	inner := renderInfo{flatten: true, scope: scoped.scope}
	if err := w.s.renderValue(instance.Render(), provider, inner); err != nil {
		return err
	}

	if !w.info.flatten {
		// light DOM stays visible; distributed nodes are claimed and
		// skip themselves
		return w.scopedChildren(n, scoped)
	}

	// light children are suppressed: their values are consumed, child
	// markers leave placeholder brackets, markup is skipped
	for _, c := range n.Children {
		if err := w.suppressedChild(c); err != nil {
			return err
		}
	}
	w.skipTo(n.EndTagStart)
	return w.flush(n.End)
}

// scopedChildren walks the element's children in place with the component
// scope extended for the duration.
func (w *walk) scopedChildren(n *parser.Node, scoped renderInfo) error {
	saved := w.info
	w.info = scoped
	for _, c := range n.Children {
		if err := w.node(c); err != nil {
			w.info = saved
			return err
		}
	}
	w.info = saved
	return w.flush(n.End)
}

// suppressedChild consumes every marker under a light child that is not
// being emitted. Child-position markers leave an empty bracket pair so the
// value is observably accounted for; attribute and comment markers are
// consumed silently. Claimed nodes already consumed theirs during
// distribution.
func (w *walk) suppressedChild(n *parser.Node) error {
	switch n.Type {
	case parser.CommentNode:
		if idx, ok := w.parsed.childParts[n]; ok {
			if !w.consumed[idx] {
				w.value(idx)
			}
			return w.s.emit(partOpen + partClose)
		}
		for _, idx := range w.parsed.commentParts[n] {
			if !w.consumed[idx] {
				w.value(idx)
			}
		}
	case parser.ElementNode:
		if w.claimed[n] {
			return nil
		}
		for _, ap := range w.parsed.attrParts[n] {
			for _, idx := range ap.valueIndices {
				if !w.consumed[idx] {
					w.value(idx)
				}
			}
		}
		for _, c := range n.Children {
			if err := w.suppressedChild(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// construct calls the definition's constructor, converting a panic into an
// error so one faulty component cannot abort the render.
func construct(def registry.Definition) (instance registry.Component, err error) {
	defer func() {
		if r := recover(); r != nil {
			instance = nil
			err = fmt.Errorf("constructor panicked: %v", r)
		}
	}()
	return def.New()
}
