package render

import (
	"github.com/hydrohtml/hydro/internal/parser"
	"github.com/hydrohtml/hydro/pkg/registry"
)

// slotElement resolves a <slot> projection point: the tag itself is emitted
// literally, the distributed content renders between its tags, and the
// slot's fallback children are skipped with their values consumed.
func (w *walk) slotElement(n *parser.Node) error {
	if err := w.resolveAttributes(n, nil, registry.Definition{}, false); err != nil {
		return err
	}
	if err := w.flush(n.StartTagEnd); err != nil {
		return err
	}

	name, _ := n.AttrValue("name")
	if w.children != nil {
		if err := w.children(name); err != nil {
			return err
		}
	}

	for _, c := range n.Children {
		if err := w.suppressedChild(c); err != nil {
			return err
		}
	}
	w.skipTo(n.EndTagStart)
	return w.flush(n.End)
}

// slotProviderFor builds the child-content provider for a component host:
// given a projection name it selects the host's matching light children,
// claims them, and renders each in document order. A named request selects
// direct-child elements whose slot attribute matches; an unnamed request
// selects bare text nodes. Dynamic children (markers) are dispatched with
// the request attached so nested templates can project their own content.
func (w *walk) slotProviderFor(host *parser.Node, scoped renderInfo) childProvider {
	return func(slotName string) error {
		for _, c := range host.Children {
			switch c.Type {
			case parser.TextNode:
				if slotName != "" {
					continue
				}
				if err := w.distributeNode(c, scoped); err != nil {
					return err
				}

			case parser.CommentNode:
				idx, ok := w.parsed.childParts[c]
				if !ok || w.consumed[idx] {
					continue
				}
				info := scoped.withSlotRequest(slotName)
				if err := w.s.renderValue(w.value(idx), nil, info); err != nil {
					return err
				}

			case parser.ElementNode:
				if slotName == "" || w.claimed[c] {
					continue
				}
				if attr, _ := c.AttrValue("slot"); attr != slotName {
					continue
				}
				w.claimed[c] = true
				if err := w.distributeNode(c, scoped); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// distributeNode renders one claimed light child detached from the main
// cursor position: the cursor jumps to the node, renders it in full, and
// jumps back. The main traversal later observes the claim and skips the
// node's source span.
func (w *walk) distributeNode(n *parser.Node, scoped renderInfo) error {
	savedCursor := w.cursor
	savedInfo := w.info
	w.cursor = n.Start
	w.info = scoped

	var err error
	if n.Type == parser.ElementNode {
		err = w.elementBody(n)
	} else {
		err = w.flush(n.End)
	}

	w.cursor = savedCursor
	w.info = savedInfo
	return err
}

// walkProjected renders a template that is itself satisfying a slot
// request: only matching top-level nodes are emitted (elements with the
// requested slot attribute for a named request, bare text nodes for the
// unnamed one); everything else is skipped with its values consumed
// silently. Top-level markers are dispatched with the request propagated.
func (w *walk) walkProjected() error {
	req := w.info.slotName
	w.info = w.info.clearSlotRequest()

	for _, c := range w.parsed.root.Children {
		switch c.Type {
		case parser.TextNode:
			if req == "" {
				w.skipTo(c.Start)
				if err := w.flush(c.End); err != nil {
					return err
				}
			} else {
				w.skipTo(c.End)
			}

		case parser.CommentNode:
			if idx, ok := w.parsed.childParts[c]; ok {
				w.skipTo(c.End)
				if w.consumed[idx] {
					continue
				}
				info := w.info.withSlotRequest(req)
				if err := w.s.renderValue(w.value(idx), nil, info); err != nil {
					return err
				}
				continue
			}
			w.consumeSilently(c)
			w.skipTo(c.End)

		case parser.ElementNode:
			attr, _ := c.AttrValue("slot")
			if req != "" && attr == req && !w.claimed[c] {
				w.skipTo(c.Start)
				if err := w.node(c); err != nil {
					return err
				}
				continue
			}
			w.consumeSilently(c)
			w.skipTo(c.End)

		default:
			w.skipTo(c.End)
		}
	}
	w.skipTo(len(w.parsed.markup))
	return nil
}

// consumeSilently marks every marker under n consumed without emitting
// anything. Used for top-level nodes a projection request filtered out.
func (w *walk) consumeSilently(n *parser.Node) {
	switch n.Type {
	case parser.CommentNode:
		if idx, ok := w.parsed.childParts[n]; ok {
			if !w.consumed[idx] {
				w.value(idx)
			}
			return
		}
		for _, idx := range w.parsed.commentParts[n] {
			if !w.consumed[idx] {
				w.value(idx)
			}
		}
	case parser.ElementNode:
		if w.claimed[n] {
			return
		}
		for _, ap := range w.parsed.attrParts[n] {
			for _, idx := range ap.valueIndices {
				if !w.consumed[idx] {
					w.value(idx)
				}
			}
		}
		for _, c := range n.Children {
			w.consumeSilently(c)
		}
	}
}
