// Package parser turns a markup string into a source-faithful fragment tree
// annotated with byte offsets for every node, start tag, end tag, and
// attribute.
//
// Tokenization is delegated to golang.org/x/net/html; tree construction is
// deliberately not browser-grade: no implied elements are synthesized and
// stray end tags are dropped, so the tree maps one-to-one onto the input
// bytes. Offsets are recovered by accumulating the raw length of each token;
// attributes are re-scanned from the raw start tag because the tokenizer
// reports neither their spans nor their original case.
package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parse builds the fragment tree for markup. Tokenizer failures other than
// EOF are unrecoverable and returned as-is wrapped with the byte offset.
func Parse(markup string) (*Node, error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	root := &Node{Type: FragmentNode, End: len(markup)}
	stack := []*Node{root}
	pos := 0

	for {
		tt := z.Next()
		raw := string(z.Raw())
		start := pos
		pos += len(raw)
		top := stack[len(stack)-1]

		switch tt {
		case html.ErrorToken:
			err := z.Err()
			if err == io.EOF {
				for i := len(stack) - 1; i > 0; i-- {
					stack[i].End = len(markup)
					stack[i].EndTagStart = len(markup)
				}
				return root, nil
			}
			return nil, fmt.Errorf("parser: tokenize at offset %d: %w", start, err)

		case html.TextToken:
			top.AppendChild(&Node{Type: TextNode, Data: raw, Start: start, End: pos})

		case html.CommentToken:
			data := strings.TrimSuffix(strings.TrimPrefix(raw, "<!--"), "-->")
			top.AppendChild(&Node{Type: CommentNode, Data: data, Start: start, End: pos})

		case html.DoctypeToken:
			top.AppendChild(&Node{Type: DoctypeNode, Data: raw, Start: start, End: pos})

		case html.StartTagToken, html.SelfClosingTagToken:
			n := parseStartTag(raw, start)
			n.StartTagEnd = pos
			n.End = pos
			n.EndTagStart = pos
			top.AppendChild(n)
			if tt == html.SelfClosingTagToken {
				n.SelfClosing = true
			} else if !isVoidElement(n.Tag) {
				stack = append(stack, n)
			}

		case html.EndTagToken:
			name := endTagName(raw)
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Tag != name {
					continue
				}
				// elements left open by the source close just
				// before this end tag
				for j := len(stack) - 1; j > i; j-- {
					stack[j].End = start
					stack[j].EndTagStart = start
				}
				stack[i].EndTagStart = start
				stack[i].End = pos
				stack = stack[:i]
				break
			}
		}
	}
}

// parseStartTag scans a raw "<name ...>" token, recording attribute spans
// relative to base. Attribute name case is preserved.
func parseStartTag(raw string, base int) *Node {
	i := 1
	j := i
	for j < len(raw) && !isSpace(raw[j]) && raw[j] != '>' && raw[j] != '/' {
		j++
	}
	n := &Node{
		Type:  ElementNode,
		Tag:   strings.ToLower(raw[i:j]),
		Start: base,
	}

	i = j
	attrsEnd := j
	for i < len(raw) {
		wsStart := i
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}
		if raw[i] == '/' && i+1 < len(raw) && raw[i+1] == '>' {
			break
		}

		ns := i
		for i < len(raw) && !isSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' && raw[i] != '/' {
			i++
		}
		if ns == i { // stray '/' not closing the tag
			i++
			continue
		}
		attr := Attr{
			Name:      raw[ns:i],
			WsStart:   base + wsStart,
			NameStart: base + ns,
			NameEnd:   base + i,
		}
		attr.ValStart = attr.NameEnd
		attr.ValEnd = attr.NameEnd
		attr.End = attr.NameEnd

		k := i
		for k < len(raw) && isSpace(raw[k]) {
			k++
		}
		if k < len(raw) && raw[k] == '=' {
			k++
			for k < len(raw) && isSpace(raw[k]) {
				k++
			}
			if k < len(raw) && (raw[k] == '"' || raw[k] == '\'') {
				q := raw[k]
				k++
				vs := k
				for k < len(raw) && raw[k] != q {
					k++
				}
				attr.Quoted = true
				attr.ValStart = base + vs
				attr.ValEnd = base + k
				attr.Value = raw[vs:k]
				if k < len(raw) {
					k++ // closing quote
				}
			} else {
				vs := k
				for k < len(raw) && !isSpace(raw[k]) && raw[k] != '>' {
					k++
				}
				attr.ValStart = base + vs
				attr.ValEnd = base + k
				attr.Value = raw[vs:k]
			}
			attr.End = base + k
			i = k
		}

		n.Attrs = append(n.Attrs, attr)
		attrsEnd = attr.End - base
	}

	n.AttrsEnd = base + attrsEnd
	return n
}

func endTagName(raw string) string {
	name := strings.TrimPrefix(raw, "</")
	name = strings.TrimSuffix(name, ">")
	name = strings.TrimRight(name, " \t\n\f\r")
	return strings.ToLower(name)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// https://html.spec.whatwg.org/#void-elements
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {},
	"hr": {}, "img": {}, "input": {}, "link": {}, "meta": {},
	"source": {}, "track": {}, "wbr": {},
}

func isVoidElement(tag string) bool {
	_, ok := voidElements[tag]
	return ok
}
