package render

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hydrohtml/hydro/internal/parser"
	"github.com/hydrohtml/hydro/pkg/template"
)

// The marker protocol: each value gap in a template joins into the markup as
// either a comment node (child position) or a raw token spliced into an
// attribute value (attribute position, with the bound-attribute suffix
// appended to the attribute name). The token is unique per process so
// author markup can never collide with it.
var (
	marker     = fmt.Sprintf("{{lit-%08x%08x}}", rand.Uint32(), rand.Uint32())
	nodeMarker = "<!--" + marker + "-->"

	// markerPattern matches a marker in either form. Inside one attribute
	// value the first gap joins as the bare token and later gaps join in
	// node form, so attribute splitting must accept both.
	markerPattern = regexp.MustCompile(regexp.QuoteMeta(nodeMarker) + "|" + regexp.QuoteMeta(marker))
)

const (
	boundAttributeSuffix = "$lit$"
	countAttributeName   = "__lit-attr"

	partOpen  = "<!--lit-part-->"
	partClose = "<!--/lit-part-->"
)

func partOpenFor(digest string) string {
	return "<!--lit-part " + digest + "-->"
}

// lastAttributeNameRegex matches a literal segment that ends inside a start
// tag just after an attribute name and the opening of its value. Groups:
// leading whitespace, attribute name, '=' plus any already-written value
// prefix.
var lastAttributeNameRegex = regexp.MustCompile(
	`([ \t\n\f\r])([^\x00-\x1f\x7f-\x9f "'>=/]+)([ \t\n\f\r]*=[ \t\n\f\r]*(?:[^ \t\n\f\r"'` + "`" + `<>=]*|"[^"]*|'[^']*))$`)

// joinWithMarkers interleaves the template's literal parts with marker
// tokens: attribute positions get the raw token and a suffixed attribute
// name, everything else gets a marker comment.
func joinWithMarkers(parts []string) string {
	var b strings.Builder
	commentOpen := false
	last := len(parts) - 1
	for i, s := range parts {
		if i == last {
			b.WriteString(s)
			break
		}
		open := strings.LastIndex(s, "<!--")
		commentOpen = (open >= 0 || commentOpen) && !strings.Contains(s[open+1:], "-->")

		if m := lastAttributeNameRegex.FindStringSubmatchIndex(s); m != nil {
			b.WriteString(s[:m[0]])
			b.WriteString(s[m[2]:m[3]]) // whitespace
			b.WriteString(s[m[4]:m[5]]) // attribute name
			b.WriteString(boundAttributeSuffix)
			b.WriteString(s[m[6]:m[7]]) // '=' and value prefix
			b.WriteString(marker)
		} else if commentOpen {
			b.WriteString(s)
			b.WriteString(marker)
		} else {
			b.WriteString(s)
			b.WriteString(nodeMarker)
		}
	}
	return b.String()
}

// attrPart is one bound attribute of an element: its index into the
// element's attribute list, the plain name (suffix stripped, property sigil
// kept), and the value indices its markers consume, in left-to-right order.
type attrPart struct {
	attrIndex    int
	name         string
	valueIndices []int
	property     bool
}

// parsedTemplate is the cached render plan for one *template.Template: the
// joined markup, its offset-annotated tree, and the statically assigned
// part index for every marker. Indices are assigned in document order
// (attributes of a start tag before the element's children), which fixes
// the value each marker owns regardless of the order traversal and slot
// distribution visit them in.
type parsedTemplate struct {
	markup    string
	root      *parser.Node
	partCount int

	childParts   map[*parser.Node]int
	commentParts map[*parser.Node][]int
	attrParts    map[*parser.Node][]attrPart
}

func annotate(markup string, root *parser.Node) *parsedTemplate {
	p := &parsedTemplate{
		markup:       markup,
		root:         root,
		childParts:   make(map[*parser.Node]int),
		commentParts: make(map[*parser.Node][]int),
		attrParts:    make(map[*parser.Node][]attrPart),
	}
	p.annotateChildren(root)
	return p
}

func (p *parsedTemplate) annotateChildren(n *parser.Node) {
	for _, c := range n.Children {
		switch c.Type {
		case parser.CommentNode:
			if c.Data == marker {
				p.childParts[c] = p.partCount
				p.partCount++
			} else if k := len(markerPattern.FindAllStringIndex(c.Data, -1)); k > 0 {
				indices := make([]int, k)
				for i := range indices {
					indices[i] = p.partCount
					p.partCount++
				}
				p.commentParts[c] = indices
			}
		case parser.ElementNode:
			for ai, attr := range c.Attrs {
				if !strings.HasSuffix(attr.Name, boundAttributeSuffix) {
					continue
				}
				name := strings.TrimSuffix(attr.Name, boundAttributeSuffix)
				k := len(markerPattern.FindAllStringIndex(attr.Value, -1))
				indices := make([]int, k)
				for i := range indices {
					indices[i] = p.partCount
					p.partCount++
				}
				p.attrParts[c] = append(p.attrParts[c], attrPart{
					attrIndex:    ai,
					name:         name,
					valueIndices: indices,
					property:     strings.HasPrefix(name, "."),
				})
			}
			p.annotateChildren(c)
		}
	}
}

// DefaultCacheSize bounds the shared template cache. Templates are keyed by
// identity and re-parsed transparently after eviction, so the bound trades
// parse work for memory without affecting correctness.
const DefaultCacheSize = 512

type templateCache struct {
	entries *lru.Cache[*template.Template, *parsedTemplate]
}

func newTemplateCache(size int) *templateCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[*template.Template, *parsedTemplate](size)
	if err != nil {
		panic(err) // only fails for size <= 0
	}
	return &templateCache{entries: entries}
}

// get returns the render plan for the result's template, parsing and caching
// it on first sight. Racing callers may parse redundantly; the overwrite is
// idempotent.
func (c *templateCache) get(tpl *template.Template) (*parsedTemplate, error) {
	if p, ok := c.entries.Get(tpl); ok {
		return p, nil
	}
	markup := joinWithMarkers(tpl.Parts())
	root, err := parser.Parse(markup)
	if err != nil {
		return nil, &ParseError{Digest: tpl.Digest(), Err: err}
	}
	p := annotate(markup, root)
	c.entries.Add(tpl, p)
	return p, nil
}

var defaultCache = newTemplateCache(DefaultCacheSize)
