// Package template defines the literal/value pairing that drives the
// streaming renderer.
//
// A Template holds the ordered literal segments of a markup template and is
// identified by pointer: two Results bound from the same *Template share one
// parsed representation in the renderer's cache, mirroring how tagged
// template literals share a strings array. Templates are typically declared
// once at package level and bound per render.
package template

import (
	"encoding/base64"
	"hash/fnv"
	"io"
	"sync"
)

// Template is an immutable ordered sequence of literal markup segments with
// len(segments)-1 gaps for dynamic values.
type Template struct {
	parts []string

	once   sync.Once
	digest string
}

// New creates a Template from its literal segments. A template with N parts
// accepts N-1 values when bound.
func New(parts ...string) *Template {
	if len(parts) == 0 {
		parts = []string{""}
	}
	return &Template{parts: parts}
}

// Parts returns the literal segments. The returned slice must not be
// modified.
func (t *Template) Parts() []string {
	return t.parts
}

// Digest returns a content-addressed identifier for the template's shape.
// It is embedded in the opening part marker of nested templates so a
// hydration pass can recognize template identity without re-parsing.
func (t *Template) Digest() string {
	t.once.Do(func() {
		h := fnv.New64a()
		for i, p := range t.parts {
			if i > 0 {
				h.Write([]byte{0})
			}
			io.WriteString(h, p)
		}
		t.digest = base64.StdEncoding.EncodeToString(h.Sum(nil))
	})
	return t.digest
}

// Result is one instantiation of a Template: the template plus the dynamic
// values filling its gaps. Results are immutable once constructed; the
// renderer only reads them.
//
// The value count is not checked here: a mismatch surfaces as a consistency
// fault when the Result is rendered.
type Result struct {
	tpl    *Template
	values []any
}

// Bind pairs the template with one set of dynamic values.
func (t *Template) Bind(values ...any) Result {
	return Result{tpl: t, values: values}
}

// Template returns the originating template. Nil for a zero Result.
func (r Result) Template() *Template {
	return r.tpl
}

// Values returns the dynamic values in gap order. The returned slice must
// not be modified.
func (r Result) Values() []any {
	return r.values
}

// IsZero reports whether the Result was never bound to a template.
func (r Result) IsZero() bool {
	return r.tpl == nil
}
