// Package demo ships the components served by hydro's preview server. They
// exercise the renderer's surface end to end: attribute and property
// bindings, attribute reflection, named and default slots, repeat and
// class-map directives, and light-DOM re-rendering.
package demo

import (
	"fmt"

	"github.com/hydrohtml/hydro/pkg/registry"
	"github.com/hydrohtml/hydro/pkg/template"
)

var cardTemplate = template.New(
	`<div class="card"><header class="card-header"><slot name="title">Untitled</slot></header><section class="card-body"><slot name="body"></slot><slot></slot></section></div>`,
)

// Card is a framed container with named title and body slots plus a default
// slot for bare text.
type Card struct{}

func (c *Card) Render() template.Result {
	return cardTemplate.Bind()
}

var badgeTemplate = template.New(
	`<span class="`, `">`, `</span>`,
)

// Badge displays a short label. The label property reflects to a plain
// attribute so the rendered markup stays inspectable.
type Badge struct {
	Label string
	Tone  string
}

func (b *Badge) SetProperty(name string, value any) {
	switch name {
	case "label":
		b.Label = fmt.Sprint(value)
	case "tone":
		b.Tone = fmt.Sprint(value)
	}
}

func (b *Badge) Render() template.Result {
	classes := template.ClassMap(map[string]bool{
		"badge":           true,
		"badge-" + b.Tone: b.Tone != "",
	})
	return badgeTemplate.Bind(classes, b.Label)
}

var listTemplate = template.New(
	`<ul class="demo-list">`, `</ul>`,
)

var listItemTemplate = template.New(
	`<li>`, `</li>`,
)

// List renders its items as an unordered list through the repeat directive.
type List struct {
	Items []any
}

func (l *List) SetProperty(name string, value any) {
	if name != "items" {
		return
	}
	if items, ok := value.([]any); ok {
		l.Items = items
	}
}

func (l *List) Render() template.Result {
	return listTemplate.Bind(template.Repeat(l.Items, func(item any, _ int) any {
		return listItemTemplate.Bind(item)
	}))
}

var echoTemplate = template.New(
	`<blockquote class="echo">`, `</blockquote>`,
)

var echoLightTemplate = template.New(
	`<em>`, `</em>`,
)

// Echo repeats its message through its own light-DOM render, demonstrating
// the render-light directive resolving the nearest enclosing instance.
type Echo struct {
	Message string
}

func (e *Echo) SetProperty(name string, value any) {
	if name == "message" {
		e.Message = fmt.Sprint(value)
	}
}

func (e *Echo) Render() template.Result {
	return echoTemplate.Bind(template.RenderLight())
}

func (e *Echo) RenderLight() any {
	return echoLightTemplate.Bind(e.Message)
}

// Registry builds the component registry served by the preview server.
func Registry() *registry.Registry {
	r := registry.New()
	r.MustRegister(registry.Definition{
		TagName: "demo-card",
		New:     func() (registry.Component, error) { return &Card{}, nil },
	})
	r.MustRegister(registry.Definition{
		TagName: "demo-badge",
		New:     func() (registry.Component, error) { return &Badge{}, nil },
		Reflect: map[string]string{"label": "label"},
	})
	r.MustRegister(registry.Definition{
		TagName: "demo-list",
		New:     func() (registry.Component, error) { return &List{}, nil },
	})
	r.MustRegister(registry.Definition{
		TagName: "demo-echo",
		New:     func() (registry.Component, error) { return &Echo{}, nil },
	})
	return r
}

var galleryTemplate = template.New(
	`<!DOCTYPE html><html><head><title>hydro preview</title></head><body><h1>hydro component gallery</h1><demo-card><span slot="title">Badges</span><demo-badge slot="body" .label=`, ` .tone=`, `></demo-badge></demo-card><demo-card><span slot="title">Lists</span><demo-list slot="body" .items=`, `></demo-list></demo-card><demo-card><span slot="title">Echo</span><demo-echo slot="body" .message=`, `></demo-echo></demo-card></body></html>`,
)

// Gallery is the index page: every demo component composed on one page.
func Gallery() template.Result {
	return galleryTemplate.Bind(
		"streaming", "info",
		[]any{"templates", "markers", "slots"},
		"hello from the server",
	)
}

// Preview templates are declared once so repeated requests share one cached
// parse.
var (
	previewCard  = template.New(`<demo-card><span slot="title">Preview</span>card body text</demo-card>`)
	previewBadge = template.New(`<demo-badge .label=`, ` .tone=`, `></demo-badge>`)
	previewList  = template.New(`<demo-list .items=`, `></demo-list>`)
	previewEcho  = template.New(`<demo-echo .message=`, `></demo-echo>`)
)

var previewTemplates = map[string]func() template.Result{
	"demo-card":  func() template.Result { return previewCard.Bind() },
	"demo-badge": func() template.Result { return previewBadge.Bind("preview", "ok") },
	"demo-list":  func() template.Result { return previewList.Bind([]any{"one", "two", "three"}) },
	"demo-echo":  func() template.Result { return previewEcho.Bind("echoed twice") },
}

// Preview returns the standalone preview page for one registered tag.
func Preview(tag string) (template.Result, bool) {
	build, ok := previewTemplates[tag]
	if !ok {
		return template.Result{}, false
	}
	return build(), true
}
