// Package render turns a template.Result into a lazy stream of HTML text
// chunks. The output is literal markup except that every dynamic region is
// bracketed by part marker comments, bound attribute names are rewritten to
// their plain form, and tags carrying bindings get a trailing hidden count
// attribute. A client-side hydration pass uses those markers to re-attach
// behavior without re-parsing.
//
// Rendering is a one-shot, top-to-bottom serialization: no diffing, no
// flush policy, no registry lifecycle management.
package render

import (
	"context"
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/hydrohtml/hydro/internal/logging"
	"github.com/hydrohtml/hydro/pkg/registry"
	"github.com/hydrohtml/hydro/pkg/template"
)

type options struct {
	registry *registry.Registry
	logger   logging.Logger
	flatten  bool
	cache    *templateCache
}

// Option configures one render call.
type Option func(*options)

// WithRegistry makes the given component registry visible to the render:
// elements whose tag is registered are expanded in place.
func WithRegistry(r *registry.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithLogger sets the logger used for recovered faults. The default
// discards everything.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFlatten controls slot resolution. When true (the default), <slot>
// elements resolve to their distributed content and component light
// children are suppressed at their original position. When false, slots
// stay literal and light children render in place.
func WithFlatten(flatten bool) Option {
	return func(o *options) { o.flatten = flatten }
}

// WithCacheSize gives the render call a private template cache of the given
// capacity instead of the shared process-wide one.
func WithCacheSize(size int) Option {
	return func(o *options) { o.cache = newTemplateCache(size) }
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:  logging.Nop(),
		flatten: true,
		cache:   defaultCache,
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// Render produces the chunk stream for res. Chunks are produced lazily: no
// work happens until the consumer pulls, and abandoning the sequence stops
// production with no cleanup needed. A non-nil error is always the final
// element of the sequence.
func Render(ctx context.Context, res template.Result, opts ...Option) iter.Seq2[string, error] {
	o := newOptions(opts)
	return func(yield func(string, error) bool) {
		if res.IsZero() {
			yield("", &ConsistencyError{Reason: "result is not bound to a template"})
			return
		}
		s := &session{ctx: ctx, opts: o}
		s.emit = func(chunk string) error {
			if chunk == "" {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !yield(chunk, nil) {
				return errCanceled
			}
			return nil
		}
		err := s.renderTemplateResult(res, nil, renderInfo{flatten: o.flatten})
		if err != nil && !errors.Is(err, errCanceled) {
			yield("", err)
		}
	}
}

// String renders res to a single string. On error the partial output
// produced before the fault is returned alongside it.
func String(ctx context.Context, res template.Result, opts ...Option) (string, error) {
	var b strings.Builder
	for chunk, err := range Render(ctx, res, opts...) {
		if err != nil {
			return b.String(), err
		}
		b.WriteString(chunk)
	}
	return b.String(), nil
}

// To streams res into w chunk by chunk. Callers that need incremental
// transmission can wrap w so each write flushes.
func To(ctx context.Context, w io.Writer, res template.Result, opts ...Option) error {
	for chunk, err := range Render(ctx, res, opts...) {
		if err != nil {
			return err
		}
		if _, werr := io.WriteString(w, chunk); werr != nil {
			return werr
		}
	}
	return nil
}

// session is the per-render state shared by every nested walk: the consumer
// callback, the options, and the context checked at each chunk boundary.
type session struct {
	ctx  context.Context
	opts *options
	emit func(string) error
}

// instanceScope is one entry of the lexical component stack: the tag name
// and, when construction succeeded, the live instance.
type instanceScope struct {
	tag      string
	instance registry.Component
}

// renderInfo is the per-branch context threaded through recursive dispatch:
// an optional slot-projection request, the flattening mode, and the stack
// of component instances in scope. Values are extended going down one
// recursion level and fall out of scope on return; nothing is shared.
type renderInfo struct {
	slotName   string
	hasSlotReq bool
	flatten    bool
	scope      []instanceScope
}

func (ri renderInfo) push(tag string, instance registry.Component) renderInfo {
	next := ri
	next.scope = append(append([]instanceScope{}, ri.scope...), instanceScope{tag: tag, instance: instance})
	return next
}

func (ri renderInfo) nearestInstance() registry.Component {
	for i := len(ri.scope) - 1; i >= 0; i-- {
		if ri.scope[i].instance != nil {
			return ri.scope[i].instance
		}
	}
	return nil
}

func (ri renderInfo) withSlotRequest(name string) renderInfo {
	next := ri
	next.slotName = name
	next.hasSlotReq = true
	return next
}

func (ri renderInfo) clearSlotRequest() renderInfo {
	next := ri
	next.slotName = ""
	next.hasSlotReq = false
	return next
}
