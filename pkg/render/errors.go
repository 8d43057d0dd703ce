package render

import (
	"errors"
	"fmt"
)

// errCanceled signals that the consumer stopped pulling chunks. It unwinds
// the traversal silently and is never surfaced through the public API.
var errCanceled = errors.New("render: canceled by consumer")

// ConsistencyError reports a mismatch between the markers found in a
// template's markup and the values bound to it, or an internal cursor
// violation. It is fatal to the render call that raised it.
type ConsistencyError struct {
	Digest   string
	Consumed int
	Expected int
	Reason   string
}

func (e *ConsistencyError) Error() string {
	if e.Expected != 0 || e.Consumed != 0 {
		return fmt.Sprintf("render: template %s: %s (consumed %d of %d values)",
			e.Digest, e.Reason, e.Consumed, e.Expected)
	}
	return fmt.Sprintf("render: template %s: %s", e.Digest, e.Reason)
}

// ConstructionError wraps a component constructor failure. It is recovered
// by the renderer (the element renders as a plain tag) and only surfaces
// through the configured logger.
type ConstructionError struct {
	TagName string
	Err     error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("render: constructing <%s>: %v", e.TagName, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// ParseError wraps a failure of the markup parser. Malformed markup is not
// recovered; the fault propagates out of the render call.
type ParseError struct {
	Digest string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("render: parsing template %s: %v", e.Digest, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
