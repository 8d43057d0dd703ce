//go:build property

package render

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/hydrohtml/hydro/pkg/template"
)

var markerComment = regexp.MustCompile(`<!--/?lit-part[^>]*-->`)

// propParts builds literal segments for a template with n value gaps.
func propParts(n int) []string {
	if n == 0 {
		return []string{"<div></div>"}
	}
	parts := []string{"<div>"}
	for i := 0; i < n-1; i++ {
		parts = append(parts, "<b>x</b>")
	}
	return append(parts, "</div>")
}

func TestRenderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("literal markup passes through unchanged", prop.ForAll(
		func(words []string) bool {
			markup := "<p>" + strings.Join(words, " ") + "</p>"
			out, err := String(context.Background(), template.New(markup).Bind())
			return err == nil && out == markup
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("brackets balance and values conserve in order", prop.ForAll(
		func(values []string) bool {
			parts := propParts(len(values))
			bound := make([]any, len(values))
			for i, v := range values {
				bound[i] = v
			}

			out, err := String(context.Background(), template.New(parts...).Bind(bound...))
			if err != nil {
				return false
			}
			if strings.Count(out, "<!--lit-part") != strings.Count(out, "<!--/lit-part-->") {
				return false
			}

			var expected strings.Builder
			expected.WriteString(parts[0])
			for i, v := range values {
				expected.WriteString(v)
				expected.WriteString(parts[i+1])
			}
			return markerComment.ReplaceAllString(out, "") == expected.String()
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("nested templates keep brackets balanced", prop.ForAll(
		func(values []string) bool {
			inner := template.New("<em>", "</em>")
			parts := propParts(len(values))
			bound := make([]any, len(values))
			for i, v := range values {
				bound[i] = inner.Bind(v)
			}

			out, err := String(context.Background(), template.New(parts...).Bind(bound...))
			if err != nil {
				return false
			}
			if strings.Count(out, "<!--lit-part") != strings.Count(out, "<!--/lit-part-->") {
				return false
			}

			var expected strings.Builder
			expected.WriteString(parts[0])
			for i, v := range values {
				expected.WriteString("<em>" + v + "</em>")
				expected.WriteString(parts[i+1])
			}
			return markerComment.ReplaceAllString(out, "") == expected.String()
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}
