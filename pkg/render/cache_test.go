package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrohtml/hydro/pkg/template"
)

func TestJoinWithMarkers(t *testing.T) {
	t.Run("child position joins as comment", func(t *testing.T) {
		joined := joinWithMarkers([]string{"<p>", "</p>"})
		assert.Equal(t, "<p>"+nodeMarker+"</p>", joined)
	})

	t.Run("attribute position joins as raw token with suffixed name", func(t *testing.T) {
		joined := joinWithMarkers([]string{`<div class="`, `"></div>`})
		assert.Equal(t, `<div class`+boundAttributeSuffix+`="`+marker+`"></div>`, joined)
	})

	t.Run("unquoted attribute", func(t *testing.T) {
		joined := joinWithMarkers([]string{`<div .prop=`, `></div>`})
		assert.Equal(t, `<div .prop`+boundAttributeSuffix+`=`+marker+`></div>`, joined)
	})

	t.Run("later markers in same attribute join in node form", func(t *testing.T) {
		joined := joinWithMarkers([]string{`<div class="a `, ` b `, `"></div>`})
		assert.Equal(t, `<div class`+boundAttributeSuffix+`="a `+marker+` b `+nodeMarker+`"></div>`, joined)
	})

	t.Run("open comment joins as raw token", func(t *testing.T) {
		joined := joinWithMarkers([]string{`<!-- note `, ` -->`})
		assert.Equal(t, `<!-- note `+marker+` -->`, joined)
	})

	t.Run("closed comment before gap joins as comment marker", func(t *testing.T) {
		joined := joinWithMarkers([]string{`<!--x--><p>`, `</p>`})
		assert.Equal(t, `<!--x--><p>`+nodeMarker+`</p>`, joined)
	})

	t.Run("single part joins unchanged", func(t *testing.T) {
		assert.Equal(t, "<p>hi</p>", joinWithMarkers([]string{"<p>hi</p>"}))
	})
}

func TestAnnotate(t *testing.T) {
	t.Run("indices assigned in document order, attributes first", func(t *testing.T) {
		tpl := template.New(`<div a="`, `">`, `</div>`)
		cache := newTemplateCache(4)
		parsed, err := cache.get(tpl)
		require.NoError(t, err)

		assert.Equal(t, 2, parsed.partCount)

		div := parsed.root.Children[0]
		attrs := parsed.attrParts[div]
		require.Len(t, attrs, 1)
		assert.Equal(t, "a", attrs[0].name)
		assert.Equal(t, []int{0}, attrs[0].valueIndices)
		assert.False(t, attrs[0].property)

		comment := div.Children[0]
		assert.Equal(t, 1, parsed.childParts[comment])
	})

	t.Run("property sigil detected", func(t *testing.T) {
		tpl := template.New(`<x-a .name=`, `></x-a>`)
		parsed, err := newTemplateCache(4).get(tpl)
		require.NoError(t, err)

		attrs := parsed.attrParts[parsed.root.Children[0]]
		require.Len(t, attrs, 1)
		assert.Equal(t, ".name", attrs[0].name)
		assert.True(t, attrs[0].property)
	})

	t.Run("comment markers counted", func(t *testing.T) {
		tpl := template.New(`<!-- a `, ` b `, ` -->`)
		parsed, err := newTemplateCache(4).get(tpl)
		require.NoError(t, err)

		assert.Equal(t, 2, parsed.partCount)
		comment := parsed.root.Children[0]
		assert.Equal(t, []int{0, 1}, parsed.commentParts[comment])
	})
}

func TestCacheIdentity(t *testing.T) {
	cache := newTemplateCache(4)
	tpl := template.New(`<p>`, `</p>`)

	first, err := cache.get(tpl)
	require.NoError(t, err)
	second, err := cache.get(tpl)
	require.NoError(t, err)
	assert.Same(t, first, second)

	// an equal-shaped but distinct template parses separately
	other, err := cache.get(template.New(`<p>`, `</p>`))
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestCacheEviction(t *testing.T) {
	cache := newTemplateCache(1)
	a := template.New(`<p>a</p>`)
	b := template.New(`<p>b</p>`)

	pa, err := cache.get(a)
	require.NoError(t, err)
	_, err = cache.get(b)
	require.NoError(t, err)

	// a was evicted; re-fetching re-parses transparently
	pa2, err := cache.get(a)
	require.NoError(t, err)
	assert.NotSame(t, pa, pa2)
	assert.Equal(t, pa.markup, pa2.markup)
}

func TestMarkerUniqueness(t *testing.T) {
	assert.True(t, strings.HasPrefix(marker, "{{lit-"))
	assert.True(t, strings.HasSuffix(marker, "}}"))
	assert.Equal(t, "<!--"+marker+"-->", nodeMarker)
}
