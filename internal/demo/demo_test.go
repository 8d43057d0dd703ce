package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydrohtml/hydro/pkg/render"
)

func TestRegistryContents(t *testing.T) {
	r := Registry()
	assert.Equal(t, []string{"demo-badge", "demo-card", "demo-echo", "demo-list"}, r.TagNames())
}

func TestGalleryRenders(t *testing.T) {
	out, err := render.String(context.Background(), Gallery(), render.WithRegistry(Registry()))
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>hydro component gallery</h1>")
	// slotted titles land inside the card header
	assert.Contains(t, out, `<slot name="title"><span slot="title">Badges</span></slot>`)
	// the badge reflects its label and resolves its class map
	assert.Contains(t, out, `label="streaming"`)
	assert.Contains(t, out, "badge badge-info")
	// the list repeats its items
	assert.Contains(t, out, "<li><!--lit-part-->markers<!--/lit-part--></li>")
	// echo renders its light output inside its shadow template
	assert.Contains(t, out, "<em><!--lit-part-->hello from the server<!--/lit-part--></em>")
}

func TestPreviews(t *testing.T) {
	r := Registry()
	for _, tag := range r.TagNames() {
		t.Run(tag, func(t *testing.T) {
			res, ok := Preview(tag)
			require.True(t, ok)

			out, err := render.String(context.Background(), res, render.WithRegistry(r))
			require.NoError(t, err)
			assert.Contains(t, out, "<"+tag)
		})
	}
}

func TestPreviewUnknown(t *testing.T) {
	_, ok := Preview("no-such")
	assert.False(t, ok)
}
