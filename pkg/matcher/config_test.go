package matcher_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wayfinder/pkg/matcher"
	"github.com/dmitrymomot/wayfinder/pkg/route"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		routes, err := matcher.LoadFile("testdata/routes.yaml")
		require.NoError(t, err)
		require.Len(t, routes, 5)
		assert.Equal(t, "user", routes[1].Name)
		assert.Equal(t, true, routes[1].Meta["auth"])
		require.Len(t, routes[1].Children, 2)
		assert.Equal(t, "PostsSidebar", routes[1].Children[1].Components["sidebar"])
		assert.Equal(t, "requireAuth", routes[2].Guard)
	})

	t.Run("toml", func(t *testing.T) {
		t.Parallel()
		m, err := matcher.NewFromFile("testdata/routes.toml")
		require.NoError(t, err)

		r, err := m.Match(route.Parse("/docs/intro"), route.Start)
		require.NoError(t, err)
		assert.Equal(t, "doc", r.Name())
		assert.Equal(t, "intro", r.Param("page"))

		about, err := m.Match(route.Named("about", nil), route.Start)
		require.NoError(t, err)
		assert.Equal(t, "About us", about.Meta()["title"])
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		_, err := matcher.LoadFile("testdata/invalid.yaml")
		assert.ErrorIs(t, err, matcher.ErrDecodeTable)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()
		_, err := matcher.LoadFile("testdata/routes.json")
		assert.ErrorIs(t, err, matcher.ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := matcher.LoadFile("testdata/missing.yaml")
		assert.ErrorIs(t, err, matcher.ErrDecodeTable)
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	routes, err := matcher.Decode(strings.NewReader(""), matcher.FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, routes)

	_, err = matcher.Decode(strings.NewReader("x"), matcher.Format("xml"))
	assert.ErrorIs(t, err, matcher.ErrUnsupportedFormat)
}
