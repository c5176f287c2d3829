package compose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortes/mashpress/internal/render"
)

func newTestProcessor() *Processor {
	return NewProcessor(render.NewMarkdownRenderer())
}

func TestProcessDerivedFields(t *testing.T) {
	p := newTestProcessor()

	fallback := time.Date(2010, time.October, 10, 0, 0, 0, 0, time.UTC)
	html, fields, err := p.Process(" \nHello World!\n\nThis is my *first* post!", fallback)
	require.NoError(t, err)

	assert.Contains(t, html, "<p>Hello World!</p>")
	assert.Contains(t, html, "<em>first</em>")
	assert.Equal(t, "Hello World!", fields.Title)
	assert.Equal(t, "/2010/hello-world", fields.Slug)
	assert.True(t, fields.Date.IsZero())
	assert.False(t, fields.Page)
}

func TestProcessFrontMatterFields(t *testing.T) {
	p := newTestProcessor()

	html, fields, err := p.Process("title: My Post Title\nslug: 2009/slug-name\ndate: 20091015\n\nThis is my post!", time.Time{})
	require.NoError(t, err)

	assert.Contains(t, html, "<p>This is my post!</p>")
	assert.Equal(t, "My Post Title", fields.Title)
	assert.Equal(t, "/2009/slug-name", fields.Slug)
	assert.Equal(t, 2009, fields.Date.Year())
	assert.Equal(t, time.October, fields.Date.Month())
	assert.Equal(t, 15, fields.Date.Day())
}

func TestProcessFrontMatterDateSeedsSlugYear(t *testing.T) {
	p := newTestProcessor()

	_, fields, err := p.Process("date: 1979-10-15\n\nOld Post", time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "/1979/old-post", fields.Slug)
}

func TestProcessMalformedDate(t *testing.T) {
	p := newTestProcessor()

	_, fields, err := p.Process("date: not a date\n\nBody Text", time.Date(2012, 5, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, fields.Date.IsZero(), "malformed date must leave the field unset")
	assert.Equal(t, "/2012/body-text", fields.Slug)
}

func TestProcessPageKey(t *testing.T) {
	p := newTestProcessor()

	_, fields, err := p.Process("title: About\npage: yes\n\nAbout me.", time.Time{})
	require.NoError(t, err)
	assert.True(t, fields.Page)
}

func TestProcessCurrentYearFallback(t *testing.T) {
	p := newTestProcessor()
	p.Now = func() time.Time { return time.Date(1999, 7, 1, 0, 0, 0, 0, time.UTC) }

	_, fields, err := p.Process("Fresh Post", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "/1999/fresh-post", fields.Slug)
}

func TestProcessTitleClipped(t *testing.T) {
	p := newTestProcessor()
	p.TitleLimit = 15

	_, fields, err := p.Process("title: This title is too long\n\nbody", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "This title...", fields.Title)
}
