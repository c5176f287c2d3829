package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFrontMatter(t *testing.T) {
	t.Run("block with body", func(t *testing.T) {
		meta, body := ParseFrontMatter("title: My Post Title\nslug: 2009/slug-name\ndate: 20091015\n\nThis is my post!")
		assert.Equal(t, map[string]string{
			"title": "My Post Title",
			"slug":  "2009/slug-name",
			"date":  "20091015",
		}, meta)
		assert.Equal(t, "This is my post!", body)
	})

	t.Run("no block", func(t *testing.T) {
		raw := " \nHello World!\n\nThis is my *first* post!"
		meta, body := ParseFrontMatter(raw)
		assert.Nil(t, meta)
		assert.Equal(t, raw, body)
	})

	t.Run("unrecognized keys preserved", func(t *testing.T) {
		meta, _ := ParseFrontMatter("title: A\nx-custom: kept\n\nbody")
		assert.Equal(t, "kept", meta["x-custom"])
	})

	t.Run("keys lowercased first value wins", func(t *testing.T) {
		meta, _ := ParseFrontMatter("Title: First\ntitle: Second\n\nbody")
		assert.Equal(t, "First", meta["title"])
	})

	t.Run("page key with empty value", func(t *testing.T) {
		meta, body := ParseFrontMatter("page:\n\nAbout me")
		_, ok := meta["page"]
		assert.True(t, ok)
		assert.Equal(t, "About me", body)
	})

	t.Run("non-matching line ends block and stays in body", func(t *testing.T) {
		meta, body := ParseFrontMatter("title: A\nnot front matter\n\nrest")
		assert.Equal(t, "A", meta["title"])
		assert.Equal(t, "not front matter\n\nrest", body)
	})

	t.Run("crlf input", func(t *testing.T) {
		meta, body := ParseFrontMatter("title: A\r\n\r\nbody line")
		assert.Equal(t, "A", meta["title"])
		assert.Equal(t, "body line", body)
	})

	t.Run("block without body", func(t *testing.T) {
		meta, body := ParseFrontMatter("title: Only Meta")
		assert.Equal(t, "Only Meta", meta["title"])
		assert.Empty(t, body)
	})
}
