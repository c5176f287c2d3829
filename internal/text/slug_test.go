package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"root stays root", "/", "/"},
		{"empty yields root", "", "/"},
		{"whitespace only yields root", "   \t ", "/"},
		{"trailing slash stripped", "/hello/", "/hello"},
		{"punctuation stripped", " I LOVE!! CHEESE & QUESO?", "/i-love-cheese-queso"},
		{"entities stripped", "&quot;Cool&quot;", "/cool"},
		{"slash and dash runs collapsed", "//// he_llo ///--/-/ world----", "/hello/world"},
		{"year prefix", "2010/Hello World!", "/2010/hello-world"},
		{"uppercase lowered", "/About", "/about"},
		{"unicode dropped", "café table", "/caf-table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"/",
		"",
		" I LOVE!! CHEESE & QUESO?",
		"//// he_llo ///--/-/ world----",
		"2009/slug-name",
		"already/normal-slug",
		"&amp; Sons",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "slugify(%q) should be idempotent", in)
	}
}
