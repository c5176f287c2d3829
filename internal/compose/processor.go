package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/fortes/mashpress/internal/render"
	"github.com/fortes/mashpress/internal/text"
)

// Fields holds values extracted from a content block. Title and Slug are
// always determined (derived from the body when front matter is silent);
// Date is the zero time when absent or malformed, and Page is true only
// when the front matter contained a "page" key. Callers treat absent
// values as "no change", never as "clear".
type Fields struct {
	Title string
	Slug  string
	Date  time.Time
	Page  bool
}

// Renderer is the markdown collaborator boundary.
type Renderer interface {
	Render(src []byte) (render.MarkdownResult, error)
}

// Processor turns raw authored text into rendered HTML plus the fields
// extracted from its front matter or derived from the body.
type Processor struct {
	MD         Renderer
	TitleLimit int
	Ellipsis   string
	Now        func() time.Time
}

func NewProcessor(md Renderer) *Processor {
	return &Processor{
		MD:         md,
		TitleLimit: text.DefaultTitleLimit,
		Ellipsis:   text.DefaultEllipsis,
		Now:        time.Now,
	}
}

// Process renders the body through the markdown collaborator and fills
// Fields. The fallback date's year seeds slug generation when the front
// matter carries no date; a malformed front-matter date is not an error,
// it just leaves Fields.Date unset.
func (p *Processor) Process(raw string, fallback time.Time) (string, Fields, error) {
	meta, body := ParseFrontMatter(raw)

	res, err := p.MD.Render([]byte(body))
	if err != nil {
		return "", Fields{}, fmt.Errorf("render markdown: %w", err)
	}
	html := string(res.HTML)

	var f Fields
	if d, ok := meta["date"]; ok {
		if parsed, ok := text.ParseDate(d); ok {
			f.Date = parsed
		}
	}

	if title, ok := meta["title"]; ok {
		f.Title = text.Titleize(title, p.TitleLimit, p.Ellipsis)
	} else {
		f.Title = text.Titleize(firstLine(html), p.TitleLimit, p.Ellipsis)
	}

	if slug, ok := meta["slug"]; ok {
		f.Slug = text.Slugify(slug)
	} else {
		var year int
		switch {
		case !f.Date.IsZero():
			year = f.Date.Year()
		case !fallback.IsZero():
			year = fallback.Year()
		default:
			year = p.Now().Year()
		}
		f.Slug = text.Slugify(fmt.Sprintf("%d/%s", year, f.Title))
	}

	_, f.Page = meta["page"]
	return html, f, nil
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}
