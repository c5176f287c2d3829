// Package pages composes the site's derived page bodies from store
// state and serves them through the cache coordinator.
package pages

import (
	"time"

	"github.com/fortes/mashpress/internal/cache"
	"github.com/fortes/mashpress/internal/domain/content"
	"github.com/fortes/mashpress/internal/store"
)

// The root page shows the most recent posts; the archive shows them all.
const rootPostCount = 10

// Renderer turns the root item and a post listing into a page body. The
// builder owns what goes on a page, the renderer owns how it looks.
type Renderer interface {
	RenderRoot(root content.Item, posts []content.Item) ([]byte, error)
	RenderArchive(posts []content.Item) ([]byte, error)
}

type Builder struct {
	Store    *store.Store
	Cache    *cache.Coordinator
	Renderer Renderer
	Now      func() time.Time
}

func NewBuilder(st *store.Store, co *cache.Coordinator, r Renderer) *Builder {
	return &Builder{Store: st, Cache: co, Renderer: r, Now: time.Now}
}

// Root returns the root page body, composing it on cache miss from the
// live root item and the newest live posts.
func (b *Builder) Root() ([]byte, error) {
	return b.Cache.Page(cache.KeyRootPage, func() ([]byte, error) {
		root, posts, err := b.rootAndPosts()
		if err != nil {
			return nil, err
		}
		if len(posts) > rootPostCount {
			posts = posts[:rootPostCount]
		}
		return b.Renderer.RenderRoot(root, posts)
	})
}

// Archive returns the archive page body, composing it on cache miss
// from every live post, newest first.
func (b *Builder) Archive() ([]byte, error) {
	return b.Cache.Page(cache.KeyArchivePage, func() ([]byte, error) {
		posts, err := b.livePosts()
		if err != nil {
			return nil, err
		}
		return b.Renderer.RenderArchive(posts)
	})
}

func (b *Builder) rootAndPosts() (content.Item, []content.Item, error) {
	root, err := b.Store.LiveBySlug("/", b.Now())
	if err != nil {
		return content.Item{}, nil, err
	}
	posts, err := b.livePosts()
	if err != nil {
		return content.Item{}, nil, err
	}
	return root, posts, nil
}

func (b *Builder) livePosts() ([]content.Item, error) {
	now := b.Now()
	return b.Store.ListItems(
		func(it content.Item) bool { return it.IsPost && it.IsLive(now) },
		func(a, b content.Item) bool { return a.PublishDate.After(b.PublishDate) },
	)
}
