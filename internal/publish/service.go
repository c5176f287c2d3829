// Package publish implements the publication state machine: the save /
// publish / trash / purge lifecycle, slug alias bookkeeping for
// redirects, and the cache invalidation that keeps derived output
// consistent with the store.
package publish

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fortes/mashpress/internal/cache"
	"github.com/fortes/mashpress/internal/compose"
	"github.com/fortes/mashpress/internal/domain/content"
	"github.com/fortes/mashpress/internal/metrics"
	"github.com/fortes/mashpress/internal/store"
	"github.com/fortes/mashpress/internal/text"
	"github.com/fortes/mashpress/internal/validate"
)

// ErrSlugTaken is returned when a live save would take a slug already
// held by a different live item.
var ErrSlugTaken = errors.New("slug already held by a live item")

type Service struct {
	store      *store.Store
	cache      *cache.Coordinator
	proc       *compose.Processor
	log        *slog.Logger
	now        func() time.Time
	titleLimit int
}

type Options struct {
	Store      *store.Store
	Cache      *cache.Coordinator
	Processor  *compose.Processor
	Log        *slog.Logger
	Now        func() time.Time
	TitleLimit int
}

func New(opt Options) *Service {
	s := &Service{
		store:      opt.Store,
		cache:      opt.Cache,
		proc:       opt.Processor,
		log:        opt.Log,
		now:        opt.Now,
		titleLimit: opt.TitleLimit,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.titleLimit <= 0 {
		s.titleLimit = text.DefaultTitleLimit
	}
	return s
}

// UpdateContent stores raw content on the item, renders it, and applies
// the extracted fields. An absent field leaves the current value alone;
// in particular a missing or malformed date keeps whatever publish date
// the item already had.
func (s *Service) UpdateContent(it *content.Item, raw string) error {
	html, fields, err := s.proc.Process(raw, it.PublishDate)
	if err != nil {
		return err
	}

	it.RawContent = raw
	it.HTML = html
	it.Title = fields.Title
	it.Slug = fields.Slug
	if !fields.Date.IsZero() {
		it.PublishDate = fields.Date
	}
	if fields.Page {
		it.IsPost = false
	}
	return nil
}

// Save persists the item. The root page is never a post. When a live
// save changes the item's slug, the previous slug is recorded as an
// alias so old links keep redirecting. Every save flushes the cached
// page bodies.
func (s *Service) Save(it *content.Item) error {
	if it.IsRoot() {
		it.IsPost = false
	}
	if err := validate.Item(it, s.titleLimit); err != nil {
		return fmt.Errorf("invalid item: %w", err)
	}

	now := s.now()
	willBeLive := it.Status == content.StatusPublished &&
		(it.PublishDate.IsZero() || !it.PublishDate.After(now))
	if willBeLive {
		if other, err := s.store.LiveBySlug(it.Slug, now); err == nil && other.ID != it.ID {
			return fmt.Errorf("%w: %s", ErrSlugTaken, it.Slug)
		}
	}

	var prevSlug string
	if it.ID != "" {
		if prev, err := s.store.GetItem(it.ID); err == nil {
			prevSlug = prev.Slug
		}
	}

	if err := s.store.PutItem(it); err != nil {
		return err
	}
	metrics.ItemMutations.WithLabelValues("save").Inc()

	if it.IsLive(now) && prevSlug != "" && prevSlug != it.Slug {
		if err := s.store.PutAlias(prevSlug, it.ID); err != nil {
			return fmt.Errorf("record alias %s: %w", prevSlug, err)
		}
	}

	s.cache.InvalidatePages()
	return nil
}

// Publish marks the item published and saves it.
func (s *Service) Publish(it *content.Item) error {
	it.Status = content.StatusPublished
	return s.Save(it)
}

// Trash soft-deletes the item. Slug and content are retained until
// purge.
func (s *Service) Trash(it *content.Item) error {
	it.Status = content.StatusTrash
	if err := s.store.PutItem(it); err != nil {
		return err
	}
	metrics.ItemMutations.WithLabelValues("trash").Inc()
	s.cache.InvalidatePages()
	return nil
}

// Purge hard-deletes the item. Aliases referencing it are removed first,
// best effort: a partial cascade is logged and the item is deleted
// anyway, since orphaned aliases fail closed at resolve time.
func (s *Service) Purge(it *content.Item) error {
	if n, err := s.store.DeleteAliasesByItem(it.ID); err != nil {
		s.log.Warn("alias cascade incomplete",
			"item", it.ID, "deleted", n, "error", err)
	}
	if err := s.store.DeleteItem(it.ID); err != nil {
		return err
	}
	metrics.ItemMutations.WithLabelValues("purge").Inc()
	s.cache.InvalidatePages()
	return nil
}

// ResolveAlias maps a historical slug to its live item. An alias whose
// target is missing, trashed, unpublished or scheduled resolves as not
// found; the caller's fallback is an ordinary 404, never an error page.
func (s *Service) ResolveAlias(slug string) (content.Item, error) {
	id, err := s.store.GetAlias(slug)
	if err != nil {
		return content.Item{}, err
	}
	it, err := s.store.GetItem(id)
	if err != nil {
		// Orphaned alias (crash between item delete and cascade).
		return content.Item{}, store.ErrNotFound
	}
	if !it.IsLive(s.now()) {
		return content.Item{}, store.ErrNotFound
	}
	return it, nil
}

// Import runs raw source text through the processor and upserts by slug:
// an existing item is updated in place and keeps its status, a new one
// starts as a draft post.
func (s *Service) Import(raw string) (content.Item, bool, error) {
	draft := content.Item{Status: content.StatusDraft, IsPost: true}
	if err := s.UpdateContent(&draft, raw); err != nil {
		return content.Item{}, false, err
	}

	existing, err := s.store.FindBySlug(draft.Slug)
	switch {
	case err == nil:
		if err := s.UpdateContent(&existing, raw); err != nil {
			return content.Item{}, false, err
		}
		if err := s.Save(&existing); err != nil {
			return content.Item{}, false, err
		}
		return existing, false, nil
	case errors.Is(err, store.ErrNotFound):
		if err := s.Save(&draft); err != nil {
			return content.Item{}, false, err
		}
		return draft, true, nil
	default:
		return content.Item{}, false, err
	}
}

// PutSetting writes a setting, rebuilds the settings cache, and flushes
// cached pages. Overwrites are last-write-wins.
func (s *Service) PutSetting(name, value string) error {
	if err := validate.SettingName(name); err != nil {
		return err
	}
	if err := s.store.PutSetting(name, value); err != nil {
		return err
	}
	s.log.Info("updated setting", "name", name)

	if _, err := s.cache.RefreshSettings(); err != nil {
		return err
	}
	s.cache.InvalidatePages()
	return nil
}

// DeleteSetting removes a setting and rebuilds the caches.
func (s *Service) DeleteSetting(name string) error {
	if err := s.store.DeleteSetting(name); err != nil {
		return err
	}
	if _, err := s.cache.RefreshSettings(); err != nil {
		return err
	}
	s.cache.InvalidatePages()
	return nil
}

// EnsureRoot creates the root page when no live root exists, titled from
// the site_title setting (seeded with defaultTitle when unset). Reports
// whether a page was created.
func (s *Service) EnsureRoot(defaultTitle string) (content.Item, bool, error) {
	if it, err := s.store.LiveBySlug("/", s.now()); err == nil {
		return it, false, nil
	}

	title, err := s.store.GetOrInsertSetting("site_title", defaultTitle)
	if err != nil {
		return content.Item{}, false, err
	}

	root := content.Item{
		Slug:   "/",
		Title:  title,
		Status: content.StatusPublished,
		IsPost: false,
	}
	if err := s.Save(&root); err != nil {
		return content.Item{}, false, err
	}
	if _, err := s.cache.RefreshSettings(); err != nil {
		return content.Item{}, false, err
	}
	return root, true, nil
}
