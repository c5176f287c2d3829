package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/fortes/mashpress/internal/domain/content"
)

// PutItem persists the item. The store assigns the id and the publish
// date on first persist, and refreshes the updated date on every persist.
func (s *Store) PutItem(it *content.Item) error {
	now := s.now()
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.PublishDate.IsZero() {
		it.PublishDate = now
	}
	it.Updated = now

	buf, err := json.Marshal(it)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bItems).Put([]byte(it.ID), buf)
	})
}

func (s *Store) GetItem(id string) (content.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return content.Item{}, ErrNotFound
	}
	var it content.Item
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bItems).Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &it)
	})
	return it, err
}

func (s *Store) DeleteItem(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bItems).Delete([]byte(id))
	})
}

// ListItems scans all items, keeping those the filter accepts, sorted by
// less when given.
func (s *Store) ListItems(filter func(content.Item) bool, less func(a, b content.Item) bool) ([]content.Item, error) {
	var out []content.Item
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bItems).ForEach(func(k, v []byte) error {
			var it content.Item
			if err := json.Unmarshal(v, &it); err != nil {
				return nil // skip undecodable records
			}
			if filter == nil || filter(it) {
				out = append(out, it)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out, nil
}

// FindBySlug returns the item currently holding slug, regardless of
// status. A live item wins over drafts sharing the slug; several
// non-live holders with no live one is ErrAmbiguousSlug.
func (s *Store) FindBySlug(slug string) (content.Item, error) {
	items, err := s.ListItems(func(it content.Item) bool { return it.Slug == slug }, nil)
	if err != nil {
		return content.Item{}, err
	}
	if len(items) == 0 {
		return content.Item{}, ErrNotFound
	}
	now := s.now()
	for _, it := range items {
		if it.IsLive(now) {
			return it, nil
		}
	}
	if len(items) > 1 {
		return content.Item{}, fmt.Errorf("%w: %s", ErrAmbiguousSlug, slug)
	}
	return items[0], nil
}

// LiveBySlug returns the live item holding slug: published, publish date
// not after now.
func (s *Store) LiveBySlug(slug string, now time.Time) (content.Item, error) {
	items, err := s.ListItems(func(it content.Item) bool {
		return it.Slug == slug && it.IsLive(now)
	}, nil)
	if err != nil {
		return content.Item{}, err
	}
	if len(items) == 0 {
		return content.Item{}, ErrNotFound
	}
	return items[0], nil
}
