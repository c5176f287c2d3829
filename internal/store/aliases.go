package store

import (
	"strings"

	bolt "go.etcd.io/bbolt"
)

// PutAlias upserts old slug -> item id. Re-adding an existing pair only
// overwrites the reference. Empty slugs are silently skipped.
func (s *Store) PutAlias(slug, itemID string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" || itemID == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bAliases).Put([]byte(slug), []byte(itemID))
	})
}

// GetAlias returns the id of the item a historical slug points at.
func (s *Store) GetAlias(slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", ErrNotFound
	}
	var id string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bAliases).Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		id = string(v)
		return nil
	})
	return id, err
}

// DeleteAliasesByItem removes every alias referencing the item, returning
// how many were deleted.
func (s *Store) DeleteAliasesByItem(itemID string) (int, error) {
	if itemID == "" {
		return 0, nil
	}
	deleted := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bAliases)

		var stale [][]byte
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if string(v) == itemID {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	return deleted, err
}
