package store

import (
	"strings"

	bolt "go.etcd.io/bbolt"
)

// PutSetting writes a name/value pair. Last write wins; there is no
// conflict error.
func (s *Store) PutSetting(name, value string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNotFound
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bSettings).Put([]byte(name), []byte(value))
	})
}

func (s *Store) GetSetting(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNotFound
	}
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bSettings).Get([]byte(name))
		if v == nil {
			return ErrNotFound
		}
		value = string(v)
		return nil
	})
	return value, err
}

// GetOrInsertSetting returns the stored value, creating it with def when
// absent.
func (s *Store) GetOrInsertSetting(name, def string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNotFound
	}
	value := def
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bSettings)
		if v := b.Get([]byte(name)); v != nil {
			value = string(v)
			return nil
		}
		return b.Put([]byte(name), []byte(def))
	})
	return value, err
}

func (s *Store) AllSettings() (map[string]string, error) {
	out := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bSettings).ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteSetting(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNotFound
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bSettings).Delete([]byte(name))
	})
}
