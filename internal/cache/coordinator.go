package cache

import (
	"encoding/json"
	"log/slog"

	"github.com/fortes/mashpress/internal/metrics"
)

// Cache keys. The page keys match the names the site has always used.
const (
	KeyRootPage    = "root_html"
	KeyArchivePage = "archive_html"
	keySettings    = "settings"
)

// PageKeys lists every cached page body; a state-affecting mutation
// flushes them all.
var PageKeys = []string{KeyRootPage, KeyArchivePage}

// SettingsSource yields the authoritative settings dictionary.
type SettingsSource interface {
	AllSettings() (map[string]string, error)
}

// Coordinator owns the derived caches: the settings dictionary and
// rendered page bodies. Reads populate lazily on miss; writes invalidate
// explicitly. There is no TTL.
type Coordinator struct {
	store    Store
	settings SettingsSource
	log      *slog.Logger
}

func NewCoordinator(store Store, settings SettingsSource, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{store: store, settings: settings, log: log}
}

// Settings returns the settings dictionary, rebuilding the cache on miss.
func (c *Coordinator) Settings() (map[string]string, error) {
	if buf, ok := c.store.Get(keySettings); ok {
		var m map[string]string
		if err := json.Unmarshal(buf, &m); err == nil {
			metrics.CacheHits.WithLabelValues(keySettings).Inc()
			return m, nil
		}
	}
	metrics.CacheMisses.WithLabelValues(keySettings).Inc()
	c.log.Debug("settings cache miss")
	return c.RefreshSettings()
}

// RefreshSettings rebuilds the cached settings dictionary from the
// source. Must be called whenever a setting value changes; the cache is
// replaced wholesale, never patched.
func (c *Coordinator) RefreshSettings() (map[string]string, error) {
	m, err := c.settings.AllSettings()
	if err != nil {
		return nil, err
	}
	if buf, err := json.Marshal(m); err == nil {
		c.store.Set(keySettings, buf)
	}
	return m, nil
}

// Page returns the cached body under key, computing and storing it on
// miss. A compute failure is returned uncached.
func (c *Coordinator) Page(key string, compute func() ([]byte, error)) ([]byte, error) {
	if body, ok := c.store.Get(key); ok {
		metrics.CacheHits.WithLabelValues(key).Inc()
		return body, nil
	}
	metrics.CacheMisses.WithLabelValues(key).Inc()

	body, err := compute()
	if err != nil {
		return nil, err
	}
	c.store.Set(key, body)
	return body, nil
}

// InvalidatePages drops every cached page body.
func (c *Coordinator) InvalidatePages() {
	c.store.DeleteMulti(PageKeys...)
	metrics.PageInvalidations.Inc()
}
