package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	domainerr "github.com/fortes/mashpress/internal/domain/errors"
	"github.com/fortes/mashpress/internal/text"
)

type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Store   StoreConfig   `yaml:"store"`
	Import  ImportConfig  `yaml:"import"`
	Content ContentConfig `yaml:"content"`
}

type SiteConfig struct {
	// Title seeds the site_title setting when the root page is first
	// created; after that the setting is authoritative.
	Title string `yaml:"title"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type ImportConfig struct {
	SourceDir string `yaml:"source_dir"`
	Watch     bool   `yaml:"watch"`
}

type ContentConfig struct {
	TitleLimit int    `yaml:"title_limit"`
	Ellipsis   string `yaml:"ellipsis"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title: "mashpress",
		},
		Store: StoreConfig{
			Path: ".mashpress/content.db",
		},
		Import: ImportConfig{
			SourceDir: "source",
		},
		Content: ContentConfig{
			TitleLimit: text.DefaultTitleLimit,
			Ellipsis:   text.DefaultEllipsis,
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		ve.Add("store.path", "must not be empty")
	}
	if strings.TrimSpace(c.Import.SourceDir) == "" {
		ve.Add("import.source_dir", "must not be empty")
	}
	if c.Content.TitleLimit < 0 {
		ve.Add("content.title_limit", "must not be negative")
	}
	if c.Content.TitleLimit > 0 && c.Content.TitleLimit <= len(c.Content.Ellipsis) {
		ve.Add("content.title_limit", "must exceed the ellipsis length")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// Unmarshal over the defaults: fields present in the file win,
	// everything else keeps its default.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault reads the config file when it exists and falls back to
// the defaults when it does not.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		cfg = Default()
		return cfg, cfg.Validate()
	}
	return cfg, err
}
