package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerr "github.com/fortes/mashpress/internal/domain/errors"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mashpress.yaml")
	body := `
site:
  title: My Blog
store:
  path: /var/lib/mashpress/content.db
import:
  source_dir: posts
  watch: true
content:
  title_limit: 80
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "My Blog", cfg.Site.Title)
	assert.Equal(t, "/var/lib/mashpress/content.db", cfg.Store.Path)
	assert.Equal(t, "posts", cfg.Import.SourceDir)
	assert.True(t, cfg.Import.Watch)
	assert.Equal(t, 80, cfg.Content.TitleLimit)
	// Untouched fields keep their defaults.
	assert.Equal(t, "...", cfg.Content.Ellipsis)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mashpress.yaml")
	body := `
site:
  title: ""
content:
  title_limit: 2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerr.ErrInvalid))

	var ve domainerr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Items, 2)
}

func TestValidateNegativeTitleLimit(t *testing.T) {
	cfg := Default()
	cfg.Content.TitleLimit = -1
	assert.Error(t, cfg.Validate())
}
