// Package validate holds the persistence-time validation rules for
// domain entities.
package validate

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fortes/mashpress/internal/domain/content"
	"github.com/fortes/mashpress/internal/text"
)

var (
	// Matches slugifier output: "/" alone, or "/"-joined segments of
	// lowercase letters, digits and dashes.
	slugRe = regexp.MustCompile(`^/$|^(/[a-z0-9-]+)+$`)

	settingNameRe = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// Item checks an item before persist. Titles longer than the limit are a
// caller bug: the titleizer clips everything that flows through the
// processor.
func Item(it *content.Item, titleLimit int) error {
	if titleLimit <= 0 {
		titleLimit = text.DefaultTitleLimit
	}
	return validation.ValidateStruct(it,
		validation.Field(&it.Slug,
			validation.Required.Error("slug_required"),
			validation.Match(slugRe).Error("invalid_slug_format"),
		),
		validation.Field(&it.Title,
			validation.RuneLength(0, titleLimit).Error("title_too_long"),
		),
		validation.Field(&it.Status,
			validation.In(content.StatusDraft, content.StatusPublished, content.StatusTrash).Error("invalid_status"),
		),
	)
}

// SettingName checks a setting name before write.
func SettingName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("name_required"),
		validation.Match(settingNameRe).Error("invalid_setting_name"),
	)
}
