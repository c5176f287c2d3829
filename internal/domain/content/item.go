package content

import (
	"time"
)

// Status is the publication state of an Item. Transitions move forward
// only: Draft -> Published -> Trash, or Published -> Trash.
type Status int

const (
	StatusDraft Status = iota
	StatusPublished
	StatusTrash
)

func (s Status) String() string {
	switch s {
	case StatusPublished:
		return "Published"
	case StatusTrash:
		return "Trash"
	default:
		return "Draft"
	}
}

// Item is a single content unit: either a chronological post or a
// standalone page. The root page holds the reserved slug "/".
type Item struct {
	ID          string
	Slug        string
	Title       string
	RawContent  string
	HTML        string
	Status      Status
	PublishDate time.Time
	Updated     time.Time
	IsPost      bool
}

func (it *Item) IsDraft() bool { return it.Status == StatusDraft }

// IsLive reports whether the item is publicly visible: published with a
// publish date that is not in the future.
func (it *Item) IsLive(now time.Time) bool {
	return it.Status == StatusPublished && !it.PublishDate.After(now)
}

// IsFuture reports whether the item is published but scheduled.
func (it *Item) IsFuture(now time.Time) bool {
	return it.Status == StatusPublished && it.PublishDate.After(now)
}

func (it *Item) IsTrash() bool { return it.Status == StatusTrash }

func (it *Item) IsRoot() bool { return it.Slug == "/" }

func (it *Item) ArchiveLink() string {
	if it.IsRoot() {
		return "/archive"
	}
	return it.Slug + "/archive"
}
