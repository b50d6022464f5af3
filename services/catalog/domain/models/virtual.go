package models

import "fmt"

// Kind names an entity type in the catalog.
type Kind string

const (
	KindCategory Kind = "category"
	KindItem     Kind = "item"
)

// Collection is the URL segment for the kind.
func (k Kind) Collection() string {
	switch k {
	case KindCategory:
		return "categories"
	case KindItem:
		return "items"
	default:
		return string(k) + "s"
	}
}

const (
	// medium date form, e.g. "Oct 14, 1983"
	dateMediumLayout = "Jan 2, 2006"
	dateISOLayout    = "2006-01-02"
)

// ResourcePath returns the canonical path of an entity, e.g. /items/{id}.
func ResourcePath(kind Kind, id string) string {
	return fmt.Sprintf("/%s/%s", kind.Collection(), id)
}

// URL is the canonical resource path of the category.
func (c *Category) URL() string {
	return ResourcePath(KindCategory, c.ID.String())
}

// URL is the canonical resource path of the item.
func (i *Item) URL() string {
	return ResourcePath(KindItem, i.ID.String())
}

// DateAdded renders DAdded in medium form, or "" when unset.
func (i *Item) DateAdded() string {
	if i.DAdded.IsZero() {
		return ""
	}
	return i.DAdded.Format(dateMediumLayout)
}

// DAddedYYYYMMDD renders DAdded for date inputs, or "" when unset.
func (i *Item) DAddedYYYYMMDD() string {
	if i.DAdded.IsZero() {
		return ""
	}
	return i.DAdded.Format(dateISOLayout)
}
