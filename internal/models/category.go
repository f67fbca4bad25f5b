// Package models defines the persisted records of the Bridge app: category
// tags, history entries, reminders and their JSON wire forms.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Category is a user-visible tag with an icon and a colour.
//
// The JSON form is {id, name, iconName, colorHex}; every key is required when
// decoding so that a truncated or foreign payload is rejected as a whole.
type Category struct {
	// ID is assigned at creation and never changes.
	ID string `json:"id"`
	// Name is the display label. Migration rules match on it.
	Name string `json:"name"`
	// IconName is a symbolic icon reference, opaque to the data layer.
	IconName string `json:"iconName"`
	// ColorHex is RRGGBB or RRGGBBAA, optionally prefixed with '#'.
	ColorHex string `json:"colorHex"`
}

// NewCategory builds a category with a fresh random id.
func NewCategory(name, iconName, colorHex string) Category {
	return Category{ID: uuid.NewString(), Name: name, IconName: iconName, ColorHex: colorHex}
}

// Color resolves ColorHex, falling back to FallbackColor when it is invalid.
func (c Category) Color() RGBA {
	return ColorOrFallback(c.ColorHex)
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var aux struct {
		ID       *string `json:"id"`
		Name     *string `json:"name"`
		IconName *string `json:"iconName"`
		ColorHex *string `json:"colorHex"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	switch {
	case aux.ID == nil:
		return missingField("id")
	case aux.Name == nil:
		return missingField("name")
	case aux.IconName == nil:
		return missingField("iconName")
	case aux.ColorHex == nil:
		return missingField("colorHex")
	}
	*c = Category{ID: *aux.ID, Name: *aux.Name, IconName: *aux.IconName, ColorHex: *aux.ColorHex}
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("%w: %q", ErrMissingField, name)
}

type seed struct {
	name, icon, color string
}

var defaultSeeds = []seed{
	{"Care", "heart.fill", "#FF2D55"},
	{"Order", "tray.full.fill", "#007AFF"},
	{"Move", "archivebox.fill", "#34C759"},
	{"Housekeeping", "house.fill", "#FF9500"},
	{"Admin", "doc.text.fill", "#AF52DE"},
	{"Develop", "book.fill", "#30B0C7"},
	{"Entertainment", "tv.fill", "#FFCC00"},
	{"Radar", "antenna.radiowaves.left.and.right", "#8E8E93"},
	{"Groceries", "cart.fill", "#4CAF50"},
	{"Medications", "pills.fill", "#F44336"},
	{"Personal", "person.fill", "#2196F3"},
	{"Appointments", "calendar", "#9C27B0"},
	{"Meetings", "person.3.fill", "#3F51B5"},
}

// DefaultCategories returns the 13 built-in categories in display order.
// Every call mints new ids, so a restored or backfilled default never takes
// over the id of a deleted record.
func DefaultCategories() []Category {
	out := make([]Category, 0, len(defaultSeeds))
	for _, s := range defaultSeeds {
		out = append(out, NewCategory(s.name, s.icon, s.color))
	}
	return out
}

// DefaultCategory builds the built-in category with the given name under a
// new id.
func DefaultCategory(name string) (Category, bool) {
	for _, s := range defaultSeeds {
		if s.name == name {
			return NewCategory(s.name, s.icon, s.color), true
		}
	}
	return Category{}, false
}
