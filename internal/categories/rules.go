package categories

import (
	"slices"

	"github.com/dmitrijs2005/bridge/internal/models"
)

// Rule is one migration step. It never mutates its input; it returns the
// (possibly new) slice and whether anything changed.
type Rule func(in []models.Category) ([]models.Category, bool)

func indexByName(in []models.Category, name string) int {
	return slices.IndexFunc(in, func(c models.Category) bool { return c.Name == name })
}

// Rename renames the first record called from.
func Rename(from, to string) Rule {
	return func(in []models.Category) ([]models.Category, bool) {
		i := indexByName(in, from)
		if i < 0 {
			return in, false
		}
		out := slices.Clone(in)
		out[i].Name = to
		return out, true
	}
}

// ReplaceIcon swaps the icon of the first record named name whose icon is
// still fromIcon. Records whose icon was customised are left alone.
func ReplaceIcon(name, fromIcon, toIcon string) Rule {
	return func(in []models.Category) ([]models.Category, bool) {
		i := slices.IndexFunc(in, func(c models.Category) bool {
			return c.Name == name && c.IconName == fromIcon
		})
		if i < 0 {
			return in, false
		}
		out := slices.Clone(in)
		out[i].IconName = toIcon
		return out, true
	}
}

// Backfill appends the built-in default for every listed name that has no
// record yet, in the order given. Names without a default are skipped.
func Backfill(names ...string) Rule {
	return func(in []models.Category) ([]models.Category, bool) {
		out := in
		changed := false
		for _, name := range names {
			if indexByName(out, name) >= 0 {
				continue
			}
			def, ok := models.DefaultCategory(name)
			if !ok {
				continue
			}
			if !changed {
				out = slices.Clone(in)
				changed = true
			}
			out = append(out, def)
		}
		return out, changed
	}
}

// Compose applies rules left to right, each seeing the previous result.
func Compose(rules ...Rule) Rule {
	return func(in []models.Category) ([]models.Category, bool) {
		out := in
		changed := false
		for _, r := range rules {
			var c bool
			out, c = r(out)
			changed = changed || c
		}
		return out, changed
	}
}

// LegacyRules upgrades category sets saved by earlier releases.
func LegacyRules() []Rule {
	return []Rule{
		Rename("Housekeep", "Housekeeping"),
		Rename("Administer", "Admin"),
		Rename("Entertain", "Entertainment"),
		ReplaceIcon("Move", "car.fill", "archivebox.fill"),
		Backfill("Groceries", "Medications", "Personal", "Appointments", "Meetings"),
	}
}

// Migrate runs LegacyRules over in.
func Migrate(in []models.Category) ([]models.Category, bool) {
	return Compose(LegacyRules()...)(in)
}
