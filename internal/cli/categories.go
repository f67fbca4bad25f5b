package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/bridge/internal/common"
	"github.com/dmitrijs2005/bridge/internal/models"
)

const defaultIcon = "tag.fill"

func (a *App) Categories(_ context.Context) error {
	printCategories(a.out, a.categories.List(), a.categories.Resolve(a.selected).ID)
	return nil
}

// readColor asks for a hex colour; Enter keeps def.
func (a *App) readColor(prompt, def string) (string, error) {
	s, err := GetSimpleText(a.reader, fmt.Sprintf("%s (Enter for %s)", prompt, def), a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	c, ok := models.ParseHex(s)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a RRGGBB or RRGGBBAA colour", common.ErrorValidation, s)
	}
	return c.Hex(), nil
}

func (a *App) AddCategory(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "- Category name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}

	icon, err := GetSimpleText(a.reader, fmt.Sprintf("- Icon (Enter for %s)", defaultIcon), a.out)
	if err != nil {
		return err
	}
	if icon == "" {
		icon = defaultIcon
	}

	colorHex, err := a.readColor("- Colour", models.FallbackColor.Hex())
	if err != nil {
		return err
	}

	c := a.categories.Add(ctx, name, icon, colorHex)
	fmt.Fprintf(a.out, "Added %s %s.\n", swatch(c.ColorHex), c.Name)
	return nil
}

// pickCategory asks for a 1-based category number.
func (a *App) pickCategory(prompt string) (models.Category, error) {
	list := a.categories.List()
	printCategories(a.out, list, a.categories.Resolve(a.selected).ID)
	s, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return models.Category{}, err
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(list) {
		return models.Category{}, fmt.Errorf("%w: no category %q", common.ErrorValidation, s)
	}
	return list[n-1], nil
}

func (a *App) EditCategory(ctx context.Context) error {
	c, err := a.pickCategory("- Category number to edit")
	if err != nil {
		return err
	}

	name, err := GetSimpleText(a.reader, fmt.Sprintf("- Name (Enter for %s)", c.Name), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = c.Name
	}

	icon, err := GetSimpleText(a.reader, fmt.Sprintf("- Icon (Enter for %s)", c.IconName), a.out)
	if err != nil {
		return err
	}
	if icon == "" {
		icon = c.IconName
	}

	colorHex, err := a.readColor("- Colour", c.ColorHex)
	if err != nil {
		return err
	}

	if err := a.categories.Update(ctx, c.ID, name, icon, colorHex); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s %s.\n", swatch(colorHex), name)
	return nil
}

// parsePositions turns "1, 3 5" into zero-based positions.
func parsePositions(s string, max int) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no categories selected", common.ErrorValidation)
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > max {
			return nil, fmt.Errorf("%w: no category %q", common.ErrorValidation, f)
		}
		out = append(out, n-1)
	}
	return out, nil
}

func (a *App) DeleteCategory(ctx context.Context) error {
	list := a.categories.List()
	printCategories(a.out, list, a.categories.Resolve(a.selected).ID)

	s, err := GetSimpleText(a.reader, "- Category numbers to delete (e.g. 2 5 7)", a.out)
	if err != nil {
		return err
	}
	positions, err := parsePositions(s, len(list))
	if err != nil {
		return err
	}

	removed := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		removed[p] = struct{}{}
	}

	a.categories.Delete(ctx, positions...)
	after := a.categories.List()
	if len(removed) == len(list) {
		fmt.Fprintf(a.out, "All categories deleted; restored %d defaults.\n", len(after))
	} else {
		fmt.Fprintf(a.out, "Deleted. %d categories left.\n", len(after))
	}
	return nil
}
