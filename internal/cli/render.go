package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/bridge/internal/models"
	"github.com/fatih/color"
)

// swatch renders a dot in the category colour, falling back to gray.
func swatch(colorHex string) string {
	c := models.ColorOrFallback(colorHex)
	return color.RGB(int(c.R), int(c.G), int(c.B)).Sprint("●")
}

func printCategories(w io.Writer, items []models.Category, selectedID string) {
	for i, c := range items {
		marker := " "
		if c.ID == selectedID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%2d. %s %s  (%s, %s)\n", marker, i+1, swatch(c.ColorHex), c.Name, c.IconName, c.ColorHex)
	}
}
