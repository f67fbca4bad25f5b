package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories_OrderAndIDs(t *testing.T) {
	defs := DefaultCategories()
	require.Len(t, defs, 13)

	wantNames := []string{
		"Care", "Order", "Move", "Housekeeping", "Admin", "Develop", "Entertainment",
		"Radar", "Groceries", "Medications", "Personal", "Appointments", "Meetings",
	}
	ids := map[string]struct{}{}
	for i, c := range defs {
		assert.Equal(t, wantNames[i], c.Name)
		assert.NotEmpty(t, c.ID)
		ids[c.ID] = struct{}{}
	}
	for _, c := range DefaultCategories() {
		ids[c.ID] = struct{}{}
	}
	assert.Len(t, ids, 26, "every call mints distinct ids")

	// each call returns an independent copy
	defs[0].Name = "changed"
	assert.Equal(t, "Care", DefaultCategories()[0].Name)
}

func TestDefaultCategory_Lookup(t *testing.T) {
	c, ok := DefaultCategory("Groceries")
	require.True(t, ok)
	assert.Equal(t, "cart.fill", c.IconName)
	assert.Equal(t, "#4CAF50", c.ColorHex)

	again, _ := DefaultCategory("Groceries")
	assert.NotEqual(t, c.ID, again.ID)

	_, ok = DefaultCategory("Nope")
	assert.False(t, ok)
}

func TestNewCategory_FreshIDs(t *testing.T) {
	a := NewCategory("X", "star", "#000000")
	b := NewCategory("X", "star", "#000000")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCategory_JSONRoundTrip(t *testing.T) {
	in := []Category{
		{ID: "1", Name: "Care", IconName: "heart.fill", ColorHex: "#FF2D55"},
		{ID: "2", Name: "", IconName: "", ColorHex: "not-a-color"},
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":"1","name":"Care","iconName":"heart.fill","colorHex":"#FF2D55"},
		  {"id":"2","name":"","iconName":"","colorHex":"not-a-color"}]`, string(b))

	var out []Category
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestCategory_UnmarshalMissingField(t *testing.T) {
	var out []Category
	err := json.Unmarshal([]byte(`[{"id":"1","name":"Care","iconName":"heart.fill"}]`), &out)
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "colorHex")
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
		ok   bool
	}{
		{"#FF2D55", RGBA{0xFF, 0x2D, 0x55, 0xFF}, true},
		{"ff2d55", RGBA{0xFF, 0x2D, 0x55, 0xFF}, true},
		{" #3F51B580 ", RGBA{0x3F, 0x51, 0xB5, 0x80}, true},
		{"#FFF", RGBA{}, false},
		{"#GG0000", RGBA{}, false},
		{"", RGBA{}, false},
		{"-FFFFF", RGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHex(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorOrFallback(t *testing.T) {
	assert.Equal(t, FallbackColor, ColorOrFallback("bogus"))
	assert.Equal(t, FallbackColor, Category{ColorHex: "#12"}.Color())
	assert.Equal(t, "#8E8E93", FallbackColor.Hex())
	assert.Equal(t, "#3F51B580", RGBA{0x3F, 0x51, 0xB5, 0x80}.Hex())
}
