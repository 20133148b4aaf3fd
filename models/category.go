package models

import "strings"

// Category is one of the four fixed event domains.
type Category string

const (
	CategoryFestivent Category = "Festivent"
	CategorySports    Category = "Sports"
	CategoryDining    Category = "Dining"
	CategoryCareer    Category = "Career"
)

// DefaultCategory is substituted whenever a category cannot be recognised.
const DefaultCategory = CategoryFestivent

// Categories lists every category in display order.
var Categories = []Category{CategoryFestivent, CategorySports, CategoryDining, CategoryCareer}

// CategoryTheme carries the presentation keys of a category.
type CategoryTheme struct {
	Gradient string `json:"gradient"` // css gradient classes
	Icon     string `json:"icon"`     // font-awesome icon name
}

var categoryThemes = map[Category]CategoryTheme{
	CategoryFestivent: {Gradient: "from-purple-600 to-pink-600", Icon: "fa-music"},
	CategorySports:    {Gradient: "from-red-600 to-orange-500", Icon: "fa-trophy"},
	CategoryDining:    {Gradient: "from-emerald-600 to-teal-500", Icon: "fa-utensils"},
	CategoryCareer:    {Gradient: "from-blue-600 to-indigo-600", Icon: "fa-briefcase"},
}

// fallbackTheme matches the gradient the discovery header used for unknown categories.
var fallbackTheme = CategoryTheme{Gradient: "from-blue-600 to-indigo-600", Icon: "fa-briefcase"}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	_, ok := categoryThemes[c]
	return ok
}

// Theme returns the color theme and icon of c.
func (c Category) Theme() CategoryTheme {
	if theme, ok := categoryThemes[c]; ok {
		return theme
	}
	return fallbackTheme
}

// LookupCategory matches s case-insensitively against the enumeration.
func LookupCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// ParseCategory coerces s into a category, falling back to DefaultCategory.
func ParseCategory(s string) Category {
	if c, ok := LookupCategory(s); ok {
		return c
	}
	return DefaultCategory
}
