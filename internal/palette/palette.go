// Package palette defines the closed set of color labels a word can be assigned to.
package palette

import (
	"errors"
	"strings"
)

// ErrUnknownColor is returned when a label is not part of the palette
var ErrUnknownColor = errors.New("unknown color")

// Color is a color label from the palette
type Color string

const (
	Black  Color = "黒"
	Gray   Color = "灰色"
	White  Color = "白"
	Pink   Color = "ピンク"
	Red    Color = "赤"
	Orange Color = "オレンジ"
	Yellow Color = "黄色"
	Green  Color = "緑"
	Blue   Color = "青"
	Purple Color = "紫"
	Brown  Color = "茶"
)

// Entry pairs a label with its display color
type Entry struct {
	Color Color
	Hex   string
}

var entries = []Entry{
	{Black, "#000000"},
	{Gray, "#808080"},
	{White, "#FFFFFF"},
	{Pink, "#FFC0CB"},
	{Red, "#FF0000"},
	{Orange, "#FFA500"},
	{Yellow, "#FFFF00"},
	{Green, "#008000"},
	{Blue, "#0000FF"},
	{Purple, "#800080"},
	{Brown, "#8B4513"},
}

var index = func() map[Color]int {
	m := make(map[Color]int, len(entries))
	for i, e := range entries {
		m[e.Color] = i
	}
	return m
}()

// Colors returns the palette labels in display order
func Colors() []Color {
	colors := make([]Color, len(entries))
	for i, e := range entries {
		colors[i] = e.Color
	}
	return colors
}

// Entries returns the palette entries in display order
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Valid reports whether c belongs to the palette
func (c Color) Valid() bool {
	_, ok := index[c]
	return ok
}

// Hex returns the display color of c, or "" when c is not in the palette
func (c Color) Hex() string {
	if i, ok := index[c]; ok {
		return entries[i].Hex
	}
	return ""
}

// Order returns the display position of c, or -1 when c is not in the palette
func (c Color) Order() int {
	if i, ok := index[c]; ok {
		return i
	}
	return -1
}

func (c Color) String() string {
	return string(c)
}

// Parse trims label and checks it against the palette
func Parse(label string) (Color, error) {
	c := Color(strings.TrimSpace(label))
	if !c.Valid() {
		return "", ErrUnknownColor
	}
	return c, nil
}

// Selection is the color chosen for a word, or nothing when the word has not been colored.
// The zero value is an empty selection.
type Selection struct {
	color Color
	set   bool
}

// None returns an empty selection
func None() Selection {
	return Selection{}
}

// Some returns a selection holding c
func Some(c Color) Selection {
	return Selection{color: c, set: true}
}

// Get returns the selected color and whether one is present
func (s Selection) Get() (Color, bool) {
	return s.color, s.set
}

// IsSet reports whether a color was chosen
func (s Selection) IsSet() bool {
	return s.set
}

func (s Selection) String() string {
	if !s.set {
		return "-"
	}
	return string(s.color)
}
