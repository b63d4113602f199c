package tui

import "hueareyou/internal/palette"

// positionKeys choose a color by its place in the palette
var positionKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-"}

// letterKeys choose a color by the initial of its English name
var letterKeys = map[string]palette.Color{
	"k": palette.Black,
	"a": palette.Gray,
	"w": palette.White,
	"p": palette.Pink,
	"r": palette.Red,
	"o": palette.Orange,
	"y": palette.Yellow,
	"g": palette.Green,
	"b": palette.Blue,
	"v": palette.Purple,
	"n": palette.Brown,
}

// colorForKey maps a key press to a palette color
func colorForKey(key string) (palette.Color, bool) {
	colors := palette.Colors()
	for i, k := range positionKeys {
		if k == key && i < len(colors) {
			return colors[i], true
		}
	}
	c, ok := letterKeys[key]
	return c, ok
}

// keyHint returns the keys that choose c, for the palette legend
func keyHint(c palette.Color) string {
	hint := ""
	if i := c.Order(); i >= 0 && i < len(positionKeys) {
		hint = positionKeys[i]
	}
	for k, lc := range letterKeys {
		if lc == c {
			hint += "/" + k
			break
		}
	}
	return hint
}
