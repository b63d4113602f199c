// Package results groups a completed run's choices by color.
package results

import (
	"sort"

	"hueareyou/internal/models"
	"hueareyou/internal/palette"
)

// Group holds the words assigned to one color
type Group struct {
	Color palette.Color
	Words []string
	Count int
}

// Summary is the grouped view of a run
type Summary struct {
	Groups []Group
	Total  int
}

// Aggregate groups choices by color, ordering groups by the first word that used each color
func Aggregate(choices models.Choices) Summary {
	var groups []Group
	pos := make(map[palette.Color]int)

	for _, c := range choices {
		i, ok := pos[c.Color]
		if !ok {
			i = len(groups)
			pos[c.Color] = i
			groups = append(groups, Group{Color: c.Color})
		}
		groups[i].Words = append(groups[i].Words, c.Word)
		groups[i].Count++
	}

	return Summary{Groups: groups, Total: len(choices)}
}

// FromMap groups an unordered word→color mapping, such as a record fetched from the server.
// Groups follow palette order and words are sorted; labels outside the palette come last.
func FromMap(choice map[string]string) Summary {
	entries := make(models.Choices, 0, len(choice))
	for w, c := range choice {
		entries = append(entries, models.ChoiceEntry{Word: w, Color: palette.Color(c)})
	}

	sort.Slice(entries, func(i, j int) bool {
		oi, oj := rank(entries[i].Color), rank(entries[j].Color)
		if oi != oj {
			return oi < oj
		}
		if entries[i].Color != entries[j].Color {
			return entries[i].Color < entries[j].Color
		}
		return entries[i].Word < entries[j].Word
	})

	return Aggregate(entries)
}

func rank(c palette.Color) int {
	if o := c.Order(); o >= 0 {
		return o
	}
	return len(palette.Colors())
}
