package results

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"hueareyou/internal/models"
	"hueareyou/internal/palette"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		choices models.Choices
		want    Summary
	}{
		{
			name: "one word per color",
			choices: models.Choices{
				{Word: "海", Color: palette.Blue},
				{Word: "空", Color: palette.Red},
			},
			want: Summary{
				Groups: []Group{
					{Color: palette.Blue, Words: []string{"海"}, Count: 1},
					{Color: palette.Red, Words: []string{"空"}, Count: 1},
				},
				Total: 2,
			},
		},
		{
			name: "groups keep first-appearance order",
			choices: models.Choices{
				{Word: "森", Color: palette.Green},
				{Word: "海", Color: palette.Blue},
				{Word: "葉", Color: palette.Green},
			},
			want: Summary{
				Groups: []Group{
					{Color: palette.Green, Words: []string{"森", "葉"}, Count: 2},
					{Color: palette.Blue, Words: []string{"海"}, Count: 1},
				},
				Total: 3,
			},
		},
		{
			name:    "no choices",
			choices: nil,
			want:    Summary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.choices)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
			}

			sum := 0
			for _, g := range got.Groups {
				if g.Count == 0 || len(g.Words) != g.Count {
					t.Errorf("group %v has count %d and %d words", g.Color, g.Count, len(g.Words))
				}
				sum += g.Count
			}
			if sum != tt.choices.Len() {
				t.Errorf("sum of counts = %d, want %d", sum, tt.choices.Len())
			}

			if diff := cmp.Diff(got, Aggregate(tt.choices)); diff != "" {
				t.Errorf("Aggregate() is not repeatable (-first +second):\n%s", diff)
			}
		})
	}
}

func TestFromMapIsStable(t *testing.T) {
	choice := map[string]string{
		"空": "赤",
		"海": "青",
		"夜": "黒",
		"森": "青",
		"謎": "金",
	}

	want := Summary{
		Groups: []Group{
			{Color: palette.Black, Words: []string{"夜"}, Count: 1},
			{Color: palette.Red, Words: []string{"空"}, Count: 1},
			{Color: palette.Blue, Words: []string{"森", "海"}, Count: 2},
			{Color: palette.Color("金"), Words: []string{"謎"}, Count: 1},
		},
		Total: 5,
	}

	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(want, FromMap(choice)); diff != "" {
			t.Fatalf("FromMap() mismatch on iteration %d (-want +got):\n%s", i, diff)
		}
	}
}
