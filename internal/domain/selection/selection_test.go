package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/radio/internal/domain/track"
)

func TestSelection_MoodsOrAll(t *testing.T) {
	empty := Selection{}
	assert.Equal(t, track.AllMoods(), empty.MoodsOrAll())

	slow := Selection{Moods: []track.Mood{track.MoodSlow}}
	got := slow.MoodsOrAll()
	assert.Equal(t, []track.Mood{track.MoodSlow}, got)

	// The returned slice must not alias the selection.
	got[0] = track.MoodFast
	assert.Equal(t, track.MoodSlow, slow.Moods[0])
}

func TestSelection_Describe(t *testing.T) {
	names := map[string]string{"ITA": "Italy"}
	nameOf := func(code string) string {
		if n, ok := names[code]; ok {
			return n
		}
		return code
	}

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{
			name: "no filters",
			sel:  Selection{},
			want: nil,
		},
		{
			name: "country and decades",
			sel:  Selection{CountryCode: "ITA", Decades: []int{1970, 1980}},
			want: []string{"Italy", "1970s, 1980s"},
		},
		{
			name: "all moods are not shown",
			sel:  Selection{Moods: []track.Mood{track.MoodWeird, track.MoodSlow, track.MoodFast}},
			want: nil,
		},
		{
			name: "subset of moods",
			sel:  Selection{CountryCode: "JPN", Moods: []track.Mood{track.MoodSlow, track.MoodWeird}},
			want: []string{"JPN", "slow, weird"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.Describe(nameOf))
		})
	}
}

func TestSelection_DescribeWithoutNames(t *testing.T) {
	sel := Selection{CountryCode: "BRA"}
	assert.Equal(t, []string{"BRA"}, sel.Describe(nil))
}
