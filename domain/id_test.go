package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b ID
		want int
	}{
		{name: "equal", a: "105", b: "105", want: 0},
		{name: "numeric less", a: "99", b: "105", want: -1},
		{name: "numeric greater", a: "108", b: "105", want: 1},
		{name: "snowflake lengths", a: "113118944494034317", b: "1131189444940343", want: 1},
		{name: "leading zeros", a: "0099", b: "100", want: -1},
		{name: "same value different spelling", a: "0099", b: "99", want: -1},
		{name: "non decimal falls back to string order", a: "abc", b: "abd", want: -1},
		{name: "mixed falls back to string order", a: "9", b: "a1", want: -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Compare(tc.b))
			assert.Equal(t, -tc.want, tc.b.Compare(tc.a))
		})
	}
}

func TestIDNext(t *testing.T) {
	tests := []struct {
		in   ID
		want ID
		ok   bool
	}{
		{in: "103", want: "104", ok: true},
		{in: "109", want: "110", ok: true},
		{in: "999", want: "1000", ok: true},
		{in: "0", want: "1", ok: true},
		{in: "", want: "", ok: false},
		{in: "abc", want: "abc", ok: false},
	}

	for _, tc := range tests {
		got, ok := tc.in.Next()
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.in)
		assert.Equal(t, tc.want, got, "next of %q", tc.in)
		if ok {
			assert.Equal(t, 1, got.Compare(tc.in))
		}
	}
}

func TestItemMatchesResolvesReshare(t *testing.T) {
	original := Item{ID: "50"}
	reshare := Item{ID: "105", PointsTo: &original}

	assert.True(t, reshare.Matches(Item{ID: "105"}))
	assert.True(t, reshare.Matches(Item{ID: "50"}))
	assert.False(t, reshare.Matches(Item{ID: "104"}))
	assert.False(t, original.Matches(Item{ID: "105"}))
	assert.Equal(t, ID("50"), reshare.Displayed().ID)
	assert.Equal(t, ID("50"), original.Displayed().ID)
}
