package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHours(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"12.5", "12.50"},
		{"2.00", "2.00"},
		{"1.234", "1.23"},
		{"1.236", "1.24"},

		// Half-to-even on the discarded half: round to the even neighbour,
		// not always up.
		{"2.005", "2.00"},
		{"2.015", "2.02"},
		{"2.025", "2.02"},
		{"2.675", "2.68"},
		{"0.125", "0.12"},

		{"-1.005", "-1.00"},
		{"-1.015", "-1.02"},
	}
	for _, tc := range cases {
		h, err := ParseHours(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, h.String(), "ParseHours(%q)", tc.in)
	}
}

func TestParseHoursRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "12h"} {
		_, err := ParseHours(in)
		assert.Error(t, err, "ParseHours(%q)", in)
	}
}

func TestParseHoursIdempotent(t *testing.T) {
	// Re-parsing a rendered value yields the same stored value.
	for _, in := range []string{"2.005", "1.999", "17.3349"} {
		h, err := ParseHours(in)
		require.NoError(t, err)
		again, err := ParseHours(h.String())
		require.NoError(t, err)
		assert.Equal(t, h, again)
	}
}

func TestHoursJSON(t *testing.T) {
	h, err := ParseHours("2.5")
	require.NoError(t, err)

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, "2.50", string(data))

	var back Hours
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, h, back)

	require.NoError(t, json.Unmarshal([]byte(`"1.25"`), &back))
	assert.Equal(t, "1.25", back.String())
}
