package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHours(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"2.5", 2.5, true},
		{"2,5", 2.5, true},
		{" 0.25 ", 0.25, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseHours(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.out, got, tc.in)
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidHours, tc.in)
	}
}

func TestFormatHoursTruncates(t *testing.T) {
	assert.Equal(t, "2.50h", FormatHours(2.5))
	assert.Equal(t, "1.99h", FormatHours(1.999))
	assert.Equal(t, "2.30h", FormatHours(2.3))
	assert.Equal(t, "0.00h", FormatHours(0))
	assert.Equal(t, "0.30h", FormatHours(0.1+0.2))
}
