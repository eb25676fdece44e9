package filter

import (
	"strconv"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDecade(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "1970", want: 1970},
		{input: "1973", want: 1970},
		{input: "70s", want: 1970},
		{input: "70", want: 1970},
		{input: "2000", want: 2000},
		{input: "99", want: 1990},
		{input: "7", want: 2000},
		{input: "00", want: 2000},
		{input: "00s", want: 2000},
		{input: " 80S ", want: 1980},
		{input: "1900", want: 1900},
		{input: "2020", want: 2020},
		{input: "2021", want: 2020},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ResolveDecade(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDecade_TwoDigitShorthand(t *testing.T) {
	for n := 0; n <= 20; n++ {
		got, err := ResolveDecade(strconv.Itoa(n))
		require.NoError(t, err)
		assert.Equal(t, (2000+n)/10*10, got, "n=%d", n)
	}
	for n := 21; n <= 99; n++ {
		got, err := ResolveDecade(strconv.Itoa(n))
		require.NoError(t, err)
		assert.Equal(t, (1900+n)/10*10, got, "n=%d", n)
	}
}

// The 20/21 boundary is a heuristic: "20" reads as the 2020s even though the
// user may have meant the 1920s, while "21" already reads as the 1920s.
func TestResolveDecade_ShorthandBoundary(t *testing.T) {
	got, err := ResolveDecade("20")
	require.NoError(t, err)
	assert.Equal(t, 2020, got)

	got, err = ResolveDecade("21")
	require.NoError(t, err)
	assert.Equal(t, 1920, got)
}

func TestResolveDecade_Invalid(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{input: "abc", wantErr: ErrInvalidDecade},
		{input: "", wantErr: ErrInvalidDecade},
		{input: "s", wantErr: ErrInvalidDecade},
		{input: "19.70", wantErr: ErrInvalidDecade},
		{input: "2031", wantErr: ErrDecadeOutOfRange},
		{input: "2030", wantErr: ErrDecadeOutOfRange},
		{input: "1899", wantErr: ErrDecadeOutOfRange},
		{input: "150", wantErr: ErrDecadeOutOfRange},
		{input: "-5", wantErr: ErrDecadeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ResolveDecade(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestResolveDecade_InvalidHint(t *testing.T) {
	_, err := ResolveDecade("abc")
	assert.Contains(t, err.Error(), "invalid decade: 'abc'")
	assert.Contains(t, errors.FlattenHints(err), "70s")

	_, err = ResolveDecade("2050")
	assert.Contains(t, err.Error(), "decade 2050 out of range (1900-2020)")
}

func TestIsDecadeToken(t *testing.T) {
	assert.True(t, IsDecadeToken("1970"))
	assert.True(t, IsDecadeToken("70s"))
	assert.True(t, IsDecadeToken("2050"))
	assert.False(t, IsDecadeToken("italy"))
	assert.False(t, IsDecadeToken("usa"))
	assert.False(t, IsDecadeToken(""))
}
