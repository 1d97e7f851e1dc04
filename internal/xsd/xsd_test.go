package xsd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonBoolean(t *testing.T) {
	cases := map[string]string{"true": "true", "1": "true", "false": "false", "0": "false"}
	for in, want := range cases {
		got, err := CanonBoolean(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := CanonBoolean("yes")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestCanonDecimalNormalisesForm(t *testing.T) {
	got, err := CanonDecimal("010.500")
	require.NoError(t, err)
	assert.Equal(t, "10.5", got)

	got, err = CanonDecimal(".5")
	require.NoError(t, err)
	assert.Equal(t, "0.5", got)

	got, err = CanonDecimal("5")
	require.NoError(t, err)
	assert.Equal(t, "5.0", got)

	_, err = CanonDecimal("not-a-number")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestCanonIntegerStripsLeadingZeros(t *testing.T) {
	got, err := CanonInteger("007")
	require.NoError(t, err)
	assert.Equal(t, "7", got)

	got, err = CanonInteger("-042")
	require.NoError(t, err)
	assert.Equal(t, "-42", got)

	_, err = CanonInteger("4.5")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestCanonDoubleUsesCapitalEWithSignedExponent(t *testing.T) {
	got, err := CanonDouble("1.663E-4")
	require.NoError(t, err)
	assert.Equal(t, "1.663E-04", got)

	got, err = CanonDouble("100")
	require.NoError(t, err)
	assert.Equal(t, "1E+02", got)

	_, err = CanonDouble("nope")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestFormatIntegerRendersDecimal(t *testing.T) {
	assert.Equal(t, "42", FormatInteger(42))
	assert.Equal(t, "-7", FormatInteger(-7))
}

func TestFormatHexRendersUppercase(t *testing.T) {
	assert.Equal(t, "0AFF", FormatHex([]byte{0x0a, 0xff}))
}
