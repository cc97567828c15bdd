package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	tests := []struct {
		code  string
		scale int64
	}{
		{"USD", 100},
		{"EUR", 100},
		{"JPY", 1},
		{"GBP", 100},
	}
	for _, tt := range tests {
		scale, err := Scale(tt.code)
		require.NoError(t, err, tt.code)
		assert.Equal(t, tt.scale, scale, tt.code)
	}

	_, err := Scale("XXX")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestMinorUnitConversion(t *testing.T) {
	cents, err := ToMinorUnits(12.34, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cents)

	yen, err := ToMinorUnits(500, "JPY")
	require.NoError(t, err)
	assert.Equal(t, int64(500), yen)

	dollars, err := FromMinorUnits(1234, "USD")
	require.NoError(t, err)
	assert.InDelta(t, 12.34, dollars, 1e-9)

	// float noise rounds away cleanly
	cents, err = ToMinorUnits(0.1+0.2, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(30), cents)
}

func TestIsSupported(t *testing.T) {
	for _, code := range Codes {
		assert.True(t, IsSupported(code), code)
	}
	assert.False(t, IsSupported("BTC"))
	assert.False(t, IsSupported("usd"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1,234.56", Format(123456, "USD"))
}
