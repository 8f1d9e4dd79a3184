package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Amount(t *testing.T) {
	f := Default()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "₦0"},
		{750, "₦750"},
		{1500, "₦1,500"},
		{3750, "₦3,750"},
		{1234567, "₦1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Amount(tt.in))
	}
}

func TestNewFormatter_Locale(t *testing.T) {
	f, err := NewFormatter("€", "de")
	require.NoError(t, err)
	assert.Equal(t, "1.234.567", f.Number(1234567))
	assert.Equal(t, "€1.500", f.Amount(1500))
	assert.Equal(t, "€", f.Symbol())
}

func TestNewFormatter_EmptyLocaleIsEnglish(t *testing.T) {
	f, err := NewFormatter("$", "")
	require.NoError(t, err)
	assert.Equal(t, "$12,000", f.Amount(12000))
}

func TestNewFormatter_BadLocale(t *testing.T) {
	_, err := NewFormatter("$", "not a locale!")
	assert.Error(t, err)
}

func TestFormatter_ZeroValue(t *testing.T) {
	var f Formatter
	assert.Equal(t, "1,000", f.Amount(1000))
}
