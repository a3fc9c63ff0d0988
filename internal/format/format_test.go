package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	assert.Equal(t, "31", Count(31))
	assert.Equal(t, "4,247", Count(4247))
	assert.Equal(t, "1,000,000", Count(1000000))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$142,850", Dollars(142850))
	assert.Equal(t, "$5,849.35", Currency(5849.35))
	assert.Equal(t, "$0.00", Currency(0))
	assert.Equal(t, "-$12.50", Currency(-12.5))
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2230, "2,230"},
		{7, "7"},
		{1234.5, "1,234.5"},
		{0.125, "0.125"},
		{-1500, "-1,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.in))
	}
}
