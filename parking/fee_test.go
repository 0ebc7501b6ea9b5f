package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFee(t *testing.T) {
	cases := []struct {
		duration string
		rate     int
		want     int
	}{
		{"1 hour", 150, 150},
		{"1 hour 30 minutes", 150, 225},
		{"30 minutes", 150, 75},
		{"2 hours 30 minutes", 100, 250},
		{"50 minutes", 100, 83},
		{"10 minutes", 100, 17},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CalculateFee(c.duration, c.rate), "%q at %d/hr", c.duration, c.rate)
	}
}

func TestCalculateFeeRoundsHalfUp(t *testing.T) {
	// 30 minutes at 145/hr is 72.5, which must round up to 73 for fee
	// parity with previously issued tickets.
	assert.Equal(t, 73, CalculateFee("30 minutes", 145))
}

func TestCalculateFeeUnparseableDuration(t *testing.T) {
	// Falls back to the default 30 minutes.
	assert.Equal(t, 75, CalculateFee("whenever", 150))
}
