package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"30 minutes", 30},
		{"45 minutes", 45},
		{"1 minute", 1},
		{"1 hour", 60},
		{"2 hours", 120},
		{"1 hour 30 minutes", 90},
		{"2 hours 30 minutes", 150},
		{"2 hours 5 minutes", 125},
		{"1hour 15minutes", 75},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseDuration(c.text), "text %q", c.text)
	}
}

func TestParseDurationFallback(t *testing.T) {
	// Unparseable text falls back to the default instead of erroring.
	assert.Equal(t, DefaultDurationMinutes, ParseDuration(""))
	assert.Equal(t, DefaultDurationMinutes, ParseDuration("all day"))
	assert.Equal(t, DefaultDurationMinutes, ParseDuration("ninety minutes please"))
}
