package parking

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTicketCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := NewTicketCode()
		assert.True(t, strings.HasPrefix(code, "PK-"))
		assert.Len(t, code, 9)
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		seen[code] = true
	}
	// Collisions across 100 draws would point at a broken generator.
	assert.Greater(t, len(seen), 90)
}

func TestNewTicketCodeConcurrent(t *testing.T) {
	// Codes are generated from concurrent HTTP handlers; run under -race.
	var wg sync.WaitGroup
	var mu sync.Mutex
	var codes []string
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				code := NewTicketCode()
				mu.Lock()
				codes = append(codes, code)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	for _, code := range codes {
		assert.True(t, strings.HasPrefix(code, "PK-"))
		assert.Len(t, code, 9)
	}
}

func TestNormalizeVehicleNumber(t *testing.T) {
	assert.Equal(t, "WP ABC-1234", NormalizeVehicleNumber("  wp abc-1234 "))
	assert.Equal(t, "", NormalizeVehicleNumber("   "))
}
