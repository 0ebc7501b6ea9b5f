package parking

import (
	"math/rand"
	"strings"
	"time"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func init() {
	rand.Seed(time.Now().UnixNano())
}

// NewTicketCode returns a short human-readable code such as "PK-7GH2QX".
// Ambiguous characters (0/O, 1/I) are left out of the alphabet. The top-level
// rand functions lock internally, so concurrent handlers can call this.
func NewTicketCode() string {
	var b strings.Builder
	b.WriteString("PK-")
	for i := 0; i < 6; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// NormalizeVehicleNumber upper-cases and trims a plate so "wp abc-1234" and
// "WP ABC-1234" match the same records.
func NormalizeVehicleNumber(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
