package parking

import (
	"context"
	"regexp"
	"strings"

	"citypark/model"
)

// DefaultZoneRate applies when a zone cannot be found or its rate text holds
// no number.
const DefaultZoneRate = 100

var ratePattern = regexp.MustCompile(`\d+`)

// ZoneStore is the zones collection.
type ZoneStore interface {
	Insert(ctx context.Context, z *model.Zone) error
	FindByLocation(ctx context.Context, location string) (*model.Zone, error)
	FindByCode(ctx context.Context, code string) (*model.Zone, error)
	All(ctx context.Context) ([]*model.Zone, error)
}

// ZoneService resolves the hourly rate for a zone display string.
type ZoneService struct {
	Zones       ZoneStore
	DefaultRate int
}

func NewZoneService(zones ZoneStore, defaultRate int) *ZoneService {
	if defaultRate <= 0 {
		defaultRate = DefaultZoneRate
	}
	return &ZoneService{Zones: zones, DefaultRate: defaultRate}
}

// SplitZone breaks a "CMB01 - Galle Road" display string into its code and
// location parts. The location is empty when there is no separator.
func SplitZone(display string) (code, location string) {
	parts := strings.SplitN(display, " - ", 2)
	code = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		location = strings.TrimSpace(parts[1])
	}
	return code, location
}

// ParseRate extracts the numeric hourly rate from free text such as
// "Rs. 150 per hour". The second return is false when the text holds no digits.
func ParseRate(text string) (int, bool) {
	m := ratePattern.FindString(text)
	if m == "" {
		return 0, false
	}
	return atoi(m), true
}

// RateFor looks the zone up by location first, then by zone code, and falls
// back to the default rate when the zone is missing or its rate text has no
// number in it.
func (s *ZoneService) RateFor(ctx context.Context, display string) int {
	code, location := SplitZone(display)
	var zone *model.Zone
	if location != "" {
		zone, _ = s.Zones.FindByLocation(ctx, location)
	}
	if zone == nil && code != "" {
		zone, _ = s.Zones.FindByCode(ctx, code)
	}
	if zone == nil {
		return s.DefaultRate
	}
	rate, ok := ParseRate(zone.ParkingRate)
	if !ok {
		return s.DefaultRate
	}
	return rate
}
