package parking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"citypark/model"
)

func TestSplitZone(t *testing.T) {
	code, location := SplitZone("CMB01 - Galle Road")
	assert.Equal(t, "CMB01", code)
	assert.Equal(t, "Galle Road", location)

	code, location = SplitZone("CMB01")
	assert.Equal(t, "CMB01", code)
	assert.Equal(t, "", location)
}

func TestParseRate(t *testing.T) {
	rate, ok := ParseRate("Rs. 150 per hour")
	assert.True(t, ok)
	assert.Equal(t, 150, rate)

	rate, ok = ParseRate("200")
	assert.True(t, ok)
	assert.Equal(t, 200, rate)

	_, ok = ParseRate("free parking")
	assert.False(t, ok)
}

func TestRateForResolutionOrder(t *testing.T) {
	zones := &memZones{zones: []*model.Zone{
		{ZoneCode: "CMB01", Location: "Galle Road", ParkingRate: "Rs. 150 per hour"},
		{ZoneCode: "CMB02", Location: "Marine Drive", ParkingRate: "Rs. 200 per hour"},
	}}
	svc := NewZoneService(zones, 0)
	ctx := context.Background()

	// By location part of the display string.
	assert.Equal(t, 150, svc.RateFor(ctx, "CMB01 - Galle Road"))
	// Location unknown, falls back to the code part.
	assert.Equal(t, 200, svc.RateFor(ctx, "CMB02 - Somewhere Else"))
	// Neither matches.
	assert.Equal(t, DefaultZoneRate, svc.RateFor(ctx, "CMB99 - Nowhere"))
}

func TestRateForRateTextWithoutDigits(t *testing.T) {
	// A zone whose rate text holds no number resolves to the default rate
	// rather than failing.
	zones := &memZones{zones: []*model.Zone{
		{ZoneCode: "CMB03", Location: "Lake Road", ParkingRate: "rate pending"},
	}}
	svc := NewZoneService(zones, 120)
	assert.Equal(t, 120, svc.RateFor(context.Background(), "CMB03 - Lake Road"))
}
