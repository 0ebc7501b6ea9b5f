package parking

import "regexp"

// DefaultDurationMinutes is used when a duration string has no recognisable
// hour or minute part. The fallback is deliberate: duration text comes from a
// fixed picker in the apps, so an unparseable value means display-only garbage
// rather than a user error worth failing on.
const DefaultDurationMinutes = 30

var (
	hourPattern   = regexp.MustCompile(`(\d+)\s*hour`)
	minutePattern = regexp.MustCompile(`(\d+)\s*minute`)
)

// ParseDuration converts free text such as "1 hour 30 minutes" into a total
// minute count. The hour and minute parts are matched independently, so any
// subset of the two may be present.
func ParseDuration(text string) int {
	minutes := 0
	matched := false
	if m := hourPattern.FindStringSubmatch(text); m != nil {
		minutes += atoi(m[1]) * 60
		matched = true
	}
	if m := minutePattern.FindStringSubmatch(text); m != nil {
		minutes += atoi(m[1])
		matched = true
	}
	if !matched {
		return DefaultDurationMinutes
	}
	return minutes
}

func atoi(digits string) int {
	n := 0
	for _, c := range digits {
		n = n*10 + int(c-'0')
	}
	return n
}
