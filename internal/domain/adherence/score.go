package adherence

import "math"

// DefaultExpectedEvents is the event count that represents full adherence.
// Deployments tune this per program; override it via configuration rather
// than editing the constant.
const DefaultExpectedEvents = 4

// Percentage maps an event count to a bounded adherence score:
// min(100, round(eventCount / expectedEvents * 100)). It is pure and always
// recomputed from the current event count, never cached.
func Percentage(eventCount, expectedEvents int) int {
	if expectedEvents <= 0 || eventCount <= 0 {
		return 0
	}
	pct := int(math.Round(float64(eventCount) / float64(expectedEvents) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
