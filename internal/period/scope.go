package period

import (
	"strings"
	"time"
)

// FilterAll disables the bill/payment filter in ResolveScope.
const FilterAll = "all"

// ResolveScope turns user input into a reporting period and a bill/payment filter.
//
//   - month "" means the month containing now.
//   - filter "" scopes bills and payments to the same month.
//   - filter "all" keeps every bill and payment (nil filter).
//   - filter "YYYY-MM" scopes them to that month.
func ResolveScope(month, filter string, now time.Time) (Period, *Period, error) {
	p := Current(now)
	if strings.TrimSpace(month) != "" {
		parsed, err := Parse(month)
		if err != nil {
			return Period{}, nil, err
		}
		p = parsed
	}

	switch f := strings.TrimSpace(strings.ToLower(filter)); f {
	case "":
		scoped := p
		return p, &scoped, nil
	case FilterAll:
		return p, nil, nil
	default:
		parsed, err := Parse(f)
		if err != nil {
			return Period{}, nil, err
		}
		return p, &parsed, nil
	}
}
