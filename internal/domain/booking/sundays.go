package booking

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Sundays lists every Sunday of the month, in order.
func Sundays(year int, month time.Month) ([]time.Time, error) {
	from, to := MonthRange(year, month)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rrule.SU},
		Dtstart:   from,
		Until:     to.Add(-time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("sunday rule: %w", err)
	}

	return rule.Between(from, to, true), nil
}
