package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

var dayLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// Day is a calendar date bound as "YYYY-MM-DD" and scanned from whatever
// the driver hands back for a DATE column or an aggregate over one.
type Day struct {
	Time  time.Time
	Valid bool
}

func NewDay(t time.Time) Day {
	return Day{Time: truncateDay(t), Valid: true}
}

func (d Day) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

func (d *Day) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		d.Time, d.Valid = time.Time{}, false
		return nil
	case time.Time:
		d.Time, d.Valid = truncateDay(v), true
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	}
	return fmt.Errorf("models.Day: unsupported type %T", value)
}

func (d Day) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Day) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time, d.Valid = truncateDay(t), true
			return nil
		}
	}
	return fmt.Errorf("models.Day: cannot parse %q", s)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
