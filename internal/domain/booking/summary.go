package booking

import "time"

// DayShiftCount é uma linha agregada por (data, turno, responsável).
type DayShiftCount struct {
	Date          time.Time
	Shift         Shift
	IsResponsible bool
	Total         int64
}

type ShiftSummary struct {
	Responsible int64 `json:"responsible"`
	Booked      int64 `json:"booked"`
	Free        int   `json:"free"`
}

type SundaySummary struct {
	Date    string       `json:"date"`
	Label   string       `json:"label"`
	Morning ShiftSummary `json:"morning"`
	Night   ShiftSummary `json:"night"`
}

type Summary struct {
	AreaID    uint            `json:"area_id"`
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	MaxPeople int             `json:"max_people"`
	Sundays   []SundaySummary `json:"sundays"`
}

// BuildSummary monta uma entrada por domingo a partir das contagens agregadas.
func BuildSummary(maxPeople int, sundays []time.Time, counts []DayShiftCount) []SundaySummary {
	type key struct {
		date  string
		shift Shift
	}
	booked := make(map[key]int64)
	responsible := make(map[key]int64)

	for _, c := range counts {
		k := key{date: c.Date.Format(DateLayout), shift: c.Shift}
		if c.IsResponsible {
			responsible[k] += c.Total
		} else {
			booked[k] += c.Total
		}
	}

	out := make([]SundaySummary, 0, len(sundays))
	for _, d := range sundays {
		iso := d.Format(DateLayout)
		shift := func(s Shift) ShiftSummary {
			k := key{date: iso, shift: s}
			return ShiftSummary{
				Responsible: responsible[k],
				Booked:      booked[k],
				Free:        FreeSlots(maxPeople, booked[k]),
			}
		}
		out = append(out, SundaySummary{
			Date:    iso,
			Label:   d.Format("02/01"),
			Morning: shift(ShiftMorning),
			Night:   shift(ShiftNight),
		})
	}
	return out
}
