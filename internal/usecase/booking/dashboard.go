package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/booking"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
	"github.com/BruksfildServices01/escala-voluntarios/internal/timezone"
)

// ======================================================
// VIEW
// ======================================================

type Person struct {
	BookingID     uint   `json:"booking_id"`
	VolunteerName string `json:"volunteer_name"`
}

type ShiftSlot struct {
	Responsible []Person `json:"responsible"`
	Team        []Person `json:"team"`
}

type DayGrid struct {
	Date    string    `json:"date"`
	Label   string    `json:"label"`
	Morning ShiftSlot `json:"morning"`
	Night   ShiftSlot `json:"night"`
}

func (d *DayGrid) slot(s domain.Shift) *ShiftSlot {
	if s == domain.ShiftNight {
		return &d.Night
	}
	return &d.Morning
}

type AreaGrid struct {
	AreaID   uint      `json:"area_id"`
	AreaName string    `json:"area_name"`
	MaxRows  int       `json:"max_rows"`
	Days     []DayGrid `json:"days"`
}

type DashboardView struct {
	Year         int                  `json:"year"`
	Month        int                  `json:"month"`
	MonthLabel   string               `json:"month_label"`
	Selected     string               `json:"month_year"`
	AreaID       *uint                `json:"area_id"`
	Areas        []models.Area        `json:"areas"`
	Grids        []AreaGrid           `json:"grids"`
	MonthOptions []domain.MonthOption `json:"month_options"`
}

type DashboardInput struct {
	MonthYear string // YYYY-MM, vazio = mês atual
	AreaID    *uint  // nil = primeira área
}

// ======================================================
// USE CASE
// ======================================================

type Dashboard struct {
	repo domain.Repository
	now  timezone.Clock
}

func NewDashboard(repo domain.Repository, now timezone.Clock) *Dashboard {
	return &Dashboard{repo: repo, now: now}
}

func (uc *Dashboard) Execute(ctx context.Context, in DashboardInput) (*DashboardView, error) {
	now := uc.now()
	year, month := domain.ParseMonthYear(in.MonthYear, now)

	areas, err := uc.repo.ListAreas(ctx)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{
		Year:         year,
		Month:        int(month),
		MonthLabel:   domain.MonthLabel(year, month),
		Selected:     domain.MonthValue(year, month),
		Areas:        areas,
		Grids:        []AreaGrid{},
		MonthOptions: domain.MonthOptions(now),
	}

	areaID := in.AreaID
	if areaID == nil && len(areas) > 0 {
		first := areas[0].ID
		areaID = &first
	}
	view.AreaID = areaID
	if areaID == nil {
		return view, nil
	}

	sundays, err := domain.Sundays(year, month)
	if err != nil {
		return nil, err
	}

	from, to := domain.MonthRange(year, month)
	rows, err := uc.repo.ListMonthBookings(ctx, from, to, areaID)
	if err != nil {
		return nil, err
	}

	for _, a := range areas {
		if a.ID != *areaID {
			continue
		}
		view.Grids = append(view.Grids, buildGrid(a, sundays, rows))
	}

	return view, nil
}

// buildGrid distribui as escalas da área nos domingos do mês. Escalas fora
// de um domingo não aparecem na grade.
func buildGrid(area models.Area, sundays []time.Time, rows []domain.BookingRow) AreaGrid {
	days := make([]DayGrid, 0, len(sundays))
	index := make(map[string]int, len(sundays))
	for i, d := range sundays {
		iso := d.Format(domain.DateLayout)
		index[iso] = i
		days = append(days, DayGrid{
			Date:    iso,
			Label:   d.Format("02/01/2006"),
			Morning: ShiftSlot{Responsible: []Person{}, Team: []Person{}},
			Night:   ShiftSlot{Responsible: []Person{}, Team: []Person{}},
		})
	}

	for _, r := range rows {
		if r.AreaID != area.ID {
			continue
		}
		i, ok := index[r.Date.Format(domain.DateLayout)]
		if !ok {
			continue
		}
		slot := days[i].slot(r.Shift)
		p := Person{BookingID: r.ID, VolunteerName: r.VolunteerName}
		if r.IsResponsible {
			slot.Responsible = append(slot.Responsible, p)
		} else {
			slot.Team = append(slot.Team, p)
		}
	}

	longest := 0
	for i := range days {
		for _, s := range []*ShiftSlot{&days[i].Morning, &days[i].Night} {
			sortByName(s.Responsible)
			sortByName(s.Team)
			if len(s.Team) > longest {
				longest = len(s.Team)
			}
		}
	}

	return AreaGrid{
		AreaID:   area.ID,
		AreaName: area.Name,
		MaxRows:  max(longest+1, 2),
		Days:     days,
	}
}

func sortByName(ps []Person) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].VolunteerName < ps[j].VolunteerName
	})
}
