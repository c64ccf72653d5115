package volunteer

import (
	"context"
	"sort"
	"strings"

	domainArea "github.com/BruksfildServices01/escala-voluntarios/internal/domain/area"
	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/volunteer"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
	"github.com/BruksfildServices01/escala-voluntarios/internal/timezone"
	"github.com/BruksfildServices01/escala-voluntarios/internal/validators"
)

// ======================================================
// ELIGIBLE AREAS (self-service)
// ======================================================

type EligibleAreas struct {
	Name  string        `json:"name"`
	Areas []models.Area `json:"areas"`
}

type EligibleAreasByPhone struct {
	repo domain.Repository
}

func NewEligibleAreasByPhone(repo domain.Repository) *EligibleAreasByPhone {
	return &EligibleAreasByPhone{repo: repo}
}

func (uc *EligibleAreasByPhone) Execute(ctx context.Context, phone string) (*EligibleAreas, error) {
	if validators.NormalizePhone(phone) == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	v, err := uc.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, httperr.ErrBusiness(httperr.CodeVolunteerNotFound)
	}

	areas, err := uc.repo.EligibleAreas(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	if areas == nil {
		areas = []models.Area{}
	}
	return &EligibleAreas{Name: v.Name, Areas: areas}, nil
}

// ======================================================
// ROSTER
// ======================================================

type RosterEntry struct {
	models.Volunteer
	Areas string `json:"areas"`
}

type RosterView struct {
	Volunteers []RosterEntry `json:"volunteers"`
	Areas      []models.Area `json:"areas"`
}

type Roster struct {
	repo  domain.Repository
	areas domainArea.Repository
}

func NewRoster(repo domain.Repository, areas domainArea.Repository) *Roster {
	return &Roster{repo: repo, areas: areas}
}

// Execute lista responsáveis primeiro, depois por nome, com as áreas de
// cada um em ordem alfabética.
func (uc *Roster) Execute(ctx context.Context) (*RosterView, error) {
	rows, err := uc.repo.Roster(ctx)
	if err != nil {
		return nil, err
	}

	areas, err := uc.areas.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(areas, func(i, j int) bool { return areas[i].Name < areas[j].Name })

	entries := make([]RosterEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, RosterEntry{
			Volunteer: r.Volunteer,
			Areas:     strings.Join(r.AreaNames, ", "),
		})
	}

	return &RosterView{Volunteers: entries, Areas: areas}, nil
}

// ======================================================
// INACTIVE
// ======================================================

type InactiveVolunteer struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	IsResponsible bool    `json:"is_responsible"`
	LastBooking   *string `json:"last_booking"`
}

type InactiveReport struct {
	Cutoff     string              `json:"cutoff"`
	Days       int                 `json:"days"`
	Volunteers []InactiveVolunteer `json:"volunteers"`
}

type Inactive struct {
	repo domain.Repository
	now  timezone.Clock
	days int
}

func NewInactive(repo domain.Repository, now timezone.Clock, days int) *Inactive {
	if days <= 0 {
		days = 60
	}
	return &Inactive{repo: repo, now: now, days: days}
}

// Execute lista quem não tem escala desde hoje - days: primeiro quem
// nunca serviu, depois a última escala mais recente, empate por nome.
func (uc *Inactive) Execute(ctx context.Context) (*InactiveReport, error) {
	cutoff := timezone.Today(uc.now()).AddDate(0, 0, -uc.days)

	rows, err := uc.repo.Inactive(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.LastBooking.Valid != b.LastBooking.Valid {
			return !a.LastBooking.Valid
		}
		if a.LastBooking.Valid && !a.LastBooking.Time.Equal(b.LastBooking.Time) {
			return a.LastBooking.Time.After(b.LastBooking.Time)
		}
		return a.Name < b.Name
	})

	out := make([]InactiveVolunteer, 0, len(rows))
	for _, r := range rows {
		iv := InactiveVolunteer{
			ID:            r.ID,
			Name:          r.Name,
			Phone:         r.Phone,
			IsResponsible: r.IsResponsible,
		}
		if r.LastBooking.Valid {
			s := r.LastBooking.String()
			iv.LastBooking = &s
		}
		out = append(out, iv)
	}

	return &InactiveReport{
		Cutoff:     cutoff.Format("2006-01-02"),
		Days:       uc.days,
		Volunteers: out,
	}, nil
}
