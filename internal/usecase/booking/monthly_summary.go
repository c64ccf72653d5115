package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/booking"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
)

type MonthlySummary struct {
	repo domain.Repository
}

func NewMonthlySummary(repo domain.Repository) *MonthlySummary {
	return &MonthlySummary{repo: repo}
}

func (uc *MonthlySummary) Execute(
	ctx context.Context,
	areaID uint,
	year int,
	month time.Month,
) (*domain.Summary, error) {

	if month < time.January || month > time.December || year <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}

	area, err := uc.repo.FindArea(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, httperr.ErrBusiness(httperr.CodeAreaNotFound)
	}

	sundays, err := domain.Sundays(year, month)
	if err != nil {
		return nil, err
	}

	from, to := domain.MonthRange(year, month)
	counts, err := uc.repo.CountsByMonth(ctx, area.ID, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.Summary{
		AreaID:    area.ID,
		Year:      year,
		Month:     int(month),
		MaxPeople: area.MaxPeople,
		Sundays:   domain.BuildSummary(area.MaxPeople, sundays, counts),
	}, nil
}
