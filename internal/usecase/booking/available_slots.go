package booking

import (
	"context"

	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/booking"
)

type AvailableSlots struct {
	repo domain.Repository
}

func NewAvailableSlots(repo domain.Repository) *AvailableSlots {
	return &AvailableSlots{repo: repo}
}

// Execute responde quantas vagas restam. Área desconhecida não é erro:
// a resposta é simplesmente "lotado".
func (uc *AvailableSlots) Execute(
	ctx context.Context,
	areaID uint,
	dateStr string,
	shiftStr string,
) (domain.Availability, error) {

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return domain.Unavailable, err
	}
	shift, err := domain.ParseShift(shiftStr)
	if err != nil {
		return domain.Unavailable, err
	}

	area, err := uc.repo.FindArea(ctx, areaID)
	if err != nil {
		return domain.Unavailable, err
	}
	if area == nil {
		return domain.Unavailable, nil
	}

	count, err := uc.repo.CountNonResponsible(ctx, area.ID, date, shift)
	if err != nil {
		return domain.Unavailable, err
	}

	return domain.AvailabilityFor(area.MaxPeople, count), nil
}
