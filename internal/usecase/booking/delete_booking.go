package booking

import (
	"context"

	"github.com/BruksfildServices01/escala-voluntarios/internal/audit"
	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/booking"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(repo domain.Repository, audit *audit.Dispatcher) *DeleteBooking {
	return &DeleteBooking{repo: repo, audit: audit}
}

func (uc *DeleteBooking) Execute(ctx context.Context, id uint) error {
	b, err := uc.repo.FindBooking(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return httperr.ErrBusiness(httperr.CodeBookingNotFound)
	}

	if err := uc.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    "admin",
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"volunteer_id": b.VolunteerID,
			"area_id":      b.AreaID,
			"date":         b.DateISO(),
			"shift":        b.Shift,
		},
	})

	return nil
}
