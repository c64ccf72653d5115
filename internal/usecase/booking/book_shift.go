package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/escala-voluntarios/internal/audit"
	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/booking"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookShiftInput struct {
	Phone  string
	AreaID uint
	Date   string // YYYY-MM-DD
	Shift  string
}

// ======================================================
// USE CASE
// ======================================================

type BookShift struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewBookShift(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *BookShift {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookShift{
		repo:  repo,
		audit: audit,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookShift) Execute(
	ctx context.Context,
	in BookShiftInput,
) (*models.Booking, error) {

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	shift, err := domain.ParseShift(in.Shift)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1️⃣ Voluntário pelo telefone
	// --------------------------------------------------
	vol, err := uc.repo.FindVolunteerByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if vol == nil {
		return nil, httperr.ErrBusiness(httperr.CodeVolunteerNotFound)
	}

	// --------------------------------------------------
	// 2️⃣ Habilitação na área
	// --------------------------------------------------
	ok, err := uc.repo.IsEligible(ctx, vol.ID, in.AreaID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotEligible)
	}

	// --------------------------------------------------
	// 3️⃣ Área
	// --------------------------------------------------
	area, err := uc.repo.FindArea(ctx, in.AreaID)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidArea)
	}

	// --------------------------------------------------
	// 4️⃣–6️⃣ Lotação, duplicidade e gravação sob o lock da área
	// --------------------------------------------------
	booking := &models.Booking{
		VolunteerID: vol.ID,
		AreaID:      area.ID,
		Date:        models.NewDay(date),
		Shift:       string(shift),
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		locked, err := tx.LockArea(ctx, area.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return httperr.ErrBusiness(httperr.CodeInvalidArea)
		}

		if !vol.IsResponsible {
			count, err := tx.CountNonResponsible(ctx, locked.ID, date, shift)
			if err != nil {
				return err
			}
			if !domain.HasCapacity(locked.MaxPeople, count, vol.IsResponsible) {
				return httperr.ErrBusiness(httperr.CodeCapacityExceeded)
			}
		}

		exists, err := tx.BookingExists(ctx, vol.ID, date, shift)
		if err != nil {
			return err
		}
		if exists {
			return httperr.ErrBusiness(httperr.CodeAlreadyBooked)
		}

		return tx.InsertBooking(ctx, booking)
	})
	if err != nil {
		uc.log.Info("booking rejected",
			zap.Uint("volunteer_id", vol.ID),
			zap.Uint("area_id", in.AreaID),
			zap.String("date", in.Date),
			zap.String("code", httperr.CodeOf(err)),
		)
		return nil, err
	}

	// --------------------------------------------------
	// AUDIT
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Actor:    "volunteer",
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &booking.ID,
		Metadata: map[string]any{
			"volunteer_id": vol.ID,
			"area_id":      area.ID,
			"date":         booking.DateISO(),
			"shift":        booking.Shift,
			"responsible":  vol.IsResponsible,
		},
	})

	return booking, nil
}
