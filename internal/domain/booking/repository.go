package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
)

// Repository is the store port of the booking rule engine. Lookups return
// (nil, nil) when the row does not exist.
type Repository interface {
	// -------- Volunteer / eligibility --------
	// FindVolunteerByPhone recebe o telefone como digitado.
	FindVolunteerByPhone(
		ctx context.Context,
		phone string,
	) (*models.Volunteer, error)

	IsEligible(
		ctx context.Context,
		volunteerID uint,
		areaID uint,
	) (bool, error)

	// -------- Area --------
	FindArea(
		ctx context.Context,
		areaID uint,
	) (*models.Area, error)

	// LockArea re-reads the area holding a row lock until the surrounding
	// transaction ends.
	LockArea(
		ctx context.Context,
		areaID uint,
	) (*models.Area, error)

	// -------- Booking --------
	CountNonResponsible(
		ctx context.Context,
		areaID uint,
		date time.Time,
		shift Shift,
	) (int64, error)

	BookingExists(
		ctx context.Context,
		volunteerID uint,
		date time.Time,
		shift Shift,
	) (bool, error)

	InsertBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	FindBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	DeleteBooking(
		ctx context.Context,
		id uint,
	) error

	// -------- Reporting --------
	CountsByMonth(
		ctx context.Context,
		areaID uint,
		from time.Time,
		to time.Time,
	) ([]DayShiftCount, error)

	ListAreas(ctx context.Context) ([]models.Area, error)

	ListMonthBookings(
		ctx context.Context,
		from time.Time,
		to time.Time,
		areaID *uint,
	) ([]BookingRow, error)

	// -------- Transaction --------
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}

// BookingRow é uma escala já resolvida com nomes, usada no painel.
type BookingRow struct {
	ID            uint
	VolunteerName string
	IsResponsible bool
	AreaID        uint
	AreaName      string
	Date          time.Time
	Shift         Shift
}
