package volunteer

import (
	"context"
	"time"

	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
)

type Repository interface {
	// -------- Lookup --------
	Get(ctx context.Context, id uint) (*models.Volunteer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Volunteer, error)
	PhoneTaken(ctx context.Context, phone string, exceptID uint) (bool, error)

	// -------- Eligibility --------
	AreaIDs(ctx context.Context, volunteerID uint) ([]uint, error)
	EligibleAreas(ctx context.Context, volunteerID uint) ([]models.Area, error)

	// -------- Mutations --------
	Create(ctx context.Context, v *models.Volunteer, areaIDs []uint) error
	Update(ctx context.Context, v *models.Volunteer, areaIDs []uint) error
	Delete(ctx context.Context, id uint) error

	// -------- Reports --------
	Roster(ctx context.Context) ([]RosterRow, error)
	Inactive(ctx context.Context, cutoff time.Time) ([]InactiveRow, error)
}

type RosterRow struct {
	Volunteer models.Volunteer
	AreaNames []string
}

type InactiveRow struct {
	ID            uint
	Name          string
	Phone         string
	IsResponsible bool
	LastBooking   models.Day
}
