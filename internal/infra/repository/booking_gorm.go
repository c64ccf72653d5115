package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/booking"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
)

type BookingGormRepository struct {
	store
}

func NewBookingGormRepository(db *gorm.DB, log *zap.Logger) *BookingGormRepository {
	return &BookingGormRepository{store: newStore(db, log)}
}

// --------------------------------------------------
// Volunteer / eligibility
// --------------------------------------------------

func (r *BookingGormRepository) FindVolunteerByPhone(
	ctx context.Context,
	phone string,
) (*models.Volunteer, error) {

	return r.volunteerByPhone(ctx, phone)
}

func (r *BookingGormRepository) IsEligible(
	ctx context.Context,
	volunteerID uint,
	areaID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VolunteerArea{}).
		Where("voluntario_id = ? AND area_id = ?", volunteerID, areaID).
		Count(&count).Error; err != nil {
		return false, r.fail("check eligibility", err,
			zap.Uint("volunteer_id", volunteerID), zap.Uint("area_id", areaID))
	}
	return count > 0, nil
}

// --------------------------------------------------
// Area
// --------------------------------------------------

func (r *BookingGormRepository) FindArea(
	ctx context.Context,
	areaID uint,
) (*models.Area, error) {

	var a models.Area
	if err := r.db.WithContext(ctx).First(&a, areaID).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, r.fail("find area", err, zap.Uint("area_id", areaID))
	}
	return &a, nil
}

func (r *BookingGormRepository) LockArea(
	ctx context.Context,
	areaID uint,
) (*models.Area, error) {

	var a models.Area
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&a, areaID).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, r.fail("lock area", err, zap.Uint("area_id", areaID))
	}
	return &a, nil
}

func (r *BookingGormRepository) ListAreas(ctx context.Context) ([]models.Area, error) {
	var areas []models.Area
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&areas).Error; err != nil {
		return nil, r.fail("list areas", err)
	}
	return areas, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CountNonResponsible(
	ctx context.Context,
	areaID uint,
	date time.Time,
	shift domain.Shift,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Joins("JOIN voluntarios v ON v.id = escalas.voluntario_id").
		Where(
			"escalas.area_id = ? AND escalas.data = ? AND escalas.turno = ? AND v.responsavel = ?",
			areaID, models.NewDay(date), string(shift), false,
		).
		Count(&count).Error; err != nil {
		return 0, r.fail("count non-responsible bookings", err,
			zap.Uint("area_id", areaID), zap.Time("date", date), zap.String("shift", string(shift)))
	}
	return count, nil
}

func (r *BookingGormRepository) BookingExists(
	ctx context.Context,
	volunteerID uint,
	date time.Time,
	shift domain.Shift,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"voluntario_id = ? AND data = ? AND turno = ?",
			volunteerID, models.NewDay(date), string(shift),
		).
		Count(&count).Error; err != nil {
		return false, r.fail("check duplicate booking", err,
			zap.Uint("volunteer_id", volunteerID), zap.Time("date", date))
	}
	return count > 0, nil
}

func (r *BookingGormRepository) InsertBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(b).Error
	if err == nil {
		return nil
	}
	if httperr.IsUniqueViolation(err) {
		r.log.Info("duplicate booking rejected by unique index",
			zap.Uint("volunteer_id", b.VolunteerID), zap.String("date", b.DateISO()))
		return httperr.ErrBusiness(httperr.CodeAlreadyBooked)
	}
	return r.fail("insert booking", err)
}

func (r *BookingGormRepository) FindBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, r.fail("find booking", err, zap.Uint("booking_id", id))
	}
	return &b, nil
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id uint,
) error {

	if err := r.db.WithContext(ctx).
		Delete(&models.Booking{}, id).Error; err != nil {
		return r.fail("delete booking", err, zap.Uint("booking_id", id))
	}
	return nil
}

// --------------------------------------------------
// Reporting
// --------------------------------------------------

type dayShiftCountRow struct {
	Date          models.Day
	Shift         string
	IsResponsible bool
	Total         int64
}

func (r *BookingGormRepository) CountsByMonth(
	ctx context.Context,
	areaID uint,
	from time.Time,
	to time.Time,
) ([]domain.DayShiftCount, error) {

	var rows []dayShiftCountRow
	if err := r.db.WithContext(ctx).
		Table("escalas e").
		Select("e.data AS date, e.turno AS shift, v.responsavel AS is_responsible, COUNT(e.id) AS total").
		Joins("JOIN voluntarios v ON v.id = e.voluntario_id").
		Where("e.area_id = ? AND e.data >= ? AND e.data < ?", areaID, models.NewDay(from), models.NewDay(to)).
		Group("e.data, e.turno, v.responsavel").
		Scan(&rows).Error; err != nil {
		return nil, r.fail("count bookings by month", err, zap.Uint("area_id", areaID))
	}

	out := make([]domain.DayShiftCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.DayShiftCount{
			Date:          row.Date.Time,
			Shift:         domain.Shift(row.Shift),
			IsResponsible: row.IsResponsible,
			Total:         row.Total,
		})
	}
	return out, nil
}

type bookingRow struct {
	ID            uint
	VolunteerName string
	IsResponsible bool
	AreaID        uint
	AreaName      string
	Date          models.Day
	Shift         string
}

func (r *BookingGormRepository) ListMonthBookings(
	ctx context.Context,
	from time.Time,
	to time.Time,
	areaID *uint,
) ([]domain.BookingRow, error) {

	q := r.db.WithContext(ctx).
		Table("escalas e").
		Select(`e.id AS id, v.nome AS volunteer_name, v.responsavel AS is_responsible,
			e.area_id AS area_id, a.nome AS area_name, e.data AS date, e.turno AS shift`).
		Joins("JOIN voluntarios v ON v.id = e.voluntario_id").
		Joins("JOIN areas a ON a.id = e.area_id").
		Where("e.data >= ? AND e.data < ?", models.NewDay(from), models.NewDay(to))

	if areaID != nil {
		q = q.Where("e.area_id = ?", *areaID)
	}

	var rows []bookingRow
	if err := q.
		Order("a.nome ASC, e.data ASC, e.turno ASC, v.responsavel DESC, v.nome ASC").
		Scan(&rows).Error; err != nil {
		return nil, r.fail("list month bookings", err)
	}

	out := make([]domain.BookingRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.BookingRow{
			ID:            row.ID,
			VolunteerName: row.VolunteerName,
			IsResponsible: row.IsResponsible,
			AreaID:        row.AreaID,
			AreaName:      row.AreaName,
			Date:          row.Date.Time,
			Shift:         domain.Shift(row.Shift),
		})
	}
	return out, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{store: newStore(tx, r.log)})
	})
	return r.passBusiness("booking transaction", err)
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
