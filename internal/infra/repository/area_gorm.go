package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/area"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
)

type AreaGormRepository struct {
	store
}

func NewAreaGormRepository(db *gorm.DB, log *zap.Logger) *AreaGormRepository {
	return &AreaGormRepository{store: newStore(db, log)}
}

func (r *AreaGormRepository) List(ctx context.Context) ([]models.Area, error) {
	var areas []models.Area
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&areas).Error; err != nil {
		return nil, r.fail("list areas", err)
	}
	return areas, nil
}

func (r *AreaGormRepository) Get(ctx context.Context, id uint) (*models.Area, error) {
	var a models.Area
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, r.fail("get area", err, zap.Uint("area_id", id))
	}
	return &a, nil
}

func (r *AreaGormRepository) Create(ctx context.Context, a *models.Area) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return r.fail("create area", err)
	}
	return nil
}

func (r *AreaGormRepository) Update(ctx context.Context, a *models.Area) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Area{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"nome":        a.Name,
			"max_pessoas": a.MaxPeople,
		}).Error; err != nil {
		return r.fail("update area", err, zap.Uint("area_id", a.ID))
	}
	return nil
}

func (r *AreaGormRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("area_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("area_id = ?", id).Delete(&models.VolunteerArea{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Area{}, id).Error
	})
	if err != nil {
		return r.fail("delete area", err, zap.Uint("area_id", id))
	}
	return nil
}

var _ domain.Repository = (*AreaGormRepository)(nil)
