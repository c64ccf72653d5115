package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/volunteer"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
)

type VolunteerGormRepository struct {
	store
}

func NewVolunteerGormRepository(db *gorm.DB, log *zap.Logger) *VolunteerGormRepository {
	return &VolunteerGormRepository{store: newStore(db, log)}
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *VolunteerGormRepository) Get(ctx context.Context, id uint) (*models.Volunteer, error) {
	var v models.Volunteer
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, r.fail("get volunteer", err, zap.Uint("volunteer_id", id))
	}
	return &v, nil
}

func (r *VolunteerGormRepository) FindByPhone(ctx context.Context, phone string) (*models.Volunteer, error) {
	return r.volunteerByPhone(ctx, phone)
}

func (r *VolunteerGormRepository) PhoneTaken(ctx context.Context, phone string, exceptID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Volunteer{}).
		Where("telefone = ? AND id <> ?", phone, exceptID).
		Count(&count).Error; err != nil {
		return false, r.fail("check phone", err)
	}
	return count > 0, nil
}

// --------------------------------------------------
// Eligibility
// --------------------------------------------------

func (r *VolunteerGormRepository) AreaIDs(ctx context.Context, volunteerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.VolunteerArea{}).
		Where("voluntario_id = ?", volunteerID).
		Order("area_id ASC").
		Pluck("area_id", &ids).Error; err != nil {
		return nil, r.fail("list volunteer area ids", err, zap.Uint("volunteer_id", volunteerID))
	}
	return ids, nil
}

func (r *VolunteerGormRepository) EligibleAreas(ctx context.Context, volunteerID uint) ([]models.Area, error) {
	var areas []models.Area
	if err := r.db.WithContext(ctx).
		Joins("JOIN voluntario_areas va ON va.area_id = areas.id").
		Where("va.voluntario_id = ?", volunteerID).
		Order("areas.nome ASC").
		Find(&areas).Error; err != nil {
		return nil, r.fail("list eligible areas", err, zap.Uint("volunteer_id", volunteerID))
	}
	return areas, nil
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

func (r *VolunteerGormRepository) Create(ctx context.Context, v *models.Volunteer, areaIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return err
		}
		return insertLinks(tx, v.ID, areaIDs)
	})
	return r.mutationError("create volunteer", err)
}

// Update grava os dados e aplica somente a diferença de habilitações.
func (r *VolunteerGormRepository) Update(ctx context.Context, v *models.Volunteer, areaIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Volunteer{}).
			Where("id = ?", v.ID).
			Updates(map[string]any{
				"nome":        v.Name,
				"telefone":    v.Phone,
				"responsavel": v.IsResponsible,
			}).Error; err != nil {
			return err
		}

		var current []uint
		if err := tx.Model(&models.VolunteerArea{}).
			Where("voluntario_id = ?", v.ID).
			Pluck("area_id", &current).Error; err != nil {
			return err
		}

		toRemove, toAdd := domain.Diff(current, areaIDs)
		if len(toRemove) > 0 {
			if err := tx.
				Where("voluntario_id = ? AND area_id IN ?", v.ID, toRemove).
				Delete(&models.VolunteerArea{}).Error; err != nil {
				return err
			}
		}
		return insertLinks(tx, v.ID, toAdd)
	})
	return r.mutationError("update volunteer", err)
}

func (r *VolunteerGormRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("voluntario_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("voluntario_id = ?", id).Delete(&models.VolunteerArea{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Volunteer{}, id).Error
	})
	if err != nil {
		return r.fail("delete volunteer", err, zap.Uint("volunteer_id", id))
	}
	return nil
}

// insertLinks recusa áreas inexistentes antes de gravar; a chave
// estrangeira faz o mesmo nos bancos que a aplicam.
func insertLinks(tx *gorm.DB, volunteerID uint, areaIDs []uint) error {
	if len(areaIDs) == 0 {
		return nil
	}

	var found int64
	if err := tx.Model(&models.Area{}).
		Where("id IN ?", areaIDs).
		Count(&found).Error; err != nil {
		return err
	}
	if found != int64(len(areaIDs)) {
		return httperr.ErrBusiness(httperr.CodeInvalidArea)
	}
	links := make([]models.VolunteerArea, 0, len(areaIDs))
	for _, id := range areaIDs {
		links = append(links, models.VolunteerArea{VolunteerID: volunteerID, AreaID: id})
	}
	return tx.Create(&links).Error
}

func (r *VolunteerGormRepository) mutationError(op string, err error) error {
	if err == nil {
		return nil
	}
	if httperr.IsBusiness(err, httperr.CodeInvalidArea) {
		return err
	}
	if httperr.IsUniqueViolation(err) {
		r.log.Warn("duplicate phone", zap.String("op", op), zap.Error(err))
		return httperr.ErrBusiness(httperr.CodeDuplicatePhone)
	}
	return r.fail(op, err)
}

// --------------------------------------------------
// Reports
// --------------------------------------------------

type areaLinkRow struct {
	VolunteerID uint
	AreaName    string
}

func (r *VolunteerGormRepository) Roster(ctx context.Context) ([]domain.RosterRow, error) {
	var vols []models.Volunteer
	if err := r.db.WithContext(ctx).
		Order("responsavel DESC, nome ASC").
		Find(&vols).Error; err != nil {
		return nil, r.fail("list volunteers", err)
	}

	var links []areaLinkRow
	if err := r.db.WithContext(ctx).
		Table("voluntario_areas va").
		Select("va.voluntario_id AS volunteer_id, a.nome AS area_name").
		Joins("JOIN areas a ON a.id = va.area_id").
		Order("a.nome ASC").
		Scan(&links).Error; err != nil {
		return nil, r.fail("list volunteer areas", err)
	}

	names := make(map[uint][]string, len(vols))
	for _, l := range links {
		names[l.VolunteerID] = append(names[l.VolunteerID], l.AreaName)
	}

	out := make([]domain.RosterRow, 0, len(vols))
	for _, v := range vols {
		out = append(out, domain.RosterRow{Volunteer: v, AreaNames: names[v.ID]})
	}
	return out, nil
}

func (r *VolunteerGormRepository) Inactive(ctx context.Context, cutoff time.Time) ([]domain.InactiveRow, error) {
	var rows []domain.InactiveRow
	if err := r.db.WithContext(ctx).
		Table("voluntarios v").
		Select(`v.id AS id, v.nome AS name, v.telefone AS phone,
			v.responsavel AS is_responsible, MAX(e.data) AS last_booking`).
		Joins("LEFT JOIN escalas e ON e.voluntario_id = v.id").
		Group("v.id, v.nome, v.telefone, v.responsavel").
		Having("MAX(e.data) IS NULL OR MAX(e.data) < ?", models.NewDay(cutoff)).
		Scan(&rows).Error; err != nil {
		return nil, r.fail("list inactive volunteers", err)
	}
	return rows, nil
}

var _ domain.Repository = (*VolunteerGormRepository)(nil)
