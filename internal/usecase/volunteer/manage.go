package volunteer

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/escala-voluntarios/internal/audit"
	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/volunteer"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
	"github.com/BruksfildServices01/escala-voluntarios/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type Input struct {
	Name          string
	Phone         string
	IsResponsible bool
	AreaIDs       []uint
}

func (in Input) normalize() (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = validators.NormalizePhone(in.Phone)
	in.AreaIDs = domain.Dedup(in.AreaIDs)

	if in.Name == "" || !validators.IsPhoneValid(in.Phone) {
		return in, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}
	return in, nil
}

// ======================================================
// USE CASE
// ======================================================

type Manage struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewManage(repo domain.Repository, audit *audit.Dispatcher) *Manage {
	return &Manage{repo: repo, audit: audit}
}

// Detail é o voluntário com as áreas marcadas no formulário de edição.
type Detail struct {
	models.Volunteer
	AreaIDs []uint `json:"area_ids"`
}

func (uc *Manage) Get(ctx context.Context, id uint) (*Detail, error) {
	v, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, httperr.ErrBusiness(httperr.CodeVolunteerNotFound)
	}

	ids, err := uc.repo.AreaIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return &Detail{Volunteer: *v, AreaIDs: ids}, nil
}

func (uc *Manage) Create(ctx context.Context, in Input) (*Detail, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	taken, err := uc.repo.PhoneTaken(ctx, in.Phone, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness(httperr.CodeDuplicatePhone)
	}

	v := &models.Volunteer{Name: in.Name, Phone: in.Phone, IsResponsible: in.IsResponsible}
	if err := uc.repo.Create(ctx, v, in.AreaIDs); err != nil {
		return nil, err
	}

	uc.dispatch("volunteer_created", v.ID, map[string]any{
		"name":        v.Name,
		"responsible": v.IsResponsible,
		"area_ids":    in.AreaIDs,
	})
	return &Detail{Volunteer: *v, AreaIDs: in.AreaIDs}, nil
}

// Update troca os dados e deixa as habilitações exatamente iguais a
// in.AreaIDs.
func (uc *Manage) Update(ctx context.Context, id uint, in Input) (*Detail, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	current, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, httperr.ErrBusiness(httperr.CodeVolunteerNotFound)
	}

	taken, err := uc.repo.PhoneTaken(ctx, in.Phone, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness(httperr.CodeDuplicatePhone)
	}

	v := *current
	v.Name = in.Name
	v.Phone = in.Phone
	v.IsResponsible = in.IsResponsible

	if err := uc.repo.Update(ctx, &v, in.AreaIDs); err != nil {
		return nil, err
	}

	uc.dispatch("volunteer_updated", id, map[string]any{
		"name":        v.Name,
		"responsible": v.IsResponsible,
		"area_ids":    in.AreaIDs,
	})
	return uc.Get(ctx, id)
}

// Delete apaga o voluntário com suas escalas e habilitações.
func (uc *Manage) Delete(ctx context.Context, id uint) error {
	v, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return httperr.ErrBusiness(httperr.CodeVolunteerNotFound)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.dispatch("volunteer_deleted", id, map[string]any{"name": v.Name})
	return nil
}

func (uc *Manage) dispatch(action string, id uint, meta map[string]any) {
	uc.audit.Dispatch(audit.Event{
		Actor:    "admin",
		Action:   action,
		Entity:   "volunteer",
		EntityID: &id,
		Metadata: meta,
	})
}
