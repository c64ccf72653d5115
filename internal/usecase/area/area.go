package area

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/escala-voluntarios/internal/audit"
	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/area"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type Input struct {
	Name      string
	MaxPeople int
}

// ======================================================
// USE CASE
// ======================================================

// Manage reúne o CRUD de áreas do painel administrativo.
type Manage struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewManage(repo domain.Repository, audit *audit.Dispatcher) *Manage {
	return &Manage{repo: repo, audit: audit}
}

func (uc *Manage) List(ctx context.Context) ([]models.Area, error) {
	return uc.repo.List(ctx)
}

func (uc *Manage) Get(ctx context.Context, id uint) (*models.Area, error) {
	a, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, httperr.ErrBusiness(httperr.CodeAreaNotFound)
	}
	return a, nil
}

func (uc *Manage) Create(ctx context.Context, in Input) (*models.Area, error) {
	name := strings.TrimSpace(in.Name)
	if err := domain.Validate(name, in.MaxPeople); err != nil {
		return nil, err
	}

	a := &models.Area{Name: name, MaxPeople: in.MaxPeople}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	uc.dispatch("area_created", a.ID, map[string]any{"name": a.Name, "max_people": a.MaxPeople})
	return a, nil
}

func (uc *Manage) Update(ctx context.Context, id uint, in Input) (*models.Area, error) {
	name := strings.TrimSpace(in.Name)
	if err := domain.Validate(name, in.MaxPeople); err != nil {
		return nil, err
	}

	a, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := map[string]any{"name": a.Name, "max_people": a.MaxPeople}
	a.Name = name
	a.MaxPeople = in.MaxPeople

	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	uc.dispatch("area_updated", a.ID, map[string]any{
		"before": before,
		"after":  map[string]any{"name": a.Name, "max_people": a.MaxPeople},
	})
	return a, nil
}

// Delete apaga a área com suas escalas e habilitações.
func (uc *Manage) Delete(ctx context.Context, id uint) error {
	a, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.dispatch("area_deleted", a.ID, map[string]any{"name": a.Name})
	return nil
}

func (uc *Manage) dispatch(action string, id uint, meta map[string]any) {
	uc.audit.Dispatch(audit.Event{
		Actor:    "admin",
		Action:   action,
		Entity:   "area",
		EntityID: &id,
		Metadata: meta,
	})
}
