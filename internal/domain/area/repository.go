package area

import (
	"context"

	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Area, error)
	Get(ctx context.Context, id uint) (*models.Area, error)
	Create(ctx context.Context, a *models.Area) error
	Update(ctx context.Context, a *models.Area) error
	// Delete remove a área junto com suas escalas e habilitações.
	Delete(ctx context.Context, id uint) error
}
