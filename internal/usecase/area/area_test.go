package area_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/escala-voluntarios/internal/db/dbtest"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/infra/repository"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
	uc "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/area"
)

func TestManage_CRUD(t *testing.T) {
	gdb := dbtest.New(t)
	m := uc.NewManage(repository.NewAreaGormRepository(gdb, nil), nil)
	ctx := context.Background()

	a, err := m.Create(ctx, uc.Input{Name: "  Welcome ", MaxPeople: 0})
	require.NoError(t, err)
	assert.Equal(t, "Welcome", a.Name)
	assert.Equal(t, 0, a.MaxPeople, "zero capacity is kept, not replaced by a column default")

	got, err := m.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MaxPeople)

	_, err = m.Update(ctx, a.ID, uc.Input{Name: "Recepção", MaxPeople: 4})
	require.NoError(t, err)

	areas, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "Recepção", areas[0].Name)
	assert.Equal(t, 4, areas[0].MaxPeople)
}

func TestManage_Validation(t *testing.T) {
	gdb := dbtest.New(t)
	m := uc.NewManage(repository.NewAreaGormRepository(gdb, nil), nil)
	ctx := context.Background()

	_, err := m.Create(ctx, uc.Input{Name: "", MaxPeople: 2})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidRequest))

	_, err = m.Create(ctx, uc.Input{Name: "Kids", MaxPeople: -1})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidRequest))

	_, err = m.Update(ctx, 99, uc.Input{Name: "Kids", MaxPeople: 1})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAreaNotFound))

	assert.True(t, httperr.IsBusiness(m.Delete(ctx, 99), httperr.CodeAreaNotFound))
}

func TestManage_DeleteCascades(t *testing.T) {
	gdb := dbtest.New(t)
	m := uc.NewManage(repository.NewAreaGormRepository(gdb, nil), nil)
	ctx := context.Background()

	a, err := m.Create(ctx, uc.Input{Name: "Welcome", MaxPeople: 2})
	require.NoError(t, err)
	keep, err := m.Create(ctx, uc.Input{Name: "Kids", MaxPeople: 2})
	require.NoError(t, err)

	v := models.Volunteer{Name: "Ana", Phone: "1100000001"}
	require.NoError(t, gdb.Create(&v).Error)
	require.NoError(t, gdb.Create(&[]models.VolunteerArea{
		{VolunteerID: v.ID, AreaID: a.ID},
		{VolunteerID: v.ID, AreaID: keep.ID},
	}).Error)
	require.NoError(t, gdb.Exec(
		"INSERT INTO escalas (voluntario_id, area_id, data, turno) VALUES (?, ?, '2024-06-02', 'Morning')",
		v.ID, a.ID,
	).Error)

	require.NoError(t, m.Delete(ctx, a.ID))

	var bookings, links int64
	require.NoError(t, gdb.Model(&models.Booking{}).Count(&bookings).Error)
	require.NoError(t, gdb.Model(&models.VolunteerArea{}).Count(&links).Error)
	assert.Zero(t, bookings)
	assert.Equal(t, int64(1), links)
}
