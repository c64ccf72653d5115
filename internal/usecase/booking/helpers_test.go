package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/escala-voluntarios/internal/db/dbtest"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/infra/repository"
	"github.com/BruksfildServices01/escala-voluntarios/internal/models"
)

type fixture struct {
	db   *gorm.DB
	repo *repository.BookingGormRepository
	t    *testing.T
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := dbtest.New(t)
	return &fixture{db: gdb, repo: repository.NewBookingGormRepository(gdb, nil), t: t}
}

func (f *fixture) area(name string, maxPeople int) models.Area {
	f.t.Helper()
	a := models.Area{Name: name, MaxPeople: maxPeople}
	require.NoError(f.t, f.db.Create(&a).Error)
	return a
}

func (f *fixture) volunteer(name, phone string, responsible bool, areas ...models.Area) models.Volunteer {
	f.t.Helper()
	v := models.Volunteer{Name: name, Phone: phone, IsResponsible: responsible}
	require.NoError(f.t, f.db.Create(&v).Error)
	for _, a := range areas {
		require.NoError(f.t, f.db.Create(&models.VolunteerArea{VolunteerID: v.ID, AreaID: a.ID}).Error)
	}
	return v
}

func (f *fixture) bookings() int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(&models.Booking{}).Count(&n).Error)
	return n
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, httperr.CodeOf(err), err.Error())
}

var ctx = context.Background()
