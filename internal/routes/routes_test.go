package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/escala-voluntarios/internal/audit"
	"github.com/BruksfildServices01/escala-voluntarios/internal/config"
	"github.com/BruksfildServices01/escala-voluntarios/internal/db/dbtest"
	"github.com/BruksfildServices01/escala-voluntarios/internal/middleware"
	"github.com/BruksfildServices01/escala-voluntarios/internal/ratelimit"
	"github.com/BruksfildServices01/escala-voluntarios/internal/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type api struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

// 2024-05-20: o mês aberto para agendamento é junho/2024.
var today = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func newAPI(t *testing.T, limiter ratelimit.Limiter) *api {
	t.Helper()

	gdb := dbtest.New(t)
	cfg := &config.Config{
		JWTSecret:     "segredo-de-teste",
		AdminPassword: "senha-forte",
		SessionHours:  12,
		InactiveDays:  60,
	}

	dispatcher := audit.NewDispatcher(audit.New(gdb), zap.NewNop())
	t.Cleanup(func() { _ = dispatcher.Close(context.Background()) })

	r := gin.New()
	require.NoError(t, routes.RegisterRoutes(r, routes.Deps{
		DB:      gdb,
		Config:  cfg,
		Log:     zap.NewNop(),
		Audit:   dispatcher,
		Clock:   func() time.Time { return today },
		Limiter: limiter,
	}))

	return &api{t: t, router: r}
}

func (a *api) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *api) login() {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/admin/login", map[string]string{"password": "senha-forte"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res))
	a.token = res.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type idResp struct {
	ID uint `json:"id"`
}

type errResp struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (a *api) createArea(name string, max int) uint {
	w := a.do(http.MethodPost, "/api/admin/areas", map[string]any{"name": name, "max_people": max})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[idResp](a.t, w).ID
}

func (a *api) createVolunteer(name, phone string, responsible bool, areas ...uint) uint {
	w := a.do(http.MethodPost, "/api/admin/volunteers", map[string]any{
		"name": name, "phone": phone, "is_responsible": responsible, "area_ids": areas,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[idResp](a.t, w).ID
}

func (a *api) bookRaw(phone string, area uint, date, shift string) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, "/api/public/bookings", map[string]any{
		"phone": phone, "area_id": area, "date": date, "shift": shift,
	})
}

// ======================================================
// TESTS
// ======================================================

func TestHealth(t *testing.T) {
	a := newAPI(t, nil)
	w := a.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdmin_RequiresLogin(t *testing.T) {
	a := newAPI(t, nil)

	w := a.do(http.MethodGet, "/api/admin/areas", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/admin/login", map[string]string{"password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode[errResp](t, w).Code)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	a := newAPI(t, nil)
	w := a.do(http.MethodPost, "/api/admin/login", map[string]string{"password": "senha-forte"})
	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/areas", nil)
	req.AddCookie(session)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	w = a.do(http.MethodPost, "/api/admin/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestPublicFlow(t *testing.T) {
	a := newAPI(t, nil)
	a.login()

	welcome := a.createArea("Welcome", 2)
	kids := a.createArea("Kids", 2)
	a.createVolunteer("Ana", "11999990001", false, welcome, kids)
	a.createVolunteer("Bia", "11999990002", false, welcome)
	a.createVolunteer("Caio", "11999990003", false, welcome)
	a.createVolunteer("Rita", "11999990004", true, welcome)
	a.token = ""

	// domingos do mês seguinte
	w := a.do(http.MethodGet, "/api/public/sundays", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sundays := decode[struct {
		MonthLabel string `json:"month_label"`
		Sundays    []struct {
			Date string `json:"date"`
		} `json:"sundays"`
	}](t, w)
	assert.Equal(t, "junho / 2024", sundays.MonthLabel)
	assert.Len(t, sundays.Sundays, 5)

	// áreas do voluntário
	w = a.do(http.MethodGet, "/api/public/volunteer/areas?phone=(11)%2099999-0001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ana"`)

	w = a.do(http.MethodGet, "/api/public/volunteer/areas?phone=11000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// agendamentos
	require.Equal(t, http.StatusCreated, a.bookRaw("11999990001", welcome, "2024-06-02", "Morning").Code)
	require.Equal(t, http.StatusCreated, a.bookRaw("11999990002", welcome, "2024-06-02", "Morning").Code)

	w = a.bookRaw("11999990003", welcome, "2024-06-02", "Morning")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errResp{Code: "capacity_exceeded", Message: "Vagas esgotadas para esta área/turno."}, decode[errResp](t, w))

	require.Equal(t, http.StatusCreated, a.bookRaw("11999990004", welcome, "2024-06-02", "Morning").Code)

	w = a.bookRaw("11999990001", kids, "2024-06-02", "Morning")
	assert.Equal(t, "already_booked", decode[errResp](t, w).Code)

	w = a.bookRaw("11999990002", kids, "2024-06-02", "Night")
	assert.Equal(t, "not_eligible", decode[errResp](t, w).Code)

	w = a.bookRaw("11999990009", kids, "2024-06-02", "Night")
	assert.Equal(t, "volunteer_not_found", decode[errResp](t, w).Code)

	w = a.bookRaw("11999990001", welcome, "2024-06-31", "Night")
	assert.Equal(t, "invalid_date", decode[errResp](t, w).Code)

	w = a.do(http.MethodPost, "/api/public/bookings", map[string]any{"phone": "1", "area_id": welcome})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode[errResp](t, w).Code)

	// telefone sem dígitos suficientes cai no "não encontrado"
	w = a.bookRaw("12", welcome, "2024-06-02", "Night")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "volunteer_not_found", decode[errResp](t, w).Code)

	// vagas
	w = a.do(http.MethodGet, "/api/public/availability?area_id=1&date=2024-06-02&shift=Morning", nil)
	assert.JSONEq(t, `{"free":0,"full":true}`, w.Body.String())
	w = a.do(http.MethodGet, "/api/public/availability?area_id=99&date=2024-06-02&shift=Morning", nil)
	assert.JSONEq(t, `{"free":0,"full":true}`, w.Body.String())
	w = a.do(http.MethodGet, "/api/public/availability?area_id=1&date=2024-06-02&shift=Night", nil)
	assert.JSONEq(t, `{"free":2,"full":false}`, w.Body.String())

	// resumo do mês seguinte
	w = a.do(http.MethodGet, "/api/public/summary?area_id=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[struct {
		Month   int `json:"month"`
		Sundays []struct {
			Date    string `json:"date"`
			Morning struct {
				Responsible int `json:"responsible"`
				Booked      int `json:"booked"`
				Free        int `json:"free"`
			} `json:"morning"`
		} `json:"sundays"`
	}](t, w)
	assert.Equal(t, 6, sum.Month)
	require.Len(t, sum.Sundays, 5)
	assert.Equal(t, 1, sum.Sundays[0].Morning.Responsible)
	assert.Equal(t, 2, sum.Sundays[0].Morning.Booked)
	assert.Equal(t, 0, sum.Sundays[0].Morning.Free)

	w = a.do(http.MethodGet, "/api/public/summary?area_id=99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(http.MethodGet, "/api/public/summary", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminFlow(t *testing.T) {
	a := newAPI(t, nil)
	a.login()

	welcome := a.createArea("Welcome", 2)
	kids := a.createArea("Kids", 1)
	ana := a.createVolunteer("Ana", "11999990001", false, welcome)
	bia := a.createVolunteer("Bia", "11999990002", true, welcome, kids)

	// telefone duplicado
	w := a.do(http.MethodPost, "/api/admin/volunteers", map[string]any{"name": "X", "phone": "11999990001"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "duplicate_phone", decode[errResp](t, w).Code)

	// edição com troca de áreas
	w = a.do(http.MethodPut, "/api/admin/volunteers/"+itoa(ana), map[string]any{
		"name": "Ana Maria", "phone": "11999990001", "area_ids": []uint{kids},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"area_ids":[`+itoa(kids)+`]`)

	w = a.do(http.MethodGet, "/api/admin/volunteers/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// roster
	w = a.do(http.MethodGet, "/api/admin/volunteers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	roster := decode[struct {
		Volunteers []struct {
			Name  string `json:"name"`
			Areas string `json:"areas"`
		} `json:"volunteers"`
	}](t, w)
	require.Len(t, roster.Volunteers, 2)
	assert.Equal(t, "Bia", roster.Volunteers[0].Name)
	assert.Equal(t, "Kids, Welcome", roster.Volunteers[0].Areas)

	// escalas e painel
	require.Equal(t, http.StatusCreated, a.bookRaw("11999990001", kids, "2024-05-12", "Night").Code)
	require.Equal(t, http.StatusCreated, a.bookRaw("11999990002", kids, "2024-05-12", "Night").Code)

	w = a.do(http.MethodGet, "/api/admin/dashboard?area_id="+itoa(kids), nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[struct {
		MonthLabel string `json:"month_label"`
		Grids      []struct {
			MaxRows int `json:"max_rows"`
			Days    []struct {
				Date  string `json:"date"`
				Night struct {
					Responsible []struct {
						BookingID uint   `json:"booking_id"`
						Name      string `json:"volunteer_name"`
					} `json:"responsible"`
					Team []struct {
						BookingID uint   `json:"booking_id"`
						Name      string `json:"volunteer_name"`
					} `json:"team"`
				} `json:"night"`
			} `json:"days"`
		} `json:"grids"`
	}](t, w)
	assert.Equal(t, "maio / 2024", dash.MonthLabel)
	require.Len(t, dash.Grids, 1)
	assert.Equal(t, 2, dash.Grids[0].MaxRows)
	day := dash.Grids[0].Days[1]
	assert.Equal(t, "2024-05-12", day.Date)
	require.Len(t, day.Night.Team, 1)
	assert.Equal(t, "Ana Maria", day.Night.Team[0].Name)
	assert.Equal(t, "Bia", day.Night.Responsible[0].Name)

	// exportação
	w = a.do(http.MethodGet, "/api/admin/export?month_year=2024-05", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "escala-2024-05.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "area,data,turno,tipo,voluntario\n"))
	assert.Contains(t, w.Body.String(), "Kids,2024-05-12,Night,responsavel,Bia")

	w = a.do(http.MethodPost, "/api/admin/export/archive", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	// cancelamento
	bookingID := day.Night.Team[0].BookingID
	w = a.do(http.MethodDelete, "/api/admin/bookings/"+itoa(bookingID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodDelete, "/api/admin/bookings/"+itoa(bookingID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// inativos: hoje 2024-05-20, Ana sem escala desde o cancelamento
	w = a.do(http.MethodGet, "/api/admin/volunteers/inactive", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ana Maria"`)
	assert.NotContains(t, w.Body.String(), `"name":"Bia"`)

	// remoção de área apaga escalas
	w = a.do(http.MethodDelete, "/api/admin/areas/"+itoa(kids), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(http.MethodDelete, "/api/admin/volunteers/"+itoa(bia), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(http.MethodGet, "/api/admin/areas/"+itoa(kids), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_AuditLogs(t *testing.T) {
	a := newAPI(t, nil)
	a.login()
	a.createArea("Welcome", 2)

	assert.Eventually(t, func() bool {
		w := a.do(http.MethodGet, "/api/admin/audit-logs?action=area_created", nil)
		return w.Code == http.StatusOK && strings.Contains(w.Body.String(), `"total":1`)
	}, 2*time.Second, 20*time.Millisecond)
}

func TestPublicBooking_RateLimited(t *testing.T) {
	a := newAPI(t, ratelimit.NewMemoryLimiter(2))

	for i := 0; i < 2; i++ {
		w := a.bookRaw("11999990001", 1, "2024-06-02", "Morning")
		assert.NotEqual(t, http.StatusTooManyRequests, w.Code)
	}
	w := a.bookRaw("11999990001", 1, "2024-06-02", "Morning")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
