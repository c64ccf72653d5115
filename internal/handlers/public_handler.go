package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/escala-voluntarios/internal/domain/booking"
	"github.com/BruksfildServices01/escala-voluntarios/internal/dto"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httpresp"
	"github.com/BruksfildServices01/escala-voluntarios/internal/timezone"
	ucArea "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/area"
	ucBooking "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/booking"
	ucVolunteer "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/volunteer"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	areas     *ucArea.Manage
	eligible  *ucVolunteer.EligibleAreasByPhone
	available *ucBooking.AvailableSlots
	summary   *ucBooking.MonthlySummary
	book      *ucBooking.BookShift
	now       timezone.Clock
}

func NewPublicHandler(
	areas *ucArea.Manage,
	eligible *ucVolunteer.EligibleAreasByPhone,
	available *ucBooking.AvailableSlots,
	summary *ucBooking.MonthlySummary,
	book *ucBooking.BookShift,
	now timezone.Clock,
) *PublicHandler {
	return &PublicHandler{
		areas:     areas,
		eligible:  eligible,
		available: available,
		summary:   summary,
		book:      book,
		now:       now,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicBookingRequest struct {
	Phone  string `json:"phone" binding:"required"`
	AreaID uint   `json:"area_id" binding:"required"`
	Date   string `json:"date" binding:"required"`  // YYYY-MM-DD
	Shift  string `json:"shift" binding:"required"` // Morning | Night
}

////////////////////////////////////////////////////////
// AREAS / CALENDÁRIO
////////////////////////////////////////////////////////

func (h *PublicHandler) ListAreas(c *gin.Context) {
	areas, err := h.areas.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, areas)
}

// Sundays devolve os domingos do mês seguinte, que é o mês aberto para
// agendamento.
func (h *PublicHandler) Sundays(c *gin.Context) {
	year, month := domain.NextMonth(h.now())

	days, err := domain.Sundays(year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"year":        year,
		"month":       int(month),
		"month_label": domain.MonthLabel(year, month),
		"sundays":     dto.FromSundays(days),
	})
}

////////////////////////////////////////////////////////
// VOLUNTÁRIO
////////////////////////////////////////////////////////

func (h *PublicHandler) VolunteerAreas(c *gin.Context) {
	phone := strings.TrimSpace(c.Query("phone"))
	if phone == "" {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Telefone não informado.")
		return
	}

	res, err := h.eligible.Execute(c.Request.Context(), phone)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeVolunteerNotFound) {
			httperr.NotFound(c, httperr.CodeVolunteerNotFound, "Voluntário não cadastrado.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

////////////////////////////////////////////////////////
// VAGAS
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	// area_id ilegível é tratado como área desconhecida
	areaID, _ := queryUint(c, "area_id")

	avail, err := h.available.Execute(
		c.Request.Context(),
		areaID,
		c.Query("date"),
		c.Query("shift"),
	)
	if err != nil {
		if httperr.CodeOf(err) == httperr.CodeStoreUnavailable {
			c.JSON(http.StatusInternalServerError, domain.Unavailable)
			return
		}
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, avail)
}

func (h *PublicHandler) Summary(c *gin.Context) {
	areaID, ok := queryUint(c, "area_id")
	if !ok {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Informe area_id.")
		return
	}

	year, month := domain.NextMonth(h.now())
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidDate, httperr.MessageFor(httperr.CodeInvalidDate))
			return
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidDate, httperr.MessageFor(httperr.CodeInvalidDate))
			return
		}
		month = time.Month(m)
	}

	sum, err := h.summary.Execute(c.Request.Context(), areaID, year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, sum)
}

////////////////////////////////////////////////////////
// AGENDAMENTO
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.book.Execute(c.Request.Context(), ucBooking.BookShiftInput{
		Phone:  req.Phone,
		AreaID: req.AreaID,
		Date:   req.Date,
		Shift:  req.Shift,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message": "Escala confirmada com sucesso!",
		"booking": dto.FromBooking(b),
	})
}
