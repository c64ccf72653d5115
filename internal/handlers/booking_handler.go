package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/escala-voluntarios/internal/export"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	deleteBooking *ucBooking.DeleteBooking
	dashboard     *ucBooking.Dashboard
	exportMonth   *ucBooking.ExportMonth
}

func NewBookingHandler(
	deleteBooking *ucBooking.DeleteBooking,
	dashboard *ucBooking.Dashboard,
	exportMonth *ucBooking.ExportMonth,
) *BookingHandler {
	return &BookingHandler{
		deleteBooking: deleteBooking,
		dashboard:     dashboard,
		exportMonth:   exportMonth,
	}
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.deleteBooking.Execute(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Message(c, http.StatusOK, "Agendamento cancelado.")
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *BookingHandler) Dashboard(c *gin.Context) {
	in := ucBooking.DashboardInput{MonthYear: c.Query("month_year")}
	if id, ok := queryUint(c, "area_id"); ok {
		in.AreaID = &id
	}

	view, err := h.dashboard.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, view)
}

// ======================================================
// EXPORT
// ======================================================

func (h *BookingHandler) ExportCSV(c *gin.Context) {
	file, err := h.exportMonth.CSV(c.Request.Context(), c.Query("month_year"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", file.Body)
}

type ArchiveRequest struct {
	MonthYear string `json:"month_year"`
}

func (h *BookingHandler) Archive(c *gin.Context) {
	var req ArchiveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	key, err := h.exportMonth.Archive(c.Request.Context(), req.MonthYear)
	if err != nil {
		if errors.Is(err, export.ErrArchiveDisabled) {
			httperr.Write(c, http.StatusNotImplemented, "export_disabled", "Arquivamento não configurado.")
			return
		}
		var be httperr.BusinessError
		if errors.As(err, &be) {
			httperr.Respond(c, err)
			return
		}
		httperr.Write(c, http.StatusBadGateway, "export_failed", "Falha ao enviar o arquivo.")
		return
	}

	httpresp.Created(c, gin.H{"key": key})
}
