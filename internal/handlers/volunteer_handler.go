package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httpresp"
	ucVolunteer "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/volunteer"
)

type VolunteerHandler struct {
	manage   *ucVolunteer.Manage
	roster   *ucVolunteer.Roster
	inactive *ucVolunteer.Inactive
}

func NewVolunteerHandler(
	manage *ucVolunteer.Manage,
	roster *ucVolunteer.Roster,
	inactive *ucVolunteer.Inactive,
) *VolunteerHandler {
	return &VolunteerHandler{manage: manage, roster: roster, inactive: inactive}
}

type VolunteerRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Phone         string `json:"phone" binding:"required,phone"`
	IsResponsible bool   `json:"is_responsible"`
	AreaIDs       []uint `json:"area_ids"`
}

func (r VolunteerRequest) input() ucVolunteer.Input {
	return ucVolunteer.Input{
		Name:          r.Name,
		Phone:         r.Phone,
		IsResponsible: r.IsResponsible,
		AreaIDs:       r.AreaIDs,
	}
}

func (h *VolunteerHandler) List(c *gin.Context) {
	view, err := h.roster.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, view)
}

func (h *VolunteerHandler) Inactive(c *gin.Context) {
	report, err := h.inactive.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, report)
}

func (h *VolunteerHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	d, err := h.manage.Get(c.Request.Context(), id)
	if err != nil {
		respondLookup(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *VolunteerHandler) Create(c *gin.Context) {
	var req VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	d, err := h.manage.Create(c.Request.Context(), req.input())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, d)
}

func (h *VolunteerHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	d, err := h.manage.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondLookup(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *VolunteerHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.manage.Delete(c.Request.Context(), id); err != nil {
		respondLookup(c, err)
		return
	}
	httpresp.NoContent(c)
}

// respondLookup responde 404 para voluntário inexistente nas rotas por id.
func respondLookup(c *gin.Context, err error) {
	if httperr.IsBusiness(err, httperr.CodeVolunteerNotFound) {
		httperr.NotFound(c, httperr.CodeVolunteerNotFound, "Voluntário não encontrado.")
		return
	}
	httperr.Respond(c, err)
}
