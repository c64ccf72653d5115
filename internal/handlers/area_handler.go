package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httpresp"
	ucArea "github.com/BruksfildServices01/escala-voluntarios/internal/usecase/area"
)

type AreaHandler struct {
	uc *ucArea.Manage
}

func NewAreaHandler(uc *ucArea.Manage) *AreaHandler {
	return &AreaHandler{uc: uc}
}

type AreaRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	MaxPeople *int   `json:"max_people" binding:"required,min=0"`
}

func (h *AreaHandler) List(c *gin.Context) {
	areas, err := h.uc.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, areas)
}

func (h *AreaHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	a, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, a)
}

func (h *AreaHandler) Create(c *gin.Context) {
	var req AreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	a, err := h.uc.Create(c.Request.Context(), ucArea.Input{Name: req.Name, MaxPeople: *req.MaxPeople})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, a)
}

func (h *AreaHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req AreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	a, err := h.uc.Update(c.Request.Context(), id, ucArea.Input{Name: req.Name, MaxPeople: *req.MaxPeople})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, a)
}

func (h *AreaHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
