package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
)

// paramID lê :id; em caso de erro já respondeu 400.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, key string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func bindError(c *gin.Context, err error) {
	c.JSON(400, gin.H{
		"error_code": httperr.CodeInvalidRequest,
		"message":    httperr.MessageFor(httperr.CodeInvalidRequest),
		"details":    err.Error(),
	})
}
