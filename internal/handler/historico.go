package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type HistoricoHandler struct{ svc service.HistoricoService }

func NewHistoricoHandler(svc service.HistoricoService) *HistoricoHandler {
	return &HistoricoHandler{svc: svc}
}

// Serie returns the day-by-day snapshot rows of one listing across a date
// range. Reads only the historico table — never recomputes.
func (h *HistoricoHandler) Serie(c *gin.Context) {
	var filter dto.HistoricoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Serie(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export streams an xlsx with every snapshot row of a restaurante in the
// range.
func (h *HistoricoHandler) Export(c *gin.Context) {
	var filter dto.ExportFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	data, nombre, err := h.svc.ExportXLSX(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+nombre)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
