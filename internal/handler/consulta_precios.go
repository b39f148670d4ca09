package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub000/internal/apierror"
	"github.com/adornodavid/aybcosteo-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConsultaPreciosHandler serves the public price check endpoint.
// No authentication required — no side effects whatsoever. Cache lives in
// the menu service; propagation drops the entry on every relevant edit.
type ConsultaPreciosHandler struct {
	svc service.MenuService
}

func NewConsultaPreciosHandler(svc service.MenuService) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{svc: svc}
}

func (h *ConsultaPreciosHandler) GetPrecioPorPlatillo(c *gin.Context) {
	platilloID, err := uuid.Parse(c.Param("platilloId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.PrecioPublico(c.Request.Context(), platilloID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Platillo no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
