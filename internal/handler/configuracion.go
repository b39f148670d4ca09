package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfiguracionHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionHandler(svc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{svc: svc}
}

func (h *ConfiguracionHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar writes one global parameter. The response carries the
// propagation summary: the full dish fan-out ran before this returns.
func (h *ConfiguracionHandler) Actualizar(c *gin.Context) {
	clave := c.Param("clave")
	var req dto.ActualizarConfiguracionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, resumen, err := h.svc.Actualizar(c.Request.Context(), clave, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configuracion": resp, "propagacion": resumen})
}
