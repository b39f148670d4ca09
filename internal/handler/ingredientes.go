package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub000/internal/apierror"
	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IngredientesHandler struct{ svc service.IngredienteService }

func NewIngredientesHandler(svc service.IngredienteService) *IngredientesHandler {
	return &IngredientesHandler{svc: svc}
}

func (h *IngredientesHandler) Crear(c *gin.Context) {
	var req dto.CrearIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *IngredientesHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientesHandler) Buscar(c *gin.Context) {
	texto := c.Query("q")
	if texto == "" {
		c.JSON(http.StatusBadRequest, apierror.New("parametro q requerido"))
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), texto)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientesHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar edits an ingrediente. When the unit cost changes, the response
// includes the propagation summary so the operator sees how far it rippled.
func (h *IngredientesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarIngredienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, resumen, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingrediente": resp, "propagacion": resumen})
}

func (h *IngredientesHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
