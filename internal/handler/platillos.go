package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub000/internal/apierror"
	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlatillosHandler struct{ svc service.PlatilloService }

func NewPlatillosHandler(svc service.PlatilloService) *PlatillosHandler {
	return &PlatillosHandler{svc: svc}
}

func (h *PlatillosHandler) Crear(c *gin.Context) {
	var req dto.CrearPlatilloRequest
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

func (h *PlatillosHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlatillosHandler) ObtenerPorID(c *gin.Context) {
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

func (h *PlatillosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarPlatilloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlatillosHandler) Desactivar(c *gin.Context) {
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

// ── Lineas ───────────────────────────────────────────────────────────────────

func (h *PlatillosHandler) AgregarLinea(c *gin.Context) {
	platilloID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AgregarLineaPlatilloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, resumen, err := h.svc.AgregarLinea(c.Request.Context(), platilloID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"platillo": resp, "propagacion": resumen})
}

func (h *PlatillosHandler) ActualizarLinea(c *gin.Context) {
	platilloID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	lineaID, err := uuid.Parse(c.Param("lineaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de linea invalido"))
		return
	}
	var req dto.ActualizarLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, resumen, err := h.svc.ActualizarLinea(c.Request.Context(), platilloID, lineaID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"platillo": resp, "propagacion": resumen})
}

func (h *PlatillosHandler) EliminarLinea(c *gin.Context) {
	platilloID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	lineaID, err := uuid.Parse(c.Param("lineaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de linea invalido"))
		return
	}
	resp, resumen, err := h.svc.EliminarLinea(c.Request.Context(), platilloID, lineaID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"platillo": resp, "propagacion": resumen})
}
