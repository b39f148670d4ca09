package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub000/internal/apierror"
	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MenusHandler struct{ svc service.MenuService }

func NewMenusHandler(svc service.MenuService) *MenusHandler { return &MenusHandler{svc: svc} }

func (h *MenusHandler) Crear(c *gin.Context) {
	var req dto.CrearMenuRequest
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

func (h *MenusHandler) Listar(c *gin.Context) {
	restauranteID := uuid.Nil
	if raw := c.Query("restaurante_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("restaurante_id invalido"))
			return
		}
		restauranteID = parsed
	}
	resp, err := h.svc.Listar(c.Request.Context(), restauranteID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenusHandler) ObtenerPorID(c *gin.Context) {
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

func (h *MenusHandler) Desactivar(c *gin.Context) {
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

// ── Listados ─────────────────────────────────────────────────────────────────

func (h *MenusHandler) ListarPlatillo(c *gin.Context) {
	menuID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ListarPlatilloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ListarPlatillo(c.Request.Context(), menuID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MenusHandler) ActualizarPrecioVenta(c *gin.Context) {
	listadoID, err := uuid.Parse(c.Param("listadoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de listado invalido"))
		return
	}
	var req dto.ActualizarPrecioVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPrecioVenta(c.Request.Context(), listadoID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MenusHandler) QuitarListado(c *gin.Context) {
	listadoID, err := uuid.Parse(c.Param("listadoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de listado invalido"))
		return
	}
	if err := h.svc.QuitarListado(c.Request.Context(), listadoID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
