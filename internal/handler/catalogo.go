package handler

import (
	"net/http"

	"github.com/adornodavid/aybcosteo-sub000/internal/apierror"
	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

func (h *CatalogoHandler) CrearHotel(c *gin.Context) {
	var req dto.CrearHotelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearHotel(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarHoteles(c *gin.Context) {
	resp, err := h.svc.ListarHoteles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) CrearRestaurante(c *gin.Context) {
	var req dto.CrearRestauranteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearRestaurante(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarRestaurantes(c *gin.Context) {
	hotelID := uuid.Nil
	if raw := c.Query("hotel_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("hotel_id invalido"))
			return
		}
		hotelID = parsed
	}
	resp, err := h.svc.ListarRestaurantes(c.Request.Context(), hotelID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) CrearUnidad(c *gin.Context) {
	var req dto.CrearUnidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearUnidad(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarUnidades(c *gin.Context) {
	resp, err := h.svc.ListarUnidades(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
