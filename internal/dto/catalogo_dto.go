package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearHotelRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=150"`
}

type CrearRestauranteRequest struct {
	HotelID string `json:"hotel_id" validate:"required,uuid"`
	Nombre  string `json:"nombre"   validate:"required,min=2,max=150"`
}

type CrearUnidadRequest struct {
	Nombre      string `json:"nombre"      validate:"required,min=1,max=60"`
	Abreviacion string `json:"abreviacion" validate:"required,min=1,max=10"`
	// Factor converts one of this unit into the reference unit of its
	// magnitude (e.g. gramo → 0.001 kilo). Omitted = no conversion known.
	Factor *decimal.Decimal `json:"factor"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type HotelResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

type RestauranteResponse struct {
	ID      string `json:"id"`
	HotelID string `json:"hotel_id"`
	Nombre  string `json:"nombre"`
	Activo  bool   `json:"activo"`
}

type UnidadResponse struct {
	ID          string           `json:"id"`
	Nombre      string           `json:"nombre"`
	Abreviacion string           `json:"abreviacion"`
	Factor      *decimal.Decimal `json:"factor"`
}
