package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearRecetaRequest struct {
	Nombre       string          `json:"nombre"         validate:"required,min=2,max=150"`
	Notas        *string         `json:"notas"`
	CantidadBase decimal.Decimal `json:"cantidad_base"  validate:"required"`
	UnidadBaseID string          `json:"unidad_base_id" validate:"required,uuid"`
}

type ActualizarRecetaRequest struct {
	Nombre string  `json:"nombre" validate:"omitempty,min=2,max=150"`
	Notas  *string `json:"notas"`
	// CantidadBase nil = unchanged. A change rescales every consumer's
	// per-unit cost, so it triggers propagation.
	CantidadBase *decimal.Decimal `json:"cantidad_base"`
}

// AgregarLineaRecetaRequest adds one usage line. Exactly one of
// ingrediente_id / sub_receta_id must be set.
type AgregarLineaRecetaRequest struct {
	IngredienteID *string         `json:"ingrediente_id" validate:"omitempty,uuid"`
	SubRecetaID   *string         `json:"sub_receta_id"  validate:"omitempty,uuid"`
	Cantidad      decimal.Decimal `json:"cantidad"       validate:"required"`
	UnidadID      *string         `json:"unidad_id"      validate:"omitempty,uuid"`
}

type ActualizarLineaRequest struct {
	Cantidad decimal.Decimal `json:"cantidad"  validate:"required"`
	UnidadID *string         `json:"unidad_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaRecetaResponse struct {
	ID            string           `json:"id"`
	IngredienteID *string          `json:"ingrediente_id,omitempty"`
	SubRecetaID   *string          `json:"sub_receta_id,omitempty"`
	Nombre        string           `json:"nombre"`
	Cantidad      decimal.Decimal  `json:"cantidad"`
	Unidad        *string          `json:"unidad,omitempty"`
	CostoParcial  decimal.Decimal  `json:"costo_parcial"`
}

type RecetaResponse struct {
	ID           string                `json:"id"`
	Nombre       string                `json:"nombre"`
	Notas        *string               `json:"notas,omitempty"`
	CantidadBase decimal.Decimal       `json:"cantidad_base"`
	UnidadBase   string                `json:"unidad_base"`
	Costo        decimal.Decimal       `json:"costo"`
	Revision     int64                 `json:"revision"`
	Activo       bool                  `json:"activo"`
	Lineas       []LineaRecetaResponse `json:"lineas,omitempty"`
	// Advertencias carries the fallback flags raised during the last rollup
	// of this receta (assumed conversions, assumed cantidad base).
	Advertencias []string `json:"advertencias,omitempty"`
}
