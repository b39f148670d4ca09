package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearIngredienteRequest struct {
	Clave         string          `json:"clave"          validate:"required,min=1,max=40"`
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=150"`
	UnidadBaseID  string          `json:"unidad_base_id" validate:"required,uuid"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"required"`
}

type ActualizarIngredienteRequest struct {
	Nombre string `json:"nombre" validate:"omitempty,min=2,max=150"`
	// CostoUnitario nil = unchanged. A change here is a propagation trigger.
	CostoUnitario *decimal.Decimal `json:"costo_unitario"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type IngredienteResponse struct {
	ID            string          `json:"id"`
	Clave         string          `json:"clave"`
	Nombre        string          `json:"nombre"`
	UnidadBase    string          `json:"unidad_base"`
	UnidadBaseID  string          `json:"unidad_base_id"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Activo        bool            `json:"activo"`
}
