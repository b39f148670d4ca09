package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPlatilloRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=2,max=150"`
	Descripcion *string `json:"descripcion"`
}

type ActualizarPlatilloRequest struct {
	Nombre      string  `json:"nombre" validate:"omitempty,min=2,max=150"`
	Descripcion *string `json:"descripcion"`
}

// AgregarLineaPlatilloRequest adds one usage line. Exactly one of
// ingrediente_id / receta_id must be set.
type AgregarLineaPlatilloRequest struct {
	IngredienteID *string         `json:"ingrediente_id" validate:"omitempty,uuid"`
	RecetaID      *string         `json:"receta_id"      validate:"omitempty,uuid"`
	Cantidad      decimal.Decimal `json:"cantidad"       validate:"required"`
	UnidadID      *string         `json:"unidad_id"      validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaPlatilloResponse struct {
	ID            string          `json:"id"`
	IngredienteID *string         `json:"ingrediente_id,omitempty"`
	RecetaID      *string         `json:"receta_id,omitempty"`
	Nombre        string          `json:"nombre"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Unidad        *string         `json:"unidad,omitempty"`
	CostoParcial  decimal.Decimal `json:"costo_parcial"`
}

type PlatilloResponse struct {
	ID                  string                  `json:"id"`
	Nombre              string                  `json:"nombre"`
	Descripcion         *string                 `json:"descripcion,omitempty"`
	CostoElaboracion    decimal.Decimal         `json:"costo_elaboracion"`
	CostoAdministrativo decimal.Decimal         `json:"costo_administrativo"`
	PrecioSugerido      *decimal.Decimal        `json:"precio_sugerido"`
	Revision            int64                   `json:"revision"`
	Activo              bool                    `json:"activo"`
	Lineas              []LineaPlatilloResponse `json:"lineas,omitempty"`
	Advertencias        []string                `json:"advertencias,omitempty"`
}
