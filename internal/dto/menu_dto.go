package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearMenuRequest struct {
	RestauranteID string `json:"restaurante_id" validate:"required,uuid"`
	Nombre        string `json:"nombre"         validate:"required,min=2,max=150"`
}

type ListarPlatilloRequest struct {
	PlatilloID  string          `json:"platillo_id"  validate:"required,uuid"`
	PrecioVenta decimal.Decimal `json:"precio_venta" validate:"required"`
}

type ActualizarPrecioVentaRequest struct {
	PrecioVenta decimal.Decimal `json:"precio_venta" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MenuPlatilloResponse struct {
	ID              string           `json:"id"`
	MenuID          string           `json:"menu_id"`
	PlatilloID      string           `json:"platillo_id"`
	Platillo        string           `json:"platillo"`
	PrecioVenta     decimal.Decimal  `json:"precio_venta"`
	Margen          decimal.Decimal  `json:"margen"`
	CostoPorcentual *decimal.Decimal `json:"costo_porcentual"`
	PrecioConIVA    decimal.Decimal  `json:"precio_con_iva"`
	Activo          bool             `json:"activo"`
}

type MenuResponse struct {
	ID            string                 `json:"id"`
	RestauranteID string                 `json:"restaurante_id"`
	Restaurante   string                 `json:"restaurante,omitempty"`
	Nombre        string                 `json:"nombre"`
	Activo        bool                   `json:"activo"`
	Platillos     []MenuPlatilloResponse `json:"platillos,omitempty"`
}

// PrecioPublicoResponse is the payload of the cached public price lookup.
type PrecioPublicoResponse struct {
	Platillo     string           `json:"platillo"`
	PrecioVenta  decimal.Decimal  `json:"precio_venta"`
	PrecioConIVA decimal.Decimal  `json:"precio_con_iva"`
}
