package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// HistoricoFilter is bound from the query string of GET /v1/historico.
type HistoricoFilter struct {
	MenuID     string `form:"menu_id"     validate:"required,uuid"`
	PlatilloID string `form:"platillo_id" validate:"required,uuid"`
	Desde      string `form:"desde"       validate:"required,datetime=2006-01-02"`
	Hasta      string `form:"hasta"       validate:"required,datetime=2006-01-02"`
}

// ExportFilter is bound from the query string of the xlsx export endpoint.
type ExportFilter struct {
	RestauranteID string `form:"restaurante_id" validate:"required,uuid"`
	Desde         string `form:"desde"          validate:"required,datetime=2006-01-02"`
	Hasta         string `form:"hasta"          validate:"required,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// HistoricoRowResponse is one snapshot row: one contributor of one platillo
// on one date.
type HistoricoRowResponse struct {
	Fecha           string           `json:"fecha"`
	Contribuyente   string           `json:"contribuyente"`
	Tipo            string           `json:"tipo"` // ingrediente | receta
	Cantidad        decimal.Decimal  `json:"cantidad"`
	Costo           decimal.Decimal  `json:"costo"`
	PrecioVenta     decimal.Decimal  `json:"precio_venta"`
	CostoPorcentual *decimal.Decimal `json:"costo_porcentual"`
}

// HistoricoDiaResponse groups one date's rows with the day totals.
type HistoricoDiaResponse struct {
	Fecha      string                 `json:"fecha"`
	CostoTotal decimal.Decimal        `json:"costo_total"`
	Rows       []HistoricoRowResponse `json:"rows"`
}

type HistoricoSerieResponse struct {
	MenuID     string                 `json:"menu_id"`
	PlatilloID string                 `json:"platillo_id"`
	Dias       []HistoricoDiaResponse `json:"dias"`
}
