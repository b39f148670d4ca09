package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ActualizarConfiguracionRequest struct {
	Valor       decimal.Decimal `json:"valor" validate:"required"`
	Descripcion string          `json:"descripcion"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ConfiguracionResponse struct {
	Clave       string          `json:"clave"`
	Valor       decimal.Decimal `json:"valor"`
	Descripcion string          `json:"descripcion"`
	UpdatedAt   string          `json:"updated_at"`
}
