package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known configuration keys read by the costing engine.
const (
	ClaveFactorGastos  = "factor_gastos"  // overhead factor applied over costo de elaboracion
	ClaveDivisorPrecio = "divisor_precio" // divisor applied to costo administrativo → precio sugerido
	ClaveIVA           = "iva"            // VAT rate applied over precio de venta
)

// Configuracion holds the few global numeric business parameters. Rarely
// mutated, but any mutation invalidates every platillo's administrative cost
// and every menu listing's margin — the propagation engine handles that fan-out.
type Configuracion struct {
	Clave       string          `gorm:"primaryKey;size:40"`
	Valor       decimal.Decimal `gorm:"type:decimal(12,6);not null"`
	Descripcion string
	UpdatedAt   time.Time
}

func (Configuracion) TableName() string { return "configuraciones" }
