package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnidadMedida is read-only reference data. Factor converts a quantity
// expressed in this unit into the base unit it is relative to
// (e.g. gramo → kilo: 0.001). A NULL factor means "no explicit conversion":
// the costing engine then assumes 1:1 and flags the result — see costeo.Resolve.
type UnidadMedida struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string           `gorm:"uniqueIndex;not null"`
	Abreviacion string           `gorm:"size:12;not null"`
	Factor      *decimal.Decimal `gorm:"type:decimal(18,8)"`
	CreatedAt   time.Time
}

func (UnidadMedida) TableName() string { return "unidades_medida" }
