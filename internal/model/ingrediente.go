package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingrediente is a priced raw input. CostoUnitario is expressed per
// UnidadBase (e.g. $/kilo); usage lines in other units go through the
// conversion resolver before touching this price.
type Ingrediente struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Clave         string          `gorm:"uniqueIndex;not null"` // internal catalog code
	Nombre        string          `gorm:"index;not null"`
	UnidadBaseID  uuid.UUID       `gorm:"type:uuid;not null"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	UnidadBase *UnidadMedida `gorm:"foreignKey:UnidadBaseID"`
}

func (Ingrediente) TableName() string { return "ingredientes" }
