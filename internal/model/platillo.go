package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Platillo is a sellable dish. CostoElaboracion is the sum of its lines'
// costo_parcial; CostoAdministrativo applies the global overhead factor on
// top of it; PrecioSugerido divides the administrative cost by the global
// price divisor (NULL when the divisor is zero — "undefined", never infinity).
type Platillo struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre              string          `gorm:"index;not null"`
	Descripcion         *string
	CostoElaboracion    decimal.Decimal  `gorm:"type:decimal(12,4);not null;default:0"`
	CostoAdministrativo decimal.Decimal  `gorm:"type:decimal(12,4);not null;default:0"`
	PrecioSugerido      *decimal.Decimal `gorm:"type:decimal(12,4)"`
	Revision            int64            `gorm:"not null;default:0"`
	Activo              bool             `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Lineas []PlatilloLinea `gorm:"foreignKey:PlatilloID"`
}

func (Platillo) TableName() string { return "platillos" }

// PlatilloLinea is one usage line inside a platillo — an ingrediente or a
// receta, never both. Same denormalization contract as RecetaLinea.
type PlatilloLinea struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlatilloID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_platillo_linea_ing;uniqueIndex:idx_platillo_linea_rec"`
	IngredienteID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_platillo_linea_ing"`
	RecetaID      *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_platillo_linea_rec"`
	Cantidad      decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	UnidadID      *uuid.UUID      `gorm:"type:uuid"` // only for ingrediente lines
	CostoParcial  decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Ingrediente *Ingrediente  `gorm:"foreignKey:IngredienteID"`
	Receta      *Receta       `gorm:"foreignKey:RecetaID"`
	Unidad      *UnidadMedida `gorm:"foreignKey:UnidadID"`
}

func (PlatilloLinea) TableName() string { return "platillo_lineas" }
