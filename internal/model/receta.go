package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receta is a sub-recipe: a batch preparation (salsa, masa, fondo) that
// yields CantidadBase units of UnidadBase. Costo is always the sum of its
// lines' costo_parcial (invariant kept by the recalculo engine, never edited
// by hand). Revision is compared-and-swapped on every write so two users
// editing the same receta cannot silently overwrite each other.
type Receta struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string          `gorm:"index;not null"`
	Notas        *string
	CantidadBase decimal.Decimal `gorm:"type:decimal(12,4);not null;default:1"`
	UnidadBaseID uuid.UUID       `gorm:"type:uuid;not null"`
	Costo        decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	Revision     int64           `gorm:"not null;default:0"`
	Activo       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	UnidadBase *UnidadMedida `gorm:"foreignKey:UnidadBaseID"`
	Lineas     []RecetaLinea `gorm:"foreignKey:RecetaID"`
}

func (Receta) TableName() string { return "recetas" }

// RecetaLinea is one usage line inside a receta: a quantity of either an
// ingrediente or another receta (exactly one of the two references is set).
// CostoParcial is denormalized — a pure function of the referenced item's
// current cost and the quantity, recomputed on every rollup.
type RecetaLinea struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RecetaID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_receta_linea_ing;uniqueIndex:idx_receta_linea_sub"`
	IngredienteID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_receta_linea_ing"`
	SubRecetaID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_receta_linea_sub"`
	Cantidad      decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	UnidadID      *uuid.UUID      `gorm:"type:uuid"` // only for ingrediente lines
	CostoParcial  decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Ingrediente *Ingrediente  `gorm:"foreignKey:IngredienteID"`
	SubReceta   *Receta       `gorm:"foreignKey:SubRecetaID"`
	Unidad      *UnidadMedida `gorm:"foreignKey:UnidadID"`
}

func (RecetaLinea) TableName() string { return "receta_lineas" }
