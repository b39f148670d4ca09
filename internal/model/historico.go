package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Historico is one immutable, date-stamped snapshot row: the contribution of
// one ingrediente or one receta to one platillo within one menu, priced as of
// Fecha. Rows are never edited in place — the snapshot writer reconciles the
// day's set (delete removed, update changed, insert new) so that for any
// (menu, platillo, fecha) at most one row set exists. Trend charts read this
// table exclusively.
type Historico struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HotelID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	RestauranteID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	MenuID          uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_historico_dia_ing;uniqueIndex:idx_historico_dia_rec"`
	PlatilloID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_historico_dia_ing;uniqueIndex:idx_historico_dia_rec"`
	IngredienteID   *uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_historico_dia_ing"`
	RecetaID        *uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_historico_dia_rec"`
	Cantidad        decimal.Decimal  `gorm:"type:decimal(12,4);not null"`
	Costo           decimal.Decimal  `gorm:"type:decimal(12,4);not null"`
	PrecioVenta     decimal.Decimal  `gorm:"type:decimal(12,4);not null"`
	CostoPorcentual *decimal.Decimal `gorm:"type:decimal(7,3)"`
	Fecha           time.Time        `gorm:"type:date;not null;uniqueIndex:idx_historico_dia_ing;uniqueIndex:idx_historico_dia_rec"`
	CreatedAt       time.Time

	Ingrediente *Ingrediente `gorm:"foreignKey:IngredienteID"`
	Receta      *Receta      `gorm:"foreignKey:RecetaID"`
}

func (Historico) TableName() string { return "historico" }
