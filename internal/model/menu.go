package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Menu belongs to a restaurante and lists platillos with their sale prices.
type Menu struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RestauranteID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre        string    `gorm:"not null"`
	Activo        bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Restaurante *Restaurante `gorm:"foreignKey:RestauranteID"`
	Platillos   []MenuPlatillo `gorm:"foreignKey:MenuID"`
}

func (Menu) TableName() string { return "menus" }

// MenuPlatillo lists one platillo on one menu. PrecioVenta is the only
// operator-owned field; Margen, CostoPorcentual and PrecioConIVA are derived
// from the platillo's current costo_administrativo on every recalculo.
// CostoPorcentual is NULL when precio_venta is zero (undefined, not ∞).
type MenuPlatillo struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_menu_platillo"`
	PlatilloID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_menu_platillo"`
	PrecioVenta     decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	Margen          decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	CostoPorcentual *decimal.Decimal `gorm:"type:decimal(7,3)"`
	PrecioConIVA    decimal.Decimal  `gorm:"type:decimal(12,4);not null;default:0"`
	Activo          bool             `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Menu     *Menu     `gorm:"foreignKey:MenuID"`
	Platillo *Platillo `gorm:"foreignKey:PlatilloID"`
}

func (MenuPlatillo) TableName() string { return "menu_platillos" }
