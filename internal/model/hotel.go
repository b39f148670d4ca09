package model

import (
	"time"

	"github.com/google/uuid"
)

// Hotel is the top-level operating context. Every restaurante (and therefore
// every menu and every historico row) hangs from one hotel.
type Hotel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Hotel) TableName() string { return "hoteles" }

// Restaurante belongs to a hotel and owns menus.
type Restaurante struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HotelID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre    string    `gorm:"not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Hotel *Hotel `gorm:"foreignKey:HotelID"`
}

func (Restaurante) TableName() string { return "restaurantes" }
