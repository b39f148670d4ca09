package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

// CatalogoRepository covers the small reference relations: hoteles,
// restaurantes and unidades de medida. They change rarely and have no
// derived fields, so one repository is enough.
type CatalogoRepository interface {
	CreateHotel(ctx context.Context, h *model.Hotel) error
	FindHotelByID(ctx context.Context, id uuid.UUID) (*model.Hotel, error)
	ListHoteles(ctx context.Context) ([]model.Hotel, error)

	CreateRestaurante(ctx context.Context, r *model.Restaurante) error
	FindRestauranteByID(ctx context.Context, id uuid.UUID) (*model.Restaurante, error)
	ListRestaurantes(ctx context.Context, hotelID uuid.UUID) ([]model.Restaurante, error)

	CreateUnidad(ctx context.Context, u *model.UnidadMedida) error
	FindUnidadByID(ctx context.Context, id uuid.UUID) (*model.UnidadMedida, error)
	ListUnidades(ctx context.Context) ([]model.UnidadMedida, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) CreateHotel(ctx context.Context, h *model.Hotel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *catalogoRepo) FindHotelByID(ctx context.Context, id uuid.UUID) (*model.Hotel, error) {
	var h model.Hotel
	err := r.db.WithContext(ctx).First(&h, id).Error
	return &h, err
}

func (r *catalogoRepo) ListHoteles(ctx context.Context) ([]model.Hotel, error) {
	var hoteles []model.Hotel
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&hoteles).Error
	return hoteles, err
}

func (r *catalogoRepo) CreateRestaurante(ctx context.Context, rest *model.Restaurante) error {
	return r.db.WithContext(ctx).Create(rest).Error
}

func (r *catalogoRepo) FindRestauranteByID(ctx context.Context, id uuid.UUID) (*model.Restaurante, error) {
	var rest model.Restaurante
	err := r.db.WithContext(ctx).Preload("Hotel").First(&rest, id).Error
	return &rest, err
}

func (r *catalogoRepo) ListRestaurantes(ctx context.Context, hotelID uuid.UUID) ([]model.Restaurante, error) {
	var restaurantes []model.Restaurante
	q := r.db.WithContext(ctx).Where("activo = true")
	if hotelID != uuid.Nil {
		q = q.Where("hotel_id = ?", hotelID)
	}
	err := q.Order("nombre ASC").Find(&restaurantes).Error
	return restaurantes, err
}

func (r *catalogoRepo) CreateUnidad(ctx context.Context, u *model.UnidadMedida) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *catalogoRepo) FindUnidadByID(ctx context.Context, id uuid.UUID) (*model.UnidadMedida, error) {
	var u model.UnidadMedida
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *catalogoRepo) ListUnidades(ctx context.Context) ([]model.UnidadMedida, error) {
	var unidades []model.UnidadMedida
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&unidades).Error
	return unidades, err
}
