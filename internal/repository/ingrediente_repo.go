package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

type IngredienteRepository interface {
	Create(ctx context.Context, ing *model.Ingrediente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error)
	FindByClave(ctx context.Context, clave string) (*model.Ingrediente, error)
	List(ctx context.Context, soloActivos bool) ([]model.Ingrediente, error)
	Search(ctx context.Context, texto string) ([]model.Ingrediente, error)
	Update(ctx context.Context, ing *model.Ingrediente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type ingredienteRepo struct{ db *gorm.DB }

func NewIngredienteRepository(db *gorm.DB) IngredienteRepository { return &ingredienteRepo{db: db} }

func (r *ingredienteRepo) Create(ctx context.Context, ing *model.Ingrediente) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *ingredienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	var ing model.Ingrediente
	err := r.db.WithContext(ctx).Preload("UnidadBase").First(&ing, id).Error
	return &ing, err
}

func (r *ingredienteRepo) FindByClave(ctx context.Context, clave string) (*model.Ingrediente, error) {
	var ing model.Ingrediente
	err := r.db.WithContext(ctx).Preload("UnidadBase").Where("clave = ?", clave).First(&ing).Error
	return &ing, err
}

func (r *ingredienteRepo) List(ctx context.Context, soloActivos bool) ([]model.Ingrediente, error) {
	var ingredientes []model.Ingrediente
	q := r.db.WithContext(ctx).Preload("UnidadBase")
	if soloActivos {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&ingredientes).Error
	return ingredientes, err
}

func (r *ingredienteRepo) Search(ctx context.Context, texto string) ([]model.Ingrediente, error) {
	var ingredientes []model.Ingrediente
	patron := "%" + texto + "%"
	err := r.db.WithContext(ctx).Preload("UnidadBase").
		Where("activo = true AND (nombre ILIKE ? OR clave ILIKE ?)", patron, patron).
		Order("nombre ASC").Limit(50).
		Find(&ingredientes).Error
	return ingredientes, err
}

func (r *ingredienteRepo) Update(ctx context.Context, ing *model.Ingrediente) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

func (r *ingredienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ingrediente{}).Where("id = ?", id).Update("activo", false).Error
}
