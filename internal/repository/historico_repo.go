package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

type HistoricoRepository interface {
	// FindDia returns the existing snapshot rows for one (menu, platillo, fecha).
	FindDia(ctx context.Context, tx *gorm.DB, menuID, platilloID uuid.UUID, fecha time.Time) ([]model.Historico, error)
	Create(ctx context.Context, tx *gorm.DB, h *model.Historico) error
	Update(ctx context.Context, tx *gorm.DB, h *model.Historico) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	// Serie returns snapshot rows for one listing across a date range,
	// oldest first, for trend reads and exports.
	Serie(ctx context.Context, menuID, platilloID uuid.UUID, desde, hasta time.Time) ([]model.Historico, error)
	// SeriePorRestaurante returns the rows of every listing of a restaurante
	// in the range, for the consolidated export.
	SeriePorRestaurante(ctx context.Context, restauranteID uuid.UUID, desde, hasta time.Time) ([]model.Historico, error)

	DB() *gorm.DB
}

type historicoRepo struct{ db *gorm.DB }

func NewHistoricoRepository(db *gorm.DB) HistoricoRepository { return &historicoRepo{db: db} }

func (r *historicoRepo) DB() *gorm.DB { return r.db }

func (r *historicoRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *historicoRepo) FindDia(ctx context.Context, tx *gorm.DB, menuID, platilloID uuid.UUID, fecha time.Time) ([]model.Historico, error) {
	var filas []model.Historico
	err := r.handle(tx).WithContext(ctx).
		Where("menu_id = ? AND platillo_id = ? AND fecha = ?", menuID, platilloID, fecha.Format("2006-01-02")).
		Find(&filas).Error
	return filas, err
}

func (r *historicoRepo) Create(ctx context.Context, tx *gorm.DB, h *model.Historico) error {
	return r.handle(tx).WithContext(ctx).Create(h).Error
}

func (r *historicoRepo) Update(ctx context.Context, tx *gorm.DB, h *model.Historico) error {
	return r.handle(tx).WithContext(ctx).Omit("Ingrediente", "Receta").Save(h).Error
}

func (r *historicoRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.handle(tx).WithContext(ctx).Delete(&model.Historico{}, id).Error
}

func (r *historicoRepo) Serie(ctx context.Context, menuID, platilloID uuid.UUID, desde, hasta time.Time) ([]model.Historico, error) {
	var filas []model.Historico
	err := r.db.WithContext(ctx).
		Preload("Ingrediente").
		Preload("Receta").
		Where("menu_id = ? AND platillo_id = ? AND fecha BETWEEN ? AND ?",
			menuID, platilloID, desde.Format("2006-01-02"), hasta.Format("2006-01-02")).
		Order("fecha ASC").
		Find(&filas).Error
	return filas, err
}

func (r *historicoRepo) SeriePorRestaurante(ctx context.Context, restauranteID uuid.UUID, desde, hasta time.Time) ([]model.Historico, error) {
	var filas []model.Historico
	err := r.db.WithContext(ctx).
		Preload("Ingrediente").
		Preload("Receta").
		Where("restaurante_id = ? AND fecha BETWEEN ? AND ?",
			restauranteID, desde.Format("2006-01-02"), hasta.Format("2006-01-02")).
		Order("fecha ASC, platillo_id ASC").
		Find(&filas).Error
	return filas, err
}
