package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

// RecetaRepository persists recetas, their usage lines and the denormalized
// costs the rollup engine maintains. Cost writes are revision-guarded: the
// UPDATE carries the revision the caller read, and zero affected rows means
// someone else wrote in between.
type RecetaRepository interface {
	Create(ctx context.Context, rec *model.Receta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error)
	FindByIDConLineas(ctx context.Context, id uuid.UUID) (*model.Receta, error)
	List(ctx context.Context, soloActivas bool) ([]model.Receta, error)
	Update(ctx context.Context, rec *model.Receta) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	CreateLinea(ctx context.Context, linea *model.RecetaLinea) error
	UpdateLinea(ctx context.Context, linea *model.RecetaLinea) error
	DeleteLinea(ctx context.Context, lineaID uuid.UUID) error
	FindLineas(ctx context.Context, recetaID uuid.UUID) ([]model.RecetaLinea, error)

	// UpdateCosto persists a freshly rolled-up cost, bumping the revision.
	// Returns gorm.ErrRecordNotFound when the guard revision is stale.
	UpdateCosto(ctx context.Context, tx *gorm.DB, id uuid.UUID, costo decimal.Decimal, revision int64) error
	UpdateCostoParcial(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID, costo decimal.Decimal) error

	// Reverse-dependency queries used to build the propagation graph.
	FindConsumidorasDeIngrediente(ctx context.Context, ingredienteID uuid.UUID) ([]uuid.UUID, error)
	FindConsumidorasDeReceta(ctx context.Context, recetaID uuid.UUID) ([]uuid.UUID, error)
	FindTodasLasAristas(ctx context.Context) (map[uuid.UUID][]uuid.UUID, error)

	DB() *gorm.DB
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func (r *recetaRepo) DB() *gorm.DB { return r.db }

func (r *recetaRepo) Create(ctx context.Context, rec *model.Receta) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recetaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receta, error) {
	var rec model.Receta
	err := r.db.WithContext(ctx).Preload("UnidadBase").First(&rec, id).Error
	return &rec, err
}

func (r *recetaRepo) FindByIDConLineas(ctx context.Context, id uuid.UUID) (*model.Receta, error) {
	var rec model.Receta
	err := r.db.WithContext(ctx).
		Preload("UnidadBase").
		Preload("Lineas").
		Preload("Lineas.Ingrediente").
		Preload("Lineas.Ingrediente.UnidadBase").
		Preload("Lineas.SubReceta").
		Preload("Lineas.Unidad").
		First(&rec, id).Error
	return &rec, err
}

func (r *recetaRepo) List(ctx context.Context, soloActivas bool) ([]model.Receta, error) {
	var recetas []model.Receta
	q := r.db.WithContext(ctx).Preload("UnidadBase")
	if soloActivas {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&recetas).Error
	return recetas, err
}

func (r *recetaRepo) Update(ctx context.Context, rec *model.Receta) error {
	return r.db.WithContext(ctx).Omit("Lineas", "UnidadBase").Save(rec).Error
}

func (r *recetaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Receta{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *recetaRepo) CreateLinea(ctx context.Context, linea *model.RecetaLinea) error {
	return r.db.WithContext(ctx).Create(linea).Error
}

func (r *recetaRepo) UpdateLinea(ctx context.Context, linea *model.RecetaLinea) error {
	return r.db.WithContext(ctx).Omit("Ingrediente", "SubReceta", "Unidad").Save(linea).Error
}

func (r *recetaRepo) DeleteLinea(ctx context.Context, lineaID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RecetaLinea{}, lineaID).Error
}

func (r *recetaRepo) FindLineas(ctx context.Context, recetaID uuid.UUID) ([]model.RecetaLinea, error) {
	var lineas []model.RecetaLinea
	err := r.db.WithContext(ctx).
		Preload("Ingrediente").
		Preload("Ingrediente.UnidadBase").
		Preload("SubReceta").
		Preload("Unidad").
		Where("receta_id = ?", recetaID).
		Find(&lineas).Error
	return lineas, err
}

func (r *recetaRepo) UpdateCosto(ctx context.Context, tx *gorm.DB, id uuid.UUID, costo decimal.Decimal, revision int64) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	res := db.WithContext(ctx).Model(&model.Receta{}).
		Where("id = ? AND revision = ?", id, revision).
		Updates(map[string]interface{}{"costo": costo, "revision": revision + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recetaRepo) UpdateCostoParcial(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID, costo decimal.Decimal) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.RecetaLinea{}).
		Where("id = ?", lineaID).
		Update("costo_parcial", costo).Error
}

func (r *recetaRepo) FindConsumidorasDeIngrediente(ctx context.Context, ingredienteID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.RecetaLinea{}).
		Distinct("receta_id").
		Where("ingrediente_id = ?", ingredienteID).
		Pluck("receta_id", &ids).Error
	return ids, err
}

func (r *recetaRepo) FindConsumidorasDeReceta(ctx context.Context, recetaID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.RecetaLinea{}).
		Distinct("receta_id").
		Where("sub_receta_id = ?", recetaID).
		Pluck("receta_id", &ids).Error
	return ids, err
}

// FindTodasLasAristas loads every sub-receta → receta edge in one query. The
// propagation scheduler prefers one round trip over N reverse lookups.
func (r *recetaRepo) FindTodasLasAristas(ctx context.Context) (map[uuid.UUID][]uuid.UUID, error) {
	type arista struct {
		RecetaID    uuid.UUID
		SubRecetaID uuid.UUID
	}
	var filas []arista
	err := r.db.WithContext(ctx).Model(&model.RecetaLinea{}).
		Select("receta_id", "sub_receta_id").
		Where("sub_receta_id IS NOT NULL").
		Find(&filas).Error
	if err != nil {
		return nil, err
	}
	aristas := make(map[uuid.UUID][]uuid.UUID, len(filas))
	for _, f := range filas {
		aristas[f.SubRecetaID] = append(aristas[f.SubRecetaID], f.RecetaID)
	}
	return aristas, nil
}
