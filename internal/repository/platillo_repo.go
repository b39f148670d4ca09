package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

type PlatilloRepository interface {
	Create(ctx context.Context, p *model.Platillo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Platillo, error)
	FindByIDConLineas(ctx context.Context, id uuid.UUID) (*model.Platillo, error)
	List(ctx context.Context, soloActivos bool) ([]model.Platillo, error)
	ListActivosIDs(ctx context.Context) ([]uuid.UUID, error)
	Update(ctx context.Context, p *model.Platillo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	CreateLinea(ctx context.Context, linea *model.PlatilloLinea) error
	UpdateLinea(ctx context.Context, linea *model.PlatilloLinea) error
	DeleteLinea(ctx context.Context, lineaID uuid.UUID) error
	FindLineas(ctx context.Context, platilloID uuid.UUID) ([]model.PlatilloLinea, error)

	// UpdateCostos writes the three derived figures under a revision guard.
	// gorm.ErrRecordNotFound signals a stale revision.
	UpdateCostos(ctx context.Context, tx *gorm.DB, id uuid.UUID, elaboracion, administrativo decimal.Decimal, sugerido *decimal.Decimal, revision int64) error
	UpdateCostoParcial(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID, costo decimal.Decimal) error

	FindQueUsanIngrediente(ctx context.Context, ingredienteID uuid.UUID) ([]uuid.UUID, error)
	FindQueUsanReceta(ctx context.Context, recetaID uuid.UUID) ([]uuid.UUID, error)

	DB() *gorm.DB
}

type platilloRepo struct{ db *gorm.DB }

func NewPlatilloRepository(db *gorm.DB) PlatilloRepository { return &platilloRepo{db: db} }

func (r *platilloRepo) DB() *gorm.DB { return r.db }

func (r *platilloRepo) Create(ctx context.Context, p *model.Platillo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *platilloRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Platillo, error) {
	var p model.Platillo
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *platilloRepo) FindByIDConLineas(ctx context.Context, id uuid.UUID) (*model.Platillo, error) {
	var p model.Platillo
	err := r.db.WithContext(ctx).
		Preload("Lineas").
		Preload("Lineas.Ingrediente").
		Preload("Lineas.Ingrediente.UnidadBase").
		Preload("Lineas.Receta").
		Preload("Lineas.Unidad").
		First(&p, id).Error
	return &p, err
}

func (r *platilloRepo) List(ctx context.Context, soloActivos bool) ([]model.Platillo, error) {
	var platillos []model.Platillo
	q := r.db.WithContext(ctx)
	if soloActivos {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&platillos).Error
	return platillos, err
}

func (r *platilloRepo) ListActivosIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Platillo{}).
		Where("activo = true").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *platilloRepo) Update(ctx context.Context, p *model.Platillo) error {
	return r.db.WithContext(ctx).Omit("Lineas").Save(p).Error
}

func (r *platilloRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Platillo{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *platilloRepo) CreateLinea(ctx context.Context, linea *model.PlatilloLinea) error {
	return r.db.WithContext(ctx).Create(linea).Error
}

func (r *platilloRepo) UpdateLinea(ctx context.Context, linea *model.PlatilloLinea) error {
	return r.db.WithContext(ctx).Omit("Ingrediente", "Receta", "Unidad").Save(linea).Error
}

func (r *platilloRepo) DeleteLinea(ctx context.Context, lineaID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PlatilloLinea{}, lineaID).Error
}

func (r *platilloRepo) FindLineas(ctx context.Context, platilloID uuid.UUID) ([]model.PlatilloLinea, error) {
	var lineas []model.PlatilloLinea
	err := r.db.WithContext(ctx).
		Preload("Ingrediente").
		Preload("Ingrediente.UnidadBase").
		Preload("Receta").
		Preload("Unidad").
		Where("platillo_id = ?", platilloID).
		Find(&lineas).Error
	return lineas, err
}

func (r *platilloRepo) UpdateCostos(ctx context.Context, tx *gorm.DB, id uuid.UUID, elaboracion, administrativo decimal.Decimal, sugerido *decimal.Decimal, revision int64) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	res := db.WithContext(ctx).Model(&model.Platillo{}).
		Where("id = ? AND revision = ?", id, revision).
		Updates(map[string]interface{}{
			"costo_elaboracion":    elaboracion,
			"costo_administrativo": administrativo,
			"precio_sugerido":      sugerido,
			"revision":             revision + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *platilloRepo) UpdateCostoParcial(ctx context.Context, tx *gorm.DB, lineaID uuid.UUID, costo decimal.Decimal) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Model(&model.PlatilloLinea{}).
		Where("id = ?", lineaID).
		Update("costo_parcial", costo).Error
}

func (r *platilloRepo) FindQueUsanIngrediente(ctx context.Context, ingredienteID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.PlatilloLinea{}).
		Distinct("platillo_id").
		Where("ingrediente_id = ?", ingredienteID).
		Pluck("platillo_id", &ids).Error
	return ids, err
}

func (r *platilloRepo) FindQueUsanReceta(ctx context.Context, recetaID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.PlatilloLinea{}).
		Distinct("platillo_id").
		Where("receta_id = ?", recetaID).
		Pluck("platillo_id", &ids).Error
	return ids, err
}
