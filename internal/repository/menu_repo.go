package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

type MenuRepository interface {
	Create(ctx context.Context, m *model.Menu) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Menu, error)
	List(ctx context.Context, restauranteID uuid.UUID) ([]model.Menu, error)
	Update(ctx context.Context, m *model.Menu) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	CreateListado(ctx context.Context, mp *model.MenuPlatillo) error
	FindListadoByID(ctx context.Context, id uuid.UUID) (*model.MenuPlatillo, error)
	FindListados(ctx context.Context, menuID uuid.UUID) ([]model.MenuPlatillo, error)
	// ListPorPlatillo returns every active listing of a platillo with
	// Menu→Restaurante preloaded, so the snapshot writer can stamp hotel and
	// restaurante on each row without extra lookups.
	ListPorPlatillo(ctx context.Context, platilloID uuid.UUID) ([]model.MenuPlatillo, error)
	UpdateListado(ctx context.Context, tx *gorm.DB, mp *model.MenuPlatillo) error
	DeleteListado(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepository(db *gorm.DB) MenuRepository { return &menuRepo{db: db} }

func (r *menuRepo) DB() *gorm.DB { return r.db }

func (r *menuRepo) Create(ctx context.Context, m *model.Menu) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	var m model.Menu
	err := r.db.WithContext(ctx).
		Preload("Restaurante").
		Preload("Platillos", "activo = true").
		Preload("Platillos.Platillo").
		First(&m, id).Error
	return &m, err
}

func (r *menuRepo) List(ctx context.Context, restauranteID uuid.UUID) ([]model.Menu, error) {
	var menus []model.Menu
	q := r.db.WithContext(ctx).Where("activo = true")
	if restauranteID != uuid.Nil {
		q = q.Where("restaurante_id = ?", restauranteID)
	}
	err := q.Order("nombre ASC").Find(&menus).Error
	return menus, err
}

func (r *menuRepo) Update(ctx context.Context, m *model.Menu) error {
	return r.db.WithContext(ctx).Omit("Platillos", "Restaurante").Save(m).Error
}

func (r *menuRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Menu{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *menuRepo) CreateListado(ctx context.Context, mp *model.MenuPlatillo) error {
	return r.db.WithContext(ctx).Create(mp).Error
}

func (r *menuRepo) FindListadoByID(ctx context.Context, id uuid.UUID) (*model.MenuPlatillo, error) {
	var mp model.MenuPlatillo
	err := r.db.WithContext(ctx).
		Preload("Menu").
		Preload("Menu.Restaurante").
		Preload("Platillo").
		First(&mp, id).Error
	return &mp, err
}

func (r *menuRepo) FindListados(ctx context.Context, menuID uuid.UUID) ([]model.MenuPlatillo, error) {
	var listados []model.MenuPlatillo
	err := r.db.WithContext(ctx).
		Preload("Platillo").
		Where("menu_id = ? AND activo = true", menuID).
		Find(&listados).Error
	return listados, err
}

func (r *menuRepo) ListPorPlatillo(ctx context.Context, platilloID uuid.UUID) ([]model.MenuPlatillo, error) {
	var listados []model.MenuPlatillo
	err := r.db.WithContext(ctx).
		Preload("Menu").
		Preload("Menu.Restaurante").
		Where("platillo_id = ? AND activo = true", platilloID).
		Find(&listados).Error
	return listados, err
}

func (r *menuRepo) UpdateListado(ctx context.Context, tx *gorm.DB, mp *model.MenuPlatillo) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Omit("Menu", "Platillo").Save(mp).Error
}

func (r *menuRepo) DeleteListado(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MenuPlatillo{}).Where("id = ?", id).Update("activo", false).Error
}
