package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

type ConfiguracionRepository interface {
	FindByClave(ctx context.Context, clave string) (*model.Configuracion, error)
	List(ctx context.Context) ([]model.Configuracion, error)
	Upsert(ctx context.Context, c *model.Configuracion) error
	// Snapshot reads the three engine parameters in one query. A propagation
	// run calls this exactly once and carries the value, so a concurrent
	// parameter edit can never mix two overhead factors inside one run.
	Snapshot(ctx context.Context) (costeo.Params, error)
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) FindByClave(ctx context.Context, clave string) (*model.Configuracion, error) {
	var c model.Configuracion
	err := r.db.WithContext(ctx).First(&c, "clave = ?", clave).Error
	return &c, err
}

func (r *configuracionRepo) List(ctx context.Context) ([]model.Configuracion, error) {
	var configs []model.Configuracion
	err := r.db.WithContext(ctx).Order("clave ASC").Find(&configs).Error
	return configs, err
}

func (r *configuracionRepo) Upsert(ctx context.Context, c *model.Configuracion) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clave"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor", "descripcion", "updated_at"}),
	}).Create(c).Error
}

func (r *configuracionRepo) Snapshot(ctx context.Context) (costeo.Params, error) {
	var configs []model.Configuracion
	err := r.db.WithContext(ctx).
		Where("clave IN ?", []string{model.ClaveFactorGastos, model.ClaveDivisorPrecio, model.ClaveIVA}).
		Find(&configs).Error
	if err != nil {
		return costeo.Params{}, err
	}
	var p costeo.Params
	presentes := make(map[string]bool, len(configs))
	for _, c := range configs {
		presentes[c.Clave] = true
		switch c.Clave {
		case model.ClaveFactorGastos:
			p.FactorGastos = c.Valor
		case model.ClaveDivisorPrecio:
			p.DivisorPrecio = c.Valor
		case model.ClaveIVA:
			p.IVA = c.Valor
		}
	}
	// The engine cannot derive anything without its two pricing parameters;
	// an unseeded store must abort the run, not cost everything at factor 0.
	// A missing IVA row only means prices are reported without tax.
	for _, clave := range []string{model.ClaveFactorGastos, model.ClaveDivisorPrecio} {
		if !presentes[clave] {
			return costeo.Params{}, costeo.NewNotFound("configuracion", clave)
		}
	}
	return p, nil
}
