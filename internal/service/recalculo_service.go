package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/model"
	"github.com/adornodavid/aybcosteo-sub000/internal/repository"
)

// RecalculoService is the rollup engine: it recomputes the denormalized cost
// of one composite (receta or platillo) from the current costs of its
// referenced items, and the derived figures of one menu listing. It never
// walks the dependency graph — the propagation scheduler decides WHAT to
// recompute and in which order; this service only knows HOW.
type RecalculoService interface {
	// RecalcularReceta re-sums the receta's lines and persists line parciales
	// plus the new total under a revision guard.
	RecalcularReceta(ctx context.Context, tx *gorm.DB, recetaID uuid.UUID) (*ResultadoReceta, error)
	// RecalcularPlatillo re-sums the platillo's lines and derives the
	// administrative cost and suggested price from the given params snapshot.
	RecalcularPlatillo(ctx context.Context, tx *gorm.DB, platilloID uuid.UUID, params costeo.Params) (*ResultadoPlatillo, error)
	// RecalcularListado rewrites one listing's margen, costo porcentual and
	// precio con IVA from the platillo's administrative cost.
	RecalcularListado(ctx context.Context, tx *gorm.DB, listado *model.MenuPlatillo, costoAdministrativo decimal.Decimal, params costeo.Params) error
}

type ResultadoReceta struct {
	Costo        decimal.Decimal
	Advertencias []string
}

type ResultadoPlatillo struct {
	CostoElaboracion    decimal.Decimal
	CostoAdministrativo decimal.Decimal
	PrecioSugerido      *decimal.Decimal
	Advertencias        []string
}

type recalculoService struct {
	recetas   repository.RecetaRepository
	platillos repository.PlatilloRepository
	menus     repository.MenuRepository
}

func NewRecalculoService(
	recetas repository.RecetaRepository,
	platillos repository.PlatilloRepository,
	menus repository.MenuRepository,
) RecalculoService {
	return &recalculoService{recetas: recetas, platillos: platillos, menus: menus}
}

// maxIntentos bounds the optimistic-write retry loop. A legitimate concurrent
// editor wins at most twice before we give up and surface the conflict.
const maxIntentos = 3

func (s *recalculoService) RecalcularReceta(ctx context.Context, tx *gorm.DB, recetaID uuid.UUID) (*ResultadoReceta, error) {
	var ultimo error
	for intento := 0; intento < maxIntentos; intento++ {
		rec, err := s.recetas.FindByIDConLineas(ctx, recetaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, costeo.NewNotFound("receta", recetaID.String())
			}
			return nil, costeo.NewPersistence("leer receta", err)
		}

		total := decimal.Zero
		advertencias := []string{}
		for i := range rec.Lineas {
			linea := &rec.Lineas[i]
			parcial, err := parcialDeLineaReceta(linea)
			if err != nil {
				return nil, err
			}
			if parcial.ConversionAsumida {
				advertencias = append(advertencias, fmt.Sprintf("linea %s: conversion de unidad asumida 1:1", linea.ID))
			}
			if parcial.CantidadBaseAsumida {
				advertencias = append(advertencias, fmt.Sprintf("linea %s: cantidad base de sub-receta asumida 1", linea.ID))
			}
			if !parcial.Costo.Equal(linea.CostoParcial) {
				if err := s.recetas.UpdateCostoParcial(ctx, tx, linea.ID, parcial.Costo); err != nil {
					return nil, costeo.NewPersistence("actualizar costo parcial", err)
				}
			}
			total = total.Add(parcial.Costo)
		}

		err = s.recetas.UpdateCosto(ctx, tx, rec.ID, total, rec.Revision)
		if err == nil {
			return &ResultadoReceta{Costo: total, Advertencias: advertencias}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, costeo.NewPersistence("actualizar costo de receta", err)
		}
		ultimo = err
	}
	return nil, costeo.NewConflict("receta %s modificada concurrentemente: %v", recetaID, ultimo)
}

func (s *recalculoService) RecalcularPlatillo(ctx context.Context, tx *gorm.DB, platilloID uuid.UUID, params costeo.Params) (*ResultadoPlatillo, error) {
	var ultimo error
	for intento := 0; intento < maxIntentos; intento++ {
		p, err := s.platillos.FindByIDConLineas(ctx, platilloID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, costeo.NewNotFound("platillo", platilloID.String())
			}
			return nil, costeo.NewPersistence("leer platillo", err)
		}

		elaboracion := decimal.Zero
		advertencias := []string{}
		for i := range p.Lineas {
			linea := &p.Lineas[i]
			parcial, err := parcialDeLineaPlatillo(linea)
			if err != nil {
				return nil, err
			}
			if parcial.ConversionAsumida {
				advertencias = append(advertencias, fmt.Sprintf("linea %s: conversion de unidad asumida 1:1", linea.ID))
			}
			if parcial.CantidadBaseAsumida {
				advertencias = append(advertencias, fmt.Sprintf("linea %s: cantidad base de receta asumida 1", linea.ID))
			}
			if !parcial.Costo.Equal(linea.CostoParcial) {
				if err := s.platillos.UpdateCostoParcial(ctx, tx, linea.ID, parcial.Costo); err != nil {
					return nil, costeo.NewPersistence("actualizar costo parcial", err)
				}
			}
			elaboracion = elaboracion.Add(parcial.Costo)
		}

		administrativo := params.CostoAdministrativo(elaboracion)
		sugerido := params.PrecioSugerido(administrativo)

		err = s.platillos.UpdateCostos(ctx, tx, p.ID, elaboracion, administrativo, sugerido, p.Revision)
		if err == nil {
			return &ResultadoPlatillo{
				CostoElaboracion:    elaboracion,
				CostoAdministrativo: administrativo,
				PrecioSugerido:      sugerido,
				Advertencias:        advertencias,
			}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, costeo.NewPersistence("actualizar costos de platillo", err)
		}
		ultimo = err
	}
	return nil, costeo.NewConflict("platillo %s modificado concurrentemente: %v", platilloID, ultimo)
}

func (s *recalculoService) RecalcularListado(ctx context.Context, tx *gorm.DB, listado *model.MenuPlatillo, costoAdministrativo decimal.Decimal, params costeo.Params) error {
	listado.Margen = costeo.Margen(listado.PrecioVenta, costoAdministrativo)
	listado.CostoPorcentual = costeo.CostoPorcentual(costoAdministrativo, listado.PrecioVenta)
	listado.PrecioConIVA = params.PrecioConIVA(listado.PrecioVenta)
	if err := s.menus.UpdateListado(ctx, tx, listado); err != nil {
		return costeo.NewPersistence("actualizar listado de menu", err)
	}
	return nil
}

// parcialDeLineaReceta prices one receta line. A dangling reference means the
// line was preloaded without its target, which only happens when the target
// row disappeared — treated as not found, never as zero cost.
func parcialDeLineaReceta(linea *model.RecetaLinea) (costeo.Parcial, error) {
	switch {
	case linea.IngredienteID != nil:
		if linea.Ingrediente == nil {
			return costeo.Parcial{}, costeo.NewNotFound("ingrediente", linea.IngredienteID.String())
		}
		return costeo.ParcialIngrediente(linea.Ingrediente, linea.Unidad, linea.Cantidad)
	case linea.SubRecetaID != nil:
		if linea.SubReceta == nil {
			return costeo.Parcial{}, costeo.NewNotFound("receta", linea.SubRecetaID.String())
		}
		return costeo.ParcialReceta(linea.SubReceta, linea.Cantidad)
	default:
		return costeo.Parcial{}, costeo.NewValidation("linea %s sin referencia a ingrediente ni receta", linea.ID)
	}
}

func parcialDeLineaPlatillo(linea *model.PlatilloLinea) (costeo.Parcial, error) {
	switch {
	case linea.IngredienteID != nil:
		if linea.Ingrediente == nil {
			return costeo.Parcial{}, costeo.NewNotFound("ingrediente", linea.IngredienteID.String())
		}
		return costeo.ParcialIngrediente(linea.Ingrediente, linea.Unidad, linea.Cantidad)
	case linea.RecetaID != nil:
		if linea.Receta == nil {
			return costeo.Parcial{}, costeo.NewNotFound("receta", linea.RecetaID.String())
		}
		return costeo.ParcialReceta(linea.Receta, linea.Cantidad)
	default:
		return costeo.Parcial{}, costeo.NewValidation("linea %s sin referencia a ingrediente ni receta", linea.ID)
	}
}
