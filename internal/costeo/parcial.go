package costeo

import (
	"github.com/shopspring/decimal"

	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

// Parcial is the computed cost of a single usage line plus the fallback
// flags accumulated while computing it. Pure value — nothing is persisted
// here.
type Parcial struct {
	Costo decimal.Decimal
	// ConversionAsumida: the line's unit had no explicit conversion and 1:1
	// was assumed.
	ConversionAsumida bool
	// CantidadBaseAsumida: the sub-receta had a zero/absent cantidad base and
	// 1 was assumed to avoid dividing by zero.
	CantidadBaseAsumida bool
}

// ParcialIngrediente computes cantidad × factor(unidad) × costoUnitario.
func ParcialIngrediente(ing *model.Ingrediente, unidad *model.UnidadMedida, cantidad decimal.Decimal) (Parcial, error) {
	if cantidad.IsNegative() {
		return Parcial{}, NewValidation("cantidad negativa en linea de ingrediente")
	}
	conv, err := Resolve(ing, unidad)
	if err != nil {
		return Parcial{}, err
	}
	return Parcial{
		Costo:             cantidad.Mul(conv.Factor).Mul(ing.CostoUnitario),
		ConversionAsumida: conv.Asumida,
	}, nil
}

// ParcialReceta computes (costo / cantidadBase) × cantidadUsada for a
// sub-receta consumed by another receta or by a platillo. A cantidad base of
// zero is treated as 1 — documented fallback, flagged, never silent.
func ParcialReceta(sub *model.Receta, cantidadUsada decimal.Decimal) (Parcial, error) {
	if sub == nil {
		return Parcial{}, NewNotFound("receta", "")
	}
	if cantidadUsada.IsNegative() {
		return Parcial{}, NewValidation("cantidad negativa en linea de receta")
	}
	base := sub.CantidadBase
	asumida := false
	if !base.IsPositive() {
		base = uno
		asumida = true
	}
	return Parcial{
		Costo:               sub.Costo.Div(base).Mul(cantidadUsada),
		CantidadBaseAsumida: asumida,
	}, nil
}
