package costeo

import (
	"github.com/shopspring/decimal"

	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

var uno = decimal.NewFromInt(1)

// Conversion is the result of resolving a usage unit against an ingrediente's
// priced base unit. Asumida is the warning-level signal for the "missing
// conversion → assume 1:1" fallback: the number is usable but may misprice
// the line, and callers surface it instead of swallowing it.
type Conversion struct {
	Factor  decimal.Decimal
	Asumida bool
}

// Resolve returns the multiplicative factor converting "cantidad in unidad"
// into "cantidad in the ingrediente's unidad base".
//
//   - unidad == nil (line entered directly in the base unit): factor 1, exact.
//   - unidad is the base unit itself: factor 1, exact.
//   - unidad has an explicit Factor: that factor, exact.
//   - unidad exists but has no Factor: 1, flagged Asumida.
//
// A non-positive explicit factor is reference-data corruption and is refused.
func Resolve(ing *model.Ingrediente, unidad *model.UnidadMedida) (Conversion, error) {
	if ing == nil {
		return Conversion{}, NewNotFound("ingrediente", "")
	}
	if unidad == nil || unidad.ID == ing.UnidadBaseID {
		return Conversion{Factor: uno}, nil
	}
	if unidad.Factor == nil {
		return Conversion{Factor: uno, Asumida: true}, nil
	}
	if !unidad.Factor.IsPositive() {
		return Conversion{}, NewComputation("unidad %s tiene factor de conversion no positivo", unidad.Nombre)
	}
	return Conversion{Factor: *unidad.Factor}, nil
}
