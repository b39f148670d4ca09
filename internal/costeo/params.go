package costeo

import "github.com/shopspring/decimal"

var cien = decimal.NewFromInt(100)

// Params is the snapshot of the global configuracion taken once at the start
// of a propagation and passed explicitly through the whole fan-out, so a
// concurrent configuracion edit can never mix two overhead factors within
// one run.
type Params struct {
	FactorGastos  decimal.Decimal // overhead factor, e.g. 0.5 → +50%
	DivisorPrecio decimal.Decimal // price divisor, e.g. 0.3; zero → precio sugerido undefined
	IVA           decimal.Decimal // VAT rate, e.g. 0.16
}

// CostoAdministrativo applies the overhead factor:
// elaboracion × (1 + factorGastos).
func (p Params) CostoAdministrativo(costoElaboracion decimal.Decimal) decimal.Decimal {
	return costoElaboracion.Mul(decimal.NewFromInt(1).Add(p.FactorGastos))
}

// PrecioSugerido divides the administrative cost by the price divisor.
// Returns nil when the divisor is zero — "undefined", never infinity.
func (p Params) PrecioSugerido(costoAdministrativo decimal.Decimal) *decimal.Decimal {
	if p.DivisorPrecio.IsZero() {
		return nil
	}
	v := costoAdministrativo.Div(p.DivisorPrecio)
	return &v
}

// Margen is precioVenta − costoAdministrativo. Negative margins are valid
// output (the listing is sold below cost) and surface as-is.
func Margen(precioVenta, costoAdministrativo decimal.Decimal) decimal.Decimal {
	return precioVenta.Sub(costoAdministrativo)
}

// CostoPorcentual is costoAdministrativo / precioVenta × 100, or nil when
// precioVenta is not positive.
func CostoPorcentual(costoAdministrativo, precioVenta decimal.Decimal) *decimal.Decimal {
	if !precioVenta.IsPositive() {
		return nil
	}
	v := costoAdministrativo.Div(precioVenta).Mul(cien)
	return &v
}

// PrecioConIVA is precioVenta × (1 + iva).
func (p Params) PrecioConIVA(precioVenta decimal.Decimal) decimal.Decimal {
	return precioVenta.Mul(decimal.NewFromInt(1).Add(p.IVA))
}
