package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

func TestRecalcularReceta(t *testing.T) {
	ctx := context.Background()

	t.Run("sums converted line parciales", func(t *testing.T) {
		c := nuevaCocina(t)

		res, err := c.recalculo.RecalcularReceta(ctx, nil, c.masa.ID)
		require.NoError(t, err)
		// 600 g × 0.001 × $2.00 = $1.20
		assert.True(t, res.Costo.Equal(dec("1.20")), "got %s", res.Costo)
		assert.Empty(t, res.Advertencias)

		guardada, err := c.recetas.FindByIDConLineas(ctx, c.masa.ID)
		require.NoError(t, err)
		assert.True(t, guardada.Costo.Equal(dec("1.20")))
		assert.Equal(t, int64(1), guardada.Revision, "cost write bumps the revision")
		assert.True(t, guardada.Lineas[0].CostoParcial.Equal(dec("1.20")))
	})

	t.Run("flags assumed unit conversion", func(t *testing.T) {
		c := nuevaCocina(t)
		taza := &model.UnidadMedida{ID: uuid.New(), Nombre: "taza"}
		c.lineaMasa.UnidadID = &taza.ID
		c.lineaMasa.Unidad = taza

		res, err := c.recalculo.RecalcularReceta(ctx, nil, c.masa.ID)
		require.NoError(t, err)
		// no factor → 1:1 → 600 × $2.00
		assert.True(t, res.Costo.Equal(dec("1200")))
		require.Len(t, res.Advertencias, 1)
		assert.Contains(t, res.Advertencias[0], "conversion de unidad asumida")
	})

	t.Run("retries once past a concurrent write", func(t *testing.T) {
		c := nuevaCocina(t)
		c.recetas.conflictos = 1

		res, err := c.recalculo.RecalcularReceta(ctx, nil, c.masa.ID)
		require.NoError(t, err)
		assert.True(t, res.Costo.Equal(dec("1.20")))
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		c := nuevaCocina(t)
		c.recetas.conflictos = maxIntentos

		_, err := c.recalculo.RecalcularReceta(ctx, nil, c.masa.ID)
		var conflicto *costeo.ConflictError
		require.ErrorAs(t, err, &conflicto)
	})

	t.Run("unknown receta", func(t *testing.T) {
		c := nuevaCocina(t)
		_, err := c.recalculo.RecalcularReceta(ctx, nil, uuid.New())
		var nf *costeo.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

func TestRecalcularPlatillo(t *testing.T) {
	ctx := context.Background()
	params := costeo.Params{FactorGastos: dec("0.5"), DivisorPrecio: dec("0.3"), IVA: dec("0.16")}

	t.Run("derives the three figures", func(t *testing.T) {
		c := nuevaCocina(t)
		_, err := c.recalculo.RecalcularReceta(ctx, nil, c.masa.ID)
		require.NoError(t, err)

		res, err := c.recalculo.RecalcularPlatillo(ctx, nil, c.pizza.ID, params)
		require.NoError(t, err)
		// 2 × (1.20 / 10) + 0.2 × 15.00 = 0.24 + 3.00
		assert.True(t, res.CostoElaboracion.Equal(dec("3.24")), "got %s", res.CostoElaboracion)
		assert.True(t, res.CostoAdministrativo.Equal(dec("4.86")), "got %s", res.CostoAdministrativo)
		require.NotNil(t, res.PrecioSugerido)
		assert.True(t, res.PrecioSugerido.Equal(dec("16.2")), "got %s", res.PrecioSugerido)

		guardado, err := c.platillos.FindByID(ctx, c.pizza.ID)
		require.NoError(t, err)
		assert.True(t, guardado.CostoAdministrativo.Equal(dec("4.86")))
		assert.Equal(t, int64(1), guardado.Revision)
	})

	t.Run("zero divisor leaves precio sugerido undefined", func(t *testing.T) {
		c := nuevaCocina(t)
		sinDivisor := costeo.Params{FactorGastos: dec("0.5"), IVA: dec("0.16")}

		res, err := c.recalculo.RecalcularPlatillo(ctx, nil, c.pizza.ID, sinDivisor)
		require.NoError(t, err)
		assert.Nil(t, res.PrecioSugerido)

		guardado, err := c.platillos.FindByID(ctx, c.pizza.ID)
		require.NoError(t, err)
		assert.Nil(t, guardado.PrecioSugerido)
	})

	t.Run("flags assumed cantidad base of a consumed receta", func(t *testing.T) {
		c := nuevaCocina(t)
		c.masa.CantidadBase = dec("0")

		res, err := c.recalculo.RecalcularPlatillo(ctx, nil, c.pizza.ID, params)
		require.NoError(t, err)
		require.NotEmpty(t, res.Advertencias)
		assert.Contains(t, res.Advertencias[0], "cantidad base")
	})

	t.Run("gives up after repeated conflicts", func(t *testing.T) {
		c := nuevaCocina(t)
		c.platillos.conflictos = maxIntentos

		_, err := c.recalculo.RecalcularPlatillo(ctx, nil, c.pizza.ID, params)
		var conflicto *costeo.ConflictError
		require.ErrorAs(t, err, &conflicto)
	})
}

func TestRecalcularListado(t *testing.T) {
	ctx := context.Background()
	params := costeo.Params{FactorGastos: dec("0.5"), DivisorPrecio: dec("0.3"), IVA: dec("0.16")}

	t.Run("margen, costo porcentual y precio con IVA", func(t *testing.T) {
		c := nuevaCocina(t)
		listado, err := c.menus.FindListadoByID(ctx, c.listado.ID)
		require.NoError(t, err)

		err = c.recalculo.RecalcularListado(ctx, nil, listado, dec("4.86"), params)
		require.NoError(t, err)

		guardado, err := c.menus.FindListadoByID(ctx, c.listado.ID)
		require.NoError(t, err)
		assert.True(t, guardado.Margen.Equal(dec("10.14")), "got %s", guardado.Margen)
		require.NotNil(t, guardado.CostoPorcentual)
		assert.True(t, guardado.CostoPorcentual.Equal(dec("32.4")), "got %s", guardado.CostoPorcentual)
		assert.True(t, guardado.PrecioConIVA.Equal(dec("17.4")), "got %s", guardado.PrecioConIVA)
	})

	t.Run("zero price leaves costo porcentual undefined", func(t *testing.T) {
		c := nuevaCocina(t)
		listado, err := c.menus.FindListadoByID(ctx, c.listado.ID)
		require.NoError(t, err)
		listado.PrecioVenta = dec("0")

		err = c.recalculo.RecalcularListado(ctx, nil, listado, dec("4.86"), params)
		require.NoError(t, err)

		guardado, err := c.menus.FindListadoByID(ctx, c.listado.ID)
		require.NoError(t, err)
		assert.Nil(t, guardado.CostoPorcentual)
		assert.True(t, guardado.Margen.Equal(dec("-4.86")), "selling below cost is reported, not rejected")
	})
}
