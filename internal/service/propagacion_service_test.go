package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

func TestPropagarIngrediente(t *testing.T) {
	ctx := context.Background()

	t.Run("reaches recetas, platillos, listados and snapshots", func(t *testing.T) {
		c := nuevaCocina(t)
		c.congelarFecha(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC))

		c.harina.CostoUnitario = dec("4.00") // price doubled

		resumen, err := c.propagacion.PropagarIngrediente(ctx, c.harina.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, resumen.RecetasRecalculadas)
		assert.Equal(t, 1, resumen.PlatillosRecalculados)
		assert.Equal(t, 1, resumen.ListadosActualizados)
		assert.Equal(t, 1, resumen.SnapshotsEscritos)

		masa, err := c.recetas.FindByID(ctx, c.masa.ID)
		require.NoError(t, err)
		assert.True(t, masa.Costo.Equal(dec("2.40")), "got %s", masa.Costo)

		pizza, err := c.platillos.FindByID(ctx, c.pizza.ID)
		require.NoError(t, err)
		// 2 × (2.40/10) + 0.2 × 15.00 = 0.48 + 3.00
		assert.True(t, pizza.CostoElaboracion.Equal(dec("3.48")), "got %s", pizza.CostoElaboracion)
		assert.True(t, pizza.CostoAdministrativo.Equal(dec("5.22")))

		listado, err := c.menus.FindListadoByID(ctx, c.listado.ID)
		require.NoError(t, err)
		assert.True(t, listado.Margen.Equal(dec("9.78")), "15.00 − 5.22")

		filas, err := c.historico.FindDia(ctx, nil, c.menu.ID, c.pizza.ID,
			time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Len(t, filas, 2, "one row per contributor")
	})

	t.Run("walks a receta chain dependencies first", func(t *testing.T) {
		c := nuevaCocina(t)
		c.congelarFecha(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC))

		// salsa consumes masa; lasagna consumes salsa. Correct ordering is
		// observable in the final numbers: salsa must see masa's fresh cost.
		salsa := &model.Receta{
			ID: uuid.New(), Nombre: "Salsa", CantidadBase: dec("4"),
			UnidadBaseID: c.kilo.ID, Activo: true,
		}
		require.NoError(t, c.recetas.Create(ctx, salsa))
		require.NoError(t, c.recetas.CreateLinea(ctx, &model.RecetaLinea{
			ID: uuid.New(), RecetaID: salsa.ID,
			SubRecetaID: &c.masa.ID, Cantidad: dec("2"), SubReceta: c.masa,
		}))

		lasagna := &model.Platillo{ID: uuid.New(), Nombre: "Lasagna", Activo: true}
		require.NoError(t, c.platillos.Create(ctx, lasagna))
		require.NoError(t, c.platillos.CreateLinea(ctx, &model.PlatilloLinea{
			ID: uuid.New(), PlatilloID: lasagna.ID,
			RecetaID: &salsa.ID, Cantidad: dec("1"), Receta: salsa,
		}))

		c.harina.CostoUnitario = dec("4.00")
		resumen, err := c.propagacion.PropagarIngrediente(ctx, c.harina.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, resumen.RecetasRecalculadas)
		assert.Equal(t, 2, resumen.PlatillosRecalculados)

		salsaGuardada, err := c.recetas.FindByID(ctx, salsa.ID)
		require.NoError(t, err)
		// 2 × (2.40/10) — stale masa cost would have given 0 here
		assert.True(t, salsaGuardada.Costo.Equal(dec("0.48")), "got %s", salsaGuardada.Costo)

		lasagnaGuardada, err := c.platillos.FindByID(ctx, lasagna.ID)
		require.NoError(t, err)
		// 1 × (0.48/4)
		assert.True(t, lasagnaGuardada.CostoElaboracion.Equal(dec("0.12")), "got %s", lasagnaGuardada.CostoElaboracion)
	})

	t.Run("ingredient unused by any receta still reaches its platillos", func(t *testing.T) {
		c := nuevaCocina(t)
		c.congelarFecha(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC))

		c.queso.CostoUnitario = dec("20.00")
		resumen, err := c.propagacion.PropagarIngrediente(ctx, c.queso.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, resumen.RecetasRecalculadas)
		assert.Equal(t, 1, resumen.PlatillosRecalculados)

		pizza, err := c.platillos.FindByID(ctx, c.pizza.ID)
		require.NoError(t, err)
		// masa was never rolled up (costo 0): 0 + 0.2 × 20.00
		assert.True(t, pizza.CostoElaboracion.Equal(dec("4")), "got %s", pizza.CostoElaboracion)
	})
}

func TestPropagarReceta(t *testing.T) {
	ctx := context.Background()
	c := nuevaCocina(t)
	c.congelarFecha(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC))

	resumen, err := c.propagacion.PropagarReceta(ctx, c.masa.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resumen.RecetasRecalculadas)
	assert.Equal(t, 1, resumen.PlatillosRecalculados)

	pizza, err := c.platillos.FindByID(ctx, c.pizza.ID)
	require.NoError(t, err)
	assert.True(t, pizza.CostoElaboracion.Equal(dec("3.24")))
}

func TestPropagarListado(t *testing.T) {
	ctx := context.Background()
	c := nuevaCocina(t)
	c.congelarFecha(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC))

	// Roll the platillo first so the listado sees a real administrative cost.
	_, err := c.propagacion.PropagarReceta(ctx, c.masa.ID)
	require.NoError(t, err)

	c.listado.PrecioVenta = dec("20.00")
	resumen, err := c.propagacion.PropagarListado(ctx, c.listado.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, resumen.PlatillosRecalculados, "a price edit recomputes no costs")
	assert.Equal(t, 1, resumen.ListadosActualizados)
	assert.Equal(t, 1, resumen.SnapshotsEscritos)

	listado, err := c.menus.FindListadoByID(ctx, c.listado.ID)
	require.NoError(t, err)
	assert.True(t, listado.Margen.Equal(dec("15.14")), "20.00 − 4.86, got %s", listado.Margen)
	assert.True(t, listado.PrecioConIVA.Equal(dec("23.2")))
}

func TestPropagarGlobal(t *testing.T) {
	ctx := context.Background()
	c := nuevaCocina(t)
	c.congelarFecha(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC))

	_, err := c.propagacion.PropagarReceta(ctx, c.masa.ID)
	require.NoError(t, err)

	// Overhead factor doubles; elaboration costs must stay put.
	c.config.params.FactorGastos = dec("1.0")

	resumen, err := c.propagacion.PropagarGlobal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, resumen.RecetasRecalculadas)
	assert.Equal(t, 1, resumen.PlatillosRecalculados)

	pizza, err := c.platillos.FindByID(ctx, c.pizza.ID)
	require.NoError(t, err)
	assert.True(t, pizza.CostoElaboracion.Equal(dec("3.24")))
	assert.True(t, pizza.CostoAdministrativo.Equal(dec("6.48")), "got %s", pizza.CostoAdministrativo)

	listado, err := c.menus.FindListadoByID(ctx, c.listado.ID)
	require.NoError(t, err)
	assert.True(t, listado.Margen.Equal(dec("8.52")), "15.00 − 6.48")
}

func TestPropagarPlatilloDesconocido(t *testing.T) {
	ctx := context.Background()
	c := nuevaCocina(t)

	_, err := c.propagacion.PropagarPlatillo(ctx, uuid.New())
	require.Error(t, err)
}

func TestPropagarSinParametros(t *testing.T) {
	ctx := context.Background()
	c := nuevaCocina(t)
	c.config.sinParametros = true

	_, err := c.propagacion.PropagarIngrediente(ctx, c.harina.ID)
	var nf *costeo.NotFoundError
	require.ErrorAs(t, err, &nf, "an unseeded parameter store aborts the run")

	// Nothing downstream was touched.
	masa, err := c.recetas.FindByID(ctx, c.masa.ID)
	require.NoError(t, err)
	assert.True(t, masa.Costo.IsZero(), "no rollup ran without parameters")

	_, err = c.propagacion.PropagarGlobal(ctx)
	require.ErrorAs(t, err, &nf)
}
