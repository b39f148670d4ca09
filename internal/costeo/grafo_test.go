package costeo

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// posOf maps each id to its index in orden for before/after assertions.
func posOf(orden []uuid.UUID) map[uuid.UUID]int {
	pos := make(map[uuid.UUID]int, len(orden))
	for i, id := range orden {
		pos[id] = i
	}
	return pos
}

func TestGrafoAlcanzables(t *testing.T) {
	fondo := uuid.New()
	salsa := uuid.New()
	ragu := uuid.New()
	otra := uuid.New()

	g := NewGrafo()
	g.AgregarArista(fondo, salsa) // salsa uses fondo
	g.AgregarArista(salsa, ragu)  // ragu uses salsa

	desde := g.Alcanzables(fondo)
	assert.True(t, desde[salsa])
	assert.True(t, desde[ragu])
	assert.False(t, desde[fondo], "origin is excluded")
	assert.False(t, desde[otra])

	assert.Empty(t, g.Alcanzables(ragu), "leaf consumer reaches nothing")
}

func TestGrafoOrdenTopologico(t *testing.T) {
	fondo := uuid.New()
	salsa := uuid.New()
	ragu := uuid.New()
	aparte := uuid.New()

	g := NewGrafo()
	g.AgregarArista(fondo, salsa)
	g.AgregarArista(salsa, ragu)
	g.AgregarArista(fondo, ragu) // diamond: ragu also uses fondo directly

	t.Run("consumers come after what they consume", func(t *testing.T) {
		orden, err := g.OrdenTopologico([]uuid.UUID{fondo})
		require.NoError(t, err)
		require.Len(t, orden, 3)
		pos := posOf(orden)
		assert.Less(t, pos[fondo], pos[salsa])
		assert.Less(t, pos[salsa], pos[ragu])
	})

	t.Run("closure is restricted to the seeds' reach", func(t *testing.T) {
		orden, err := g.OrdenTopologico([]uuid.UUID{salsa})
		require.NoError(t, err)
		pos := posOf(orden)
		assert.Len(t, orden, 2)
		assert.NotContains(t, pos, fondo)
		assert.NotContains(t, pos, aparte)
	})

	t.Run("duplicate seeds collapse", func(t *testing.T) {
		orden, err := g.OrdenTopologico([]uuid.UUID{fondo, fondo, salsa})
		require.NoError(t, err)
		assert.Len(t, orden, 3)
	})

	t.Run("empty seeds yield empty order", func(t *testing.T) {
		orden, err := g.OrdenTopologico(nil)
		require.NoError(t, err)
		assert.Empty(t, orden)
	})
}

func TestGrafoOrdenTopologicoCiclo(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	g := NewGrafo()
	g.AgregarArista(a, b)
	g.AgregarArista(b, c)
	g.AgregarArista(c, a) // cycle

	_, err := g.OrdenTopologico([]uuid.UUID{a})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "ciclo")
}
