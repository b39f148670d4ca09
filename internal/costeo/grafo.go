package costeo

import "github.com/google/uuid"

// Grafo is the reverse-dependency adjacency over recetas: an edge sub →
// consumidor means "consumidor has a usage line referencing sub". The
// propagation scheduler builds one per run (scoped to the affected closure)
// and walks it in topological order, so every trigger point shares one
// traversal instead of ad hoc recursion per call site.
type Grafo struct {
	consumidores map[uuid.UUID][]uuid.UUID
}

func NewGrafo() *Grafo {
	return &Grafo{consumidores: make(map[uuid.UUID][]uuid.UUID)}
}

// AgregarArista records that consumidor consumes sub.
func (g *Grafo) AgregarArista(sub, consumidor uuid.UUID) {
	g.consumidores[sub] = append(g.consumidores[sub], consumidor)
}

// Alcanzables returns every node reachable from desde following
// consumidores edges, desde excluded.
func (g *Grafo) Alcanzables(desde uuid.UUID) map[uuid.UUID]bool {
	visto := make(map[uuid.UUID]bool)
	cola := []uuid.UUID{desde}
	for len(cola) > 0 {
		actual := cola[0]
		cola = cola[1:]
		for _, c := range g.consumidores[actual] {
			if !visto[c] {
				visto[c] = true
				cola = append(cola, c)
			}
		}
	}
	return visto
}

// OrdenTopologico returns the closure reachable from semillas (semillas
// included) sorted so that every receta appears after all recetas it
// consumes. A cycle inside the closure violates the acyclicity invariant and
// returns a ValidationError instead of looping forever.
func (g *Grafo) OrdenTopologico(semillas []uuid.UUID) ([]uuid.UUID, error) {
	// Closure via BFS.
	enCierre := make(map[uuid.UUID]bool)
	cola := make([]uuid.UUID, 0, len(semillas))
	for _, s := range semillas {
		if !enCierre[s] {
			enCierre[s] = true
			cola = append(cola, s)
		}
	}
	for i := 0; i < len(cola); i++ {
		for _, c := range g.consumidores[cola[i]] {
			if !enCierre[c] {
				enCierre[c] = true
				cola = append(cola, c)
			}
		}
	}

	// In-degrees restricted to the closure.
	gradoEntrada := make(map[uuid.UUID]int, len(enCierre))
	for n := range enCierre {
		gradoEntrada[n] += 0
	}
	for sub := range enCierre {
		for _, c := range g.consumidores[sub] {
			if enCierre[c] {
				gradoEntrada[c]++
			}
		}
	}

	// Kahn.
	listos := make([]uuid.UUID, 0, len(enCierre))
	for n, grado := range gradoEntrada {
		if grado == 0 {
			listos = append(listos, n)
		}
	}
	orden := make([]uuid.UUID, 0, len(enCierre))
	for len(listos) > 0 {
		actual := listos[0]
		listos = listos[1:]
		orden = append(orden, actual)
		for _, c := range g.consumidores[actual] {
			if !enCierre[c] {
				continue
			}
			gradoEntrada[c]--
			if gradoEntrada[c] == 0 {
				listos = append(listos, c)
			}
		}
	}

	if len(orden) != len(enCierre) {
		return nil, NewValidation("ciclo detectado en la composicion de recetas")
	}
	return orden, nil
}
