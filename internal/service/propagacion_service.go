package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/repository"
)

// PropagacionService is the scheduler that turns one catalog edit into the
// complete set of downstream recomputations. Every entry point follows the
// same shape:
//
//  1. snapshot the global params once,
//  2. re-roll affected recetas in topological order (a receta is never
//     recomputed before the sub-recetas it consumes),
//  3. re-roll affected platillos concurrently (platillos never depend on
//     each other),
//  4. rewrite each platillo's menu listings and write the daily snapshot,
//  5. drop the cached public prices of touched platillos.
//
// No attempt is made to stop early where nothing changed downstream:
// correctness first, the catalog is small enough that recomputing a closure
// is cheap.
type PropagacionService interface {
	PropagarIngrediente(ctx context.Context, ingredienteID uuid.UUID) (*ResumenPropagacion, error)
	PropagarReceta(ctx context.Context, recetaID uuid.UUID) (*ResumenPropagacion, error)
	PropagarPlatillo(ctx context.Context, platilloID uuid.UUID) (*ResumenPropagacion, error)
	PropagarListado(ctx context.Context, listadoID uuid.UUID) (*ResumenPropagacion, error)
	// PropagarGlobal re-derives every active platillo. Triggered by a
	// configuracion change: elaboration costs are untouched, but every
	// administrative cost, suggested price and listing margin is stale.
	PropagarGlobal(ctx context.Context) (*ResumenPropagacion, error)
}

// ResumenPropagacion reports what one run touched.
type ResumenPropagacion struct {
	RecetasRecalculadas   int      `json:"recetas_recalculadas"`
	PlatillosRecalculados int      `json:"platillos_recalculados"`
	ListadosActualizados  int      `json:"listados_actualizados"`
	SnapshotsEscritos     int      `json:"snapshots_escritos"`
	Advertencias          []string `json:"advertencias,omitempty"`
}

// maxPlatillosEnParalelo bounds the dish fan-out so a global propagation
// does not open one DB connection per platillo.
const maxPlatillosEnParalelo = 8

type propagacionService struct {
	configuracion repository.ConfiguracionRepository
	recetas       repository.RecetaRepository
	platillos     repository.PlatilloRepository
	menus         repository.MenuRepository
	recalculo     RecalculoService
	historico     HistoricoService
	rdb           *redis.Client // nil in unit tests; cache invalidation is skipped
	ahora         func() time.Time
}

func NewPropagacionService(
	configuracion repository.ConfiguracionRepository,
	recetas repository.RecetaRepository,
	platillos repository.PlatilloRepository,
	menus repository.MenuRepository,
	recalculo RecalculoService,
	historico HistoricoService,
	rdb *redis.Client,
) PropagacionService {
	return &propagacionService{
		configuracion: configuracion,
		recetas:       recetas,
		platillos:     platillos,
		menus:         menus,
		recalculo:     recalculo,
		historico:     historico,
		rdb:           rdb,
		ahora:         time.Now,
	}
}

func (s *propagacionService) PropagarIngrediente(ctx context.Context, ingredienteID uuid.UUID) (*ResumenPropagacion, error) {
	params, err := s.configuracion.Snapshot(ctx)
	if err != nil {
		return nil, costeo.NewPersistence("snapshot de configuracion", err)
	}

	semillas, err := s.recetas.FindConsumidorasDeIngrediente(ctx, ingredienteID)
	if err != nil {
		return nil, costeo.NewPersistence("buscar recetas consumidoras", err)
	}

	resumen := &ResumenPropagacion{}
	recalculadas, err := s.propagarRecetas(ctx, semillas, resumen)
	if err != nil {
		return nil, err
	}

	afectados, err := s.platillos.FindQueUsanIngrediente(ctx, ingredienteID)
	if err != nil {
		return nil, costeo.NewPersistence("buscar platillos afectados", err)
	}
	afectados, err = s.unirPlatillosDeRecetas(ctx, afectados, recalculadas)
	if err != nil {
		return nil, err
	}

	if err := s.propagarPlatillos(ctx, afectados, params, resumen); err != nil {
		return nil, err
	}

	log.Info().
		Str("ingrediente_id", ingredienteID.String()).
		Int("recetas", resumen.RecetasRecalculadas).
		Int("platillos", resumen.PlatillosRecalculados).
		Msg("propagacion desde ingrediente completada")
	return resumen, nil
}

func (s *propagacionService) PropagarReceta(ctx context.Context, recetaID uuid.UUID) (*ResumenPropagacion, error) {
	params, err := s.configuracion.Snapshot(ctx)
	if err != nil {
		return nil, costeo.NewPersistence("snapshot de configuracion", err)
	}

	resumen := &ResumenPropagacion{}
	// The edited receta is its own seed: its lines or cantidad base changed.
	recalculadas, err := s.propagarRecetas(ctx, []uuid.UUID{recetaID}, resumen)
	if err != nil {
		return nil, err
	}

	afectados, err := s.unirPlatillosDeRecetas(ctx, nil, recalculadas)
	if err != nil {
		return nil, err
	}
	if err := s.propagarPlatillos(ctx, afectados, params, resumen); err != nil {
		return nil, err
	}

	log.Info().
		Str("receta_id", recetaID.String()).
		Int("recetas", resumen.RecetasRecalculadas).
		Int("platillos", resumen.PlatillosRecalculados).
		Msg("propagacion desde receta completada")
	return resumen, nil
}

func (s *propagacionService) PropagarPlatillo(ctx context.Context, platilloID uuid.UUID) (*ResumenPropagacion, error) {
	params, err := s.configuracion.Snapshot(ctx)
	if err != nil {
		return nil, costeo.NewPersistence("snapshot de configuracion", err)
	}
	resumen := &ResumenPropagacion{}
	if err := s.propagarPlatillos(ctx, []uuid.UUID{platilloID}, params, resumen); err != nil {
		return nil, err
	}
	return resumen, nil
}

func (s *propagacionService) PropagarListado(ctx context.Context, listadoID uuid.UUID) (*ResumenPropagacion, error) {
	params, err := s.configuracion.Snapshot(ctx)
	if err != nil {
		return nil, costeo.NewPersistence("snapshot de configuracion", err)
	}
	listado, err := s.menus.FindListadoByID(ctx, listadoID)
	if err != nil {
		return nil, costeo.NewNotFound("listado", listadoID.String())
	}
	platillo, err := s.platillos.FindByID(ctx, listado.PlatilloID)
	if err != nil {
		return nil, costeo.NewNotFound("platillo", listado.PlatilloID.String())
	}

	resumen := &ResumenPropagacion{}
	if err := s.recalculo.RecalcularListado(ctx, nil, listado, platillo.CostoAdministrativo, params); err != nil {
		return nil, err
	}
	resumen.ListadosActualizados++
	if err := s.historico.SnapshotListado(ctx, listado, s.ahora()); err != nil {
		return nil, err
	}
	resumen.SnapshotsEscritos++
	s.invalidarPrecio(ctx, listado.PlatilloID)
	return resumen, nil
}

func (s *propagacionService) PropagarGlobal(ctx context.Context) (*ResumenPropagacion, error) {
	params, err := s.configuracion.Snapshot(ctx)
	if err != nil {
		return nil, costeo.NewPersistence("snapshot de configuracion", err)
	}
	activos, err := s.platillos.ListActivosIDs(ctx)
	if err != nil {
		return nil, costeo.NewPersistence("listar platillos activos", err)
	}
	resumen := &ResumenPropagacion{}
	if err := s.propagarPlatillos(ctx, activos, params, resumen); err != nil {
		return nil, err
	}
	log.Info().
		Int("platillos", resumen.PlatillosRecalculados).
		Int("listados", resumen.ListadosActualizados).
		Msg("propagacion global completada")
	return resumen, nil
}

// propagarRecetas re-rolls the closure of recetas reachable from semillas,
// dependencies first. Returns the ids actually recalculated.
func (s *propagacionService) propagarRecetas(ctx context.Context, semillas []uuid.UUID, resumen *ResumenPropagacion) ([]uuid.UUID, error) {
	if len(semillas) == 0 {
		return nil, nil
	}
	aristas, err := s.recetas.FindTodasLasAristas(ctx)
	if err != nil {
		return nil, costeo.NewPersistence("leer grafo de recetas", err)
	}
	grafo := costeo.NewGrafo()
	for sub, consumidoras := range aristas {
		for _, c := range consumidoras {
			grafo.AgregarArista(sub, c)
		}
	}
	orden, err := grafo.OrdenTopologico(semillas)
	if err != nil {
		return nil, err
	}

	for _, recetaID := range orden {
		res, err := s.recalculo.RecalcularReceta(ctx, nil, recetaID)
		if err != nil {
			return nil, err
		}
		resumen.RecetasRecalculadas++
		resumen.Advertencias = append(resumen.Advertencias, res.Advertencias...)
	}
	return orden, nil
}

// propagarPlatillos re-rolls each platillo, then its listings and snapshots.
// Platillos never reference each other, so the fan-out runs concurrently.
func (s *propagacionService) propagarPlatillos(ctx context.Context, ids []uuid.UUID, params costeo.Params, resumen *ResumenPropagacion) error {
	if len(ids) == 0 {
		return nil
	}
	fecha := s.ahora()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPlatillosEnParalelo)

	for _, id := range ids {
		platilloID := id
		g.Go(func() error {
			res, err := s.recalculo.RecalcularPlatillo(gctx, nil, platilloID, params)
			if err != nil {
				return err
			}
			listados, err := s.menus.ListPorPlatillo(gctx, platilloID)
			if err != nil {
				return costeo.NewPersistence("leer listados de platillo", err)
			}
			for i := range listados {
				listado := &listados[i]
				if err := s.recalculo.RecalcularListado(gctx, nil, listado, res.CostoAdministrativo, params); err != nil {
					return err
				}
				if err := s.historico.SnapshotListado(gctx, listado, fecha); err != nil {
					return err
				}
			}
			s.invalidarPrecio(gctx, platilloID)

			mu.Lock()
			resumen.PlatillosRecalculados++
			resumen.ListadosActualizados += len(listados)
			resumen.SnapshotsEscritos += len(listados)
			resumen.Advertencias = append(resumen.Advertencias, res.Advertencias...)
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

func (s *propagacionService) unirPlatillosDeRecetas(ctx context.Context, base []uuid.UUID, recetas []uuid.UUID) ([]uuid.UUID, error) {
	visto := make(map[uuid.UUID]bool, len(base))
	union := make([]uuid.UUID, 0, len(base))
	for _, id := range base {
		if !visto[id] {
			visto[id] = true
			union = append(union, id)
		}
	}
	for _, recetaID := range recetas {
		ids, err := s.platillos.FindQueUsanReceta(ctx, recetaID)
		if err != nil {
			return nil, costeo.NewPersistence("buscar platillos que usan receta", err)
		}
		for _, id := range ids {
			if !visto[id] {
				visto[id] = true
				union = append(union, id)
			}
		}
	}
	return union, nil
}

// invalidarPrecio drops the cached public price. Failures are logged and
// swallowed: the entry expires by TTL anyway.
func (s *propagacionService) invalidarPrecio(ctx context.Context, platilloID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, "precio:"+platilloID.String()).Err(); err != nil {
		log.Warn().Err(err).Str("platillo_id", platilloID.String()).Msg("no se pudo invalidar precio cacheado")
	}
}
