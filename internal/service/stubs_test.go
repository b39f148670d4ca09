package service

// In-memory repository stubs shared by the service tests. They model just
// enough store behavior to exercise the rollup and propagation semantics:
// revision guards, reverse-dependency queries and per-day snapshot sets.

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// ─── Receta repo stub ────────────────────────────────────────────────────────

type stubRecetaRepo struct {
	mu      sync.Mutex
	recetas map[uuid.UUID]*model.Receta
	lineas  map[uuid.UUID][]*model.RecetaLinea
	// conflictos makes the next N cost writes fail with a stale revision,
	// simulating a concurrent editor.
	conflictos int
	// emulate gorm's Preload on reads
	ingredientesRef *stubIngredienteRepo
	catalogoRef     *stubCatalogoRepo
}

func newStubRecetaRepo() *stubRecetaRepo {
	return &stubRecetaRepo{
		recetas: make(map[uuid.UUID]*model.Receta),
		lineas:  make(map[uuid.UUID][]*model.RecetaLinea),
	}
}

// buscarViva returns the live stored receta so consumers read fresh costs.
func (r *stubRecetaRepo) buscarViva(id uuid.UUID) *model.Receta {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recetas[id]
}

// resolverLineaReceta fills the pointers a real read would have preloaded.
// Sub-recetas resolve to the live stored object so a fresh rollup of the sub
// is immediately visible to its consumers.
func (r *stubRecetaRepo) resolverLineaReceta(l *model.RecetaLinea) {
	if l.Ingrediente == nil && l.IngredienteID != nil && r.ingredientesRef != nil {
		l.Ingrediente = r.ingredientesRef.buscar(*l.IngredienteID)
	}
	if l.SubReceta == nil && l.SubRecetaID != nil {
		l.SubReceta = r.recetas[*l.SubRecetaID]
	}
	if l.Unidad == nil && l.UnidadID != nil && r.catalogoRef != nil {
		l.Unidad = r.catalogoRef.buscarUnidad(*l.UnidadID)
	}
}

func (r *stubRecetaRepo) DB() *gorm.DB { return nil }

func (r *stubRecetaRepo) Create(_ context.Context, rec *model.Receta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.recetas[rec.ID] = rec
	return nil
}

func (r *stubRecetaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recetas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *rec
	return &copia, nil
}

func (r *stubRecetaRepo) FindByIDConLineas(_ context.Context, id uuid.UUID) (*model.Receta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recetas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *rec
	copia.Lineas = make([]model.RecetaLinea, len(r.lineas[id]))
	for i, l := range r.lineas[id] {
		copia.Lineas[i] = *l
		r.resolverLineaReceta(&copia.Lineas[i])
	}
	return &copia, nil
}

func (r *stubRecetaRepo) List(_ context.Context, soloActivas bool) ([]model.Receta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Receta
	for _, rec := range r.recetas {
		if soloActivas && !rec.Activo {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubRecetaRepo) Update(_ context.Context, rec *model.Receta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	almacenada, ok := r.recetas[rec.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	lineas := almacenada.Lineas
	*almacenada = *rec
	almacenada.Lineas = lineas
	return nil
}

func (r *stubRecetaRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.recetas[id]; ok {
		rec.Activo = false
	}
	return nil
}

func (r *stubRecetaRepo) CreateLinea(_ context.Context, linea *model.RecetaLinea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if linea.ID == uuid.Nil {
		linea.ID = uuid.New()
	}
	r.lineas[linea.RecetaID] = append(r.lineas[linea.RecetaID], linea)
	return nil
}

func (r *stubRecetaRepo) UpdateLinea(_ context.Context, linea *model.RecetaLinea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lineas[linea.RecetaID] {
		if l.ID == linea.ID {
			l.Cantidad = linea.Cantidad
			l.UnidadID = linea.UnidadID
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRecetaRepo) DeleteLinea(_ context.Context, lineaID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for recetaID, lineas := range r.lineas {
		for i, l := range lineas {
			if l.ID == lineaID {
				r.lineas[recetaID] = append(lineas[:i], lineas[i+1:]...)
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRecetaRepo) FindLineas(_ context.Context, recetaID uuid.UUID) ([]model.RecetaLinea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.RecetaLinea, len(r.lineas[recetaID]))
	for i, l := range r.lineas[recetaID] {
		out[i] = *l
		r.resolverLineaReceta(&out[i])
	}
	return out, nil
}

func (r *stubRecetaRepo) UpdateCosto(_ context.Context, _ *gorm.DB, id uuid.UUID, costo decimal.Decimal, revision int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recetas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if r.conflictos > 0 {
		r.conflictos--
		rec.Revision++ // the concurrent editor won
		return gorm.ErrRecordNotFound
	}
	if rec.Revision != revision {
		return gorm.ErrRecordNotFound
	}
	rec.Costo = costo
	rec.Revision = revision + 1
	return nil
}

func (r *stubRecetaRepo) UpdateCostoParcial(_ context.Context, _ *gorm.DB, lineaID uuid.UUID, costo decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, lineas := range r.lineas {
		for _, l := range lineas {
			if l.ID == lineaID {
				l.CostoParcial = costo
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRecetaRepo) FindConsumidorasDeIngrediente(_ context.Context, ingredienteID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for recetaID, lineas := range r.lineas {
		for _, l := range lineas {
			if l.IngredienteID != nil && *l.IngredienteID == ingredienteID {
				ids = append(ids, recetaID)
				break
			}
		}
	}
	return ids, nil
}

func (r *stubRecetaRepo) FindConsumidorasDeReceta(_ context.Context, recetaID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for consumidora, lineas := range r.lineas {
		for _, l := range lineas {
			if l.SubRecetaID != nil && *l.SubRecetaID == recetaID {
				ids = append(ids, consumidora)
				break
			}
		}
	}
	return ids, nil
}

func (r *stubRecetaRepo) FindTodasLasAristas(_ context.Context) (map[uuid.UUID][]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	aristas := make(map[uuid.UUID][]uuid.UUID)
	for consumidora, lineas := range r.lineas {
		for _, l := range lineas {
			if l.SubRecetaID != nil {
				aristas[*l.SubRecetaID] = append(aristas[*l.SubRecetaID], consumidora)
			}
		}
	}
	return aristas, nil
}

// ─── Platillo repo stub ──────────────────────────────────────────────────────

type stubPlatilloRepo struct {
	mu         sync.Mutex
	platillos  map[uuid.UUID]*model.Platillo
	lineas     map[uuid.UUID][]*model.PlatilloLinea
	conflictos int
	// emulate gorm's Preload on reads
	ingredientesRef *stubIngredienteRepo
	recetasRef      *stubRecetaRepo
	catalogoRef     *stubCatalogoRepo
}

func newStubPlatilloRepo() *stubPlatilloRepo {
	return &stubPlatilloRepo{
		platillos: make(map[uuid.UUID]*model.Platillo),
		lineas:    make(map[uuid.UUID][]*model.PlatilloLinea),
	}
}

func (r *stubPlatilloRepo) resolverLineaPlatillo(l *model.PlatilloLinea) {
	if l.Ingrediente == nil && l.IngredienteID != nil && r.ingredientesRef != nil {
		l.Ingrediente = r.ingredientesRef.buscar(*l.IngredienteID)
	}
	if l.Receta == nil && l.RecetaID != nil && r.recetasRef != nil {
		l.Receta = r.recetasRef.buscarViva(*l.RecetaID)
	}
	if l.Unidad == nil && l.UnidadID != nil && r.catalogoRef != nil {
		l.Unidad = r.catalogoRef.buscarUnidad(*l.UnidadID)
	}
}

func (r *stubPlatilloRepo) DB() *gorm.DB { return nil }

func (r *stubPlatilloRepo) Create(_ context.Context, p *model.Platillo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.platillos[p.ID] = p
	return nil
}

func (r *stubPlatilloRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Platillo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.platillos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubPlatilloRepo) FindByIDConLineas(_ context.Context, id uuid.UUID) (*model.Platillo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.platillos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	copia.Lineas = make([]model.PlatilloLinea, len(r.lineas[id]))
	for i, l := range r.lineas[id] {
		copia.Lineas[i] = *l
		r.resolverLineaPlatillo(&copia.Lineas[i])
	}
	return &copia, nil
}

func (r *stubPlatilloRepo) List(_ context.Context, soloActivos bool) ([]model.Platillo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Platillo
	for _, p := range r.platillos {
		if soloActivos && !p.Activo {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPlatilloRepo) ListActivosIDs(_ context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for id, p := range r.platillos {
		if p.Activo {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *stubPlatilloRepo) Update(_ context.Context, p *model.Platillo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	almacenado, ok := r.platillos[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	lineas := almacenado.Lineas
	*almacenado = *p
	almacenado.Lineas = lineas
	return nil
}

func (r *stubPlatilloRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.platillos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubPlatilloRepo) CreateLinea(_ context.Context, linea *model.PlatilloLinea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if linea.ID == uuid.Nil {
		linea.ID = uuid.New()
	}
	r.lineas[linea.PlatilloID] = append(r.lineas[linea.PlatilloID], linea)
	return nil
}

func (r *stubPlatilloRepo) UpdateLinea(_ context.Context, linea *model.PlatilloLinea) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lineas[linea.PlatilloID] {
		if l.ID == linea.ID {
			l.Cantidad = linea.Cantidad
			l.UnidadID = linea.UnidadID
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPlatilloRepo) DeleteLinea(_ context.Context, lineaID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for platilloID, lineas := range r.lineas {
		for i, l := range lineas {
			if l.ID == lineaID {
				r.lineas[platilloID] = append(lineas[:i], lineas[i+1:]...)
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPlatilloRepo) FindLineas(_ context.Context, platilloID uuid.UUID) ([]model.PlatilloLinea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.PlatilloLinea, len(r.lineas[platilloID]))
	for i, l := range r.lineas[platilloID] {
		out[i] = *l
		r.resolverLineaPlatillo(&out[i])
	}
	return out, nil
}

func (r *stubPlatilloRepo) UpdateCostos(_ context.Context, _ *gorm.DB, id uuid.UUID, elaboracion, administrativo decimal.Decimal, sugerido *decimal.Decimal, revision int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.platillos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if r.conflictos > 0 {
		r.conflictos--
		p.Revision++
		return gorm.ErrRecordNotFound
	}
	if p.Revision != revision {
		return gorm.ErrRecordNotFound
	}
	p.CostoElaboracion = elaboracion
	p.CostoAdministrativo = administrativo
	p.PrecioSugerido = sugerido
	p.Revision = revision + 1
	return nil
}

func (r *stubPlatilloRepo) UpdateCostoParcial(_ context.Context, _ *gorm.DB, lineaID uuid.UUID, costo decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, lineas := range r.lineas {
		for _, l := range lineas {
			if l.ID == lineaID {
				l.CostoParcial = costo
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPlatilloRepo) FindQueUsanIngrediente(_ context.Context, ingredienteID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for platilloID, lineas := range r.lineas {
		for _, l := range lineas {
			if l.IngredienteID != nil && *l.IngredienteID == ingredienteID {
				ids = append(ids, platilloID)
				break
			}
		}
	}
	return ids, nil
}

func (r *stubPlatilloRepo) FindQueUsanReceta(_ context.Context, recetaID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for platilloID, lineas := range r.lineas {
		for _, l := range lineas {
			if l.RecetaID != nil && *l.RecetaID == recetaID {
				ids = append(ids, platilloID)
				break
			}
		}
	}
	return ids, nil
}

// ─── Menu repo stub ──────────────────────────────────────────────────────────

type stubMenuRepo struct {
	mu       sync.Mutex
	menus    map[uuid.UUID]*model.Menu
	listados map[uuid.UUID]*model.MenuPlatillo
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{
		menus:    make(map[uuid.UUID]*model.Menu),
		listados: make(map[uuid.UUID]*model.MenuPlatillo),
	}
}

func (r *stubMenuRepo) DB() *gorm.DB { return nil }

func (r *stubMenuRepo) Create(_ context.Context, m *model.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.menus[m.ID] = m
	return nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.menus[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *m
	return &copia, nil
}

func (r *stubMenuRepo) List(_ context.Context, restauranteID uuid.UUID) ([]model.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Menu
	for _, m := range r.menus {
		if restauranteID != uuid.Nil && m.RestauranteID != restauranteID {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMenuRepo) Update(_ context.Context, m *model.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.menus[m.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.menus[m.ID] = m
	return nil
}

func (r *stubMenuRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.menus[id]; ok {
		m.Activo = false
	}
	return nil
}

func (r *stubMenuRepo) CreateListado(_ context.Context, mp *model.MenuPlatillo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mp.ID == uuid.Nil {
		mp.ID = uuid.New()
	}
	r.listados[mp.ID] = mp
	return nil
}

func (r *stubMenuRepo) FindListadoByID(_ context.Context, id uuid.UUID) (*model.MenuPlatillo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mp, ok := r.listados[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *mp
	copia.Menu = r.menus[mp.MenuID]
	return &copia, nil
}

func (r *stubMenuRepo) FindListados(_ context.Context, menuID uuid.UUID) ([]model.MenuPlatillo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MenuPlatillo
	for _, mp := range r.listados {
		if mp.MenuID == menuID {
			out = append(out, *mp)
		}
	}
	return out, nil
}

func (r *stubMenuRepo) ListPorPlatillo(_ context.Context, platilloID uuid.UUID) ([]model.MenuPlatillo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MenuPlatillo
	for _, mp := range r.listados {
		if mp.PlatilloID != platilloID || !mp.Activo {
			continue
		}
		copia := *mp
		copia.Menu = r.menus[mp.MenuID]
		out = append(out, copia)
	}
	return out, nil
}

func (r *stubMenuRepo) UpdateListado(_ context.Context, _ *gorm.DB, mp *model.MenuPlatillo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	almacenado, ok := r.listados[mp.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	almacenado.PrecioVenta = mp.PrecioVenta
	almacenado.Margen = mp.Margen
	almacenado.CostoPorcentual = mp.CostoPorcentual
	almacenado.PrecioConIVA = mp.PrecioConIVA
	return nil
}

func (r *stubMenuRepo) DeleteListado(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mp, ok := r.listados[id]; ok {
		mp.Activo = false
	}
	return nil
}

// ─── Historico repo stub ─────────────────────────────────────────────────────

type stubHistoricoRepo struct {
	mu    sync.Mutex
	filas []*model.Historico
}

func newStubHistoricoRepo() *stubHistoricoRepo { return &stubHistoricoRepo{} }

func (r *stubHistoricoRepo) DB() *gorm.DB { return nil }

func mismoDia(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (r *stubHistoricoRepo) FindDia(_ context.Context, _ *gorm.DB, menuID, platilloID uuid.UUID, fecha time.Time) ([]model.Historico, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Historico
	for _, f := range r.filas {
		if f.MenuID == menuID && f.PlatilloID == platilloID && mismoDia(f.Fecha, fecha) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubHistoricoRepo) Create(_ context.Context, _ *gorm.DB, h *model.Historico) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	copia := *h
	r.filas = append(r.filas, &copia)
	return nil
}

func (r *stubHistoricoRepo) Update(_ context.Context, _ *gorm.DB, h *model.Historico) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.filas {
		if f.ID == h.ID {
			f.Cantidad = h.Cantidad
			f.Costo = h.Costo
			f.PrecioVenta = h.PrecioVenta
			f.CostoPorcentual = h.CostoPorcentual
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubHistoricoRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.filas {
		if f.ID == id {
			r.filas = append(r.filas[:i], r.filas[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubHistoricoRepo) Serie(_ context.Context, menuID, platilloID uuid.UUID, desde, hasta time.Time) ([]model.Historico, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Historico
	for _, f := range r.filas {
		if f.MenuID != menuID || f.PlatilloID != platilloID {
			continue
		}
		// Inclusive on both ends, matching the repository's BETWEEN on dates.
		if f.Fecha.Before(desde) || f.Fecha.After(hasta) {
			continue
		}
		out = append(out, *f)
	}
	ordenarPorFecha(out)
	return out, nil
}

func (r *stubHistoricoRepo) SeriePorRestaurante(_ context.Context, restauranteID uuid.UUID, desde, hasta time.Time) ([]model.Historico, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Historico
	for _, f := range r.filas {
		if f.RestauranteID != restauranteID {
			continue
		}
		if f.Fecha.Before(desde) || f.Fecha.After(hasta) {
			continue
		}
		out = append(out, *f)
	}
	ordenarPorFecha(out)
	return out, nil
}

func ordenarPorFecha(filas []model.Historico) {
	for i := 1; i < len(filas); i++ {
		for j := i; j > 0 && filas[j].Fecha.Before(filas[j-1].Fecha); j-- {
			filas[j], filas[j-1] = filas[j-1], filas[j]
		}
	}
}

// ─── Configuracion repo stub ─────────────────────────────────────────────────

type stubConfigRepo struct {
	mu     sync.Mutex
	params costeo.Params
	claves map[string]*model.Configuracion
	// sinParametros emulates an unseeded store: Snapshot refuses to hand out
	// params, the way the real repo does when factor_gastos is absent.
	sinParametros bool
}

func newStubConfigRepo(params costeo.Params) *stubConfigRepo {
	return &stubConfigRepo{params: params, claves: make(map[string]*model.Configuracion)}
}

func (r *stubConfigRepo) FindByClave(_ context.Context, clave string) (*model.Configuracion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.claves[clave]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

func (r *stubConfigRepo) List(_ context.Context) ([]model.Configuracion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Configuracion
	for _, c := range r.claves {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubConfigRepo) Upsert(_ context.Context, c *model.Configuracion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claves[c.Clave] = c
	switch c.Clave {
	case "factor_gastos":
		r.params.FactorGastos = c.Valor
	case "divisor_precio":
		r.params.DivisorPrecio = c.Valor
	case "iva":
		r.params.IVA = c.Valor
	}
	return nil
}

func (r *stubConfigRepo) Snapshot(_ context.Context) (costeo.Params, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sinParametros {
		return costeo.Params{}, costeo.NewNotFound("configuracion", "factor_gastos")
	}
	return r.params, nil
}

// ─── Ingrediente repo stub ───────────────────────────────────────────────────

type stubIngredienteRepo struct {
	mu           sync.Mutex
	ingredientes map[uuid.UUID]*model.Ingrediente
}

func newStubIngredienteRepo() *stubIngredienteRepo {
	return &stubIngredienteRepo{ingredientes: make(map[uuid.UUID]*model.Ingrediente)}
}

// buscar returns the live stored object, nil when absent. Used by the other
// stubs to emulate preloading.
func (r *stubIngredienteRepo) buscar(id uuid.UUID) *model.Ingrediente {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ingredientes[id]
}

func (r *stubIngredienteRepo) Create(_ context.Context, ing *model.Ingrediente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ing.ID == uuid.Nil {
		ing.ID = uuid.New()
	}
	r.ingredientes[ing.ID] = ing
	return nil
}

func (r *stubIngredienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ing, ok := r.ingredientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *ing
	return &copia, nil
}

func (r *stubIngredienteRepo) FindByClave(_ context.Context, clave string) (*model.Ingrediente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ing := range r.ingredientes {
		if ing.Clave == clave {
			copia := *ing
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubIngredienteRepo) List(_ context.Context, soloActivos bool) ([]model.Ingrediente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Ingrediente
	for _, ing := range r.ingredientes {
		if soloActivos && !ing.Activo {
			continue
		}
		out = append(out, *ing)
	}
	return out, nil
}

func (r *stubIngredienteRepo) Search(_ context.Context, _ string) ([]model.Ingrediente, error) {
	return nil, nil
}

func (r *stubIngredienteRepo) Update(_ context.Context, ing *model.Ingrediente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	almacenado, ok := r.ingredientes[ing.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	*almacenado = *ing
	return nil
}

func (r *stubIngredienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ing, ok := r.ingredientes[id]; ok {
		ing.Activo = false
	}
	return nil
}

// ─── Catalogo repo stub ──────────────────────────────────────────────────────

type stubCatalogoRepo struct {
	mu           sync.Mutex
	hoteles      map[uuid.UUID]*model.Hotel
	restaurantes map[uuid.UUID]*model.Restaurante
	unidades     map[uuid.UUID]*model.UnidadMedida
}

func newStubCatalogoRepo() *stubCatalogoRepo {
	return &stubCatalogoRepo{
		hoteles:      make(map[uuid.UUID]*model.Hotel),
		restaurantes: make(map[uuid.UUID]*model.Restaurante),
		unidades:     make(map[uuid.UUID]*model.UnidadMedida),
	}
}

func (r *stubCatalogoRepo) CreateHotel(_ context.Context, h *model.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.hoteles[h.ID] = h
	return nil
}

func (r *stubCatalogoRepo) FindHotelByID(_ context.Context, id uuid.UUID) (*model.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hoteles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return h, nil
}

func (r *stubCatalogoRepo) ListHoteles(_ context.Context) ([]model.Hotel, error) { return nil, nil }

func (r *stubCatalogoRepo) CreateRestaurante(_ context.Context, rest *model.Restaurante) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rest.ID == uuid.Nil {
		rest.ID = uuid.New()
	}
	r.restaurantes[rest.ID] = rest
	return nil
}

func (r *stubCatalogoRepo) FindRestauranteByID(_ context.Context, id uuid.UUID) (*model.Restaurante, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rest, ok := r.restaurantes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rest, nil
}

func (r *stubCatalogoRepo) ListRestaurantes(_ context.Context, _ uuid.UUID) ([]model.Restaurante, error) {
	return nil, nil
}

func (r *stubCatalogoRepo) CreateUnidad(_ context.Context, u *model.UnidadMedida) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.unidades[u.ID] = u
	return nil
}

func (r *stubCatalogoRepo) FindUnidadByID(_ context.Context, id uuid.UUID) (*model.UnidadMedida, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.unidades[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubCatalogoRepo) ListUnidades(_ context.Context) ([]model.UnidadMedida, error) {
	return nil, nil
}

func (r *stubCatalogoRepo) buscarUnidad(id uuid.UUID) *model.UnidadMedida {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unidades[id]
}

// ─── Shared fixture ──────────────────────────────────────────────────────────

// cocina is the canonical test catalog:
//
//	harina $2.00/kilo, queso $15.00/kilo
//	masa   = 600 g harina, batch of 10           → cuesta 1.20
//	pizza  = 2 × masa (0.24) + 0.2 kg queso (3)  → elaboracion 3.24
//	listado de pizza a $15.00 en un menu activo
//
// params: factor_gastos 0.5, divisor_precio 0.3, iva 0.16.
type cocina struct {
	ingredientes *stubIngredienteRepo
	recetas      *stubRecetaRepo
	platillos    *stubPlatilloRepo
	menus        *stubMenuRepo
	historico    *stubHistoricoRepo
	config       *stubConfigRepo
	catalogo     *stubCatalogoRepo

	recalculo    RecalculoService
	historicoSvc HistoricoService
	propagacion  PropagacionService

	kilo, gramo   *model.UnidadMedida
	harina, queso *model.Ingrediente
	masa          *model.Receta
	pizza         *model.Platillo
	lineaMasa     *model.RecetaLinea
	menu          *model.Menu
	listado       *model.MenuPlatillo
}

func nuevaCocina(t *testing.T) *cocina {
	t.Helper()
	ctx := context.Background()

	c := &cocina{
		ingredientes: newStubIngredienteRepo(),
		recetas:      newStubRecetaRepo(),
		platillos:    newStubPlatilloRepo(),
		menus:        newStubMenuRepo(),
		historico:    newStubHistoricoRepo(),
		catalogo:     newStubCatalogoRepo(),
	}
	c.recetas.ingredientesRef = c.ingredientes
	c.recetas.catalogoRef = c.catalogo
	c.platillos.ingredientesRef = c.ingredientes
	c.platillos.recetasRef = c.recetas
	c.platillos.catalogoRef = c.catalogo
	c.config = newStubConfigRepo(costeo.Params{
		FactorGastos:  dec("0.5"),
		DivisorPrecio: dec("0.3"),
		IVA:           dec("0.16"),
	})

	c.kilo = &model.UnidadMedida{ID: uuid.New(), Nombre: "kilo", Abreviacion: "kg"}
	c.gramo = &model.UnidadMedida{ID: uuid.New(), Nombre: "gramo", Abreviacion: "g", Factor: decPtr("0.001")}
	_ = c.catalogo.CreateUnidad(ctx, c.kilo)
	_ = c.catalogo.CreateUnidad(ctx, c.gramo)

	c.harina = &model.Ingrediente{
		ID: uuid.New(), Clave: "HAR-001", Nombre: "Harina",
		UnidadBaseID: c.kilo.ID, CostoUnitario: dec("2.00"),
		Activo: true, UnidadBase: c.kilo,
	}
	c.queso = &model.Ingrediente{
		ID: uuid.New(), Clave: "QUE-001", Nombre: "Queso",
		UnidadBaseID: c.kilo.ID, CostoUnitario: dec("15.00"),
		Activo: true, UnidadBase: c.kilo,
	}
	_ = c.ingredientes.Create(ctx, c.harina)
	_ = c.ingredientes.Create(ctx, c.queso)

	c.masa = &model.Receta{
		ID: uuid.New(), Nombre: "Masa", CantidadBase: dec("10"),
		UnidadBaseID: c.kilo.ID, Activo: true, UnidadBase: c.kilo,
	}
	_ = c.recetas.Create(ctx, c.masa)
	c.lineaMasa = &model.RecetaLinea{
		ID: uuid.New(), RecetaID: c.masa.ID,
		IngredienteID: &c.harina.ID, Cantidad: dec("600"),
		UnidadID: &c.gramo.ID,
		Ingrediente: c.harina, Unidad: c.gramo,
	}
	_ = c.recetas.CreateLinea(ctx, c.lineaMasa)

	c.pizza = &model.Platillo{ID: uuid.New(), Nombre: "Pizza", Activo: true}
	_ = c.platillos.Create(ctx, c.pizza)
	_ = c.platillos.CreateLinea(ctx, &model.PlatilloLinea{
		ID: uuid.New(), PlatilloID: c.pizza.ID,
		RecetaID: &c.masa.ID, Cantidad: dec("2"),
		Receta: c.masa,
	})
	_ = c.platillos.CreateLinea(ctx, &model.PlatilloLinea{
		ID: uuid.New(), PlatilloID: c.pizza.ID,
		IngredienteID: &c.queso.ID, Cantidad: dec("0.2"),
		Ingrediente: c.queso,
	})

	hotel := &model.Hotel{ID: uuid.New(), Nombre: "Hotel Centro"}
	_ = c.catalogo.CreateHotel(ctx, hotel)
	restaurante := &model.Restaurante{ID: uuid.New(), HotelID: hotel.ID, Nombre: "Trattoria", Hotel: hotel}
	_ = c.catalogo.CreateRestaurante(ctx, restaurante)

	c.menu = &model.Menu{
		ID: uuid.New(), RestauranteID: restaurante.ID, Nombre: "Cena",
		Activo: true, Restaurante: restaurante,
	}
	_ = c.menus.Create(ctx, c.menu)
	c.listado = &model.MenuPlatillo{
		ID: uuid.New(), MenuID: c.menu.ID, PlatilloID: c.pizza.ID,
		PrecioVenta: dec("15.00"), Activo: true,
	}
	_ = c.menus.CreateListado(ctx, c.listado)

	c.recalculo = NewRecalculoService(c.recetas, c.platillos, c.menus)
	c.historicoSvc = NewHistoricoService(c.historico, c.platillos, c.menus)
	c.propagacion = NewPropagacionService(
		c.config, c.recetas, c.platillos, c.menus,
		c.recalculo, c.historicoSvc, nil,
	)
	return c
}

// congelarFecha pins the propagation clock so snapshot dates are deterministic.
func (c *cocina) congelarFecha(fecha time.Time) {
	c.propagacion.(*propagacionService).ahora = func() time.Time { return fecha }
}
