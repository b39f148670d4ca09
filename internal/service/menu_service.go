package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/model"
	"github.com/adornodavid/aybcosteo-sub000/internal/repository"
)

type MenuService interface {
	Crear(ctx context.Context, req dto.CrearMenuRequest) (*dto.MenuResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.MenuResponse, error)
	Listar(ctx context.Context, restauranteID uuid.UUID) ([]dto.MenuResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error

	// ListarPlatillo puts a platillo on a menu with its sale price. The
	// derived figures and the first snapshot are written before returning.
	ListarPlatillo(ctx context.Context, menuID uuid.UUID, req dto.ListarPlatilloRequest) (*dto.MenuPlatilloResponse, error)
	ActualizarPrecioVenta(ctx context.Context, listadoID uuid.UUID, req dto.ActualizarPrecioVentaRequest) (*dto.MenuPlatilloResponse, error)
	QuitarListado(ctx context.Context, listadoID uuid.UUID) error

	// PrecioPublico is the read side of the public price lookup, cached in
	// Redis. Propagation drops the cache entry on every price-affecting edit.
	PrecioPublico(ctx context.Context, platilloID uuid.UUID) (*dto.PrecioPublicoResponse, error)
}

type menuService struct {
	repo        repository.MenuRepository
	platillos   repository.PlatilloRepository
	catalogo    repository.CatalogoRepository
	propagacion PropagacionService
	rdb         *redis.Client
	cacheTTL    time.Duration
}

func NewMenuService(
	repo repository.MenuRepository,
	platillos repository.PlatilloRepository,
	catalogo repository.CatalogoRepository,
	propagacion PropagacionService,
	rdb *redis.Client,
	cacheTTL time.Duration,
) MenuService {
	return &menuService{
		repo:        repo,
		platillos:   platillos,
		catalogo:    catalogo,
		propagacion: propagacion,
		rdb:         rdb,
		cacheTTL:    cacheTTL,
	}
}

func (s *menuService) Crear(ctx context.Context, req dto.CrearMenuRequest) (*dto.MenuResponse, error) {
	restauranteID, err := uuid.Parse(req.RestauranteID)
	if err != nil {
		return nil, costeo.NewValidation("restaurante_id invalido")
	}
	if _, err := s.catalogo.FindRestauranteByID(ctx, restauranteID); err != nil {
		return nil, costeo.NewNotFound("restaurante", req.RestauranteID)
	}
	m := &model.Menu{RestauranteID: restauranteID, Nombre: req.Nombre, Activo: true}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, costeo.NewPersistence("crear menu", err)
	}
	return menuADTO(m), nil
}

func (s *menuService) Obtener(ctx context.Context, id uuid.UUID) (*dto.MenuResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, costeo.NewNotFound("menu", id.String())
	}
	return menuADTO(m), nil
}

func (s *menuService) Listar(ctx context.Context, restauranteID uuid.UUID) ([]dto.MenuResponse, error) {
	menus, err := s.repo.List(ctx, restauranteID)
	if err != nil {
		return nil, costeo.NewPersistence("listar menus", err)
	}
	resp := make([]dto.MenuResponse, len(menus))
	for i := range menus {
		resp[i] = *menuADTO(&menus[i])
	}
	return resp, nil
}

func (s *menuService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *menuService) ListarPlatillo(ctx context.Context, menuID uuid.UUID, req dto.ListarPlatilloRequest) (*dto.MenuPlatilloResponse, error) {
	if req.PrecioVenta.IsNegative() {
		return nil, costeo.NewValidation("precio de venta negativo")
	}
	platilloID, err := uuid.Parse(req.PlatilloID)
	if err != nil {
		return nil, costeo.NewValidation("platillo_id invalido")
	}
	if _, err := s.repo.FindByID(ctx, menuID); err != nil {
		return nil, costeo.NewNotFound("menu", menuID.String())
	}
	if _, err := s.platillos.FindByID(ctx, platilloID); err != nil {
		return nil, costeo.NewNotFound("platillo", req.PlatilloID)
	}

	listados, err := s.repo.FindListados(ctx, menuID)
	if err != nil {
		return nil, costeo.NewPersistence("leer listados de menu", err)
	}
	for i := range listados {
		if listados[i].PlatilloID == platilloID {
			return nil, costeo.NewValidation("el platillo ya esta listado en el menu")
		}
	}

	mp := &model.MenuPlatillo{
		MenuID:      menuID,
		PlatilloID:  platilloID,
		PrecioVenta: req.PrecioVenta,
		Activo:      true,
	}
	if err := s.repo.CreateListado(ctx, mp); err != nil {
		return nil, costeo.NewPersistence("crear listado de menu", err)
	}

	if _, err := s.propagacion.PropagarListado(ctx, mp.ID); err != nil {
		return nil, err
	}
	actualizado, err := s.repo.FindListadoByID(ctx, mp.ID)
	if err != nil {
		return nil, costeo.NewPersistence("releer listado", err)
	}
	return listadoADTO(actualizado), nil
}

func (s *menuService) ActualizarPrecioVenta(ctx context.Context, listadoID uuid.UUID, req dto.ActualizarPrecioVentaRequest) (*dto.MenuPlatilloResponse, error) {
	if req.PrecioVenta.IsNegative() {
		return nil, costeo.NewValidation("precio de venta negativo")
	}
	mp, err := s.repo.FindListadoByID(ctx, listadoID)
	if err != nil {
		return nil, costeo.NewNotFound("listado", listadoID.String())
	}
	mp.PrecioVenta = req.PrecioVenta
	if err := s.repo.UpdateListado(ctx, nil, mp); err != nil {
		return nil, costeo.NewPersistence("actualizar precio de venta", err)
	}
	if _, err := s.propagacion.PropagarListado(ctx, mp.ID); err != nil {
		return nil, err
	}
	actualizado, err := s.repo.FindListadoByID(ctx, mp.ID)
	if err != nil {
		return nil, costeo.NewPersistence("releer listado", err)
	}
	return listadoADTO(actualizado), nil
}

func (s *menuService) QuitarListado(ctx context.Context, listadoID uuid.UUID) error {
	return s.repo.DeleteListado(ctx, listadoID)
}

func (s *menuService) PrecioPublico(ctx context.Context, platilloID uuid.UUID) (*dto.PrecioPublicoResponse, error) {
	clave := "precio:" + platilloID.String()
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, clave).Result(); err == nil {
			var resp dto.PrecioPublicoResponse
			if json.Unmarshal([]byte(raw), &resp) == nil {
				return &resp, nil
			}
		}
	}

	listados, err := s.repo.ListPorPlatillo(ctx, platilloID)
	if err != nil || len(listados) == 0 {
		return nil, costeo.NewNotFound("platillo", platilloID.String())
	}
	platillo, err := s.platillos.FindByID(ctx, platilloID)
	if err != nil {
		return nil, costeo.NewNotFound("platillo", platilloID.String())
	}
	// Multiple listings of the same platillo share the price of the first
	// active one for the public lookup.
	resp := &dto.PrecioPublicoResponse{
		Platillo:     platillo.Nombre,
		PrecioVenta:  listados[0].PrecioVenta,
		PrecioConIVA: listados[0].PrecioConIVA,
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, clave, data, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("no se pudo cachear precio publico")
			}
		}
	}
	return resp, nil
}

func menuADTO(m *model.Menu) *dto.MenuResponse {
	resp := &dto.MenuResponse{
		ID:            m.ID.String(),
		RestauranteID: m.RestauranteID.String(),
		Nombre:        m.Nombre,
		Activo:        m.Activo,
	}
	if m.Restaurante != nil {
		resp.Restaurante = m.Restaurante.Nombre
	}
	for i := range m.Platillos {
		resp.Platillos = append(resp.Platillos, *listadoADTO(&m.Platillos[i]))
	}
	return resp
}

func listadoADTO(mp *model.MenuPlatillo) *dto.MenuPlatilloResponse {
	resp := &dto.MenuPlatilloResponse{
		ID:              mp.ID.String(),
		MenuID:          mp.MenuID.String(),
		PlatilloID:      mp.PlatilloID.String(),
		PrecioVenta:     mp.PrecioVenta,
		Margen:          mp.Margen,
		CostoPorcentual: mp.CostoPorcentual,
		PrecioConIVA:    mp.PrecioConIVA,
		Activo:          mp.Activo,
	}
	if mp.Platillo != nil {
		resp.Platillo = mp.Platillo.Nombre
	}
	return resp
}
