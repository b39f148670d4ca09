package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/model"
	"github.com/adornodavid/aybcosteo-sub000/internal/repository"
)

type IngredienteService interface {
	Crear(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.IngredienteResponse, error)
	Buscar(ctx context.Context, texto string) ([]dto.IngredienteResponse, error)
	// Actualizar edits name and/or unit cost. A cost change triggers a full
	// downstream propagation before returning.
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, *ResumenPropagacion, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type ingredienteService struct {
	repo        repository.IngredienteRepository
	catalogo    repository.CatalogoRepository
	propagacion PropagacionService
}

func NewIngredienteService(
	repo repository.IngredienteRepository,
	catalogo repository.CatalogoRepository,
	propagacion PropagacionService,
) IngredienteService {
	return &ingredienteService{repo: repo, catalogo: catalogo, propagacion: propagacion}
}

func (s *ingredienteService) Crear(ctx context.Context, req dto.CrearIngredienteRequest) (*dto.IngredienteResponse, error) {
	if req.CostoUnitario.IsNegative() {
		return nil, costeo.NewValidation("costo unitario negativo")
	}
	unidadID, err := uuid.Parse(req.UnidadBaseID)
	if err != nil {
		return nil, costeo.NewValidation("unidad_base_id invalido")
	}
	unidad, err := s.catalogo.FindUnidadByID(ctx, unidadID)
	if err != nil {
		return nil, costeo.NewNotFound("unidad", req.UnidadBaseID)
	}

	ing := &model.Ingrediente{
		Clave:         req.Clave,
		Nombre:        req.Nombre,
		UnidadBaseID:  unidad.ID,
		CostoUnitario: req.CostoUnitario,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, costeo.NewPersistence("crear ingrediente", err)
	}
	ing.UnidadBase = unidad
	return ingredienteADTO(ing), nil
}

func (s *ingredienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.IngredienteResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, costeo.NewNotFound("ingrediente", id.String())
	}
	return ingredienteADTO(ing), nil
}

func (s *ingredienteService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.IngredienteResponse, error) {
	ingredientes, err := s.repo.List(ctx, !incluirInactivos)
	if err != nil {
		return nil, costeo.NewPersistence("listar ingredientes", err)
	}
	resp := make([]dto.IngredienteResponse, len(ingredientes))
	for i := range ingredientes {
		resp[i] = *ingredienteADTO(&ingredientes[i])
	}
	return resp, nil
}

func (s *ingredienteService) Buscar(ctx context.Context, texto string) ([]dto.IngredienteResponse, error) {
	ingredientes, err := s.repo.Search(ctx, texto)
	if err != nil {
		return nil, costeo.NewPersistence("buscar ingredientes", err)
	}
	resp := make([]dto.IngredienteResponse, len(ingredientes))
	for i := range ingredientes {
		resp[i] = *ingredienteADTO(&ingredientes[i])
	}
	return resp, nil
}

func (s *ingredienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarIngredienteRequest) (*dto.IngredienteResponse, *ResumenPropagacion, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, costeo.NewNotFound("ingrediente", id.String())
		}
		return nil, nil, costeo.NewPersistence("leer ingrediente", err)
	}

	if req.Nombre != "" {
		ing.Nombre = req.Nombre
	}
	costoCambio := false
	if req.CostoUnitario != nil && !req.CostoUnitario.Equal(ing.CostoUnitario) {
		if req.CostoUnitario.IsNegative() {
			return nil, nil, costeo.NewValidation("costo unitario negativo")
		}
		log.Info().
			Str("ingrediente_id", id.String()).
			Str("costo_anterior", ing.CostoUnitario.String()).
			Str("costo_nuevo", req.CostoUnitario.String()).
			Msg("cambio de costo de ingrediente")
		ing.CostoUnitario = *req.CostoUnitario
		costoCambio = true
	}

	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, nil, costeo.NewPersistence("actualizar ingrediente", err)
	}

	var resumen *ResumenPropagacion
	if costoCambio {
		resumen, err = s.propagacion.PropagarIngrediente(ctx, ing.ID)
		if err != nil {
			return nil, nil, err
		}
	}
	return ingredienteADTO(ing), resumen, nil
}

func (s *ingredienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func ingredienteADTO(ing *model.Ingrediente) *dto.IngredienteResponse {
	resp := &dto.IngredienteResponse{
		ID:            ing.ID.String(),
		Clave:         ing.Clave,
		Nombre:        ing.Nombre,
		UnidadBaseID:  ing.UnidadBaseID.String(),
		CostoUnitario: ing.CostoUnitario,
		Activo:        ing.Activo,
	}
	if ing.UnidadBase != nil {
		resp.UnidadBase = ing.UnidadBase.Nombre
	}
	return resp
}
