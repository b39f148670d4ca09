package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/model"
	"github.com/adornodavid/aybcosteo-sub000/internal/repository"
)

type RecetaService interface {
	Crear(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.RecetaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, *ResumenPropagacion, error)
	// Desactivar refuses while other recetas or platillos still reference
	// this receta: dangling references break the rollup.
	Desactivar(ctx context.Context, id uuid.UUID) error

	AgregarLinea(ctx context.Context, recetaID uuid.UUID, req dto.AgregarLineaRecetaRequest) (*dto.RecetaResponse, *ResumenPropagacion, error)
	ActualizarLinea(ctx context.Context, recetaID, lineaID uuid.UUID, req dto.ActualizarLineaRequest) (*dto.RecetaResponse, *ResumenPropagacion, error)
	EliminarLinea(ctx context.Context, recetaID, lineaID uuid.UUID) (*dto.RecetaResponse, *ResumenPropagacion, error)
}

type recetaService struct {
	repo        repository.RecetaRepository
	ingredientes repository.IngredienteRepository
	platillos   repository.PlatilloRepository
	catalogo    repository.CatalogoRepository
	propagacion PropagacionService
}

func NewRecetaService(
	repo repository.RecetaRepository,
	ingredientes repository.IngredienteRepository,
	platillos repository.PlatilloRepository,
	catalogo repository.CatalogoRepository,
	propagacion PropagacionService,
) RecetaService {
	return &recetaService{
		repo:         repo,
		ingredientes: ingredientes,
		platillos:    platillos,
		catalogo:     catalogo,
		propagacion:  propagacion,
	}
}

func (s *recetaService) Crear(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error) {
	if !req.CantidadBase.IsPositive() {
		return nil, costeo.NewValidation("cantidad base debe ser positiva")
	}
	unidadID, err := uuid.Parse(req.UnidadBaseID)
	if err != nil {
		return nil, costeo.NewValidation("unidad_base_id invalido")
	}
	if _, err := s.catalogo.FindUnidadByID(ctx, unidadID); err != nil {
		return nil, costeo.NewNotFound("unidad", req.UnidadBaseID)
	}

	rec := &model.Receta{
		Nombre:       req.Nombre,
		Notas:        req.Notas,
		CantidadBase: req.CantidadBase,
		UnidadBaseID: unidadID,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, costeo.NewPersistence("crear receta", err)
	}
	return recetaADTO(rec, nil), nil
}

func (s *recetaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.RecetaResponse, error) {
	rec, err := s.repo.FindByIDConLineas(ctx, id)
	if err != nil {
		return nil, costeo.NewNotFound("receta", id.String())
	}
	return recetaADTO(rec, nil), nil
}

func (s *recetaService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.RecetaResponse, error) {
	recetas, err := s.repo.List(ctx, !incluirInactivas)
	if err != nil {
		return nil, costeo.NewPersistence("listar recetas", err)
	}
	resp := make([]dto.RecetaResponse, len(recetas))
	for i := range recetas {
		resp[i] = *recetaADTO(&recetas[i], nil)
	}
	return resp, nil
}

func (s *recetaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, *ResumenPropagacion, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, costeo.NewNotFound("receta", id.String())
		}
		return nil, nil, costeo.NewPersistence("leer receta", err)
	}

	if req.Nombre != "" {
		rec.Nombre = req.Nombre
	}
	if req.Notas != nil {
		rec.Notas = req.Notas
	}
	baseCambio := false
	if req.CantidadBase != nil && !req.CantidadBase.Equal(rec.CantidadBase) {
		if !req.CantidadBase.IsPositive() {
			return nil, nil, costeo.NewValidation("cantidad base debe ser positiva")
		}
		rec.CantidadBase = *req.CantidadBase
		baseCambio = true
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, nil, costeo.NewPersistence("actualizar receta", err)
	}

	var resumen *ResumenPropagacion
	if baseCambio {
		resumen, err = s.propagacion.PropagarReceta(ctx, rec.ID)
		if err != nil {
			return nil, nil, err
		}
	}
	return recetaADTO(rec, nil), resumen, nil
}

func (s *recetaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	consumidoras, err := s.repo.FindConsumidorasDeReceta(ctx, id)
	if err != nil {
		return costeo.NewPersistence("buscar recetas consumidoras", err)
	}
	if len(consumidoras) > 0 {
		return costeo.NewValidation("la receta esta referenciada por %d recetas", len(consumidoras))
	}
	platillos, err := s.platillos.FindQueUsanReceta(ctx, id)
	if err != nil {
		return costeo.NewPersistence("buscar platillos que usan la receta", err)
	}
	if len(platillos) > 0 {
		return costeo.NewValidation("la receta esta referenciada por %d platillos", len(platillos))
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *recetaService) AgregarLinea(ctx context.Context, recetaID uuid.UUID, req dto.AgregarLineaRecetaRequest) (*dto.RecetaResponse, *ResumenPropagacion, error) {
	if (req.IngredienteID == nil) == (req.SubRecetaID == nil) {
		return nil, nil, costeo.NewValidation("la linea debe referenciar exactamente un ingrediente o una sub-receta")
	}
	if !req.Cantidad.IsPositive() {
		return nil, nil, costeo.NewValidation("cantidad debe ser positiva")
	}
	rec, err := s.repo.FindByIDConLineas(ctx, recetaID)
	if err != nil {
		return nil, nil, costeo.NewNotFound("receta", recetaID.String())
	}

	linea := &model.RecetaLinea{RecetaID: rec.ID, Cantidad: req.Cantidad}

	if req.IngredienteID != nil {
		ingID, err := uuid.Parse(*req.IngredienteID)
		if err != nil {
			return nil, nil, costeo.NewValidation("ingrediente_id invalido")
		}
		if _, err := s.ingredientes.FindByID(ctx, ingID); err != nil {
			return nil, nil, costeo.NewNotFound("ingrediente", *req.IngredienteID)
		}
		for i := range rec.Lineas {
			if rec.Lineas[i].IngredienteID != nil && *rec.Lineas[i].IngredienteID == ingID {
				return nil, nil, costeo.NewValidation("el ingrediente ya esta en la receta")
			}
		}
		linea.IngredienteID = &ingID
		if req.UnidadID != nil {
			unidadID, err := uuid.Parse(*req.UnidadID)
			if err != nil {
				return nil, nil, costeo.NewValidation("unidad_id invalido")
			}
			linea.UnidadID = &unidadID
		}
	} else {
		subID, err := uuid.Parse(*req.SubRecetaID)
		if err != nil {
			return nil, nil, costeo.NewValidation("sub_receta_id invalido")
		}
		if subID == rec.ID {
			return nil, nil, costeo.NewValidation("una receta no puede contenerse a si misma")
		}
		if _, err := s.repo.FindByID(ctx, subID); err != nil {
			return nil, nil, costeo.NewNotFound("receta", *req.SubRecetaID)
		}
		for i := range rec.Lineas {
			if rec.Lineas[i].SubRecetaID != nil && *rec.Lineas[i].SubRecetaID == subID {
				return nil, nil, costeo.NewValidation("la sub-receta ya esta en la receta")
			}
		}
		if err := s.verificarCiclo(ctx, rec.ID, subID); err != nil {
			return nil, nil, err
		}
		linea.SubRecetaID = &subID
	}

	if err := s.repo.CreateLinea(ctx, linea); err != nil {
		return nil, nil, costeo.NewPersistence("crear linea de receta", err)
	}
	return s.recargarYPropagar(ctx, rec.ID)
}

func (s *recetaService) ActualizarLinea(ctx context.Context, recetaID, lineaID uuid.UUID, req dto.ActualizarLineaRequest) (*dto.RecetaResponse, *ResumenPropagacion, error) {
	if !req.Cantidad.IsPositive() {
		return nil, nil, costeo.NewValidation("cantidad debe ser positiva")
	}
	linea, err := s.buscarLinea(ctx, recetaID, lineaID)
	if err != nil {
		return nil, nil, err
	}
	linea.Cantidad = req.Cantidad
	if req.UnidadID != nil {
		unidadID, err := uuid.Parse(*req.UnidadID)
		if err != nil {
			return nil, nil, costeo.NewValidation("unidad_id invalido")
		}
		linea.UnidadID = &unidadID
	}
	if err := s.repo.UpdateLinea(ctx, linea); err != nil {
		return nil, nil, costeo.NewPersistence("actualizar linea de receta", err)
	}
	return s.recargarYPropagar(ctx, recetaID)
}

func (s *recetaService) EliminarLinea(ctx context.Context, recetaID, lineaID uuid.UUID) (*dto.RecetaResponse, *ResumenPropagacion, error) {
	if _, err := s.buscarLinea(ctx, recetaID, lineaID); err != nil {
		return nil, nil, err
	}
	if err := s.repo.DeleteLinea(ctx, lineaID); err != nil {
		return nil, nil, costeo.NewPersistence("eliminar linea de receta", err)
	}
	return s.recargarYPropagar(ctx, recetaID)
}

// verificarCiclo rejects the edge receta→sub when sub already (transitively)
// consumes receta. Checked before the insert so the graph never holds a cycle.
func (s *recetaService) verificarCiclo(ctx context.Context, recetaID, subID uuid.UUID) error {
	aristas, err := s.repo.FindTodasLasAristas(ctx)
	if err != nil {
		return costeo.NewPersistence("leer grafo de recetas", err)
	}
	grafo := costeo.NewGrafo()
	for sub, consumidoras := range aristas {
		for _, c := range consumidoras {
			grafo.AgregarArista(sub, c)
		}
	}
	if grafo.Alcanzables(recetaID)[subID] {
		return costeo.NewValidation("agregar la sub-receta crearia un ciclo")
	}
	return nil
}

func (s *recetaService) buscarLinea(ctx context.Context, recetaID, lineaID uuid.UUID) (*model.RecetaLinea, error) {
	lineas, err := s.repo.FindLineas(ctx, recetaID)
	if err != nil {
		return nil, costeo.NewPersistence("leer lineas de receta", err)
	}
	for i := range lineas {
		if lineas[i].ID == lineaID {
			return &lineas[i], nil
		}
	}
	return nil, costeo.NewNotFound("linea de receta", lineaID.String())
}

func (s *recetaService) recargarYPropagar(ctx context.Context, recetaID uuid.UUID) (*dto.RecetaResponse, *ResumenPropagacion, error) {
	resumen, err := s.propagacion.PropagarReceta(ctx, recetaID)
	if err != nil {
		return nil, nil, err
	}
	rec, err := s.repo.FindByIDConLineas(ctx, recetaID)
	if err != nil {
		return nil, nil, costeo.NewPersistence("releer receta", err)
	}
	return recetaADTO(rec, resumen.Advertencias), resumen, nil
}

func recetaADTO(rec *model.Receta, advertencias []string) *dto.RecetaResponse {
	resp := &dto.RecetaResponse{
		ID:           rec.ID.String(),
		Nombre:       rec.Nombre,
		Notas:        rec.Notas,
		CantidadBase: rec.CantidadBase,
		Costo:        rec.Costo,
		Revision:     rec.Revision,
		Activo:       rec.Activo,
		Advertencias: advertencias,
	}
	if rec.UnidadBase != nil {
		resp.UnidadBase = rec.UnidadBase.Nombre
	}
	for i := range rec.Lineas {
		linea := &rec.Lineas[i]
		item := dto.LineaRecetaResponse{
			ID:           linea.ID.String(),
			Cantidad:     linea.Cantidad,
			CostoParcial: linea.CostoParcial,
		}
		if linea.IngredienteID != nil {
			id := linea.IngredienteID.String()
			item.IngredienteID = &id
			if linea.Ingrediente != nil {
				item.Nombre = linea.Ingrediente.Nombre
			}
		}
		if linea.SubRecetaID != nil {
			id := linea.SubRecetaID.String()
			item.SubRecetaID = &id
			if linea.SubReceta != nil {
				item.Nombre = linea.SubReceta.Nombre
			}
		}
		if linea.Unidad != nil {
			u := linea.Unidad.Nombre
			item.Unidad = &u
		}
		resp.Lineas = append(resp.Lineas, item)
	}
	return resp
}
