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

type PlatilloService interface {
	Crear(ctx context.Context, req dto.CrearPlatilloRequest) (*dto.PlatilloResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PlatilloResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.PlatilloResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPlatilloRequest) (*dto.PlatilloResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error

	AgregarLinea(ctx context.Context, platilloID uuid.UUID, req dto.AgregarLineaPlatilloRequest) (*dto.PlatilloResponse, *ResumenPropagacion, error)
	ActualizarLinea(ctx context.Context, platilloID, lineaID uuid.UUID, req dto.ActualizarLineaRequest) (*dto.PlatilloResponse, *ResumenPropagacion, error)
	EliminarLinea(ctx context.Context, platilloID, lineaID uuid.UUID) (*dto.PlatilloResponse, *ResumenPropagacion, error)
}

type platilloService struct {
	repo         repository.PlatilloRepository
	ingredientes repository.IngredienteRepository
	recetas      repository.RecetaRepository
	propagacion  PropagacionService
}

func NewPlatilloService(
	repo repository.PlatilloRepository,
	ingredientes repository.IngredienteRepository,
	recetas repository.RecetaRepository,
	propagacion PropagacionService,
) PlatilloService {
	return &platilloService{
		repo:         repo,
		ingredientes: ingredientes,
		recetas:      recetas,
		propagacion:  propagacion,
	}
}

func (s *platilloService) Crear(ctx context.Context, req dto.CrearPlatilloRequest) (*dto.PlatilloResponse, error) {
	p := &model.Platillo{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, costeo.NewPersistence("crear platillo", err)
	}
	return platilloADTO(p, nil), nil
}

func (s *platilloService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PlatilloResponse, error) {
	p, err := s.repo.FindByIDConLineas(ctx, id)
	if err != nil {
		return nil, costeo.NewNotFound("platillo", id.String())
	}
	return platilloADTO(p, nil), nil
}

func (s *platilloService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.PlatilloResponse, error) {
	platillos, err := s.repo.List(ctx, !incluirInactivos)
	if err != nil {
		return nil, costeo.NewPersistence("listar platillos", err)
	}
	resp := make([]dto.PlatilloResponse, len(platillos))
	for i := range platillos {
		resp[i] = *platilloADTO(&platillos[i], nil)
	}
	return resp, nil
}

func (s *platilloService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPlatilloRequest) (*dto.PlatilloResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, costeo.NewNotFound("platillo", id.String())
		}
		return nil, costeo.NewPersistence("leer platillo", err)
	}
	if req.Nombre != "" {
		p.Nombre = req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, costeo.NewPersistence("actualizar platillo", err)
	}
	return platilloADTO(p, nil), nil
}

func (s *platilloService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *platilloService) AgregarLinea(ctx context.Context, platilloID uuid.UUID, req dto.AgregarLineaPlatilloRequest) (*dto.PlatilloResponse, *ResumenPropagacion, error) {
	if (req.IngredienteID == nil) == (req.RecetaID == nil) {
		return nil, nil, costeo.NewValidation("la linea debe referenciar exactamente un ingrediente o una receta")
	}
	if !req.Cantidad.IsPositive() {
		return nil, nil, costeo.NewValidation("cantidad debe ser positiva")
	}
	p, err := s.repo.FindByIDConLineas(ctx, platilloID)
	if err != nil {
		return nil, nil, costeo.NewNotFound("platillo", platilloID.String())
	}

	linea := &model.PlatilloLinea{PlatilloID: p.ID, Cantidad: req.Cantidad}

	if req.IngredienteID != nil {
		ingID, err := uuid.Parse(*req.IngredienteID)
		if err != nil {
			return nil, nil, costeo.NewValidation("ingrediente_id invalido")
		}
		if _, err := s.ingredientes.FindByID(ctx, ingID); err != nil {
			return nil, nil, costeo.NewNotFound("ingrediente", *req.IngredienteID)
		}
		for i := range p.Lineas {
			if p.Lineas[i].IngredienteID != nil && *p.Lineas[i].IngredienteID == ingID {
				return nil, nil, costeo.NewValidation("el ingrediente ya esta en el platillo")
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
		recID, err := uuid.Parse(*req.RecetaID)
		if err != nil {
			return nil, nil, costeo.NewValidation("receta_id invalido")
		}
		if _, err := s.recetas.FindByID(ctx, recID); err != nil {
			return nil, nil, costeo.NewNotFound("receta", *req.RecetaID)
		}
		for i := range p.Lineas {
			if p.Lineas[i].RecetaID != nil && *p.Lineas[i].RecetaID == recID {
				return nil, nil, costeo.NewValidation("la receta ya esta en el platillo")
			}
		}
		linea.RecetaID = &recID
	}

	if err := s.repo.CreateLinea(ctx, linea); err != nil {
		return nil, nil, costeo.NewPersistence("crear linea de platillo", err)
	}
	return s.recargarYPropagar(ctx, p.ID)
}

func (s *platilloService) ActualizarLinea(ctx context.Context, platilloID, lineaID uuid.UUID, req dto.ActualizarLineaRequest) (*dto.PlatilloResponse, *ResumenPropagacion, error) {
	if !req.Cantidad.IsPositive() {
		return nil, nil, costeo.NewValidation("cantidad debe ser positiva")
	}
	linea, err := s.buscarLinea(ctx, platilloID, lineaID)
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
		return nil, nil, costeo.NewPersistence("actualizar linea de platillo", err)
	}
	return s.recargarYPropagar(ctx, platilloID)
}

func (s *platilloService) EliminarLinea(ctx context.Context, platilloID, lineaID uuid.UUID) (*dto.PlatilloResponse, *ResumenPropagacion, error) {
	if _, err := s.buscarLinea(ctx, platilloID, lineaID); err != nil {
		return nil, nil, err
	}
	if err := s.repo.DeleteLinea(ctx, lineaID); err != nil {
		return nil, nil, costeo.NewPersistence("eliminar linea de platillo", err)
	}
	return s.recargarYPropagar(ctx, platilloID)
}

func (s *platilloService) buscarLinea(ctx context.Context, platilloID, lineaID uuid.UUID) (*model.PlatilloLinea, error) {
	lineas, err := s.repo.FindLineas(ctx, platilloID)
	if err != nil {
		return nil, costeo.NewPersistence("leer lineas de platillo", err)
	}
	for i := range lineas {
		if lineas[i].ID == lineaID {
			return &lineas[i], nil
		}
	}
	return nil, costeo.NewNotFound("linea de platillo", lineaID.String())
}

func (s *platilloService) recargarYPropagar(ctx context.Context, platilloID uuid.UUID) (*dto.PlatilloResponse, *ResumenPropagacion, error) {
	resumen, err := s.propagacion.PropagarPlatillo(ctx, platilloID)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.repo.FindByIDConLineas(ctx, platilloID)
	if err != nil {
		return nil, nil, costeo.NewPersistence("releer platillo", err)
	}
	return platilloADTO(p, resumen.Advertencias), resumen, nil
}

func platilloADTO(p *model.Platillo, advertencias []string) *dto.PlatilloResponse {
	resp := &dto.PlatilloResponse{
		ID:                  p.ID.String(),
		Nombre:              p.Nombre,
		Descripcion:         p.Descripcion,
		CostoElaboracion:    p.CostoElaboracion,
		CostoAdministrativo: p.CostoAdministrativo,
		PrecioSugerido:      p.PrecioSugerido,
		Revision:            p.Revision,
		Activo:              p.Activo,
		Advertencias:        advertencias,
	}
	for i := range p.Lineas {
		linea := &p.Lineas[i]
		item := dto.LineaPlatilloResponse{
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
		if linea.RecetaID != nil {
			id := linea.RecetaID.String()
			item.RecetaID = &id
			if linea.Receta != nil {
				item.Nombre = linea.Receta.Nombre
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
