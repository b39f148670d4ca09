package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/model"
	"github.com/adornodavid/aybcosteo-sub000/internal/repository"
)

// CatalogoService manages the reference data: hoteles, restaurantes and
// unidades de medida.
type CatalogoService interface {
	CrearHotel(ctx context.Context, req dto.CrearHotelRequest) (*dto.HotelResponse, error)
	ListarHoteles(ctx context.Context) ([]dto.HotelResponse, error)
	CrearRestaurante(ctx context.Context, req dto.CrearRestauranteRequest) (*dto.RestauranteResponse, error)
	ListarRestaurantes(ctx context.Context, hotelID uuid.UUID) ([]dto.RestauranteResponse, error)
	CrearUnidad(ctx context.Context, req dto.CrearUnidadRequest) (*dto.UnidadResponse, error)
	ListarUnidades(ctx context.Context) ([]dto.UnidadResponse, error)
}

type catalogoService struct {
	repo repository.CatalogoRepository
}

func NewCatalogoService(repo repository.CatalogoRepository) CatalogoService {
	return &catalogoService{repo: repo}
}

func (s *catalogoService) CrearHotel(ctx context.Context, req dto.CrearHotelRequest) (*dto.HotelResponse, error) {
	h := &model.Hotel{Nombre: req.Nombre, Activo: true}
	if err := s.repo.CreateHotel(ctx, h); err != nil {
		return nil, costeo.NewPersistence("crear hotel", err)
	}
	return &dto.HotelResponse{ID: h.ID.String(), Nombre: h.Nombre, Activo: h.Activo}, nil
}

func (s *catalogoService) ListarHoteles(ctx context.Context) ([]dto.HotelResponse, error) {
	hoteles, err := s.repo.ListHoteles(ctx)
	if err != nil {
		return nil, costeo.NewPersistence("listar hoteles", err)
	}
	resp := make([]dto.HotelResponse, len(hoteles))
	for i, h := range hoteles {
		resp[i] = dto.HotelResponse{ID: h.ID.String(), Nombre: h.Nombre, Activo: h.Activo}
	}
	return resp, nil
}

func (s *catalogoService) CrearRestaurante(ctx context.Context, req dto.CrearRestauranteRequest) (*dto.RestauranteResponse, error) {
	hotelID, err := uuid.Parse(req.HotelID)
	if err != nil {
		return nil, costeo.NewValidation("hotel_id invalido")
	}
	if _, err := s.repo.FindHotelByID(ctx, hotelID); err != nil {
		return nil, costeo.NewNotFound("hotel", req.HotelID)
	}
	r := &model.Restaurante{HotelID: hotelID, Nombre: req.Nombre, Activo: true}
	if err := s.repo.CreateRestaurante(ctx, r); err != nil {
		return nil, costeo.NewPersistence("crear restaurante", err)
	}
	return &dto.RestauranteResponse{
		ID: r.ID.String(), HotelID: r.HotelID.String(), Nombre: r.Nombre, Activo: r.Activo,
	}, nil
}

func (s *catalogoService) ListarRestaurantes(ctx context.Context, hotelID uuid.UUID) ([]dto.RestauranteResponse, error) {
	restaurantes, err := s.repo.ListRestaurantes(ctx, hotelID)
	if err != nil {
		return nil, costeo.NewPersistence("listar restaurantes", err)
	}
	resp := make([]dto.RestauranteResponse, len(restaurantes))
	for i, r := range restaurantes {
		resp[i] = dto.RestauranteResponse{
			ID: r.ID.String(), HotelID: r.HotelID.String(), Nombre: r.Nombre, Activo: r.Activo,
		}
	}
	return resp, nil
}

func (s *catalogoService) CrearUnidad(ctx context.Context, req dto.CrearUnidadRequest) (*dto.UnidadResponse, error) {
	if req.Factor != nil && !req.Factor.IsPositive() {
		return nil, costeo.NewValidation("factor de conversion debe ser positivo")
	}
	u := &model.UnidadMedida{Nombre: req.Nombre, Abreviacion: req.Abreviacion, Factor: req.Factor}
	if err := s.repo.CreateUnidad(ctx, u); err != nil {
		return nil, costeo.NewPersistence("crear unidad", err)
	}
	return &dto.UnidadResponse{
		ID: u.ID.String(), Nombre: u.Nombre, Abreviacion: u.Abreviacion, Factor: u.Factor,
	}, nil
}

func (s *catalogoService) ListarUnidades(ctx context.Context) ([]dto.UnidadResponse, error) {
	unidades, err := s.repo.ListUnidades(ctx)
	if err != nil {
		return nil, costeo.NewPersistence("listar unidades", err)
	}
	resp := make([]dto.UnidadResponse, len(unidades))
	for i, u := range unidades {
		resp[i] = dto.UnidadResponse{
			ID: u.ID.String(), Nombre: u.Nombre, Abreviacion: u.Abreviacion, Factor: u.Factor,
		}
	}
	return resp, nil
}
