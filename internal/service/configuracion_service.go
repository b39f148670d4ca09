package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/model"
	"github.com/adornodavid/aybcosteo-sub000/internal/repository"
)

type ConfiguracionService interface {
	Listar(ctx context.Context) ([]dto.ConfiguracionResponse, error)
	// Actualizar writes one global parameter and re-derives every active
	// platillo before returning: administrative costs and listing margins all
	// depend on these values.
	Actualizar(ctx context.Context, clave string, req dto.ActualizarConfiguracionRequest) (*dto.ConfiguracionResponse, *ResumenPropagacion, error)
}

type configuracionService struct {
	repo        repository.ConfiguracionRepository
	propagacion PropagacionService
}

func NewConfiguracionService(repo repository.ConfiguracionRepository, propagacion PropagacionService) ConfiguracionService {
	return &configuracionService{repo: repo, propagacion: propagacion}
}

var clavesValidas = map[string]bool{
	model.ClaveFactorGastos:  true,
	model.ClaveDivisorPrecio: true,
	model.ClaveIVA:           true,
}

func (s *configuracionService) Listar(ctx context.Context) ([]dto.ConfiguracionResponse, error) {
	configs, err := s.repo.List(ctx)
	if err != nil {
		return nil, costeo.NewPersistence("listar configuraciones", err)
	}
	resp := make([]dto.ConfiguracionResponse, len(configs))
	for i, c := range configs {
		resp[i] = dto.ConfiguracionResponse{
			Clave:       c.Clave,
			Valor:       c.Valor,
			Descripcion: c.Descripcion,
			UpdatedAt:   c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return resp, nil
}

func (s *configuracionService) Actualizar(ctx context.Context, clave string, req dto.ActualizarConfiguracionRequest) (*dto.ConfiguracionResponse, *ResumenPropagacion, error) {
	if !clavesValidas[clave] {
		return nil, nil, costeo.NewNotFound("configuracion", clave)
	}
	if req.Valor.IsNegative() {
		return nil, nil, costeo.NewValidation("valor de configuracion negativo")
	}

	c := &model.Configuracion{Clave: clave, Valor: req.Valor, Descripcion: req.Descripcion}
	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, nil, costeo.NewPersistence("guardar configuracion", err)
	}

	log.Info().Str("clave", clave).Str("valor", req.Valor.String()).Msg("configuracion actualizada, propagando")
	resumen, err := s.propagacion.PropagarGlobal(ctx)
	if err != nil {
		return nil, nil, err
	}

	resp := &dto.ConfiguracionResponse{Clave: c.Clave, Valor: c.Valor, Descripcion: c.Descripcion}
	return resp, resumen, nil
}
