package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/adornodavid/aybcosteo-sub000/internal/costeo"
	"github.com/adornodavid/aybcosteo-sub000/internal/dto"
	"github.com/adornodavid/aybcosteo-sub000/internal/model"
	"github.com/adornodavid/aybcosteo-sub000/internal/repository"
)

// HistoricoService owns the daily snapshot of menu listings and everything
// that reads it: trend series and the xlsx export.
//
// The write side is idempotent per day: re-snapshotting the same (menu,
// platillo, fecha) reconciles the stored row set against the freshly computed
// one — rows for removed contributors are deleted, changed rows updated in
// place, new contributors inserted. Running it twice on one day leaves
// exactly one row per contributor, never duplicates.
type HistoricoService interface {
	// SnapshotListado captures the current composition cost of one listing
	// as of fecha (date precision, time-of-day discarded).
	SnapshotListado(ctx context.Context, listado *model.MenuPlatillo, fecha time.Time) error
	// SnapshotPlatillo snapshots every active listing of a platillo.
	SnapshotPlatillo(ctx context.Context, platilloID uuid.UUID, fecha time.Time) error
	Serie(ctx context.Context, filter dto.HistoricoFilter) (*dto.HistoricoSerieResponse, error)
	ExportXLSX(ctx context.Context, filter dto.ExportFilter) ([]byte, string, error)
}

type historicoService struct {
	historico repository.HistoricoRepository
	platillos repository.PlatilloRepository
	menus     repository.MenuRepository
}

func NewHistoricoService(
	historico repository.HistoricoRepository,
	platillos repository.PlatilloRepository,
	menus repository.MenuRepository,
) HistoricoService {
	return &historicoService{historico: historico, platillos: platillos, menus: menus}
}

// contribuyente identifies one snapshot row within a day: exactly one of the
// two ids is set.
type contribuyente struct {
	ingredienteID uuid.UUID
	recetaID      uuid.UUID
}

func (s *historicoService) SnapshotListado(ctx context.Context, listado *model.MenuPlatillo, fecha time.Time) error {
	if listado.Menu == nil || listado.Menu.Restaurante == nil {
		cargado, err := s.menus.FindListadoByID(ctx, listado.ID)
		if err != nil {
			return costeo.NewPersistence("leer listado", err)
		}
		cargado.PrecioVenta = listado.PrecioVenta
		cargado.Margen = listado.Margen
		cargado.CostoPorcentual = listado.CostoPorcentual
		listado = cargado
	}

	lineas, err := s.platillos.FindLineas(ctx, listado.PlatilloID)
	if err != nil {
		return costeo.NewPersistence("leer lineas de platillo", err)
	}

	dia := time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, time.UTC)
	hotelID := listado.Menu.Restaurante.HotelID
	restauranteID := listado.Menu.RestauranteID

	// Desired state: one row per contributor with today's figures.
	deseado := make(map[contribuyente]*model.Historico, len(lineas))
	for i := range lineas {
		linea := &lineas[i]
		fila := &model.Historico{
			HotelID:         hotelID,
			RestauranteID:   restauranteID,
			MenuID:          listado.MenuID,
			PlatilloID:      listado.PlatilloID,
			IngredienteID:   linea.IngredienteID,
			RecetaID:        linea.RecetaID,
			Cantidad:        linea.Cantidad,
			Costo:           linea.CostoParcial,
			PrecioVenta:     listado.PrecioVenta,
			CostoPorcentual: listado.CostoPorcentual,
			Fecha:           dia,
		}
		deseado[claveContribuyente(linea.IngredienteID, linea.RecetaID)] = fila
	}

	txErr := runTx(ctx, s.historico.DB(), func(tx *gorm.DB) error {
		existentes, err := s.historico.FindDia(ctx, tx, listado.MenuID, listado.PlatilloID, dia)
		if err != nil {
			return err
		}
		for i := range existentes {
			fila := &existentes[i]
			clave := claveContribuyente(fila.IngredienteID, fila.RecetaID)
			nueva, ok := deseado[clave]
			if !ok {
				// Contributor dropped from the platillo since the last run today.
				if err := s.historico.Delete(ctx, tx, fila.ID); err != nil {
					return err
				}
				continue
			}
			delete(deseado, clave)
			if filaIgual(fila, nueva) {
				continue
			}
			fila.Cantidad = nueva.Cantidad
			fila.Costo = nueva.Costo
			fila.PrecioVenta = nueva.PrecioVenta
			fila.CostoPorcentual = nueva.CostoPorcentual
			if err := s.historico.Update(ctx, tx, fila); err != nil {
				return err
			}
		}
		for _, nueva := range deseado {
			if err := s.historico.Create(ctx, tx, nueva); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return costeo.NewPersistence("snapshot de listado", txErr)
	}

	log.Debug().
		Str("menu_id", listado.MenuID.String()).
		Str("platillo_id", listado.PlatilloID.String()).
		Str("fecha", dia.Format("2006-01-02")).
		Int("contribuyentes", len(lineas)).
		Msg("snapshot de listado escrito")
	return nil
}

func (s *historicoService) SnapshotPlatillo(ctx context.Context, platilloID uuid.UUID, fecha time.Time) error {
	listados, err := s.menus.ListPorPlatillo(ctx, platilloID)
	if err != nil {
		return costeo.NewPersistence("leer listados de platillo", err)
	}
	for i := range listados {
		if err := s.SnapshotListado(ctx, &listados[i], fecha); err != nil {
			return err
		}
	}
	return nil
}

func (s *historicoService) Serie(ctx context.Context, filter dto.HistoricoFilter) (*dto.HistoricoSerieResponse, error) {
	menuID, err := uuid.Parse(filter.MenuID)
	if err != nil {
		return nil, costeo.NewValidation("menu_id invalido")
	}
	platilloID, err := uuid.Parse(filter.PlatilloID)
	if err != nil {
		return nil, costeo.NewValidation("platillo_id invalido")
	}
	desde, hasta, err := parseRango(filter.Desde, filter.Hasta)
	if err != nil {
		return nil, err
	}

	filas, err := s.historico.Serie(ctx, menuID, platilloID, desde, hasta)
	if err != nil {
		return nil, costeo.NewPersistence("leer serie historica", err)
	}

	resp := &dto.HistoricoSerieResponse{MenuID: filter.MenuID, PlatilloID: filter.PlatilloID}
	var diaActual *dto.HistoricoDiaResponse
	for i := range filas {
		fila := &filas[i]
		f := fila.Fecha.Format("2006-01-02")
		if diaActual == nil || diaActual.Fecha != f {
			resp.Dias = append(resp.Dias, dto.HistoricoDiaResponse{Fecha: f, CostoTotal: decimal.Zero})
			diaActual = &resp.Dias[len(resp.Dias)-1]
		}
		diaActual.Rows = append(diaActual.Rows, filaADTO(fila))
		diaActual.CostoTotal = diaActual.CostoTotal.Add(fila.Costo)
	}
	return resp, nil
}

func (s *historicoService) ExportXLSX(ctx context.Context, filter dto.ExportFilter) ([]byte, string, error) {
	restauranteID, err := uuid.Parse(filter.RestauranteID)
	if err != nil {
		return nil, "", costeo.NewValidation("restaurante_id invalido")
	}
	desde, hasta, err := parseRango(filter.Desde, filter.Hasta)
	if err != nil {
		return nil, "", err
	}

	filas, err := s.historico.SeriePorRestaurante(ctx, restauranteID, desde, hasta)
	if err != nil {
		return nil, "", costeo.NewPersistence("leer historico para export", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	const hoja = "Historico"
	f.SetSheetName("Sheet1", hoja)

	encabezados := []string{"Fecha", "Platillo", "Contribuyente", "Tipo", "Cantidad", "Costo", "Precio Venta", "Costo %"}
	for col, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(hoja, celda, h)
	}

	for i := range filas {
		fila := &filas[i]
		row := filaADTO(fila)
		valores := []interface{}{
			row.Fecha,
			fila.PlatilloID.String(),
			row.Contribuyente,
			row.Tipo,
			row.Cantidad.String(),
			row.Costo.String(),
			row.PrecioVenta.String(),
		}
		if row.CostoPorcentual != nil {
			valores = append(valores, row.CostoPorcentual.String())
		} else {
			valores = append(valores, "")
		}
		for col, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(hoja, celda, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("generar xlsx: %w", err)
	}
	nombre := fmt.Sprintf("historico_%s_%s_%s.xlsx", filter.RestauranteID, filter.Desde, filter.Hasta)
	return buf.Bytes(), nombre, nil
}

func claveContribuyente(ingredienteID, recetaID *uuid.UUID) contribuyente {
	var c contribuyente
	if ingredienteID != nil {
		c.ingredienteID = *ingredienteID
	}
	if recetaID != nil {
		c.recetaID = *recetaID
	}
	return c
}

func filaIgual(a, b *model.Historico) bool {
	if !a.Cantidad.Equal(b.Cantidad) || !a.Costo.Equal(b.Costo) || !a.PrecioVenta.Equal(b.PrecioVenta) {
		return false
	}
	switch {
	case a.CostoPorcentual == nil && b.CostoPorcentual == nil:
		return true
	case a.CostoPorcentual == nil || b.CostoPorcentual == nil:
		return false
	default:
		return a.CostoPorcentual.Equal(*b.CostoPorcentual)
	}
}

func filaADTO(fila *model.Historico) dto.HistoricoRowResponse {
	row := dto.HistoricoRowResponse{
		Fecha:           fila.Fecha.Format("2006-01-02"),
		Cantidad:        fila.Cantidad,
		Costo:           fila.Costo,
		PrecioVenta:     fila.PrecioVenta,
		CostoPorcentual: fila.CostoPorcentual,
	}
	switch {
	case fila.IngredienteID != nil:
		row.Tipo = "ingrediente"
		if fila.Ingrediente != nil {
			row.Contribuyente = fila.Ingrediente.Nombre
		} else {
			row.Contribuyente = fila.IngredienteID.String()
		}
	case fila.RecetaID != nil:
		row.Tipo = "receta"
		if fila.Receta != nil {
			row.Contribuyente = fila.Receta.Nombre
		} else {
			row.Contribuyente = fila.RecetaID.String()
		}
	}
	return row
}

func parseRango(desde, hasta string) (time.Time, time.Time, error) {
	d, err := time.Parse("2006-01-02", desde)
	if err != nil {
		return time.Time{}, time.Time{}, costeo.NewValidation("fecha desde invalida")
	}
	h, err := time.Parse("2006-01-02", hasta)
	if err != nil {
		return time.Time{}, time.Time{}, costeo.NewValidation("fecha hasta invalida")
	}
	if h.Before(d) {
		return time.Time{}, time.Time{}, costeo.NewValidation("rango de fechas invertido")
	}
	return d, h, nil
}
