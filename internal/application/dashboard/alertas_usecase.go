// Package dashboard contiene los casos de uso del tablero ejecutivo de
// inventario: alertas críticas, tendencias de movimientos, KPIs y resumen.
// Cada caso de uso lee un snapshot consistente del almacén por petición; no
// mantiene estado propio ni cachea entre peticiones.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/DarkCodex29/Texfina-Backend/internal/application/dto"
	domdashboard "github.com/DarkCodex29/Texfina-Backend/internal/domain/dashboard"
	"github.com/DarkCodex29/Texfina-Backend/internal/domain/repository"
)

// AlertasUseCase deriva las alertas de stock bajo, lotes por vencer e insumos
// sin movimiento a partir del estado actual del almacén.
type AlertasUseCase struct {
	repo repository.AlertasRepository
}

// NewAlertasUseCase construye el caso de uso.
func NewAlertasUseCase(repo repository.AlertasRepository) *AlertasUseCase {
	return &AlertasUseCase{repo: repo}
}

// GetAlertas construye el AlertasDTO con las tres colecciones y su resumen.
//
// Las tres consultas son independientes entre sí y se lanzan en paralelo
// (fan-out/fan-in con canales). Cualquier fallo de lectura aborta la
// operación completa: nunca se devuelven resultados parciales.
func (uc *AlertasUseCase) GetAlertas(ctx context.Context) (*dto.AlertasDTO, error) {
	hoy := time.Now()
	desdeMovimiento := hoy.AddDate(0, 0, -domdashboard.DiasSinMovimiento)
	hastaVencimiento := hoy.AddDate(0, 0, domdashboard.DiasVentanaVencimiento)

	type stockResult struct {
		rows []repository.StockBajoRow
		err  error
	}
	type lotesResult struct {
		rows []repository.LotePorVencerRow
		err  error
	}
	type sinMovResult struct {
		rows []repository.InsumoSinMovimientoRow
		err  error
	}

	stockCh := make(chan stockResult, 1)
	lotesCh := make(chan lotesResult, 1)
	sinMovCh := make(chan sinMovResult, 1)

	go func() {
		rows, err := uc.repo.ObtenerStockBajo(ctx, domdashboard.UmbralStockBajo)
		stockCh <- stockResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.ObtenerLotesPorVencer(ctx, hoy, hastaVencimiento)
		lotesCh <- lotesResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.ObtenerInsumosSinMovimiento(ctx, desdeMovimiento, domdashboard.LimiteInsumosSinMovimiento)
		sinMovCh <- sinMovResult{rows, err}
	}()

	stock := <-stockCh
	lotes := <-lotesCh
	sinMov := <-sinMovCh

	if stock.err != nil {
		return nil, fmt.Errorf("alertas: stock bajo: %w", stock.err)
	}
	if lotes.err != nil {
		return nil, fmt.Errorf("alertas: lotes por vencer: %w", lotes.err)
	}
	if sinMov.err != nil {
		return nil, fmt.Errorf("alertas: insumos sin movimiento: %w", sinMov.err)
	}

	stockBajo := make([]dto.AlertaStockBajoDTO, 0, len(stock.rows))
	for _, r := range stock.rows {
		stockBajo = append(stockBajo, dto.AlertaStockBajoDTO{
			IDStock:    r.IDStock,
			Cantidad:   r.Cantidad,
			Insumo:     dto.InsumoRefDTO{IDInsumo: r.IDInsumo, Nombre: r.Insumo, IDFox: r.IDFox},
			Clase:      r.Clase,
			Almacen:    r.Almacen,
			Criticidad: domdashboard.CriticidadStock(r.Cantidad),
		})
	}
	// Más agotado primero.
	sort.SliceStable(stockBajo, func(i, j int) bool {
		return stockBajo[i].Cantidad.LessThan(stockBajo[j].Cantidad)
	})

	porVencer := make([]dto.AlertaLoteVencimientoDTO, 0, len(lotes.rows))
	for _, r := range lotes.rows {
		dias := domdashboard.DiasParaVencer(hoy, r.FechaExpiracion)
		porVencer = append(porVencer, dto.AlertaLoteVencimientoDTO{
			IDLote:          r.IDLote,
			Numero:          r.Numero,
			StockActual:     r.StockActual,
			FechaExpiracion: r.FechaExpiracion,
			DiasParaVencer:  dias,
			Insumo:          dto.InsumoRefDTO{IDInsumo: r.IDInsumo, Nombre: r.Insumo, IDFox: r.IDFox},
			Clase:           r.Clase,
			Criticidad:      domdashboard.CriticidadVencimiento(dias),
		})
	}
	sort.SliceStable(porVencer, func(i, j int) bool {
		return porVencer[i].FechaExpiracion.Before(porVencer[j].FechaExpiracion)
	})

	sinMovimiento := make([]dto.InsumoSinMovimientoDTO, 0, len(sinMov.rows))
	for _, r := range sinMov.rows {
		sinMovimiento = append(sinMovimiento, dto.InsumoSinMovimientoDTO{
			IDInsumo:      r.IDInsumo,
			IDFox:         r.IDFox,
			Nombre:        r.Nombre,
			Clase:         r.Clase,
			UltimoIngreso: r.UltimoIngreso,
			UltimoConsumo: r.UltimoConsumo,
			StockActual:   r.StockActual,
		})
	}

	var criticasStock, criticasLotes, lotesAccionInmediata int
	for _, a := range stockBajo {
		if a.Criticidad == domdashboard.CriticidadCritico {
			criticasStock++
		}
	}
	for _, l := range porVencer {
		if l.Criticidad == domdashboard.CriticidadCritico {
			criticasLotes++
		}
		if l.DiasParaVencer <= domdashboard.DiasVencimientoCritico {
			lotesAccionInmediata++
		}
	}

	return &dto.AlertasDTO{
		FechaConsulta:        hoy,
		StockBajo:            stockBajo,
		LotesProximosVencer:  porVencer,
		InsumosSinMovimiento: sinMovimiento,
		Resumen: dto.ResumenAlertasDTO{
			TotalAlertas:    len(stockBajo) + len(porVencer) + len(sinMovimiento),
			AlertasCriticas: criticasStock + criticasLotes,
			// Suma aditiva, sin deduplicar: un lote CRÍTICO cuenta en ambos
			// términos. Es el contrato histórico del API.
			RequiereAccionInmediata: criticasStock + lotesAccionInmediata,
		},
	}, nil
}
