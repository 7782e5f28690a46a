package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/DarkCodex29/Texfina-Backend/internal/application/dto"
	domdashboard "github.com/DarkCodex29/Texfina-Backend/internal/domain/dashboard"
	"github.com/DarkCodex29/Texfina-Backend/internal/domain/repository"
)

// topResumen filas en los rankings del resumen ejecutivo.
const topResumen = 5

// ResumenUseCase arma el resumen ejecutivo del sistema: inventario general,
// estadísticas del catálogo, conteos de alertas, movimientos del mes y los
// rankings de clases, almacenes y proveedores.
//
// Las versiones anteriores del API devolvían esta estructura con ceros fijos;
// este caso de uso la calcula con las mismas consultas que alimentan los
// endpoints de alertas, tendencias y KPIs.
type ResumenUseCase struct {
	repo repository.ResumenRepository
}

// NewResumenUseCase construye el caso de uso.
func NewResumenUseCase(repo repository.ResumenRepository) *ResumenUseCase {
	return &ResumenUseCase{repo: repo}
}

// GetResumen construye el ResumenEjecutivoDTO. Los cinco bloques del resumen
// son independientes y se consultan en paralelo; dentro de cada bloque las
// lecturas son secuenciales. Cualquier fallo aborta la operación completa.
func (uc *ResumenUseCase) GetResumen(ctx context.Context) (*dto.ResumenEjecutivoDTO, error) {
	hoy := time.Now()
	inicioMes := time.Date(hoy.Year(), hoy.Month(), 1, 0, 0, 0, 0, hoy.Location())
	hastaVencimiento := hoy.AddDate(0, 0, domdashboard.DiasVentanaVencimiento)

	type inventarioResult struct {
		general dto.InventarioGeneralDTO
		err     error
	}
	type estadisticasResult struct {
		stats dto.EstadisticasInsumosDTO
		err   error
	}
	type alertasResult struct {
		alertas dto.AlertasCriticasDTO
		err     error
	}
	type movimientosResult struct {
		mes dto.MovimientosMesDTO
		err error
	}
	type topsResult struct {
		clases      []dto.TopClaseDTO
		almacenes   []dto.TopAlmacenDTO
		proveedores []dto.TopProveedorDTO
		err         error
	}

	inventarioCh := make(chan inventarioResult, 1)
	estadisticasCh := make(chan estadisticasResult, 1)
	alertasCh := make(chan alertasResult, 1)
	movimientosCh := make(chan movimientosResult, 1)
	topsCh := make(chan topsResult, 1)

	go func() {
		row, err := uc.repo.InventarioGeneral(ctx)
		if err != nil {
			inventarioCh <- inventarioResult{err: fmt.Errorf("inventario general: %w", err)}
			return
		}
		inventarioCh <- inventarioResult{general: dto.InventarioGeneralDTO{
			TotalItems:           row.TotalItems,
			ValorTotalInventario: row.ValorTotal,
			CantidadTotalStock:   row.CantidadTotal,
		}}
	}()

	go func() {
		row, err := uc.repo.EstadisticasInsumos(ctx)
		if err != nil {
			estadisticasCh <- estadisticasResult{err: fmt.Errorf("estadísticas de insumos: %w", err)}
			return
		}
		estadisticasCh <- estadisticasResult{stats: dto.EstadisticasInsumosDTO{
			TotalInsumos:    row.TotalInsumos,
			TotalClases:     row.TotalClases,
			TotalUnidades:   row.TotalUnidades,
			InsumosConStock: row.InsumosConStock,
			InsumosSinStock: row.TotalInsumos - row.InsumosConStock,
		}}
	}()

	go func() {
		stockBajo, err := uc.repo.ContarStockBajo(ctx, domdashboard.UmbralStockBajo)
		if err != nil {
			alertasCh <- alertasResult{err: fmt.Errorf("conteo stock bajo: %w", err)}
			return
		}
		porVencer, err := uc.repo.ContarLotesPorVencer(ctx, hoy, hastaVencimiento)
		if err != nil {
			alertasCh <- alertasResult{err: fmt.Errorf("conteo lotes por vencer: %w", err)}
			return
		}
		vencidos, err := uc.repo.ContarLotesVencidos(ctx, hoy)
		if err != nil {
			alertasCh <- alertasResult{err: fmt.Errorf("conteo lotes vencidos: %w", err)}
			return
		}
		vacios, err := uc.repo.ContarAlmacenesVacios(ctx)
		if err != nil {
			alertasCh <- alertasResult{err: fmt.Errorf("conteo almacenes vacíos: %w", err)}
			return
		}
		alertasCh <- alertasResult{alertas: dto.AlertasCriticasDTO{
			StockBajo:           stockBajo,
			LotesProximosVencer: porVencer,
			LotesVencidos:       vencidos,
			AlmacenesVacios:     vacios,
		}}
	}()

	go func() {
		ingresos, err := uc.repo.MovimientosIngresos(ctx, inicioMes)
		if err != nil {
			movimientosCh <- movimientosResult{err: fmt.Errorf("movimientos de ingresos: %w", err)}
			return
		}
		consumos, err := uc.repo.MovimientosConsumos(ctx, inicioMes)
		if err != nil {
			movimientosCh <- movimientosResult{err: fmt.Errorf("movimientos de consumos: %w", err)}
			return
		}
		movimientosCh <- movimientosResult{mes: dto.MovimientosMesDTO{
			Ingresos: dto.MovimientosPeriodoDTO{
				Total:         ingresos.Total,
				ValorTotal:    ingresos.ValorTotal,
				CantidadTotal: ingresos.CantidadTotal,
			},
			Consumos: dto.MovimientosPeriodoDTO{
				Total:         consumos.Total,
				ValorTotal:    consumos.ValorTotal,
				CantidadTotal: consumos.CantidadTotal,
			},
		}}
	}()

	go func() {
		clasesRows, err := uc.repo.TopClases(ctx, topResumen)
		if err != nil {
			topsCh <- topsResult{err: fmt.Errorf("top clases: %w", err)}
			return
		}
		almacenesRows, err := uc.repo.TopAlmacenes(ctx, topResumen)
		if err != nil {
			topsCh <- topsResult{err: fmt.Errorf("top almacenes: %w", err)}
			return
		}
		proveedoresRows, err := uc.repo.TopProveedores(ctx, inicioMes, topResumen)
		if err != nil {
			topsCh <- topsResult{err: fmt.Errorf("top proveedores: %w", err)}
			return
		}

		clases := make([]dto.TopClaseDTO, 0, len(clasesRows))
		for _, r := range clasesRows {
			clases = append(clases, dto.TopClaseDTO{Clase: r.Clase, TotalInsumos: r.TotalInsumos, ValorTotal: r.ValorTotal})
		}
		almacenes := make([]dto.TopAlmacenDTO, 0, len(almacenesRows))
		for _, r := range almacenesRows {
			almacenes = append(almacenes, dto.TopAlmacenDTO{Almacen: r.Almacen, ItemsConStock: r.ItemsConStock, CantidadTotal: r.CantidadTotal})
		}
		proveedores := make([]dto.TopProveedorDTO, 0, len(proveedoresRows))
		for _, r := range proveedoresRows {
			proveedores = append(proveedores, dto.TopProveedorDTO{Proveedor: r.Proveedor, TotalIngresos: r.TotalIngresos, ValorTotal: r.ValorTotal})
		}
		topsCh <- topsResult{clases: clases, almacenes: almacenes, proveedores: proveedores}
	}()

	inventario := <-inventarioCh
	estadisticas := <-estadisticasCh
	alertas := <-alertasCh
	movimientos := <-movimientosCh
	tops := <-topsCh

	for _, err := range []error{inventario.err, estadisticas.err, alertas.err, movimientos.err, tops.err} {
		if err != nil {
			return nil, fmt.Errorf("resumen: %w", err)
		}
	}

	return &dto.ResumenEjecutivoDTO{
		FechaActualizacion:  hoy,
		InventarioGeneral:   inventario.general,
		EstadisticasInsumos: estadisticas.stats,
		AlertasCriticas:     alertas.alertas,
		MovimientosMes:      movimientos.mes,
		TopClases:           tops.clases,
		TopAlmacenes:        tops.almacenes,
		TopProveedores:      tops.proveedores,
	}, nil
}
