package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/DarkCodex29/Texfina-Backend/internal/application/dto"
	domdashboard "github.com/DarkCodex29/Texfina-Backend/internal/domain/dashboard"
	"github.com/DarkCodex29/Texfina-Backend/internal/domain/repository"
)

// KPIsUseCase calcula los indicadores financieros, operacionales y de calidad
// del mes en curso contra el mes anterior.
type KPIsUseCase struct {
	repo repository.KPIRepository
}

// NewKPIsUseCase construye el caso de uso.
func NewKPIsUseCase(repo repository.KPIRepository) *KPIsUseCase {
	return &KPIsUseCase{repo: repo}
}

// GetKPIs construye el KPIsDTO. Los escalares se leen en secuencia: la
// eficiencia y el índice de calidad dependen de los conteos de lotes leídos
// antes en la misma petición.
//
// La inversión del mes actual no tiene cota superior de fecha (ingresos
// futuros cuentan); la del mes anterior se limita a [inicioMesAnterior,
// inicioMes).
func (uc *KPIsUseCase) GetKPIs(ctx context.Context) (*dto.KPIsDTO, error) {
	hoy := time.Now()
	inicioMes := time.Date(hoy.Year(), hoy.Month(), 1, 0, 0, 0, 0, hoy.Location())
	inicioMesAnterior := inicioMes.AddDate(0, -1, 0)

	valorInventario, err := uc.repo.ValorInventarioActual(ctx)
	if err != nil {
		return nil, fmt.Errorf("kpis: valor inventario: %w", err)
	}
	inversionActual, err := uc.repo.InversionDesde(ctx, inicioMes)
	if err != nil {
		return nil, fmt.Errorf("kpis: inversión mes actual: %w", err)
	}
	inversionAnterior, err := uc.repo.InversionEntre(ctx, inicioMesAnterior, inicioMes)
	if err != nil {
		return nil, fmt.Errorf("kpis: inversión mes anterior: %w", err)
	}

	proveedoresActivos, err := uc.repo.ContarProveedoresActivos(ctx, inicioMes)
	if err != nil {
		return nil, fmt.Errorf("kpis: proveedores activos: %w", err)
	}
	movimientosStock, err := uc.repo.ContarConsumosDesde(ctx, inicioMes)
	if err != nil {
		return nil, fmt.Errorf("kpis: movimientos de stock: %w", err)
	}
	ingresosRecibidos, err := uc.repo.ContarIngresosRecibidosDesde(ctx, inicioMes)
	if err != nil {
		return nil, fmt.Errorf("kpis: ingresos recibidos: %w", err)
	}

	lotesActivos, err := uc.repo.ContarLotesActivos(ctx)
	if err != nil {
		return nil, fmt.Errorf("kpis: lotes activos: %w", err)
	}
	lotesVencidos, err := uc.repo.ContarLotesVencidos(ctx, hoy)
	if err != nil {
		return nil, fmt.Errorf("kpis: lotes vencidos: %w", err)
	}

	eficiencia := domdashboard.EficienciaInventario(lotesActivos, lotesVencidos)

	return &dto.KPIsDTO{
		FechaCalculo: hoy,
		KPIsFinancieros: dto.KPIsFinancierosDTO{
			ValorInventarioActual: valorInventario,
			InversionMesActual:    inversionActual,
			InversionMesAnterior:  inversionAnterior,
			VariacionInversion:    domdashboard.VariacionInversion(inversionActual, inversionAnterior),
		},
		KPIsOperacionales: dto.KPIsOperacionalesDTO{
			ProveedoresActivos:   proveedoresActivos,
			MovimientosStock:     movimientosStock,
			IngresosRecibidos:    ingresosRecibidos,
			EficienciaInventario: eficiencia,
		},
		KPIsCalidad: dto.KPIsCalidadDTO{
			LotesActivos:         lotesActivos,
			LotesVencidos:        lotesVencidos,
			PorcentajeEficiencia: eficiencia,
			IndiceCalidad:        domdashboard.IndiceCalidad(eficiencia),
		},
	}, nil
}
