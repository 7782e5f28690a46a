package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DarkCodex29/Texfina-Backend/internal/application/dto"
	"github.com/DarkCodex29/Texfina-Backend/internal/domain/repository"
)

// MesesAnalisisDefault ventana de análisis cuando el cliente no indica meses.
const MesesAnalisisDefault = 6

// TendenciasUseCase agrupa ingresos y consumos por mes calendario dentro de
// la ventana de análisis y calcula la rotación de inventario por clase.
type TendenciasUseCase struct {
	repo repository.TendenciasRepository
}

// NewTendenciasUseCase construye el caso de uso.
func NewTendenciasUseCase(repo repository.TendenciasRepository) *TendenciasUseCase {
	return &TendenciasUseCase{repo: repo}
}

// GetTendencias construye el TendenciasDTO para una ventana de `meses` meses
// hacia atrás desde hoy. Un valor no positivo produce una ventana que empieza
// en o después de hoy y por tanto buckets vacíos; no se valida cota superior.
//
// Los meses sin movimientos simplemente no aparecen en la secuencia de salida.
func (uc *TendenciasUseCase) GetTendencias(ctx context.Context, meses int) (*dto.TendenciasDTO, error) {
	fechaInicio := time.Now().AddDate(0, -meses, 0)

	type movResult struct {
		rows []repository.MovimientoRow
		err  error
	}
	type stockResult struct {
		rows []repository.StockActivoRow
		err  error
	}

	ingresosCh := make(chan movResult, 1)
	consumosCh := make(chan movResult, 1)
	stockCh := make(chan stockResult, 1)

	go func() {
		rows, err := uc.repo.ObtenerIngresosDesde(ctx, fechaInicio)
		ingresosCh <- movResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.ObtenerConsumosDesde(ctx, fechaInicio)
		consumosCh <- movResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.ObtenerStockActivo(ctx)
		stockCh <- stockResult{rows, err}
	}()

	ingresos := <-ingresosCh
	consumos := <-consumosCh
	stock := <-stockCh

	if ingresos.err != nil {
		return nil, fmt.Errorf("tendencias: ingresos: %w", ingresos.err)
	}
	if consumos.err != nil {
		return nil, fmt.Errorf("tendencias: consumos: %w", consumos.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("tendencias: rotación: %w", stock.err)
	}

	bucketsIngresos := agruparPorMes(ingresos.rows)
	tendenciasIngresos := make([]dto.TendenciaIngresoDTO, 0, len(bucketsIngresos))
	for _, b := range bucketsIngresos {
		tendenciasIngresos = append(tendenciasIngresos, dto.TendenciaIngresoDTO{
			Anio:          b.Anio,
			Mes:           b.Mes,
			TotalIngresos: b.Total,
			ValorTotal:    b.Valor,
			CantidadTotal: b.Cantidad,
		})
	}

	bucketsConsumos := agruparPorMes(consumos.rows)
	tendenciasConsumos := make([]dto.TendenciaConsumoDTO, 0, len(bucketsConsumos))
	for _, b := range bucketsConsumos {
		tendenciasConsumos = append(tendenciasConsumos, dto.TendenciaConsumoDTO{
			Anio:          b.Anio,
			Mes:           b.Mes,
			TotalConsumos: b.Total,
			ValorTotal:    b.Valor,
			CantidadTotal: b.Cantidad,
		})
	}

	return &dto.TendenciasDTO{
		PeriodoAnalisis: dto.PeriodoAnalisisDTO{
			FechaInicio: fechaInicio,
			Meses:       meses,
		},
		TendenciasIngresos: tendenciasIngresos,
		TendenciasConsumos: tendenciasConsumos,
		RotacionInventario: rotacionPorClase(stock.rows),
	}, nil
}

// bucketMensual acumulador de un mes calendario.
type bucketMensual struct {
	Anio     int
	Mes      int
	Total    int
	Valor    decimal.Decimal
	Cantidad decimal.Decimal
}

// agruparPorMes agrupa movimientos por (año, mes) y ordena ascendente.
// Las filas llegan con fecha presente: el repositorio excluye en SQL los
// movimientos sin fecha, que no pueden agruparse.
func agruparPorMes(rows []repository.MovimientoRow) []bucketMensual {
	type clave struct{ anio, mes int }
	acum := make(map[clave]*bucketMensual)
	for _, r := range rows {
		k := clave{r.Fecha.Year(), int(r.Fecha.Month())}
		b, ok := acum[k]
		if !ok {
			b = &bucketMensual{Anio: k.anio, Mes: k.mes, Valor: decimal.Zero, Cantidad: decimal.Zero}
			acum[k] = b
		}
		b.Total++
		b.Valor = b.Valor.Add(r.Valor)
		b.Cantidad = b.Cantidad.Add(r.Cantidad)
	}

	buckets := make([]bucketMensual, 0, len(acum))
	for _, b := range acum {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Anio != buckets[j].Anio {
			return buckets[i].Anio < buckets[j].Anio
		}
		return buckets[i].Mes < buckets[j].Mes
	})
	return buckets
}

// rotacionPorClase agrupa el stock activo por familia y calcula promedios de
// cantidad y valor. Ordena descendente por valor promedio: las clases de
// mayor valor primero.
func rotacionPorClase(rows []repository.StockActivoRow) []dto.RotacionClaseDTO {
	type acumulado struct {
		cantidad decimal.Decimal
		valor    decimal.Decimal
		items    int
	}
	porClase := make(map[string]*acumulado)
	for _, r := range rows {
		a, ok := porClase[r.Clase]
		if !ok {
			a = &acumulado{cantidad: decimal.Zero, valor: decimal.Zero}
			porClase[r.Clase] = a
		}
		a.cantidad = a.cantidad.Add(r.Cantidad)
		a.valor = a.valor.Add(r.Valor)
		a.items++
	}

	rotacion := make([]dto.RotacionClaseDTO, 0, len(porClase))
	for clase, a := range porClase {
		n := decimal.NewFromInt(int64(a.items))
		rotacion = append(rotacion, dto.RotacionClaseDTO{
			Clase:         clase,
			StockPromedio: a.cantidad.Div(n),
			ValorPromedio: a.valor.Div(n),
			ItemsActivos:  a.items,
		})
	}
	sort.SliceStable(rotacion, func(i, j int) bool {
		return rotacion[i].ValorPromedio.GreaterThan(rotacion[j].ValorPromedio)
	})
	return rotacion
}
