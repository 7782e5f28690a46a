package dashboard_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DarkCodex29/Texfina-Backend/internal/domain/repository"
)

// Fakes en memoria de los repositorios del tablero. Devuelven lo que se les
// configure; un campo err no nulo simula un fallo de lectura.

type fakeAlertasRepo struct {
	stockBajo []repository.StockBajoRow
	lotes     []repository.LotePorVencerRow
	sinMov    []repository.InsumoSinMovimientoRow
	errStock  error
	errLotes  error
	errSinMov error
}

func (f *fakeAlertasRepo) ObtenerStockBajo(ctx context.Context, umbral int) ([]repository.StockBajoRow, error) {
	return f.stockBajo, f.errStock
}

func (f *fakeAlertasRepo) ObtenerLotesPorVencer(ctx context.Context, desde, hasta time.Time) ([]repository.LotePorVencerRow, error) {
	return f.lotes, f.errLotes
}

func (f *fakeAlertasRepo) ObtenerInsumosSinMovimiento(ctx context.Context, desde time.Time, limite int) ([]repository.InsumoSinMovimientoRow, error) {
	return f.sinMov, f.errSinMov
}

type fakeTendenciasRepo struct {
	ingresos    []repository.MovimientoRow
	consumos    []repository.MovimientoRow
	stock       []repository.StockActivoRow
	errIngresos error
	errConsumos error
	errStock    error
}

func (f *fakeTendenciasRepo) ObtenerIngresosDesde(ctx context.Context, desde time.Time) ([]repository.MovimientoRow, error) {
	return f.ingresos, f.errIngresos
}

func (f *fakeTendenciasRepo) ObtenerConsumosDesde(ctx context.Context, desde time.Time) ([]repository.MovimientoRow, error) {
	return f.consumos, f.errConsumos
}

func (f *fakeTendenciasRepo) ObtenerStockActivo(ctx context.Context) ([]repository.StockActivoRow, error) {
	return f.stock, f.errStock
}

type fakeKPIRepo struct {
	valorInventario   decimal.Decimal
	inversionActual   decimal.Decimal
	inversionAnterior decimal.Decimal
	proveedores       int
	consumos          int
	ingresos          int
	lotesActivos      int
	lotesVencidos     int
	err               error
}

func (f *fakeKPIRepo) ValorInventarioActual(ctx context.Context) (decimal.Decimal, error) {
	return f.valorInventario, f.err
}

func (f *fakeKPIRepo) InversionDesde(ctx context.Context, desde time.Time) (decimal.Decimal, error) {
	return f.inversionActual, f.err
}

func (f *fakeKPIRepo) InversionEntre(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	return f.inversionAnterior, f.err
}

func (f *fakeKPIRepo) ContarProveedoresActivos(ctx context.Context, desde time.Time) (int, error) {
	return f.proveedores, f.err
}

func (f *fakeKPIRepo) ContarConsumosDesde(ctx context.Context, desde time.Time) (int, error) {
	return f.consumos, f.err
}

func (f *fakeKPIRepo) ContarIngresosRecibidosDesde(ctx context.Context, desde time.Time) (int, error) {
	return f.ingresos, f.err
}

func (f *fakeKPIRepo) ContarLotesActivos(ctx context.Context) (int, error) {
	return f.lotesActivos, f.err
}

func (f *fakeKPIRepo) ContarLotesVencidos(ctx context.Context, hoy time.Time) (int, error) {
	return f.lotesVencidos, f.err
}

type fakeResumenRepo struct {
	inventario   repository.InventarioGeneralRow
	estadisticas repository.EstadisticasInsumosRow
	stockBajo    int
	porVencer    int
	vencidos     int
	vacios       int
	ingresos     repository.MovimientosPeriodoRow
	consumos     repository.MovimientosPeriodoRow
	clases       []repository.TopClaseRow
	almacenes    []repository.TopAlmacenRow
	proveedores  []repository.TopProveedorRow
	errTops      error
}

func (f *fakeResumenRepo) InventarioGeneral(ctx context.Context) (repository.InventarioGeneralRow, error) {
	return f.inventario, nil
}

func (f *fakeResumenRepo) EstadisticasInsumos(ctx context.Context) (repository.EstadisticasInsumosRow, error) {
	return f.estadisticas, nil
}

func (f *fakeResumenRepo) ContarStockBajo(ctx context.Context, umbral int) (int, error) {
	return f.stockBajo, nil
}

func (f *fakeResumenRepo) ContarLotesPorVencer(ctx context.Context, desde, hasta time.Time) (int, error) {
	return f.porVencer, nil
}

func (f *fakeResumenRepo) ContarLotesVencidos(ctx context.Context, hoy time.Time) (int, error) {
	return f.vencidos, nil
}

func (f *fakeResumenRepo) ContarAlmacenesVacios(ctx context.Context) (int, error) {
	return f.vacios, nil
}

func (f *fakeResumenRepo) MovimientosIngresos(ctx context.Context, desde time.Time) (repository.MovimientosPeriodoRow, error) {
	return f.ingresos, nil
}

func (f *fakeResumenRepo) MovimientosConsumos(ctx context.Context, desde time.Time) (repository.MovimientosPeriodoRow, error) {
	return f.consumos, nil
}

func (f *fakeResumenRepo) TopClases(ctx context.Context, limite int) ([]repository.TopClaseRow, error) {
	return f.clases, f.errTops
}

func (f *fakeResumenRepo) TopAlmacenes(ctx context.Context, limite int) ([]repository.TopAlmacenRow, error) {
	return f.almacenes, f.errTops
}

func (f *fakeResumenRepo) TopProveedores(ctx context.Context, desde time.Time, limite int) ([]repository.TopProveedorRow, error) {
	return f.proveedores, f.errTops
}
