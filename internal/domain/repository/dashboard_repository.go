package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Filas tipadas producidas por el almacén de inventario. Las consultas ya
// resuelven los joins (insumo, clase, almacén, proveedor) y normalizan los
// numéricos nulos a cero vía COALESCE en el borde SQL: el motor de agregación
// nunca recibe NULL aritmético. Las filas cuya fecha es clave de agrupación
// se filtran en SQL cuando la fecha es NULL.

// StockBajoRow fila de stock dentro del rango de alerta de stock bajo.
type StockBajoRow struct {
	IDStock  int64
	Cantidad decimal.Decimal
	IDInsumo int64
	Insumo   string
	IDFox    string // código externo del insumo
	Clase    string // familia
	Almacen  string
}

// LotePorVencerRow lote ACTIVO con fecha de expiración dentro del horizonte.
type LotePorVencerRow struct {
	IDLote          int64
	Numero          string
	StockActual     decimal.Decimal
	FechaExpiracion time.Time
	IDInsumo        int64
	Insumo          string
	IDFox           string
	Clase           string
}

// InsumoSinMovimientoRow insumo sin ingresos ni consumos en la ventana.
type InsumoSinMovimientoRow struct {
	IDInsumo      int64
	IDFox         string
	Nombre        string
	Clase         string
	UltimoIngreso *time.Time // nil si nunca registró ingresos
	UltimoConsumo *time.Time // nil si nunca registró consumos
	StockActual   decimal.Decimal
}

// MovimientoRow fila de ingreso o consumo con fecha presente.
// Valor: para ingresos es el precio total fórmula; para consumos,
// cantidad × precio unitario del insumo.
type MovimientoRow struct {
	Fecha    time.Time
	Cantidad decimal.Decimal
	Valor    decimal.Decimal
}

// StockActivoRow fila de stock con cantidad > 0, para rotación por clase.
type StockActivoRow struct {
	Clase    string
	Cantidad decimal.Decimal
	Valor    decimal.Decimal // cantidad × precio unitario del insumo
}

// AlertasRepository lecturas para el clasificador de alertas.
type AlertasRepository interface {
	// ObtenerStockBajo devuelve las filas con 0 < cantidad <= umbral.
	ObtenerStockBajo(ctx context.Context, umbral int) ([]StockBajoRow, error)
	// ObtenerLotesPorVencer devuelve lotes ACTIVOS con expiración en [desde, hasta].
	ObtenerLotesPorVencer(ctx context.Context, desde, hasta time.Time) ([]LotePorVencerRow, error)
	// ObtenerInsumosSinMovimiento devuelve insumos sin ingresos ni consumos
	// desde la fecha dada, con un máximo de `limite` filas en orden natural.
	ObtenerInsumosSinMovimiento(ctx context.Context, desde time.Time, limite int) ([]InsumoSinMovimientoRow, error)
}

// TendenciasRepository lecturas para el agregador de tendencias.
type TendenciasRepository interface {
	ObtenerIngresosDesde(ctx context.Context, desde time.Time) ([]MovimientoRow, error)
	ObtenerConsumosDesde(ctx context.Context, desde time.Time) ([]MovimientoRow, error)
	ObtenerStockActivo(ctx context.Context) ([]StockActivoRow, error)
}

// KPIRepository lecturas escalares para la calculadora de KPIs.
// Las sumas usan COALESCE en SQL: un período sin filas devuelve cero.
type KPIRepository interface {
	// ValorInventarioActual suma cantidad × precio unitario del stock con cantidad > 0.
	ValorInventarioActual(ctx context.Context) (decimal.Decimal, error)
	// InversionDesde suma el precio total fórmula de los ingresos con fecha >= desde (sin cota superior).
	InversionDesde(ctx context.Context, desde time.Time) (decimal.Decimal, error)
	// InversionEntre suma el precio total fórmula de los ingresos con fecha en [desde, hasta).
	InversionEntre(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)
	// ContarProveedoresActivos cuenta proveedores distintos con al menos un ingreso desde la fecha.
	ContarProveedoresActivos(ctx context.Context, desde time.Time) (int, error)
	ContarConsumosDesde(ctx context.Context, desde time.Time) (int, error)
	// ContarIngresosRecibidosDesde cuenta ingresos con estado RECIBIDO desde la fecha.
	ContarIngresosRecibidosDesde(ctx context.Context, desde time.Time) (int, error)
	ContarLotesActivos(ctx context.Context) (int, error)
	// ContarLotesVencidos cuenta lotes ACTIVOS con fecha de expiración anterior a hoy.
	ContarLotesVencidos(ctx context.Context, hoy time.Time) (int, error)
}

// ── Resumen ejecutivo ─────────────────────────────────────────────────────────

// InventarioGeneralRow totales del stock con cantidad > 0.
type InventarioGeneralRow struct {
	TotalItems    int
	ValorTotal    decimal.Decimal
	CantidadTotal decimal.Decimal
}

// EstadisticasInsumosRow conteos del catálogo de insumos.
type EstadisticasInsumosRow struct {
	TotalInsumos    int
	TotalClases     int
	TotalUnidades   int
	InsumosConStock int
}

// MovimientosPeriodoRow totales de ingresos o consumos en un período.
type MovimientosPeriodoRow struct {
	Total         int
	ValorTotal    decimal.Decimal
	CantidadTotal decimal.Decimal
}

// TopClaseRow clase con mayor valor de inventario.
type TopClaseRow struct {
	Clase        string
	TotalInsumos int
	ValorTotal   decimal.Decimal
}

// TopAlmacenRow almacén con mayor cantidad almacenada.
type TopAlmacenRow struct {
	Almacen       string
	ItemsConStock int
	CantidadTotal decimal.Decimal
}

// TopProveedorRow proveedor con mayor valor de ingresos.
type TopProveedorRow struct {
	Proveedor     string
	TotalIngresos int
	ValorTotal    decimal.Decimal
}

// ResumenRepository lecturas agregadas para el resumen ejecutivo.
type ResumenRepository interface {
	InventarioGeneral(ctx context.Context) (InventarioGeneralRow, error)
	EstadisticasInsumos(ctx context.Context) (EstadisticasInsumosRow, error)
	ContarStockBajo(ctx context.Context, umbral int) (int, error)
	ContarLotesPorVencer(ctx context.Context, desde, hasta time.Time) (int, error)
	ContarLotesVencidos(ctx context.Context, hoy time.Time) (int, error)
	ContarAlmacenesVacios(ctx context.Context) (int, error)
	MovimientosIngresos(ctx context.Context, desde time.Time) (MovimientosPeriodoRow, error)
	MovimientosConsumos(ctx context.Context, desde time.Time) (MovimientosPeriodoRow, error)
	TopClases(ctx context.Context, limite int) ([]TopClaseRow, error)
	TopAlmacenes(ctx context.Context, limite int) ([]TopAlmacenRow, error)
	// TopProveedores ranking por valor de ingresos con fecha >= desde.
	TopProveedores(ctx context.Context, desde time.Time, limite int) ([]TopProveedorRow, error)
}
