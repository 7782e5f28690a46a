package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DTOs del tablero ejecutivo. Los nombres JSON conservan el contrato histórico
// del API (camelCase en español) que ya consume el frontend de Texfina.

// ── Alertas ──────────────────────────────────────────────────────────────────

// InsumoRefDTO identidad mínima de un insumo dentro de una alerta.
type InsumoRefDTO struct {
	IDInsumo int64  `json:"idInsumo"`
	Nombre   string `json:"nombre"`
	IDFox    string `json:"idFox"`
}

// AlertaStockBajoDTO stock en el rango de alerta, con su criticidad.
type AlertaStockBajoDTO struct {
	IDStock    int64           `json:"idStock"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Insumo     InsumoRefDTO    `json:"insumo"`
	Clase      string          `json:"clase"`
	Almacen    string          `json:"almacen"`
	Criticidad string          `json:"criticidad"`
}

// AlertaLoteVencimientoDTO lote próximo a vencer, con días restantes y criticidad.
type AlertaLoteVencimientoDTO struct {
	IDLote          int64           `json:"idLote"`
	Numero          string          `json:"numero"`
	StockActual     decimal.Decimal `json:"stockActual"`
	FechaExpiracion time.Time       `json:"fechaExpiracion"`
	DiasParaVencer  int             `json:"diasParaVencer"`
	Insumo          InsumoRefDTO    `json:"insumo"`
	Clase           string          `json:"clase"`
	Criticidad      string          `json:"criticidad"`
}

// InsumoSinMovimientoDTO insumo sin ingresos ni consumos recientes.
type InsumoSinMovimientoDTO struct {
	IDInsumo      int64           `json:"idInsumo"`
	IDFox         string          `json:"idFox"`
	Nombre        string          `json:"nombre"`
	Clase         string          `json:"clase"`
	UltimoIngreso *time.Time      `json:"ultimoIngreso"`
	UltimoConsumo *time.Time      `json:"ultimoConsumo"`
	StockActual   decimal.Decimal `json:"stockActual"`
}

// ResumenAlertasDTO conteos agregados de las tres colecciones de alertas.
// RequiereAccionInmediata suma stock CRÍTICO más lotes con <= 7 días: un lote
// CRÍTICO cuenta en ambos sumandos a propósito (contrato histórico del API).
type ResumenAlertasDTO struct {
	TotalAlertas            int `json:"totalAlertas"`
	AlertasCriticas         int `json:"alertasCriticas"`
	RequiereAccionInmediata int `json:"requiereAccionInmediata"`
}

// AlertasDTO respuesta de GET /api/dashboard/alertas.
type AlertasDTO struct {
	FechaConsulta        time.Time                  `json:"fechaConsulta"`
	StockBajo            []AlertaStockBajoDTO       `json:"stockBajo"`
	LotesProximosVencer  []AlertaLoteVencimientoDTO `json:"lotesProximosVencer"`
	InsumosSinMovimiento []InsumoSinMovimientoDTO   `json:"insumosSinMovimiento"`
	Resumen              ResumenAlertasDTO          `json:"resumen"`
}

// ── Tendencias ───────────────────────────────────────────────────────────────

// PeriodoAnalisisDTO ventana de análisis de tendencias.
type PeriodoAnalisisDTO struct {
	FechaInicio time.Time `json:"fechaInicio"`
	Meses       int       `json:"meses"`
}

// TendenciaIngresoDTO bucket mensual de ingresos.
type TendenciaIngresoDTO struct {
	Anio          int             `json:"año"`
	Mes           int             `json:"mes"`
	TotalIngresos int             `json:"totalIngresos"`
	ValorTotal    decimal.Decimal `json:"valorTotal"`
	CantidadTotal decimal.Decimal `json:"cantidadTotal"`
}

// TendenciaConsumoDTO bucket mensual de consumos.
type TendenciaConsumoDTO struct {
	Anio          int             `json:"año"`
	Mes           int             `json:"mes"`
	TotalConsumos int             `json:"totalConsumos"`
	ValorTotal    decimal.Decimal `json:"valorTotal"`
	CantidadTotal decimal.Decimal `json:"cantidadTotal"`
}

// RotacionClaseDTO estadísticas de rotación de una familia de insumos.
type RotacionClaseDTO struct {
	Clase         string          `json:"clase"`
	StockPromedio decimal.Decimal `json:"stockPromedio"`
	ValorPromedio decimal.Decimal `json:"valorPromedio"`
	ItemsActivos  int             `json:"itemsActivos"`
}

// TendenciasDTO respuesta de GET /api/dashboard/tendencias.
type TendenciasDTO struct {
	PeriodoAnalisis    PeriodoAnalisisDTO    `json:"periodoAnalisis"`
	TendenciasIngresos []TendenciaIngresoDTO `json:"tendenciasIngresos"`
	TendenciasConsumos []TendenciaConsumoDTO `json:"tendenciasConsumos"`
	RotacionInventario []RotacionClaseDTO    `json:"rotacionInventario"`
}

// ── KPIs ─────────────────────────────────────────────────────────────────────

// KPIsFinancierosDTO valor del inventario e inversión mensual comparada.
type KPIsFinancierosDTO struct {
	ValorInventarioActual decimal.Decimal `json:"valorInventarioActual"`
	InversionMesActual    decimal.Decimal `json:"inversionMesActual"`
	InversionMesAnterior  decimal.Decimal `json:"inversionMesAnterior"`
	VariacionInversion    decimal.Decimal `json:"variacionInversion"`
}

// KPIsOperacionalesDTO actividad del mes en curso.
type KPIsOperacionalesDTO struct {
	ProveedoresActivos   int             `json:"proveedoresActivos"`
	MovimientosStock     int             `json:"movimientosStock"`
	IngresosRecibidos    int             `json:"ingresosRecibidos"`
	EficienciaInventario decimal.Decimal `json:"eficienciaInventario"`
}

// KPIsCalidadDTO estado de los lotes y el índice de calidad derivado.
type KPIsCalidadDTO struct {
	LotesActivos         int             `json:"lotesActivos"`
	LotesVencidos        int             `json:"lotesVencidos"`
	PorcentajeEficiencia decimal.Decimal `json:"porcentajeEficiencia"`
	IndiceCalidad        string          `json:"indiceCalidad"`
}

// KPIsDTO respuesta de GET /api/dashboard/kpis.
type KPIsDTO struct {
	FechaCalculo      time.Time            `json:"fechaCalculo"`
	KPIsFinancieros   KPIsFinancierosDTO   `json:"kpisFinancieros"`
	KPIsOperacionales KPIsOperacionalesDTO `json:"kpisOperacionales"`
	KPIsCalidad       KPIsCalidadDTO       `json:"kpisCalidad"`
}

// ── Resumen ejecutivo ────────────────────────────────────────────────────────

// InventarioGeneralDTO totales del stock vigente.
type InventarioGeneralDTO struct {
	TotalItems           int             `json:"totalItems"`
	ValorTotalInventario decimal.Decimal `json:"valorTotalInventario"`
	CantidadTotalStock   decimal.Decimal `json:"cantidadTotalStock"`
}

// EstadisticasInsumosDTO conteos del catálogo.
type EstadisticasInsumosDTO struct {
	TotalInsumos    int `json:"totalInsumos"`
	TotalClases     int `json:"totalClases"`
	TotalUnidades   int `json:"totalUnidades"`
	InsumosConStock int `json:"insumosConStock"`
	InsumosSinStock int `json:"insumosSinStock"`
}

// AlertasCriticasDTO conteos de las alertas vigentes.
type AlertasCriticasDTO struct {
	StockBajo           int `json:"stockBajo"`
	LotesProximosVencer int `json:"lotesProximosVencer"`
	LotesVencidos       int `json:"lotesVencidos"`
	AlmacenesVacios     int `json:"almacenesVacios"`
}

// MovimientosPeriodoDTO totales de un tipo de movimiento en el mes.
type MovimientosPeriodoDTO struct {
	Total         int             `json:"total"`
	ValorTotal    decimal.Decimal `json:"valorTotal"`
	CantidadTotal decimal.Decimal `json:"cantidadTotal"`
}

// MovimientosMesDTO ingresos y consumos del mes en curso.
type MovimientosMesDTO struct {
	Ingresos MovimientosPeriodoDTO `json:"ingresos"`
	Consumos MovimientosPeriodoDTO `json:"consumos"`
}

// TopClaseDTO clase con mayor valor de inventario.
type TopClaseDTO struct {
	Clase        string          `json:"clase"`
	TotalInsumos int             `json:"totalInsumos"`
	ValorTotal   decimal.Decimal `json:"valorTotal"`
}

// TopAlmacenDTO almacén con mayor cantidad almacenada.
type TopAlmacenDTO struct {
	Almacen       string          `json:"almacen"`
	ItemsConStock int             `json:"itemsConStock"`
	CantidadTotal decimal.Decimal `json:"cantidadTotal"`
}

// TopProveedorDTO proveedor con mayor valor de ingresos en el mes.
type TopProveedorDTO struct {
	Proveedor     string          `json:"proveedor"`
	TotalIngresos int             `json:"totalIngresos"`
	ValorTotal    decimal.Decimal `json:"valorTotal"`
}

// ResumenEjecutivoDTO respuesta de GET /api/dashboard/resumen.
type ResumenEjecutivoDTO struct {
	FechaActualizacion  time.Time              `json:"fechaActualizacion"`
	InventarioGeneral   InventarioGeneralDTO   `json:"inventarioGeneral"`
	EstadisticasInsumos EstadisticasInsumosDTO `json:"estadisticasInsumos"`
	AlertasCriticas     AlertasCriticasDTO     `json:"alertasCriticas"`
	MovimientosMes      MovimientosMesDTO      `json:"movimientosMes"`
	TopClases           []TopClaseDTO          `json:"topClases"`
	TopAlmacenes        []TopAlmacenDTO        `json:"topAlmacenes"`
	TopProveedores      []TopProveedorDTO      `json:"topProveedores"`
}
