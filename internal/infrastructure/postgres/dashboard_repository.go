package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/DarkCodex29/Texfina-Backend/internal/domain/repository"
)

var (
	_ repository.AlertasRepository    = (*DashboardRepo)(nil)
	_ repository.TendenciasRepository = (*DashboardRepo)(nil)
	_ repository.KPIRepository        = (*DashboardRepo)(nil)
	_ repository.ResumenRepository    = (*DashboardRepo)(nil)
)

// DashboardRepo consultas de solo lectura del tablero ejecutivo sobre el
// esquema de inventario (stock, lote, insumo, clase, almacen, ingreso,
// consumo, proveedor).
//
// Todas las consultas hacen joins explícitos y normalizan los numéricos
// nulos a cero con COALESCE en el SQL: las capas superiores nunca reciben
// NULL aritmético. Ninguna consulta modifica datos.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// ── Alertas ──────────────────────────────────────────────────────────────────

// ObtenerStockBajo devuelve las filas de stock con 0 < cantidad <= umbral,
// ordenadas de más agotado a menos.
func (r *DashboardRepo) ObtenerStockBajo(ctx context.Context, umbral int) ([]repository.StockBajoRow, error) {
	const query = `
	SELECT
	    s.id_stock,
	    COALESCE(s.cantidad, 0)   AS cantidad,
	    i.id_insumo,
	    i.nombre                  AS insumo,
	    COALESCE(i.id_fox, '')    AS id_fox,
	    COALESCE(c.familia, '')   AS clase,
	    COALESCE(a.nombre, '')    AS almacen
	FROM stock s
	JOIN insumo  i ON i.id_insumo  = s.id_insumo
	LEFT JOIN clase   c ON c.id_clase   = i.id_clase
	LEFT JOIN almacen a ON a.id_almacen = s.id_almacen
	WHERE s.cantidad > 0
	  AND s.cantidad <= $1
	ORDER BY s.cantidad`

	rows, err := r.pool.Query(ctx, query, umbral)
	if err != nil {
		return nil, fmt.Errorf("dashboard.ObtenerStockBajo: %w", err)
	}
	defer rows.Close()

	var results []repository.StockBajoRow
	for rows.Next() {
		var row repository.StockBajoRow
		if err := rows.Scan(
			&row.IDStock, &row.Cantidad,
			&row.IDInsumo, &row.Insumo, &row.IDFox,
			&row.Clase, &row.Almacen,
		); err != nil {
			return nil, fmt.Errorf("dashboard.ObtenerStockBajo scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ObtenerLotesPorVencer devuelve los lotes ACTIVOS cuya fecha de expiración
// cae en [desde, hasta], ordenados por fecha de expiración ascendente.
func (r *DashboardRepo) ObtenerLotesPorVencer(ctx context.Context, desde, hasta time.Time) ([]repository.LotePorVencerRow, error) {
	const query = `
	SELECT
	    l.id_lote,
	    COALESCE(l.numero, '')       AS numero,
	    COALESCE(l.stock_actual, 0)  AS stock_actual,
	    l.fecha_expiracion,
	    i.id_insumo,
	    i.nombre                     AS insumo,
	    COALESCE(i.id_fox, '')       AS id_fox,
	    COALESCE(c.familia, '')      AS clase
	FROM lote l
	JOIN insumo i ON i.id_insumo = l.id_insumo
	LEFT JOIN clase c ON c.id_clase = i.id_clase
	WHERE l.estado_lote = 'ACTIVO'
	  AND l.fecha_expiracion IS NOT NULL
	  AND l.fecha_expiracion >= $1::date
	  AND l.fecha_expiracion <= $2::date
	ORDER BY l.fecha_expiracion`

	rows, err := r.pool.Query(ctx, query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("dashboard.ObtenerLotesPorVencer: %w", err)
	}
	defer rows.Close()

	var results []repository.LotePorVencerRow
	for rows.Next() {
		var row repository.LotePorVencerRow
		if err := rows.Scan(
			&row.IDLote, &row.Numero, &row.StockActual, &row.FechaExpiracion,
			&row.IDInsumo, &row.Insumo, &row.IDFox, &row.Clase,
		); err != nil {
			return nil, fmt.Errorf("dashboard.ObtenerLotesPorVencer scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ObtenerInsumosSinMovimiento devuelve insumos sin ingresos ni consumos desde
// la fecha dada, con su último movimiento conocido y el stock total asociado.
// El orden es el natural de la tabla; `limite` acota el resultado.
func (r *DashboardRepo) ObtenerInsumosSinMovimiento(ctx context.Context, desde time.Time, limite int) ([]repository.InsumoSinMovimientoRow, error) {
	const query = `
	SELECT
	    i.id_insumo,
	    COALESCE(i.id_fox, '')   AS id_fox,
	    i.nombre,
	    COALESCE(c.familia, '')  AS clase,
	    (SELECT MAX(ing.fecha) FROM ingreso ing WHERE ing.id_insumo = i.id_insumo) AS ultimo_ingreso,
	    (SELECT MAX(co.fecha)  FROM consumo co  WHERE co.id_insumo  = i.id_insumo) AS ultimo_consumo,
	    COALESCE((SELECT SUM(COALESCE(s.cantidad, 0)) FROM stock s WHERE s.id_insumo = i.id_insumo), 0) AS stock_actual
	FROM insumo i
	LEFT JOIN clase c ON c.id_clase = i.id_clase
	WHERE NOT EXISTS (
	        SELECT 1 FROM ingreso ing
	        WHERE ing.id_insumo = i.id_insumo AND ing.fecha >= $1::date)
	  AND NOT EXISTS (
	        SELECT 1 FROM consumo co
	        WHERE co.id_insumo = i.id_insumo AND co.fecha >= $1::date)
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, desde, limite)
	if err != nil {
		return nil, fmt.Errorf("dashboard.ObtenerInsumosSinMovimiento: %w", err)
	}
	defer rows.Close()

	var results []repository.InsumoSinMovimientoRow
	for rows.Next() {
		var row repository.InsumoSinMovimientoRow
		if err := rows.Scan(
			&row.IDInsumo, &row.IDFox, &row.Nombre, &row.Clase,
			&row.UltimoIngreso, &row.UltimoConsumo, &row.StockActual,
		); err != nil {
			return nil, fmt.Errorf("dashboard.ObtenerInsumosSinMovimiento scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ── Tendencias ───────────────────────────────────────────────────────────────

// ObtenerIngresosDesde devuelve los ingresos con fecha presente y >= desde.
// Valor es el precio total fórmula del ingreso.
func (r *DashboardRepo) ObtenerIngresosDesde(ctx context.Context, desde time.Time) ([]repository.MovimientoRow, error) {
	const query = `
	SELECT
	    ing.fecha,
	    COALESCE(ing.cantidad, 0)             AS cantidad,
	    COALESCE(ing.precio_total_formula, 0) AS valor
	FROM ingreso ing
	WHERE ing.fecha IS NOT NULL
	  AND ing.fecha >= $1::date`

	return r.queryMovimientos(ctx, "ObtenerIngresosDesde", query, desde)
}

// ObtenerConsumosDesde devuelve los consumos con fecha presente y >= desde.
// Valor es cantidad × precio unitario del insumo.
func (r *DashboardRepo) ObtenerConsumosDesde(ctx context.Context, desde time.Time) ([]repository.MovimientoRow, error) {
	const query = `
	SELECT
	    co.fecha,
	    COALESCE(co.cantidad, 0)                                        AS cantidad,
	    COALESCE(co.cantidad, 0) * COALESCE(i.precio_unitario, 0)       AS valor
	FROM consumo co
	JOIN insumo i ON i.id_insumo = co.id_insumo
	WHERE co.fecha IS NOT NULL
	  AND co.fecha >= $1::date`

	return r.queryMovimientos(ctx, "ObtenerConsumosDesde", query, desde)
}

func (r *DashboardRepo) queryMovimientos(ctx context.Context, op, query string, desde time.Time) ([]repository.MovimientoRow, error) {
	rows, err := r.pool.Query(ctx, query, desde)
	if err != nil {
		return nil, fmt.Errorf("dashboard.%s: %w", op, err)
	}
	defer rows.Close()

	var results []repository.MovimientoRow
	for rows.Next() {
		var row repository.MovimientoRow
		if err := rows.Scan(&row.Fecha, &row.Cantidad, &row.Valor); err != nil {
			return nil, fmt.Errorf("dashboard.%s scan: %w", op, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ObtenerStockActivo devuelve las filas de stock con cantidad > 0 con su
// clase y valor, para la rotación por familia.
func (r *DashboardRepo) ObtenerStockActivo(ctx context.Context) ([]repository.StockActivoRow, error) {
	const query = `
	SELECT
	    COALESCE(c.familia, '')                                    AS clase,
	    COALESCE(s.cantidad, 0)                                    AS cantidad,
	    COALESCE(s.cantidad, 0) * COALESCE(i.precio_unitario, 0)   AS valor
	FROM stock s
	JOIN insumo i ON i.id_insumo = s.id_insumo
	LEFT JOIN clase c ON c.id_clase = i.id_clase
	WHERE s.cantidad > 0`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dashboard.ObtenerStockActivo: %w", err)
	}
	defer rows.Close()

	var results []repository.StockActivoRow
	for rows.Next() {
		var row repository.StockActivoRow
		if err := rows.Scan(&row.Clase, &row.Cantidad, &row.Valor); err != nil {
			return nil, fmt.Errorf("dashboard.ObtenerStockActivo scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ── KPIs ─────────────────────────────────────────────────────────────────────

// ValorInventarioActual suma cantidad × precio unitario del stock vigente.
func (r *DashboardRepo) ValorInventarioActual(ctx context.Context) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(COALESCE(s.cantidad, 0) * COALESCE(i.precio_unitario, 0)), 0)
	FROM stock s
	JOIN insumo i ON i.id_insumo = s.id_insumo
	WHERE s.cantidad > 0`

	var valor decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&valor); err != nil {
		return decimal.Zero, fmt.Errorf("dashboard.ValorInventarioActual: %w", err)
	}
	return valor, nil
}

// InversionDesde suma el precio total fórmula de los ingresos con fecha >= desde.
func (r *DashboardRepo) InversionDesde(ctx context.Context, desde time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(COALESCE(precio_total_formula, 0)), 0)
	FROM ingreso
	WHERE fecha >= $1::date`

	var valor decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, desde).Scan(&valor); err != nil {
		return decimal.Zero, fmt.Errorf("dashboard.InversionDesde: %w", err)
	}
	return valor, nil
}

// InversionEntre suma el precio total fórmula de los ingresos con fecha en [desde, hasta).
func (r *DashboardRepo) InversionEntre(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(COALESCE(precio_total_formula, 0)), 0)
	FROM ingreso
	WHERE fecha >= $1::date
	  AND fecha <  $2::date`

	var valor decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, desde, hasta).Scan(&valor); err != nil {
		return decimal.Zero, fmt.Errorf("dashboard.InversionEntre: %w", err)
	}
	return valor, nil
}

// ContarProveedoresActivos cuenta proveedores distintos con al menos un
// ingreso con fecha >= desde.
func (r *DashboardRepo) ContarProveedoresActivos(ctx context.Context, desde time.Time) (int, error) {
	const query = `
	SELECT COUNT(DISTINCT ip.id_proveedor)
	FROM ingreso ing
	JOIN insumo_proveedor ip ON ip.id_insumo_proveedor = ing.id_insumo_proveedor
	WHERE ing.fecha >= $1::date`

	return r.contar(ctx, "ContarProveedoresActivos", query, desde)
}

// ContarConsumosDesde cuenta los consumos con fecha >= desde.
func (r *DashboardRepo) ContarConsumosDesde(ctx context.Context, desde time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM consumo WHERE fecha >= $1::date`
	return r.contar(ctx, "ContarConsumosDesde", query, desde)
}

// ContarIngresosRecibidosDesde cuenta ingresos RECIBIDOS con fecha >= desde.
func (r *DashboardRepo) ContarIngresosRecibidosDesde(ctx context.Context, desde time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM ingreso WHERE fecha >= $1::date AND estado = 'RECIBIDO'`
	return r.contar(ctx, "ContarIngresosRecibidosDesde", query, desde)
}

// ContarLotesActivos cuenta los lotes con estado ACTIVO.
func (r *DashboardRepo) ContarLotesActivos(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM lote WHERE estado_lote = 'ACTIVO'`
	return r.contar(ctx, "ContarLotesActivos", query)
}

// ContarLotesVencidos cuenta lotes ACTIVOS ya vencidos a la fecha dada.
func (r *DashboardRepo) ContarLotesVencidos(ctx context.Context, hoy time.Time) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM lote
	WHERE estado_lote = 'ACTIVO'
	  AND fecha_expiracion IS NOT NULL
	  AND fecha_expiracion < $1::date`
	return r.contar(ctx, "ContarLotesVencidos", query, hoy)
}

func (r *DashboardRepo) contar(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.%s: %w", op, err)
	}
	return n, nil
}

// ── Resumen ejecutivo ────────────────────────────────────────────────────────

// InventarioGeneral totales del stock con cantidad > 0.
func (r *DashboardRepo) InventarioGeneral(ctx context.Context) (repository.InventarioGeneralRow, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                AS total_items,
	    COALESCE(SUM(COALESCE(s.cantidad, 0) * COALESCE(i.precio_unitario, 0)), 0) AS valor_total,
	    COALESCE(SUM(COALESCE(s.cantidad, 0)), 0)                               AS cantidad_total
	FROM stock s
	JOIN insumo i ON i.id_insumo = s.id_insumo
	WHERE s.cantidad > 0`

	var row repository.InventarioGeneralRow
	if err := r.pool.QueryRow(ctx, query).Scan(&row.TotalItems, &row.ValorTotal, &row.CantidadTotal); err != nil {
		return repository.InventarioGeneralRow{}, fmt.Errorf("dashboard.InventarioGeneral: %w", err)
	}
	return row, nil
}

// EstadisticasInsumos conteos del catálogo de insumos.
func (r *DashboardRepo) EstadisticasInsumos(ctx context.Context) (repository.EstadisticasInsumosRow, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM insumo)  AS total_insumos,
	    (SELECT COUNT(*) FROM clase)   AS total_clases,
	    (SELECT COUNT(*) FROM unidad)  AS total_unidades,
	    (SELECT COUNT(DISTINCT s.id_insumo) FROM stock s WHERE s.cantidad > 0) AS insumos_con_stock`

	var row repository.EstadisticasInsumosRow
	if err := r.pool.QueryRow(ctx, query).Scan(
		&row.TotalInsumos, &row.TotalClases, &row.TotalUnidades, &row.InsumosConStock,
	); err != nil {
		return repository.EstadisticasInsumosRow{}, fmt.Errorf("dashboard.EstadisticasInsumos: %w", err)
	}
	return row, nil
}

// ContarStockBajo cuenta las filas de stock con 0 < cantidad <= umbral.
func (r *DashboardRepo) ContarStockBajo(ctx context.Context, umbral int) (int, error) {
	const query = `SELECT COUNT(*) FROM stock WHERE cantidad > 0 AND cantidad <= $1`
	return r.contar(ctx, "ContarStockBajo", query, umbral)
}

// ContarLotesPorVencer cuenta lotes ACTIVOS con expiración en [desde, hasta].
func (r *DashboardRepo) ContarLotesPorVencer(ctx context.Context, desde, hasta time.Time) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM lote
	WHERE estado_lote = 'ACTIVO'
	  AND fecha_expiracion IS NOT NULL
	  AND fecha_expiracion >= $1::date
	  AND fecha_expiracion <= $2::date`
	return r.contar(ctx, "ContarLotesPorVencer", query, desde, hasta)
}

// ContarAlmacenesVacios cuenta almacenes sin ninguna fila de stock con cantidad > 0.
func (r *DashboardRepo) ContarAlmacenesVacios(ctx context.Context) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM almacen a
	WHERE NOT EXISTS (
	        SELECT 1 FROM stock s
	        WHERE s.id_almacen = a.id_almacen AND s.cantidad > 0)`
	return r.contar(ctx, "ContarAlmacenesVacios", query)
}

// MovimientosIngresos totales de ingresos con fecha >= desde.
func (r *DashboardRepo) MovimientosIngresos(ctx context.Context, desde time.Time) (repository.MovimientosPeriodoRow, error) {
	const query = `
	SELECT
	    COUNT(*)                                            AS total,
	    COALESCE(SUM(COALESCE(precio_total_formula, 0)), 0) AS valor_total,
	    COALESCE(SUM(COALESCE(cantidad, 0)), 0)             AS cantidad_total
	FROM ingreso
	WHERE fecha >= $1::date`

	var row repository.MovimientosPeriodoRow
	if err := r.pool.QueryRow(ctx, query, desde).Scan(&row.Total, &row.ValorTotal, &row.CantidadTotal); err != nil {
		return repository.MovimientosPeriodoRow{}, fmt.Errorf("dashboard.MovimientosIngresos: %w", err)
	}
	return row, nil
}

// MovimientosConsumos totales de consumos con fecha >= desde, valorizados al
// precio unitario del insumo.
func (r *DashboardRepo) MovimientosConsumos(ctx context.Context, desde time.Time) (repository.MovimientosPeriodoRow, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                   AS total,
	    COALESCE(SUM(COALESCE(co.cantidad, 0) * COALESCE(i.precio_unitario, 0)), 0) AS valor_total,
	    COALESCE(SUM(COALESCE(co.cantidad, 0)), 0)                                 AS cantidad_total
	FROM consumo co
	JOIN insumo i ON i.id_insumo = co.id_insumo
	WHERE co.fecha >= $1::date`

	var row repository.MovimientosPeriodoRow
	if err := r.pool.QueryRow(ctx, query, desde).Scan(&row.Total, &row.ValorTotal, &row.CantidadTotal); err != nil {
		return repository.MovimientosPeriodoRow{}, fmt.Errorf("dashboard.MovimientosConsumos: %w", err)
	}
	return row, nil
}

// TopClases familias ordenadas por valor de inventario descendente.
func (r *DashboardRepo) TopClases(ctx context.Context, limite int) ([]repository.TopClaseRow, error) {
	const query = `
	SELECT
	    COALESCE(c.familia, '')                                                    AS clase,
	    COUNT(DISTINCT i.id_insumo)                                                AS total_insumos,
	    COALESCE(SUM(COALESCE(s.cantidad, 0) * COALESCE(i.precio_unitario, 0)), 0) AS valor_total
	FROM stock s
	JOIN insumo i ON i.id_insumo = s.id_insumo
	LEFT JOIN clase c ON c.id_clase = i.id_clase
	WHERE s.cantidad > 0
	GROUP BY c.familia
	ORDER BY valor_total DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limite)
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopClases: %w", err)
	}
	defer rows.Close()

	var results []repository.TopClaseRow
	for rows.Next() {
		var row repository.TopClaseRow
		if err := rows.Scan(&row.Clase, &row.TotalInsumos, &row.ValorTotal); err != nil {
			return nil, fmt.Errorf("dashboard.TopClases scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopAlmacenes almacenes ordenados por cantidad almacenada descendente.
func (r *DashboardRepo) TopAlmacenes(ctx context.Context, limite int) ([]repository.TopAlmacenRow, error) {
	const query = `
	SELECT
	    COALESCE(a.nombre, '')                    AS almacen,
	    COUNT(*)                                  AS items_con_stock,
	    COALESCE(SUM(COALESCE(s.cantidad, 0)), 0) AS cantidad_total
	FROM stock s
	LEFT JOIN almacen a ON a.id_almacen = s.id_almacen
	WHERE s.cantidad > 0
	GROUP BY a.nombre
	ORDER BY cantidad_total DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limite)
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopAlmacenes: %w", err)
	}
	defer rows.Close()

	var results []repository.TopAlmacenRow
	for rows.Next() {
		var row repository.TopAlmacenRow
		if err := rows.Scan(&row.Almacen, &row.ItemsConStock, &row.CantidadTotal); err != nil {
			return nil, fmt.Errorf("dashboard.TopAlmacenes scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopProveedores proveedores ordenados por valor de ingresos desde la fecha.
func (r *DashboardRepo) TopProveedores(ctx context.Context, desde time.Time, limite int) ([]repository.TopProveedorRow, error) {
	const query = `
	SELECT
	    COALESCE(p.nombre, '')                                  AS proveedor,
	    COUNT(*)                                                AS total_ingresos,
	    COALESCE(SUM(COALESCE(ing.precio_total_formula, 0)), 0) AS valor_total
	FROM ingreso ing
	JOIN insumo_proveedor ip ON ip.id_insumo_proveedor = ing.id_insumo_proveedor
	JOIN proveedor p ON p.id_proveedor = ip.id_proveedor
	WHERE ing.fecha >= $1::date
	GROUP BY p.nombre
	ORDER BY valor_total DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, desde, limite)
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopProveedores: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProveedorRow
	for rows.Next() {
		var row repository.TopProveedorRow
		if err := rows.Scan(&row.Proveedor, &row.TotalIngresos, &row.ValorTotal); err != nil {
			return nil, fmt.Errorf("dashboard.TopProveedores scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
