// Package dashboard contiene las reglas puras del tablero ejecutivo de
// inventario: umbrales de criticidad, ventanas de análisis y los índices
// derivados (variación de inversión, eficiencia de inventario, índice de
// calidad). Los umbrales viven aquí como constantes con nombre: son los
// literales más sensibles a pruebas de todo el sistema y los comparten el
// clasificador y sus tests.
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// Umbrales de alerta de stock (unidades).
const (
	UmbralStockBajo    = 10 // 0 < cantidad <= 10 genera alerta
	UmbralStockCritico = 3  // cantidad <= 3 es CRÍTICO
)

// Ventana de vencimiento de lotes (días).
const (
	DiasVentanaVencimiento = 30 // horizonte de la alerta de vencimiento
	DiasVencimientoCritico = 7
	DiasVencimientoAlto    = 15
)

// Ventana de insumos sin movimiento.
const (
	DiasSinMovimiento          = 60
	LimiteInsumosSinMovimiento = 20
)

// Umbrales del índice de calidad (porcentaje de eficiencia, cotas inferiores inclusivas).
const (
	UmbralCalidadExcelente = 95
	UmbralCalidadBueno     = 85
	UmbralCalidadRegular   = 70
)

// Niveles de criticidad y etiquetas del índice de calidad.
const (
	CriticidadCritico = "CRÍTICO"
	CriticidadBajo    = "BAJO"
	CriticidadAlto    = "ALTO"
	CriticidadMedio   = "MEDIO"

	CalidadExcelente  = "EXCELENTE"
	CalidadBueno      = "BUENO"
	CalidadRegular    = "REGULAR"
	CalidadDeficiente = "DEFICIENTE"
)

// CriticidadStock clasifica una cantidad que ya está en el rango de alerta
// (0 < cantidad <= UmbralStockBajo): CRÍTICO si cantidad <= 3, si no BAJO.
func CriticidadStock(cantidad decimal.Decimal) string {
	if cantidad.LessThanOrEqual(decimal.NewFromInt(UmbralStockCritico)) {
		return CriticidadCritico
	}
	return CriticidadBajo
}

// CriticidadVencimiento clasifica los días restantes hasta el vencimiento de
// un lote: CRÍTICO <= 7, ALTO <= 15, MEDIO hasta el horizonte de 30 días.
func CriticidadVencimiento(diasParaVencer int) string {
	switch {
	case diasParaVencer <= DiasVencimientoCritico:
		return CriticidadCritico
	case diasParaVencer <= DiasVencimientoAlto:
		return CriticidadAlto
	default:
		return CriticidadMedio
	}
}

// DiasParaVencer devuelve la diferencia en días de calendario entre la fecha
// de expiración y hoy, ignorando la hora del día de ambas fechas.
func DiasParaVencer(hoy, fechaExpiracion time.Time) int {
	h := time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, time.UTC)
	f := time.Date(fechaExpiracion.Year(), fechaExpiracion.Month(), fechaExpiracion.Day(), 0, 0, 0, 0, time.UTC)
	return int(f.Sub(h).Hours() / 24)
}

// VariacionInversion calcula la variación porcentual mes a mes de la
// inversión, redondeada a 2 decimales. Si la inversión anterior es cero o
// negativa devuelve 0 (guardia contra división por cero).
func VariacionInversion(actual, anterior decimal.Decimal) decimal.Decimal {
	if anterior.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	cien := decimal.NewFromInt(100)
	return actual.Sub(anterior).Div(anterior).Mul(cien).Round(2)
}

// EficienciaInventario devuelve (1 - vencidos/activos) * 100 redondeado a 2
// decimales. Sin lotes activos la eficiencia es 100 por definición.
func EficienciaInventario(lotesActivos, lotesVencidos int) decimal.Decimal {
	if lotesActivos <= 0 {
		return decimal.NewFromInt(100)
	}
	activos := decimal.NewFromInt(int64(lotesActivos))
	vencidos := decimal.NewFromInt(int64(lotesVencidos))
	uno := decimal.NewFromInt(1)
	cien := decimal.NewFromInt(100)
	return uno.Sub(vencidos.Div(activos)).Mul(cien).Round(2)
}

// IndiceCalidad etiqueta la eficiencia del inventario. Las cotas son
// inferiores inclusivas y se evalúan en orden descendente: la primera que
// coincide gana.
func IndiceCalidad(eficiencia decimal.Decimal) string {
	switch {
	case eficiencia.GreaterThanOrEqual(decimal.NewFromInt(UmbralCalidadExcelente)):
		return CalidadExcelente
	case eficiencia.GreaterThanOrEqual(decimal.NewFromInt(UmbralCalidadBueno)):
		return CalidadBueno
	case eficiencia.GreaterThanOrEqual(decimal.NewFromInt(UmbralCalidadRegular)):
		return CalidadRegular
	default:
		return CalidadDeficiente
	}
}
