package dashboard_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/DarkCodex29/Texfina-Backend/internal/domain/dashboard"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Los umbrales son cotas inclusivas: el valor exacto del umbral cae en el
// nivel más severo, y una centésima por encima ya no.
func TestCriticidadStock_Umbrales(t *testing.T) {
	casos := []struct {
		nombre   string
		cantidad string
		want     string
	}{
		{"exactamente 3 es crítico", "3", dashboard.CriticidadCritico},
		{"por debajo de 3 es crítico", "0.5", dashboard.CriticidadCritico},
		{"una centésima sobre 3 es bajo", "3.01", dashboard.CriticidadBajo},
		{"exactamente 10 es bajo", "10", dashboard.CriticidadBajo},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.want, dashboard.CriticidadStock(dec(c.cantidad)))
		})
	}
}

func TestCriticidadVencimiento_Umbrales(t *testing.T) {
	casos := []struct {
		dias int
		want string
	}{
		{0, dashboard.CriticidadCritico},
		{7, dashboard.CriticidadCritico},
		{8, dashboard.CriticidadAlto},
		{15, dashboard.CriticidadAlto},
		{16, dashboard.CriticidadMedio},
		{30, dashboard.CriticidadMedio},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, dashboard.CriticidadVencimiento(c.dias), "dias=%d", c.dias)
	}
}

// La diferencia de días ignora la hora: un lote que vence "mañana a las
// 00:01" son 1 día aunque la consulta sea a las 23:59.
func TestDiasParaVencer_IgnoraHoraDelDia(t *testing.T) {
	hoy := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	manana := time.Date(2024, 3, 16, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, dashboard.DiasParaVencer(hoy, manana))

	mismoDia := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, dashboard.DiasParaVencer(hoy, mismoDia))

	en30 := time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, dashboard.DiasParaVencer(hoy, en30))
}

func TestVariacionInversion(t *testing.T) {
	casos := []struct {
		nombre   string
		actual   string
		anterior string
		want     string
	}{
		{"crecimiento del 50%", "150", "100", "50"},
		{"caída del 25%", "75", "100", "-25"},
		{"anterior cero devuelve cero", "500", "0", "0"},
		{"anterior negativo devuelve cero", "500", "-10", "0"},
		{"redondeo a 2 decimales", "100", "3", "3233.33"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := dashboard.VariacionInversion(dec(c.actual), dec(c.anterior))
			assert.True(t, dec(c.want).Equal(got), "want %s, got %s", c.want, got)
		})
	}
}

func TestEficienciaInventario(t *testing.T) {
	casos := []struct {
		nombre   string
		activos  int
		vencidos int
		want     string
	}{
		{"sin lotes activos es 100 por definición", 0, 0, "100"},
		{"sin vencidos es 100", 10, 0, "100"},
		{"1 de 10 vencidos es 90", 10, 1, "90"},
		{"1 de 3 vencidos redondea a 66.67", 3, 1, "66.67"},
		{"todos vencidos es 0", 5, 5, "0"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := dashboard.EficienciaInventario(c.activos, c.vencidos)
			assert.True(t, dec(c.want).Equal(got), "want %s, got %s", c.want, got)
		})
	}
}

// Cotas inferiores inclusivas evaluadas en orden descendente.
func TestIndiceCalidad_Umbrales(t *testing.T) {
	casos := []struct {
		eficiencia string
		want       string
	}{
		{"100", dashboard.CalidadExcelente},
		{"95", dashboard.CalidadExcelente},
		{"94.99", dashboard.CalidadBueno},
		{"85", dashboard.CalidadBueno},
		{"84.99", dashboard.CalidadRegular},
		{"70", dashboard.CalidadRegular},
		{"69.99", dashboard.CalidadDeficiente},
		{"0", dashboard.CalidadDeficiente},
	}
	for _, c := range casos {
		assert.Equal(t, c.want, dashboard.IndiceCalidad(dec(c.eficiencia)), "eficiencia=%s", c.eficiencia)
	}
}
