package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarkCodex29/Texfina-Backend/internal/application/dashboard"
	domdashboard "github.com/DarkCodex29/Texfina-Backend/internal/domain/dashboard"
	"github.com/DarkCodex29/Texfina-Backend/internal/domain/repository"
)

func TestGetAlertas_ClasificaYOrdena(t *testing.T) {
	hoy := time.Now()
	repo := &fakeAlertasRepo{
		// Desordenado a propósito: el caso de uso debe ordenar ascendente.
		stockBajo: []repository.StockBajoRow{
			{IDStock: 2, Cantidad: decimal.NewFromInt(5), IDInsumo: 20, Insumo: "Colorante azul", IDFox: "F-020", Clase: "COLORANTES", Almacen: "Principal"},
			{IDStock: 1, Cantidad: decimal.NewFromInt(2), IDInsumo: 10, Insumo: "Ácido acético", IDFox: "F-010", Clase: "QUÍMICOS", Almacen: "Principal"},
		},
		lotes: []repository.LotePorVencerRow{
			{IDLote: 3, Numero: "L-003", StockActual: decimal.NewFromInt(40), FechaExpiracion: hoy.AddDate(0, 0, 20), IDInsumo: 30, Insumo: "Suavizante", IDFox: "F-030", Clase: "AUXILIARES"},
			{IDLote: 1, Numero: "L-001", StockActual: decimal.NewFromInt(100), FechaExpiracion: hoy.AddDate(0, 0, 3), IDInsumo: 10, Insumo: "Ácido acético", IDFox: "F-010", Clase: "QUÍMICOS"},
			{IDLote: 2, Numero: "L-002", StockActual: decimal.NewFromInt(60), FechaExpiracion: hoy.AddDate(0, 0, 10), IDInsumo: 20, Insumo: "Colorante azul", IDFox: "F-020", Clase: "COLORANTES"},
		},
		sinMov: []repository.InsumoSinMovimientoRow{
			{IDInsumo: 40, IDFox: "F-040", Nombre: "Peróxido", Clase: "QUÍMICOS", StockActual: decimal.NewFromInt(15)},
		},
	}

	out, err := dashboard.NewAlertasUseCase(repo).GetAlertas(context.Background())
	require.NoError(t, err)

	// Stock bajo: ascendente por cantidad, criticidad por umbral.
	require.Len(t, out.StockBajo, 2)
	assert.Equal(t, int64(1), out.StockBajo[0].IDStock)
	assert.Equal(t, domdashboard.CriticidadCritico, out.StockBajo[0].Criticidad)
	assert.Equal(t, domdashboard.CriticidadBajo, out.StockBajo[1].Criticidad)

	// Lotes: ascendente por fecha de expiración, criticidad por días restantes.
	require.Len(t, out.LotesProximosVencer, 3)
	assert.Equal(t, int64(1), out.LotesProximosVencer[0].IDLote)
	assert.Equal(t, domdashboard.CriticidadCritico, out.LotesProximosVencer[0].Criticidad)
	assert.Equal(t, domdashboard.CriticidadAlto, out.LotesProximosVencer[1].Criticidad)
	assert.Equal(t, domdashboard.CriticidadMedio, out.LotesProximosVencer[2].Criticidad)

	require.Len(t, out.InsumosSinMovimiento, 1)
	assert.Nil(t, out.InsumosSinMovimiento[0].UltimoIngreso)

	assert.Equal(t, 6, out.Resumen.TotalAlertas)
	assert.Equal(t, 2, out.Resumen.AlertasCriticas, "1 stock crítico + 1 lote crítico")
}

// El lote con <= 7 días ya cuenta como alerta crítica y vuelve a contar en
// requiereAccionInmediata: la suma es aditiva, sin deduplicar.
func TestGetAlertas_AccionInmediataCuentaDoble(t *testing.T) {
	hoy := time.Now()
	repo := &fakeAlertasRepo{
		stockBajo: []repository.StockBajoRow{
			{IDStock: 1, Cantidad: decimal.NewFromInt(1), IDInsumo: 10, Insumo: "Ácido acético"},
		},
		lotes: []repository.LotePorVencerRow{
			{IDLote: 1, Numero: "L-001", FechaExpiracion: hoy.AddDate(0, 0, 2), IDInsumo: 10, Insumo: "Ácido acético"},
		},
	}

	out, err := dashboard.NewAlertasUseCase(repo).GetAlertas(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, out.Resumen.AlertasCriticas)
	assert.Equal(t, 2, out.Resumen.RequiereAccionInmediata,
		"1 stock crítico + 1 lote con <= 7 días, aunque el lote ya sea crítico")
}

func TestGetAlertas_FallaCompletaAnteCualquierError(t *testing.T) {
	repo := &fakeAlertasRepo{
		stockBajo: []repository.StockBajoRow{{IDStock: 1, Cantidad: decimal.NewFromInt(1)}},
		errLotes:  errors.New("conexión perdida"),
	}

	out, err := dashboard.NewAlertasUseCase(repo).GetAlertas(context.Background())
	assert.Nil(t, out, "no debe haber resultados parciales")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lotes por vencer")
}

func TestGetAlertas_SinDatosDevuelveColeccionesVacias(t *testing.T) {
	out, err := dashboard.NewAlertasUseCase(&fakeAlertasRepo{}).GetAlertas(context.Background())
	require.NoError(t, err)

	assert.Empty(t, out.StockBajo)
	assert.Empty(t, out.LotesProximosVencer)
	assert.Empty(t, out.InsumosSinMovimiento)
	assert.Equal(t, 0, out.Resumen.TotalAlertas)
	assert.Equal(t, 0, out.Resumen.RequiereAccionInmediata)
}
