package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DarkCodex29/Texfina-Backend/internal/application/auth"
	"github.com/DarkCodex29/Texfina-Backend/internal/application/dashboard"
	"github.com/DarkCodex29/Texfina-Backend/internal/domain/entity"
	"github.com/DarkCodex29/Texfina-Backend/internal/domain/repository"
	apphttp "github.com/DarkCodex29/Texfina-Backend/internal/interfaces/http"
)

// fakeDashboardRepo implementa los cuatro repositorios del tablero en memoria.
// Con err definido, toda lectura falla: sirve para verificar el 500 genérico.
type fakeDashboardRepo struct {
	stockBajo []repository.StockBajoRow
	err       error
}

func (f *fakeDashboardRepo) ObtenerStockBajo(ctx context.Context, umbral int) ([]repository.StockBajoRow, error) {
	return f.stockBajo, f.err
}

func (f *fakeDashboardRepo) ObtenerLotesPorVencer(ctx context.Context, desde, hasta time.Time) ([]repository.LotePorVencerRow, error) {
	return nil, f.err
}

func (f *fakeDashboardRepo) ObtenerInsumosSinMovimiento(ctx context.Context, desde time.Time, limite int) ([]repository.InsumoSinMovimientoRow, error) {
	return nil, f.err
}

func (f *fakeDashboardRepo) ObtenerIngresosDesde(ctx context.Context, desde time.Time) ([]repository.MovimientoRow, error) {
	return nil, f.err
}

func (f *fakeDashboardRepo) ObtenerConsumosDesde(ctx context.Context, desde time.Time) ([]repository.MovimientoRow, error) {
	return nil, f.err
}

func (f *fakeDashboardRepo) ObtenerStockActivo(ctx context.Context) ([]repository.StockActivoRow, error) {
	return nil, f.err
}

func (f *fakeDashboardRepo) ValorInventarioActual(ctx context.Context) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func (f *fakeDashboardRepo) InversionDesde(ctx context.Context, desde time.Time) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func (f *fakeDashboardRepo) InversionEntre(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

func (f *fakeDashboardRepo) ContarProveedoresActivos(ctx context.Context, desde time.Time) (int, error) {
	return 0, f.err
}

func (f *fakeDashboardRepo) ContarConsumosDesde(ctx context.Context, desde time.Time) (int, error) {
	return 0, f.err
}

func (f *fakeDashboardRepo) ContarIngresosRecibidosDesde(ctx context.Context, desde time.Time) (int, error) {
	return 0, f.err
}

func (f *fakeDashboardRepo) ContarLotesActivos(ctx context.Context) (int, error) {
	return 0, f.err
}

func (f *fakeDashboardRepo) ContarLotesVencidos(ctx context.Context, hoy time.Time) (int, error) {
	return 0, f.err
}

func (f *fakeDashboardRepo) InventarioGeneral(ctx context.Context) (repository.InventarioGeneralRow, error) {
	return repository.InventarioGeneralRow{}, f.err
}

func (f *fakeDashboardRepo) EstadisticasInsumos(ctx context.Context) (repository.EstadisticasInsumosRow, error) {
	return repository.EstadisticasInsumosRow{}, f.err
}

func (f *fakeDashboardRepo) ContarStockBajo(ctx context.Context, umbral int) (int, error) {
	return 0, f.err
}

func (f *fakeDashboardRepo) ContarLotesPorVencer(ctx context.Context, desde, hasta time.Time) (int, error) {
	return 0, f.err
}

func (f *fakeDashboardRepo) ContarAlmacenesVacios(ctx context.Context) (int, error) {
	return 0, f.err
}

func (f *fakeDashboardRepo) MovimientosIngresos(ctx context.Context, desde time.Time) (repository.MovimientosPeriodoRow, error) {
	return repository.MovimientosPeriodoRow{}, f.err
}

func (f *fakeDashboardRepo) MovimientosConsumos(ctx context.Context, desde time.Time) (repository.MovimientosPeriodoRow, error) {
	return repository.MovimientosPeriodoRow{}, f.err
}

func (f *fakeDashboardRepo) TopClases(ctx context.Context, limite int) ([]repository.TopClaseRow, error) {
	return nil, f.err
}

func (f *fakeDashboardRepo) TopAlmacenes(ctx context.Context, limite int) ([]repository.TopAlmacenRow, error) {
	return nil, f.err
}

func (f *fakeDashboardRepo) TopProveedores(ctx context.Context, desde time.Time, limite int) ([]repository.TopProveedorRow, error) {
	return nil, f.err
}

// fakeUsuarioRepo repositorio de usuarios en memoria, indexado por email.
type fakeUsuarioRepo struct {
	usuarios map[string]*entity.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[string]*entity.Usuario)}
}

func (f *fakeUsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	f.usuarios[u.Email] = u
	return nil
}

func (f *fakeUsuarioRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	return f.usuarios[email], nil
}

// buildAPI monta la API completa (router + middlewares) sobre el fake.
func buildAPI(repo *fakeDashboardRepo) *fiber.App {
	app := fiber.New()
	authUC := auth.NewAuthUseCase(newFakeUsuarioRepo(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		ResumenUC:    dashboard.NewResumenUseCase(repo),
		AlertasUC:    dashboard.NewAlertasUseCase(repo),
		TendenciasUC: dashboard.NewTendenciasUseCase(repo),
		KPIsUC:       dashboard.NewKPIsUseCase(repo),
		JWTSecret:    testJWTSecret,
	})
	return app
}

func TestDashboard_SinToken_Retorna401(t *testing.T) {
	app := buildAPI(&fakeDashboardRepo{})
	for _, path := range []string{
		"/api/dashboard/resumen",
		"/api/dashboard/alertas",
		"/api/dashboard/tendencias",
		"/api/dashboard/kpis",
	} {
		resp := doRequest(t, app, path, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "ruta %s", path)
		resp.Body.Close()
	}
}

func TestDashboard_Alertas_RespuestaCompleta(t *testing.T) {
	repo := &fakeDashboardRepo{
		stockBajo: []repository.StockBajoRow{
			{IDStock: 1, Cantidad: decimal.NewFromInt(2), IDInsumo: 10, Insumo: "Ácido acético", IDFox: "F-010", Clase: "QUÍMICOS", Almacen: "Principal"},
		},
	}
	app := buildAPI(repo)

	resp := doRequest(t, app, "/api/dashboard/alertas", tokenForRol(t, entity.RolOperario))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	for _, campo := range []string{"fechaConsulta", "stockBajo", "lotesProximosVencer", "insumosSinMovimiento", "resumen"} {
		assert.Contains(t, body, campo)
	}

	var stockBajo []map[string]interface{}
	require.NoError(t, json.Unmarshal(body["stockBajo"], &stockBajo))
	require.Len(t, stockBajo, 1)
	assert.Equal(t, "CRÍTICO", stockBajo[0]["criticidad"])
}

func TestDashboard_Tendencias_MesesPorDefecto(t *testing.T) {
	app := buildAPI(&fakeDashboardRepo{})

	resp := doRequest(t, app, "/api/dashboard/tendencias", tokenForRol(t, entity.RolOperario))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		PeriodoAnalisis struct {
			Meses int `json:"meses"`
		} `json:"periodoAnalisis"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, dashboard.MesesAnalisisDefault, body.PeriodoAnalisis.Meses)
}

func TestDashboard_Tendencias_MesesPorQuery(t *testing.T) {
	app := buildAPI(&fakeDashboardRepo{})

	resp := doRequest(t, app, "/api/dashboard/tendencias?meses=12", tokenForRol(t, entity.RolOperario))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		PeriodoAnalisis struct {
			Meses int `json:"meses"`
		} `json:"periodoAnalisis"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 12, body.PeriodoAnalisis.Meses)
}

// Ante un fallo de lectura el cliente recibe un 500 genérico, nunca el
// detalle interno del error.
func TestDashboard_ErrorDeLectura_Retorna500Generico(t *testing.T) {
	repo := &fakeDashboardRepo{err: errFalloLectura{}}
	app := buildAPI(repo)

	for _, path := range []string{
		"/api/dashboard/resumen",
		"/api/dashboard/alertas",
		"/api/dashboard/tendencias",
		"/api/dashboard/kpis",
	} {
		resp := doRequest(t, app, path, tokenForRol(t, entity.RolAdmin))
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "ruta %s", path)

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Contains(t, string(body), "Error interno del servidor", "ruta %s", path)
		assert.NotContains(t, string(body), "detalle secreto de la base", "ruta %s", path)
	}
}

type errFalloLectura struct{}

func (errFalloLectura) Error() string { return "detalle secreto de la base" }

func TestDashboard_KPIs_RespuestaCompleta(t *testing.T) {
	app := buildAPI(&fakeDashboardRepo{})

	resp := doRequest(t, app, "/api/dashboard/kpis", tokenForRol(t, entity.RolSupervisor))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	for _, campo := range []string{"fechaCalculo", "kpisFinancieros", "kpisOperacionales", "kpisCalidad"} {
		assert.Contains(t, body, campo)
	}

	// Sin lotes activos la eficiencia es 100 y el índice EXCELENTE.
	var calidad map[string]interface{}
	require.NoError(t, json.Unmarshal(body["kpisCalidad"], &calidad))
	assert.Equal(t, "EXCELENTE", calidad["indiceCalidad"])
}
