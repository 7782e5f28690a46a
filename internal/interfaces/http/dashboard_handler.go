package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/DarkCodex29/Texfina-Backend/internal/application/dashboard"
	"github.com/DarkCodex29/Texfina-Backend/internal/application/dto"
)

// DashboardHandler expone los endpoints del tablero ejecutivo de inventario.
// Los cuatro endpoints fallan completos ante cualquier error de lectura: se
// registra la operación y el error, y el cliente recibe un 500 genérico sin
// detalle interno.
type DashboardHandler struct {
	resumen    *dashboard.ResumenUseCase
	alertas    *dashboard.AlertasUseCase
	tendencias *dashboard.TendenciasUseCase
	kpis       *dashboard.KPIsUseCase
}

// NewDashboardHandler construye el handler del tablero.
func NewDashboardHandler(
	resumen *dashboard.ResumenUseCase,
	alertas *dashboard.AlertasUseCase,
	tendencias *dashboard.TendenciasUseCase,
	kpis *dashboard.KPIsUseCase,
) *DashboardHandler {
	return &DashboardHandler{resumen: resumen, alertas: alertas, tendencias: tendencias, kpis: kpis}
}

// GetResumen godoc
// @Summary      Resumen ejecutivo del inventario
// @Description  Inventario general, estadísticas de insumos, alertas críticas,
//               movimientos del mes y rankings de clases, almacenes y proveedores.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResumenEjecutivoDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/resumen [get]
func (h *DashboardHandler) GetResumen(c *fiber.Ctx) error {
	out, err := h.resumen.GetResumen(c.Context())
	if err != nil {
		log.Error().Err(err).Str("operacion", "dashboard.resumen").Msg("resumen ejecutivo")
		return errorInterno(c)
	}
	return c.JSON(out)
}

// GetAlertas godoc
// @Summary      Alertas del inventario
// @Description  Stock bajo, lotes próximos a vencer e insumos sin movimiento,
//               con criticidad por umbrales y resumen de acción inmediata.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertasDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/alertas [get]
func (h *DashboardHandler) GetAlertas(c *fiber.Ctx) error {
	out, err := h.alertas.GetAlertas(c.Context())
	if err != nil {
		log.Error().Err(err).Str("operacion", "dashboard.alertas").Msg("alertas de inventario")
		return errorInterno(c)
	}
	return c.JSON(out)
}

// GetTendencias godoc
// @Summary      Tendencias de ingresos y consumos
// @Description  Series mensuales de ingresos y consumos en la ventana de análisis
//               y rotación de inventario por clase.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        meses  query  int  false  "Meses hacia atrás (default 6)"
// @Success      200  {object}  dto.TendenciasDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/tendencias [get]
func (h *DashboardHandler) GetTendencias(c *fiber.Ctx) error {
	meses := c.QueryInt("meses", dashboard.MesesAnalisisDefault)
	out, err := h.tendencias.GetTendencias(c.Context(), meses)
	if err != nil {
		log.Error().Err(err).Str("operacion", "dashboard.tendencias").Int("meses", meses).Msg("tendencias de inventario")
		return errorInterno(c)
	}
	return c.JSON(out)
}

// GetKPIs godoc
// @Summary      KPIs financieros, operacionales y de calidad
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.KPIsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) GetKPIs(c *fiber.Ctx) error {
	out, err := h.kpis.GetKPIs(c.Context())
	if err != nil {
		log.Error().Err(err).Str("operacion", "dashboard.kpis").Msg("kpis de inventario")
		return errorInterno(c)
	}
	return c.JSON(out)
}

// errorInterno respuesta 500 genérica: nunca expone el detalle del error.
func errorInterno(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "Error interno del servidor",
	})
}
