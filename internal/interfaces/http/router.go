package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DarkCodex29/Texfina-Backend/internal/application/auth"
	"github.com/DarkCodex29/Texfina-Backend/internal/application/dashboard"
	"github.com/DarkCodex29/Texfina-Backend/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ResumenUC    *dashboard.ResumenUseCase
	AlertasUC    *dashboard.AlertasUseCase
	TendenciasUC *dashboard.TendenciasUseCase
	KPIsUC       *dashboard.KPIsUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; registro solo para ADMIN autenticado
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RolAdmin),
		authHandler.Register)

	// Dashboard (protegido, cualquier rol autenticado)
	dash := api.Group("/dashboard", AuthMiddleware(deps.JWTSecret))
	dashboardHandler := NewDashboardHandler(deps.ResumenUC, deps.AlertasUC, deps.TendenciasUC, deps.KPIsUC)
	dash.Get("/resumen", dashboardHandler.GetResumen)
	dash.Get("/alertas", dashboardHandler.GetAlertas)
	dash.Get("/tendencias", dashboardHandler.GetTendencias)
	dash.Get("/kpis", dashboardHandler.GetKPIs)
}
