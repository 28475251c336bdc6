// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"nirogya/internal/delivery/http/middleware"
	"nirogya/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	DoctorHandler   *handler.DoctorHandler
	SearchHandler   *handler.SearchHandler
	ProviderHandler *handler.ProviderHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	doctorHandler   *handler.DoctorHandler
	searchHandler   *handler.SearchHandler
	providerHandler *handler.ProviderHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		doctorHandler:   params.DoctorHandler,
		searchHandler:   params.SearchHandler,
		providerHandler: params.ProviderHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Organization account routes
	clinicGroup := api.Group("/clinics")
	{
		clinicGroup.POST("/register", r.authHandler.RegisterClinic)
		clinicGroup.POST("/login", r.authHandler.LoginClinic)
	}

	hospitalGroup := api.Group("/hospitals")
	{
		hospitalGroup.POST("/register", r.authHandler.RegisterHospital)
		hospitalGroup.POST("/login", r.authHandler.LoginHospital)
	}

	// Doctor management; adding requires an authenticated organization
	doctorGroup := api.Group("/doctors")
	{
		doctorGroup.POST("/add", r.doctorHandler.AddDoctor,
			r.authMiddleware.Authenticate, r.authMiddleware.RequireOrganization)
		doctorGroup.GET("/organization/:organizationId", r.doctorHandler.DoctorsByOrganization,
			r.authMiddleware.Authenticate)
	}

	// Patient-facing search; anonymous
	searchGroup := api.Group("/search")
	{
		searchGroup.GET("/doctors", r.searchHandler.Doctors)
		searchGroup.GET("/hospitals", r.searchHandler.Hospitals)
		searchGroup.GET("/clinics", r.searchHandler.Clinics)
		searchGroup.GET("/specialty", r.searchHandler.Specialty)
	}

	// Public provider profiles
	providerGroup := api.Group("/providers")
	{
		providerGroup.GET("/:id", r.providerHandler.GetProfile)
		providerGroup.GET("/:id/qrcode", r.providerHandler.GetProfileQR)
	}
}
