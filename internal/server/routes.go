package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"feedbackanalysis/internal/handlers"
	"feedbackanalysis/internal/handlers/api"
)

// Store is the storage surface the HTTP layer reads from.
type Store interface {
	api.FeedbackReader
	api.UserFinder
	api.Pinger
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(store Store, proc api.TextProcessor) {
	feedbackHandler := api.NewFeedbackHandler(store)
	authHandler := api.NewAuthHandler(store)
	classifyHandler := api.NewClassifyHandler(proc)
	healthHandler := api.NewHealthHandler(store)
	dashboardHandler := handlers.NewDashboardHandler(store)

	// Chart data
	s.App.Get("/get_all_data", feedbackHandler.AllData)
	s.App.Get("/get_chart_data", feedbackHandler.ChartData)
	s.App.Get("/get_pie_chart_data", feedbackHandler.PieChartData)

	// Login
	s.App.Post("/login", s.loginLimiter, authHandler.Login)

	// Ad-hoc classification (not persisted)
	s.App.Post("/classify", classifyHandler.Classify)

	// Operations
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Dashboard
	s.App.Get("/", dashboardHandler.Index)
}
