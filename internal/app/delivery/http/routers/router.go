package routers

import (
	"fmt"
	"tablepoll-service/internal/app/config"
	"tablepoll-service/internal/app/delivery/http/controllers"
	"tablepoll-service/internal/app/delivery/http/middlewares"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	connectionController *controllers.ConnectionController,
	documentController *controllers.DocumentController,
	eventController *controllers.EventController,
	historyController *controllers.HistoryController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := internalConfig.App.EndpointPrefix
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/connections", func(r chi.Router) {
				attachConnectionRoutes(r, connectionController)
			})

			r.Route("/documents", func(r chi.Router) {
				attachDocumentRoutes(r, documentController)
			})

			r.Route("/events", func(r chi.Router) {
				attachEventRoutes(r, eventController)
			})

			r.Route("/history", func(r chi.Router) {
				attachHistoryRoutes(r, historyController)
			})
		})
	})
}
