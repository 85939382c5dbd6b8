package routers

import (
	"tablepoll-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachConnectionRoutes(router chi.Router, connectionController *controllers.ConnectionController) {
	router.Post("/", connectionController.CreateConnection)
}
