package routers

import (
	"tablepoll-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachHistoryRoutes(router chi.Router, historyController *controllers.HistoryController) {
	router.Get("/", historyController.FindHistory)
}
