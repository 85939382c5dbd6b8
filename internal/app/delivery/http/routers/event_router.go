package routers

import (
	"tablepoll-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachEventRoutes(router chi.Router, eventController *controllers.EventController) {
	router.Post("/", eventController.CreateEvent)
	router.Get("/{blockID}", eventController.FindEventByBlockID)
	router.Post("/{blockID}/votes", eventController.SubmitVote)
	router.Get("/{blockID}/results", eventController.FindResultsByBlockID)
	router.Get("/{blockID}/export", eventController.ExportSlot)
}
