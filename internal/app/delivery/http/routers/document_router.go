package routers

import (
	"tablepoll-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachDocumentRoutes(router chi.Router, documentController *controllers.DocumentController) {
	router.Get("/", documentController.FindAllDocuments)
}
