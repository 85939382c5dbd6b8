package controllers

import (
	"context"
	"net/http"
	"sync"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/pkg/constvars"
	"tablepoll-service/internal/pkg/dto/requests"
	"tablepoll-service/internal/pkg/exceptions"
	"tablepoll-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type DocumentController struct {
	Log             *zap.Logger
	DocumentUsecase contracts.DocumentUsecase
}

var (
	documentControllerInstance *DocumentController
	onceDocumentController     sync.Once
)

func NewDocumentController(logger *zap.Logger, documentUsecase contracts.DocumentUsecase) *DocumentController {
	onceDocumentController.Do(func() {
		documentControllerInstance = &DocumentController{
			Log:             logger,
			DocumentUsecase: documentUsecase,
		}
	})
	return documentControllerInstance
}

func (ctrl *DocumentController) FindAllDocuments(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DocumentController.FindAllDocuments requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DocumentController.FindAllDocuments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.ListDocuments{
		Blob: r.URL.Query().Get(constvars.QueryParamBlob),
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("DocumentController.FindAllDocuments validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.DocumentUsecase.FindAllDocuments(ctx, request)
	if err != nil {
		ctrl.Log.Error("DocumentController.FindAllDocuments error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DocumentController.FindAllDocuments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DocumentListSuccess, response)
}
