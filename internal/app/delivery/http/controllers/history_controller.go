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

type HistoryController struct {
	Log            *zap.Logger
	HistoryUsecase contracts.EventHistoryUsecase
}

var (
	historyControllerInstance *HistoryController
	onceHistoryController     sync.Once
)

func NewHistoryController(logger *zap.Logger, historyUsecase contracts.EventHistoryUsecase) *HistoryController {
	onceHistoryController.Do(func() {
		historyControllerInstance = &HistoryController{
			Log:            logger,
			HistoryUsecase: historyUsecase,
		}
	})
	return historyControllerInstance
}

func (ctrl *HistoryController) FindHistory(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("HistoryController.FindHistory requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("HistoryController.FindHistory called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.ListHistory{
		Blob: r.URL.Query().Get(constvars.QueryParamBlob),
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("HistoryController.FindHistory validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.HistoryUsecase.FindHistoryByBlob(ctx, request)
	if err != nil {
		ctrl.Log.Error("HistoryController.FindHistory error from usecase",
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

	ctrl.Log.Info("HistoryController.FindHistory succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HistoryFetchedSuccess, response)
}
