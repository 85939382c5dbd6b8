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

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ConnectionController struct {
	Log               *zap.Logger
	ConnectionUsecase contracts.ConnectionUsecase
}

var (
	connectionControllerInstance *ConnectionController
	onceConnectionController     sync.Once
)

func NewConnectionController(logger *zap.Logger, connectionUsecase contracts.ConnectionUsecase) *ConnectionController {
	onceConnectionController.Do(func() {
		connectionControllerInstance = &ConnectionController{
			Log:               logger,
			ConnectionUsecase: connectionUsecase,
		}
	})
	return connectionControllerInstance
}

func (ctrl *ConnectionController) CreateConnection(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ConnectionController.CreateConnection requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ConnectionController.CreateConnection called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateConnection)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("ConnectionController.CreateConnection error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ConnectionController.CreateConnection validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ConnectionUsecase.CreateConnection(ctx, request)
	if err != nil {
		ctrl.Log.Error("ConnectionController.CreateConnection error from usecase",
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

	ctrl.Log.Info("ConnectionController.CreateConnection succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ConnectionCreatedSuccess, response)
}
