package controllers

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/pkg/constvars"
	"tablepoll-service/internal/pkg/dto/requests"
	"tablepoll-service/internal/pkg/exceptions"
	"tablepoll-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type EventController struct {
	Log          *zap.Logger
	EventUsecase contracts.EventUsecase
}

var (
	eventControllerInstance *EventController
	onceEventController     sync.Once
)

func NewEventController(logger *zap.Logger, eventUsecase contracts.EventUsecase) *EventController {
	onceEventController.Do(func() {
		eventControllerInstance = &EventController{
			Log:          logger,
			EventUsecase: eventUsecase,
		}
	})
	return eventControllerInstance
}

func (ctrl *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EventController.CreateEvent requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("EventController.CreateEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateEvent)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("EventController.CreateEvent error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("EventController.CreateEvent validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := ctrl.EventUsecase.CreateEvent(ctx, request)
	if err != nil {
		ctrl.Log.Error("EventController.CreateEvent error from usecase",
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

	ctrl.Log.Info("EventController.CreateEvent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, response.BlockID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.EventCreatedSuccess, response)
}

func (ctrl *EventController) FindEventByBlockID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EventController.FindEventByBlockID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("EventController.FindEventByBlockID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.FindEventByBlockID{
		Blob:    r.URL.Query().Get(constvars.QueryParamBlob),
		BlockID: chi.URLParam(r, constvars.URLParamBlockID),
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("EventController.FindEventByBlockID validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.EventUsecase.FindEventByBlockID(ctx, request)
	if err != nil {
		ctrl.Log.Error("EventController.FindEventByBlockID error from usecase",
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

	ctrl.Log.Info("EventController.FindEventByBlockID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, response.BlockID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.EventFetchedSuccess, response)
}

func (ctrl *EventController) SubmitVote(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EventController.SubmitVote requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("EventController.SubmitVote called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.SubmitVote)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("EventController.SubmitVote error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("EventController.SubmitVote validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	blockID := chi.URLParam(r, constvars.URLParamBlockID)

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	response, err := ctrl.EventUsecase.SubmitVote(ctx, blockID, request)
	if err != nil {
		ctrl.Log.Error("EventController.SubmitVote error from usecase",
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

	ctrl.Log.Info("EventController.SubmitVote succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, blockID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.VoteRecordedSuccess, response)
}

func (ctrl *EventController) FindResultsByBlockID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EventController.FindResultsByBlockID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("EventController.FindResultsByBlockID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.FindResultsByBlockID{
		Blob:    r.URL.Query().Get(constvars.QueryParamBlob),
		BlockID: chi.URLParam(r, constvars.URLParamBlockID),
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("EventController.FindResultsByBlockID validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.EventUsecase.FindResultsByBlockID(ctx, request)
	if err != nil {
		ctrl.Log.Error("EventController.FindResultsByBlockID error from usecase",
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

	ctrl.Log.Info("EventController.FindResultsByBlockID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, response.BlockID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResultsFetchedSuccess, response)
}

func (ctrl *EventController) ExportSlot(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("EventController.ExportSlot requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("EventController.ExportSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	slotIndex, err := strconv.Atoi(r.URL.Query().Get(constvars.QueryParamSlot))
	if err != nil {
		ctrl.Log.Error("EventController.ExportSlot invalid slot query parameter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrSlotIndexOutOfRange(-1))
		return
	}

	request := &requests.ExportSlot{
		Blob:      r.URL.Query().Get(constvars.QueryParamBlob),
		BlockID:   chi.URLParam(r, constvars.URLParamBlockID),
		SlotIndex: slotIndex,
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("EventController.ExportSlot validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	response, err := ctrl.EventUsecase.ExportSlot(ctx, request)
	if err != nil {
		ctrl.Log.Error("EventController.ExportSlot error from usecase",
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

	ctrl.Log.Info("EventController.ExportSlot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ExportCreatedSuccess, response)
}
