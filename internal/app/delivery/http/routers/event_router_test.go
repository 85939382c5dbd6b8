package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"tablepoll-service/internal/app/config"
	"tablepoll-service/internal/app/delivery/http/controllers"
	"tablepoll-service/internal/app/delivery/http/middlewares"
	"tablepoll-service/internal/pkg/dto/requests"
	"tablepoll-service/internal/pkg/dto/responses"
	"tablepoll-service/internal/pkg/exceptions"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockEventUsecase struct {
	mock.Mock
}

func (m *MockEventUsecase) CreateEvent(ctx context.Context, request *requests.CreateEvent) (*responses.CreateEvent, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.CreateEvent), args.Error(1)
}

func (m *MockEventUsecase) FindEventByBlockID(ctx context.Context, request *requests.FindEventByBlockID) (*responses.Event, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Event), args.Error(1)
}

func (m *MockEventUsecase) SubmitVote(ctx context.Context, blockID string, request *requests.SubmitVote) (*responses.Vote, error) {
	args := m.Called(ctx, blockID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Vote), args.Error(1)
}

func (m *MockEventUsecase) FindResultsByBlockID(ctx context.Context, request *requests.FindResultsByBlockID) (*responses.Results, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Results), args.Error(1)
}

func (m *MockEventUsecase) ExportSlot(ctx context.Context, request *requests.ExportSlot) (*responses.Export, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Export), args.Error(1)
}

func TestEventRouter(t *testing.T) {
	logger := zap.NewNop()

	internalConfig := &config.InternalConfig{
		App: config.App{BaseUrl: "https://tablepoll.example.com"},
	}

	mockEventUsecase := new(MockEventUsecase)
	eventController := controllers.NewEventController(logger, mockEventUsecase)

	middlewareInstance := &middlewares.Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}

	router := chi.NewRouter()
	router.Use(middlewareInstance.RequestIDMiddleware)
	router.Route("/events", func(r chi.Router) {
		attachEventRoutes(r, eventController)
	})

	t.Run("Create Event with Invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/events", bytes.NewBufferString("invalid json"))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "should return 400 Bad Request for invalid JSON")
		mockEventUsecase.AssertNotCalled(t, "CreateEvent")
	})

	t.Run("Create Event with Missing Fields", func(t *testing.T) {
		jsonBody, _ := json.Marshal(map[string]interface{}{
			"blob": "sealed-blob",
		})

		req := httptest.NewRequest("POST", "/events", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "should return 400 Bad Request when required fields are absent")
		mockEventUsecase.AssertNotCalled(t, "CreateEvent")
	})

	t.Run("Create Event Success", func(t *testing.T) {
		mockEventUsecase.On("CreateEvent", mock.Anything, mock.AnythingOfType("*requests.CreateEvent")).Return(&responses.CreateEvent{
			BlockID:    "block-1",
			VoteURL:    "https://tablepoll.example.com/event/block-1",
			ResultsURL: "https://tablepoll.example.com/event/block-1/results",
		}, nil).Once()

		requestBody := requests.CreateEvent{
			Blob:       "sealed-blob",
			DocumentID: "doc-1",
			Title:      "Team Sync",
			Timezone:   "Europe/Berlin",
			Slots: []requests.EventSlot{
				{Date: "2026-03-15", Hour: 10},
			},
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/events", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code, "should return 201 Created for a valid event")

		var response responses.ResponseDTO
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.True(t, response.Success)
		mockEventUsecase.AssertExpectations(t)
	})

	t.Run("Submit Vote While Lock Is Held", func(t *testing.T) {
		mockEventUsecase.On("SubmitVote", mock.Anything, "block-1", mock.AnythingOfType("*requests.SubmitVote")).
			Return(nil, exceptions.ErrVoteLockNotAcquired()).Once()

		requestBody := requests.SubmitVote{
			Blob:            "sealed-blob",
			ParticipantName: "Alice",
			Votes:           map[int]bool{0: true},
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/events/block-1/votes", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusLocked, rr.Code, "should return 423 Locked while another vote is merging")
		mockEventUsecase.AssertExpectations(t)
	})

	t.Run("Submit Vote Success", func(t *testing.T) {
		mockEventUsecase.On("SubmitVote", mock.Anything, "block-1", mock.AnythingOfType("*requests.SubmitVote")).
			Return(&responses.Vote{BlockID: "block-1", SlotCount: 2}, nil).Once()

		requestBody := requests.SubmitVote{
			Blob:            "sealed-blob",
			ParticipantName: "Alice",
			Votes:           map[int]bool{0: true, 1: false},
		}
		jsonBody, _ := json.Marshal(requestBody)

		req := httptest.NewRequest("POST", "/events/block-1/votes", bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockEventUsecase.AssertExpectations(t)
	})

	t.Run("Find Event Success", func(t *testing.T) {
		mockEventUsecase.On("FindEventByBlockID", mock.Anything, mock.MatchedBy(func(request *requests.FindEventByBlockID) bool {
			return request.BlockID == "block-1" && request.Blob == "sealed-blob"
		})).Return(&responses.Event{BlockID: "block-1", Timezone: "Europe/Berlin"}, nil).Once()

		req := httptest.NewRequest("GET", "/events/block-1?blob=sealed-blob", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockEventUsecase.AssertExpectations(t)
	})

	t.Run("Find Event without Blob", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/events/block-1", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "should return 400 Bad Request when the blob query parameter is missing")
	})

	t.Run("Export with Non-Numeric Slot", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/events/block-1/export?blob=sealed-blob&slot=abc", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "should return 400 Bad Request for a non-numeric slot index")
		mockEventUsecase.AssertNotCalled(t, "ExportSlot")
	})

	t.Run("Results Success", func(t *testing.T) {
		mockEventUsecase.On("FindResultsByBlockID", mock.Anything, mock.AnythingOfType("*requests.FindResultsByBlockID")).
			Return(&responses.Results{BlockID: "block-1", BestSlotIndex: 0}, nil).Once()

		req := httptest.NewRequest("GET", "/events/block-1/results?blob=sealed-blob", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockEventUsecase.AssertExpectations(t)
	})
}
