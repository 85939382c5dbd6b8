package events

import (
	"context"
	"strings"
	"tablepoll-service/internal/app/config"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/app/models"
	"tablepoll-service/internal/pkg/craft_dto"
	"tablepoll-service/internal/pkg/dto/requests"
	"tablepoll-service/internal/pkg/dto/responses"
	"tablepoll-service/internal/pkg/exceptions"
	"tablepoll-service/internal/pkg/utils"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockSecretsService struct {
	mock.Mock
}

func (m *MockSecretsService) Seal(plaintext []byte) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockSecretsService) Open(blob string) ([]byte, error) {
	args := m.Called(blob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockBlockClient struct {
	mock.Mock
}

func (m *MockBlockClient) FindBlockByID(ctx context.Context, apiURL, apiKey, blockID string, maxDepth int) (*craft_dto.Block, error) {
	args := m.Called(ctx, apiURL, apiKey, blockID, maxDepth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*craft_dto.Block), args.Error(1)
}

func (m *MockBlockClient) InsertBlocks(ctx context.Context, apiURL, apiKey, documentID string, blocks []craft_dto.Block) (*craft_dto.InsertBlocksResponse, error) {
	args := m.Called(ctx, apiURL, apiKey, documentID, blocks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*craft_dto.InsertBlocksResponse), args.Error(1)
}

func (m *MockBlockClient) UpdateBlockMarkdown(ctx context.Context, apiURL, apiKey, blockID, markdown string) (*craft_dto.Block, error) {
	args := m.Called(ctx, apiURL, apiKey, blockID, markdown)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*craft_dto.Block), args.Error(1)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadObject(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, data, contentType)
	return args.Error(0)
}

func (m *MockStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) BuildSlotInvite(invite *contracts.SlotInvite) ([]byte, error) {
	args := m.Called(invite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockHistoryUsecase struct {
	mock.Mock
}

func (m *MockHistoryUsecase) RecordEvent(ctx context.Context, entry *models.EventHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryUsecase) FindHistoryByBlob(ctx context.Context, request *requests.ListHistory) ([]responses.HistoryEntry, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]responses.HistoryEntry), args.Error(1)
}

type eventUsecaseMocks struct {
	Secrets  *MockSecretsService
	Blocks   *MockBlockClient
	Redis    *MockRedisRepository
	Locker   *MockLockerService
	Pub      *MockPublisher
	Storage  *MockStorage
	Calendar *MockCalendarService
	History  *MockHistoryUsecase
}

func newTestEventUsecase() (*eventUsecase, *eventUsecaseMocks) {
	mocks := &eventUsecaseMocks{
		Secrets:  new(MockSecretsService),
		Blocks:   new(MockBlockClient),
		Redis:    new(MockRedisRepository),
		Locker:   new(MockLockerService),
		Pub:      new(MockPublisher),
		Storage:  new(MockStorage),
		Calendar: new(MockCalendarService),
		History:  new(MockHistoryUsecase),
	}

	uc := &eventUsecase{
		SecretsService:  mocks.Secrets,
		BlockClient:     mocks.Blocks,
		RedisRepository: mocks.Redis,
		LockerService:   mocks.Locker,
		Publisher:       mocks.Pub,
		Storage:         mocks.Storage,
		CalendarService: mocks.Calendar,
		HistoryUsecase:  mocks.History,
		InternalConfig: &config.InternalConfig{
			App: config.App{BaseUrl: "https://tablepoll.example.com"},
			JWT: config.AppJWT{Secret: "test-jwt-secret", ExpTimeInHour: 24},
			Redis: config.AppRedis{
				BlockCacheTTLInSeconds: 30,
				VoteLockTTLInSeconds:   10,
			},
			Minio: config.AppMinio{
				BucketName:                               "tablepoll-exports",
				MinioPreSignedUrlObjectExpiryTimeInHours: 24,
			},
		},
		Log: zap.NewNop(),
	}
	return uc, mocks
}

const testConnectionJSON = `{"apiUrl":"https://connect.example.com/api/v1","apiKey":"test-api-key"}`

const testTableMarkdown = `| Name | 15.03. 10:00 | 16.03. 14:00 |
| --- | --- | --- |
| Organiser | ✅ | ✅ |
| Alice | ✅ |  |
| Bob | ✅ | ✅ |`

func TestEventUsecase_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy Path Creates Page Metadata And Table", func(t *testing.T) {
		uc, mocks := newTestEventUsecase()

		mocks.Secrets.On("Open", "sealed-blob").Return([]byte(testConnectionJSON), nil)

		// Page block first, into the chosen document.
		mocks.Blocks.On("InsertBlocks", mock.Anything, "https://connect.example.com/api/v1", "test-api-key", "doc-1",
			mock.MatchedBy(func(blocks []craft_dto.Block) bool {
				return len(blocks) == 1 && blocks[0].TextStyle == "page" && blocks[0].Markdown == "Team Sync – Scheduling"
			})).Return(&craft_dto.InsertBlocksResponse{Items: []craft_dto.Block{{ID: "page-1"}}}, nil)

		// Metadata blocks, ending with the timezone marker.
		mocks.Blocks.On("InsertBlocks", mock.Anything, "https://connect.example.com/api/v1", "test-api-key", "page-1",
			mock.MatchedBy(func(blocks []craft_dto.Block) bool {
				return len(blocks) > 1 && blocks[len(blocks)-1].Markdown == "[TIMEZONE: Europe/Berlin]"
			})).Return(&craft_dto.InsertBlocksResponse{}, nil)

		// The table itself.
		mocks.Blocks.On("InsertBlocks", mock.Anything, "https://connect.example.com/api/v1", "test-api-key", "page-1",
			mock.MatchedBy(func(blocks []craft_dto.Block) bool {
				return len(blocks) == 1 && strings.HasPrefix(blocks[0].Markdown, "| Name |")
			})).Return(&craft_dto.InsertBlocksResponse{Items: []craft_dto.Block{{ID: "block-1"}}}, nil)

		mocks.History.On("RecordEvent", mock.Anything, mock.MatchedBy(func(entry *models.EventHistory) bool {
			return entry.BlockID == "block-1" && entry.Title == "Team Sync" && entry.Fingerprint != ""
		})).Return(nil)
		mocks.Pub.On("Publish", mock.Anything, "event.created", mock.Anything).Return(nil)

		response, err := uc.CreateEvent(ctx, &requests.CreateEvent{
			Blob:       "sealed-blob",
			DocumentID: "doc-1",
			Title:      "Team Sync",
			Timezone:   "Europe/Berlin",
			Slots: []requests.EventSlot{
				{Date: "2026-03-15", Hour: 10},
				{Date: "2026-03-16", Hour: 14},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, "block-1", response.BlockID)
		assert.Equal(t, "https://tablepoll.example.com/event/block-1", response.VoteURL)
		assert.Equal(t, "https://tablepoll.example.com/event/block-1/results", response.ResultsURL)

		blockID, scope, err := utils.ParseShareJWT(response.VoteToken, "test-jwt-secret")
		assert.NoError(t, err)
		assert.Equal(t, "block-1", blockID)
		assert.Equal(t, utils.ShareScopeVote, scope)

		blockID, scope, err = utils.ParseShareJWT(response.ResultsToken, "test-jwt-secret")
		assert.NoError(t, err)
		assert.Equal(t, "block-1", blockID)
		assert.Equal(t, utils.ShareScopeResults, scope)

		mocks.Blocks.AssertExpectations(t)
		mocks.History.AssertExpectations(t)
		mocks.Pub.AssertExpectations(t)
	})

	t.Run("Invalid Timezone Rejected Before Any Write", func(t *testing.T) {
		uc, mocks := newTestEventUsecase()

		mocks.Secrets.On("Open", "sealed-blob").Return([]byte(testConnectionJSON), nil)

		response, err := uc.CreateEvent(ctx, &requests.CreateEvent{
			Blob:       "sealed-blob",
			DocumentID: "doc-1",
			Title:      "Team Sync",
			Timezone:   "Mars/Olympus_Mons",
			Slots:      []requests.EventSlot{{Date: "2026-03-15", Hour: 10}},
		})

		assert.Error(t, err)
		assert.Nil(t, response)
		mocks.Blocks.AssertNotCalled(t, "InsertBlocks")
	})

	t.Run("History Failure Does Not Fail Creation", func(t *testing.T) {
		uc, mocks := newTestEventUsecase()

		mocks.Secrets.On("Open", "sealed-blob").Return([]byte(testConnectionJSON), nil)
		mocks.Blocks.On("InsertBlocks", mock.Anything, mock.Anything, mock.Anything, "doc-1", mock.Anything).
			Return(&craft_dto.InsertBlocksResponse{Items: []craft_dto.Block{{ID: "page-1"}}}, nil)
		mocks.Blocks.On("InsertBlocks", mock.Anything, mock.Anything, mock.Anything, "page-1",
			mock.MatchedBy(func(blocks []craft_dto.Block) bool {
				return len(blocks) > 1
			})).Return(&craft_dto.InsertBlocksResponse{}, nil)
		mocks.Blocks.On("InsertBlocks", mock.Anything, mock.Anything, mock.Anything, "page-1",
			mock.MatchedBy(func(blocks []craft_dto.Block) bool {
				return len(blocks) == 1
			})).Return(&craft_dto.InsertBlocksResponse{Items: []craft_dto.Block{{ID: "block-1"}}}, nil)

		mocks.History.On("RecordEvent", mock.Anything, mock.Anything).Return(exceptions.ErrMongoDBInsertDocument(nil))
		mocks.Pub.On("Publish", mock.Anything, "event.created", mock.Anything).Return(nil)

		response, err := uc.CreateEvent(ctx, &requests.CreateEvent{
			Blob:       "sealed-blob",
			DocumentID: "doc-1",
			Title:      "Team Sync",
			Timezone:   "UTC",
			Slots:      []requests.EventSlot{{Date: "2026-03-15", Hour: 10}},
		})

		assert.NoError(t, err, "a history write failure must never fail event creation")
		assert.Equal(t, "block-1", response.BlockID)
	})
}

func TestEventUsecase_SubmitVote(t *testing.T) {
	ctx := context.Background()

	t.Run("Lock Held Returns Locked Status", func(t *testing.T) {
		uc, mocks := newTestEventUsecase()

		mocks.Secrets.On("Open", "sealed-blob").Return([]byte(testConnectionJSON), nil)
		mocks.Locker.On("TryLock", mock.Anything, "tablepoll:vote-lock:block-1", time.Second*10).Return(false, "", nil)

		response, err := uc.SubmitVote(ctx, "block-1", &requests.SubmitVote{
			Blob:            "sealed-blob",
			ParticipantName: "Alice",
			Votes:           map[int]bool{0: true},
		})

		assert.Nil(t, response)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 423, customErr.StatusCode, "a concurrent vote should surface as 423 Locked")
		mocks.Blocks.AssertNotCalled(t, "FindBlockByID")
	})

	t.Run("Slot Index Out Of Range Rejected", func(t *testing.T) {
		uc, mocks := newTestEventUsecase()

		mocks.Secrets.On("Open", "sealed-blob").Return([]byte(testConnectionJSON), nil)
		mocks.Locker.On("TryLock", mock.Anything, "tablepoll:vote-lock:block-1", time.Second*10).Return(true, "lock-value", nil)
		mocks.Locker.On("Unlock", mock.Anything, "tablepoll:vote-lock:block-1", "lock-value").Return(nil)
		mocks.Blocks.On("FindBlockByID", mock.Anything, mock.Anything, mock.Anything, "block-1", 1).
			Return(&craft_dto.Block{ID: "block-1", Markdown: testTableMarkdown}, nil)

		response, err := uc.SubmitVote(ctx, "block-1", &requests.SubmitVote{
			Blob:            "sealed-blob",
			ParticipantName: "Alice",
			Votes:           map[int]bool{5: true},
		})

		assert.Nil(t, response)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
		mocks.Blocks.AssertNotCalled(t, "UpdateBlockMarkdown")
		mocks.Locker.AssertExpectations(t)
	})

	t.Run("Empty Name After Sanitization Rejected", func(t *testing.T) {
		uc, mocks := newTestEventUsecase()

		mocks.Secrets.On("Open", "sealed-blob").Return([]byte(testConnectionJSON), nil)

		response, err := uc.SubmitVote(ctx, "block-1", &requests.SubmitVote{
			Blob:            "sealed-blob",
			ParticipantName: "   ",
			Votes:           map[int]bool{0: true},
		})

		assert.Nil(t, response)
		assert.Error(t, err)
		mocks.Locker.AssertNotCalled(t, "TryLock")
	})

	t.Run("Happy Path Merges And Invalidates Cache", func(t *testing.T) {
		uc, mocks := newTestEventUsecase()

		mocks.Secrets.On("Open", "sealed-blob").Return([]byte(testConnectionJSON), nil)
		mocks.Locker.On("TryLock", mock.Anything, "tablepoll:vote-lock:block-1", time.Second*10).Return(true, "lock-value", nil)
		mocks.Locker.On("Unlock", mock.Anything, "tablepoll:vote-lock:block-1", "lock-value").Return(nil)
		mocks.Blocks.On("FindBlockByID", mock.Anything, mock.Anything, mock.Anything, "block-1", 1).
			Return(&craft_dto.Block{ID: "block-1", Markdown: testTableMarkdown}, nil)
		mocks.Blocks.On("UpdateBlockMarkdown", mock.Anything, mock.Anything, mock.Anything, "block-1",
			mock.MatchedBy(func(markdown string) bool {
				return strings.Contains(markdown, "| Carol | ✅ |")
			})).Return(&craft_dto.Block{ID: "block-1"}, nil)
		mocks.Redis.On("Delete", mock.Anything, "tablepoll:block:block-1").Return(nil)
		mocks.Pub.On("Publish", mock.Anything, "vote.submitted", mock.Anything).Return(nil)

		response, err := uc.SubmitVote(ctx, "block-1", &requests.SubmitVote{
			Blob:            "sealed-blob",
			ParticipantName: "Carol",
			Votes:           map[int]bool{0: true},
		})

		assert.NoError(t, err)
		assert.Equal(t, "block-1", response.BlockID)
		assert.Equal(t, 2, response.SlotCount)
		assert.Contains(t, response.Markdown, "Carol")
		mocks.Blocks.AssertExpectations(t)
		mocks.Redis.AssertExpectations(t)
		mocks.Locker.AssertExpectations(t)
	})
}

func TestEventUsecase_FindResultsByBlockID(t *testing.T) {
	ctx := context.Background()

	t.Run("Counts Votes And Picks Best Slot", func(t *testing.T) {
		uc, mocks := newTestEventUsecase()

		mocks.Secrets.On("Open", "sealed-blob").Return([]byte(testConnectionJSON), nil)
		mocks.Redis.On("Get", mock.Anything, "tablepoll:block:block-1").Return("", nil)
		mocks.Redis.On("Set", mock.Anything, "tablepoll:block:block-1", mock.Anything, time.Second*30).Return(nil)
		mocks.Blocks.On("FindBlockByID", mock.Anything, mock.Anything, mock.Anything, "block-1", 1).
			Return(&craft_dto.Block{
				ID:       "block-1",
				Markdown: testTableMarkdown,
				Blocks:   []craft_dto.Block{{Markdown: "[TIMEZONE: Europe/Berlin]"}},
			}, nil)

		response, err := uc.FindResultsByBlockID(ctx, &requests.FindResultsByBlockID{
			Blob:    "sealed-blob",
			BlockID: "block-1",
		})

		assert.NoError(t, err)
		assert.Equal(t, "block-1", response.BlockID)
		assert.Equal(t, "Europe/Berlin", response.Timezone)
		assert.Equal(t, 3, response.TotalParticipants)
		assert.Len(t, response.Slots, 2)
		assert.Equal(t, 3, response.Slots[0].Count)
		assert.Equal(t, 2, response.Slots[1].Count)
		assert.Equal(t, 0, response.BestSlotIndex, "the fully attended first slot should win")
		assert.ElementsMatch(t, []string{"Organiser", "Alice", "Bob"}, response.Slots[0].Participants)
	})

	t.Run("Cached Block Skips Remote Fetch", func(t *testing.T) {
		uc, mocks := newTestEventUsecase()

		cached, err := json.Marshal(cachedBlock{Markdown: testTableMarkdown, Timezone: "UTC"})
		assert.NoError(t, err)

		mocks.Secrets.On("Open", "sealed-blob").Return([]byte(testConnectionJSON), nil)
		mocks.Redis.On("Get", mock.Anything, "tablepoll:block:block-1").Return(string(cached), nil)

		response, err := uc.FindResultsByBlockID(ctx, &requests.FindResultsByBlockID{
			Blob:    "sealed-blob",
			BlockID: "block-1",
		})

		assert.NoError(t, err)
		assert.Equal(t, "UTC", response.Timezone)
		mocks.Blocks.AssertNotCalled(t, "FindBlockByID")
	})
}

func TestEventUsecase_ExportSlot(t *testing.T) {
	ctx := context.Background()

	cached, _ := json.Marshal(cachedBlock{Markdown: testTableMarkdown, Timezone: "UTC"})

	t.Run("Slot Index Out Of Range Rejected", func(t *testing.T) {
		uc, mocks := newTestEventUsecase()

		mocks.Secrets.On("Open", "sealed-blob").Return([]byte(testConnectionJSON), nil)
		mocks.Redis.On("Get", mock.Anything, "tablepoll:block:block-1").Return(string(cached), nil)

		response, err := uc.ExportSlot(ctx, &requests.ExportSlot{
			Blob:      "sealed-blob",
			BlockID:   "block-1",
			SlotIndex: 9,
		})

		assert.Nil(t, response)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
		mocks.Storage.AssertNotCalled(t, "UploadObject")
	})

	t.Run("Happy Path Uploads And Presigns", func(t *testing.T) {
		uc, mocks := newTestEventUsecase()

		mocks.Secrets.On("Open", "sealed-blob").Return([]byte(testConnectionJSON), nil)
		mocks.Redis.On("Get", mock.Anything, "tablepoll:block:block-1").Return(string(cached), nil)
		mocks.Calendar.On("BuildSlotInvite", mock.MatchedBy(func(invite *contracts.SlotInvite) bool {
			return invite.UID == "block-1-slot-0@tablepoll" && invite.End.Sub(invite.Start) == time.Hour
		})).Return([]byte("BEGIN:VCALENDAR"), nil)
		mocks.Storage.On("UploadObject", mock.Anything, "tablepoll-exports", "block-1/slot-0.ics",
			[]byte("BEGIN:VCALENDAR"), "text/calendar").Return(nil)
		mocks.Storage.On("GetObjectUrlWithExpiryTime", mock.Anything, "tablepoll-exports", "block-1/slot-0.ics",
			time.Hour*24).Return("https://minio.example.com/tablepoll-exports/block-1/slot-0.ics?signed", nil)

		response, err := uc.ExportSlot(ctx, &requests.ExportSlot{
			Blob:      "sealed-blob",
			BlockID:   "block-1",
			SlotIndex: 0,
		})

		assert.NoError(t, err)
		assert.Equal(t, "https://minio.example.com/tablepoll-exports/block-1/slot-0.ics?signed", response.DownloadURL)
		assert.WithinDuration(t, time.Now().UTC().Add(time.Hour*24), response.ExpiresAt, time.Minute)
		mocks.Storage.AssertExpectations(t)
		mocks.Calendar.AssertExpectations(t)
	})
}
