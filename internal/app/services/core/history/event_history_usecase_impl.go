package history

import (
	"context"
	"sync"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/app/models"
	"tablepoll-service/internal/pkg/constvars"
	"tablepoll-service/internal/pkg/dto/requests"
	"tablepoll-service/internal/pkg/dto/responses"
	"tablepoll-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type eventHistoryUsecase struct {
	HistoryRepository contracts.EventHistoryRepository
	Log               *zap.Logger
}

var (
	eventHistoryUsecaseInstance contracts.EventHistoryUsecase
	onceEventHistoryUsecase     sync.Once
)

func NewEventHistoryUsecase(
	historyRepository contracts.EventHistoryRepository,
	logger *zap.Logger,
) contracts.EventHistoryUsecase {
	onceEventHistoryUsecase.Do(func() {
		eventHistoryUsecaseInstance = &eventHistoryUsecase{
			HistoryRepository: historyRepository,
			Log:               logger,
		}
	})
	return eventHistoryUsecaseInstance
}

func (uc *eventHistoryUsecase) RecordEvent(ctx context.Context, entry *models.EventHistory) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("eventHistoryUsecase.RecordEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, entry.BlockID),
		zap.String(constvars.LoggingFingerprintKey, entry.Fingerprint),
	)

	return uc.HistoryRepository.Save(ctx, entry)
}

func (uc *eventHistoryUsecase) FindHistoryByBlob(ctx context.Context, request *requests.ListHistory) ([]responses.HistoryEntry, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("eventHistoryUsecase.FindHistoryByBlob called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	fingerprint := utils.ConnectionFingerprint(request.Blob)
	entries, err := uc.HistoryRepository.FindByFingerprint(ctx, fingerprint, constvars.EventHistoryLimit)
	if err != nil {
		return nil, err
	}

	result := make([]responses.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, responses.HistoryEntry{
			BlockID:       entry.BlockID,
			Title:         entry.Title,
			DocumentTitle: entry.DocumentTitle,
			VoteURL:       entry.VoteURL,
			ResultsURL:    entry.ResultsURL,
			CreatedAt:     entry.CreatedAt,
		})
	}
	return result, nil
}
