package contracts

import (
	"context"
	"tablepoll-service/internal/app/models"
	"tablepoll-service/internal/pkg/dto/requests"
	"tablepoll-service/internal/pkg/dto/responses"
)

type EventHistoryUsecase interface {
	RecordEvent(ctx context.Context, entry *models.EventHistory) error
	FindHistoryByBlob(ctx context.Context, request *requests.ListHistory) ([]responses.HistoryEntry, error)
}

type EventHistoryRepository interface {
	Save(ctx context.Context, entry *models.EventHistory) error
	FindByFingerprint(ctx context.Context, fingerprint string, limit int64) ([]models.EventHistory, error)
}
