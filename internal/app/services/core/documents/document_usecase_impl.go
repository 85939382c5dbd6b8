package documents

import (
	"context"
	"sync"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/app/models"
	"tablepoll-service/internal/pkg/constvars"
	"tablepoll-service/internal/pkg/dto/requests"
	"tablepoll-service/internal/pkg/dto/responses"
	"tablepoll-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type documentUsecase struct {
	SecretsService contracts.SecretsService
	DocumentClient contracts.CraftDocumentClient
	Log            *zap.Logger
}

var (
	documentUsecaseInstance contracts.DocumentUsecase
	onceDocumentUsecase     sync.Once
)

func NewDocumentUsecase(
	secretsService contracts.SecretsService,
	documentClient contracts.CraftDocumentClient,
	logger *zap.Logger,
) contracts.DocumentUsecase {
	onceDocumentUsecase.Do(func() {
		documentUsecaseInstance = &documentUsecase{
			SecretsService: secretsService,
			DocumentClient: documentClient,
			Log:            logger,
		}
	})
	return documentUsecaseInstance
}

func (uc *documentUsecase) FindAllDocuments(ctx context.Context, request *requests.ListDocuments) ([]responses.Document, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("documentUsecase.FindAllDocuments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	plaintext, err := uc.SecretsService.Open(request.Blob)
	if err != nil {
		return nil, err
	}

	var connection models.Connection
	if err := json.Unmarshal(plaintext, &connection); err != nil {
		return nil, exceptions.ErrSecretsDecrypt(err)
	}

	documents, err := uc.DocumentClient.FindAllDocuments(ctx, connection.ApiUrl, connection.ApiKey)
	if err != nil {
		return nil, err
	}

	result := make([]responses.Document, 0, len(documents))
	for _, document := range documents {
		if document.IsDeleted {
			continue
		}
		result = append(result, responses.Document{
			ID:        document.ID,
			Title:     document.Title,
			IsDeleted: document.IsDeleted,
		})
	}

	return result, nil
}
