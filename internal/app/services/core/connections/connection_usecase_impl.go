package connections

import (
	"context"
	"sync"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/app/models"
	"tablepoll-service/internal/app/services/craft"
	"tablepoll-service/internal/pkg/constvars"
	"tablepoll-service/internal/pkg/dto/requests"
	"tablepoll-service/internal/pkg/dto/responses"
	"tablepoll-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type connectionUsecase struct {
	SecretsService contracts.SecretsService
	Log            *zap.Logger
}

var (
	connectionUsecaseInstance contracts.ConnectionUsecase
	onceConnectionUsecase     sync.Once
)

func NewConnectionUsecase(
	secretsService contracts.SecretsService,
	logger *zap.Logger,
) contracts.ConnectionUsecase {
	onceConnectionUsecase.Do(func() {
		connectionUsecaseInstance = &connectionUsecase{
			SecretsService: secretsService,
			Log:            logger,
		}
	})
	return connectionUsecaseInstance
}

func (uc *connectionUsecase) CreateConnection(ctx context.Context, request *requests.CreateConnection) (*responses.Connection, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("connectionUsecase.CreateConnection called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	connection := models.Connection{
		ApiUrl: craft.NormalizeAPIURL(request.ApiUrl),
		ApiKey: request.ApiKey,
	}

	payload, err := json.Marshal(connection)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	blob, err := uc.SecretsService.Seal(payload)
	if err != nil {
		uc.Log.Error("connectionUsecase.CreateConnection error sealing secrets",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.Connection{Blob: blob}, nil
}
