package contracts

import (
	"context"
	"tablepoll-service/internal/pkg/dto/requests"
	"tablepoll-service/internal/pkg/dto/responses"
)

type ConnectionUsecase interface {
	CreateConnection(ctx context.Context, request *requests.CreateConnection) (*responses.Connection, error)
}

type DocumentUsecase interface {
	FindAllDocuments(ctx context.Context, request *requests.ListDocuments) ([]responses.Document, error)
}
