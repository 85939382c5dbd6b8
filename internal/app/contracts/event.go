package contracts

import (
	"context"
	"tablepoll-service/internal/pkg/dto/requests"
	"tablepoll-service/internal/pkg/dto/responses"
)

type EventUsecase interface {
	CreateEvent(ctx context.Context, request *requests.CreateEvent) (*responses.CreateEvent, error)
	FindEventByBlockID(ctx context.Context, request *requests.FindEventByBlockID) (*responses.Event, error)
	SubmitVote(ctx context.Context, blockID string, request *requests.SubmitVote) (*responses.Vote, error)
	FindResultsByBlockID(ctx context.Context, request *requests.FindResultsByBlockID) (*responses.Results, error)
	ExportSlot(ctx context.Context, request *requests.ExportSlot) (*responses.Export, error)
}
