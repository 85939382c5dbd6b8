package contracts

import "context"

type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
