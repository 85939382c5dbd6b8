package history

import (
	"context"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/app/models"
	"tablepoll-service/internal/pkg/constvars"
	"tablepoll-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventHistoryMongoRepository struct {
	Collection *mongo.Collection
}

func NewEventHistoryMongoRepository(db *mongo.Client, dbName string) contracts.EventHistoryRepository {
	return &EventHistoryMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionEventHistory),
	}
}

// Save upserts on (fingerprint, block_id) so re-creating or re-opening the
// same event never duplicates a history row.
func (r *EventHistoryMongoRepository) Save(ctx context.Context, entry *models.EventHistory) error {
	filter := bson.M{
		"fingerprint": entry.Fingerprint,
		"block_id":    entry.BlockID,
	}
	update := bson.M{
		"$set": bson.M{
			"title":          entry.Title,
			"document_title": entry.DocumentTitle,
			"vote_url":       entry.VoteURL,
			"results_url":    entry.ResultsURL,
			"created_at":     entry.CreatedAt,
		},
	}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *EventHistoryMongoRepository) FindByFingerprint(ctx context.Context, fingerprint string, limit int64) ([]models.EventHistory, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, bson.M{"fingerprint": fingerprint}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var entries []models.EventHistory
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return entries, nil
}
