package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventHistory records one created event per connection fingerprint so a
// returning organiser can find their recent polls again. The encrypted
// connection blob itself is never stored, only its fingerprint.
type EventHistory struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Fingerprint   string             `bson:"fingerprint"`
	BlockID       string             `bson:"block_id"`
	Title         string             `bson:"title"`
	DocumentTitle string             `bson:"document_title,omitempty"`
	VoteURL       string             `bson:"vote_url"`
	ResultsURL    string             `bson:"results_url"`
	CreatedAt     time.Time          `bson:"created_at"`
}
