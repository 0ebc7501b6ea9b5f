// Package store holds the MongoDB-backed implementations of the parking store
// interfaces. Every type wraps one collection and keeps no state of its own.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"citypark/model"
	"citypark/parking"
)

// TicketStore is the tickets collection.
type TicketStore struct {
	Collection *mongo.Collection
}

func NewTicketStore(c *mongo.Collection) *TicketStore {
	return &TicketStore{Collection: c}
}

func (s *TicketStore) Insert(ctx context.Context, t *model.Ticket) error {
	_, err := s.Collection.InsertOne(ctx, t)
	return err
}

func (s *TicketStore) FindByTicketID(ctx context.Context, ticketID string) (*model.Ticket, error) {
	var t model.Ticket
	err := s.Collection.FindOne(ctx, bson.M{"ticketId": ticketID}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, parking.ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TicketStore) FindByUser(ctx context.Context, userID string) ([]*model.Ticket, error) {
	cur, err := s.Collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []*model.Ticket
	for cur.Next(ctx) {
		var t model.Ticket
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		results = append(results, &t)
	}
	return results, cur.Err()
}

// Apply replaces the ticket only while the stored version still matches, which
// is what turns a racing extend into ErrConflict instead of a lost update.
func (s *TicketStore) Apply(ctx context.Context, ticketID string, expectedVersion int64, t *model.Ticket) error {
	res, err := s.Collection.ReplaceOne(ctx, bson.M{"ticketId": ticketID, "version": expectedVersion}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		err := s.Collection.FindOne(ctx, bson.M{"ticketId": ticketID}).Err()
		if err == mongo.ErrNoDocuments {
			return parking.ErrTicketNotFound
		}
		if err != nil {
			return err
		}
		return parking.ErrConflict
	}
	return nil
}
