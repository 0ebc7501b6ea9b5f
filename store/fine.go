package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"citypark/model"
	"citypark/parking"
)

// FineStore is the fines collection.
type FineStore struct {
	Collection *mongo.Collection
}

func NewFineStore(c *mongo.Collection) *FineStore {
	return &FineStore{Collection: c}
}

func (s *FineStore) Insert(ctx context.Context, f *model.Fine) error {
	_, err := s.Collection.InsertOne(ctx, f)
	return err
}

func (s *FineStore) FindByID(ctx context.Context, id string) (*model.Fine, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, parking.ErrFineNotFound
	}
	var f model.Fine
	err = s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, parking.ErrFineNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FineStore) FindByVehicle(ctx context.Context, vehicleNumber string) ([]*model.Fine, error) {
	return s.find(ctx, bson.M{"vehicleNumber": vehicleNumber})
}

func (s *FineStore) FindByTicketID(ctx context.Context, ticketID string) ([]*model.Fine, error) {
	return s.find(ctx, bson.M{"ticketId": ticketID})
}

func (s *FineStore) find(ctx context.Context, filter bson.M) ([]*model.Fine, error) {
	cur, err := s.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []*model.Fine
	for cur.Next(ctx) {
		var f model.Fine
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		results = append(results, &f)
	}
	return results, cur.Err()
}

// MarkPaid flips an unpaid fine to paid. The isPaid filter makes a repeat
// settlement come back as ErrAlreadyPaid rather than silently matching.
func (s *FineStore) MarkPaid(ctx context.Context, id, paymentID string, paidAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return parking.ErrFineNotFound
	}
	res, err := s.Collection.UpdateOne(ctx,
		bson.M{"_id": oid, "isPaid": false},
		bson.M{"$set": bson.M{"isPaid": true, "paymentId": paymentID, "paidAt": paidAt}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		err := s.Collection.FindOne(ctx, bson.M{"_id": oid}).Err()
		if err == mongo.ErrNoDocuments {
			return parking.ErrFineNotFound
		}
		if err != nil {
			return err
		}
		return parking.ErrAlreadyPaid
	}
	return nil
}

func (s *FineStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return parking.ErrFineNotFound
	}
	_, err = s.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
