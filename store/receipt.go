package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"citypark/model"
)

// ReceiptStore is the receipts collection. Insert-only by design.
type ReceiptStore struct {
	Collection *mongo.Collection
}

func NewReceiptStore(c *mongo.Collection) *ReceiptStore {
	return &ReceiptStore{Collection: c}
}

func (s *ReceiptStore) Insert(ctx context.Context, r *model.PaymentReceipt) error {
	_, err := s.Collection.InsertOne(ctx, r)
	return err
}

func (s *ReceiptStore) FindByVehicle(ctx context.Context, vehicleNumber string) ([]*model.PaymentReceipt, error) {
	cur, err := s.Collection.Find(ctx, bson.M{"vehicleNumber": vehicleNumber})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []*model.PaymentReceipt
	for cur.Next(ctx) {
		var r model.PaymentReceipt
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		results = append(results, &r)
	}
	return results, cur.Err()
}
