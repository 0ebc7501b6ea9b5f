package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"citypark/model"
	"citypark/parking"
)

// ZoneStore is the zones collection.
type ZoneStore struct {
	Collection *mongo.Collection
}

func NewZoneStore(c *mongo.Collection) *ZoneStore {
	return &ZoneStore{Collection: c}
}

func (s *ZoneStore) Insert(ctx context.Context, z *model.Zone) error {
	_, err := s.Collection.InsertOne(ctx, z)
	return err
}

func (s *ZoneStore) FindByLocation(ctx context.Context, location string) (*model.Zone, error) {
	return s.findOne(ctx, bson.M{"location": location})
}

func (s *ZoneStore) FindByCode(ctx context.Context, code string) (*model.Zone, error) {
	return s.findOne(ctx, bson.M{"zoneCode": code})
}

func (s *ZoneStore) findOne(ctx context.Context, filter bson.M) (*model.Zone, error) {
	var z model.Zone
	err := s.Collection.FindOne(ctx, filter).Decode(&z)
	if err == mongo.ErrNoDocuments {
		return nil, parking.ErrZoneNotFound
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (s *ZoneStore) All(ctx context.Context) ([]*model.Zone, error) {
	cur, err := s.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []*model.Zone
	for cur.Next(ctx) {
		var z model.Zone
		if err := cur.Decode(&z); err != nil {
			return nil, err
		}
		results = append(results, &z)
	}
	return results, cur.Err()
}
