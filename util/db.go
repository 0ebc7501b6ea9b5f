package util

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var database *mongo.Database

// InitDB dials MongoDB once at startup; GetCollection hands out collections
// from the shared client afterwards.
func InitDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(GoDotEnvVariable("MONGO_URI")))
	if err != nil {
		return err
	}
	name := GoDotEnvVariable("MONGO_DB")
	if name == "" {
		name = "cityparkdb"
	}
	database = client.Database(name)
	return nil
}

// GetCollection is...
func GetCollection(collectionName string) (*mongo.Collection, error) {
	if database == nil {
		return nil, errors.New("database not initialised")
	}
	return database.Collection(collectionName), nil
}
