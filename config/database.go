package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var client *mongo.Client

// ConnectDB dials MongoDB. The remote store is optional: when the URI is
// empty or the server is unreachable the app keeps running on local storage
// only, so failures here are reported, not fatal.
func ConnectDB(mongoURI string) error {

	if mongoURI == "" {
		log.Println("No MONGO_URI configured, running in local-only mode")
		return nil
	}

	log.Println("Attempting to connect to MongoDB...")

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err := c.Ping(ctx, nil); err != nil {
		return err
	}

	log.Println("Successfully connected to MongoDB!")
	client = c
	return nil
}

// Connected reports whether a remote store is available.
func Connected() bool {
	return client != nil
}

// OpenCollection returns the named collection, or nil when the app is
// running without a remote store. Callers must handle nil.
func OpenCollection(collectionName string) *mongo.Collection {

	if client == nil {
		return nil
	}

	return client.Database("kibidb").Collection(collectionName)
}
