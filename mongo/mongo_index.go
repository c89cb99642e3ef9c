package mongo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexes builds the secondary indexes the collection store queries
// lean on: the newest-first listing sorts on created_at, and the favorites
// projection scans embedded places by flag. CreateOne is idempotent for an
// index that already exists with the same spec.
func CreateIndexes(db Database, collectionName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	coll := db.Collection(collectionName)
	createIndex(ctx, coll, bson.D{{Key: "created_at", Value: -1}}, "created_at")
	createIndex(ctx, coll, bson.D{{Key: "places.is_favorite", Value: 1}}, "places_is_favorite")
}

func createIndex(ctx context.Context, collection Collection, keys bson.D, name string) {
	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Printf("could not create index %q: %v", name, err)
	}
}
