package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spotclip/spotclip/domain"
	"github.com/spotclip/spotclip/mongo"
)

// collectionMongoRepository persists collections as whole documents keyed by
// the caller-supplied collection id. Find with no sort returns natural order,
// which is stable for the favorites scan.
type collectionMongoRepository struct {
	database   mongo.Database
	collection string
}

func NewCollectionMongoRepository(db mongo.Database, collection string) domain.CollectionRepository {
	return &collectionMongoRepository{
		database:   db,
		collection: collection,
	}
}

func (r *collectionMongoRepository) GetByID(ctx context.Context, id string) (*domain.Collection, error) {
	var collection domain.Collection
	err := r.database.Collection(r.collection).FindOne(ctx, bson.M{"_id": id}).Decode(&collection)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("Collection not found")
		}
		return nil, err
	}
	return &collection, nil
}

func (r *collectionMongoRepository) Upsert(ctx context.Context, collection *domain.Collection) error {
	_, err := r.database.Collection(r.collection).ReplaceOne(
		ctx,
		bson.M{"_id": collection.ID},
		collection,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *collectionMongoRepository) All(ctx context.Context) ([]*domain.Collection, error) {
	cursor, err := r.database.Collection(r.collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var collections []*domain.Collection
	if err := cursor.All(ctx, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}
