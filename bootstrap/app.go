package bootstrap

import (
	"context"
	"log/slog"

	"github.com/spotclip/spotclip/domain"
	"github.com/spotclip/spotclip/mongo"
	"github.com/spotclip/spotclip/repository"
)

type Application struct {
	Env    *Env
	Logger *slog.Logger
	Mongo  mongo.Client
	Store  domain.CollectionRepository
}

func App() Application {
	app := Application{}
	app.Env = NewEnv()
	app.Logger = NewLogger(app.Env)

	if app.Env.StoreDriver == "mongo" {
		app.Mongo = NewMongoDatabase(app.Env)
		db := app.Mongo.Database(app.Env.MongoDBName)
		mongo.CreateIndexes(db, domain.CollectionSpotCollections)
		app.Store = repository.NewCollectionMongoRepository(db, domain.CollectionSpotCollections)
	} else {
		app.Store = repository.NewCollectionMemoryRepository()
	}

	if app.Env.SeedDemoData {
		if err := SeedDemoData(context.Background(), app.Store); err != nil {
			app.Logger.Error("demo data seeding failed", "error", err)
		} else {
			app.Logger.Info("demo data seeded")
		}
	}
	return app
}

func (app *Application) CloseDBConnection() {
	if app.Mongo != nil {
		CloseMongoDBConnection(app.Mongo)
	}
}
