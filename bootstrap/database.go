package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/spotclip/spotclip/mongo"
)

func NewMongoDatabase(env *Env) mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.NewClient(env.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	if err := client.Connect(ctx); err != nil {
		log.Fatal(err)
	}
	if err := client.Ping(ctx); err != nil {
		log.Fatal(err)
	}
	return client
}

func CloseMongoDBConnection(client mongo.Client) {
	if client == nil {
		return
	}
	if err := client.Disconnect(context.TODO()); err != nil {
		log.Fatal(err)
	}
	log.Println("connection to mongodb closed")
}
