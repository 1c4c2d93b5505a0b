package db

import (
	"context"
	"sync"
	"time"
	"video-aggregator-api/config"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName   = "video-aggregator"
	videosColl     = "videos"
	connectTimeout = 10 * time.Second
)

var (
	database *mongo.Database
	mu       sync.Mutex
)

// GetDB devuelve el handle de la base de datos, conectando la primera vez que se usa.
// La conexión se cachea durante toda la vida del proceso; si la conexión falla
// no se cachea nada y el siguiente acceso vuelve a intentarlo.
func GetDB() (*mongo.Database, error) {
	mu.Lock()
	defer mu.Unlock()

	if database != nil {
		return database, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.LoadConfig().MongoURI))
	if err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, err
	}

	logrus.Infof("Conectado a MongoDB, base de datos: %s", databaseName)
	database = db
	return database, nil
}

// ensureIndexes crea el índice único sobre slug y el índice de ordenación por fecha
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(videosColl).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	return err
}
