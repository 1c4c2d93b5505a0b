package db

import (
	"context"
	"errors"
	"math"
	"time"
	"video-aggregator-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrVideoNotFound = errors.New("video no encontrado")

// VideoStore es el contrato de persistencia de los registros de video
type VideoStore interface {
	SaveVideo(ctx context.Context, video *models.VideoRecord) error
	GetVideoBySlug(ctx context.Context, slug string) (*models.VideoRecord, error)
	GetAllVideos(ctx context.Context, page, limit int) (*models.VideoList, error)
	UpdateVideoHost(ctx context.Context, slug, host string, entry models.HostEntry) error
}

// Videos es el acceso global al almacén, igual que el handle global de la conexión.
// En los tests se sustituye por un almacén falso.
var Videos VideoStore = &mongoVideoStore{}

type mongoVideoStore struct{}

func (s *mongoVideoStore) collection() (*mongo.Collection, error) {
	database, err := GetDB()
	if err != nil {
		return nil, err
	}
	return database.Collection(videosColl), nil
}

// SaveVideo inserta el registro inicial del video
func (s *mongoVideoStore) SaveVideo(ctx context.Context, video *models.VideoRecord) error {
	coll, err := s.collection()
	if err != nil {
		return err
	}

	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now().UTC()
	}
	if video.Status == "" {
		video.Status = models.Processing
	}
	if video.Hosts == nil {
		video.Hosts = map[string]models.HostEntry{}
	}

	_, err = coll.InsertOne(ctx, video)
	return err
}

// GetVideoBySlug obtiene un video por su slug público
func (s *mongoVideoStore) GetVideoBySlug(ctx context.Context, slug string) (*models.VideoRecord, error) {
	coll, err := s.collection()
	if err != nil {
		return nil, err
	}

	var video models.VideoRecord
	err = coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetAllVideos devuelve los videos paginados, los más recientes primero
func (s *mongoVideoStore) GetAllVideos(ctx context.Context, page, limit int) (*models.VideoList, error) {
	coll, err := s.collection()
	if err != nil {
		return nil, err
	}

	skip := (page - 1) * limit
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	videos := []models.VideoRecord{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}

	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	return &models.VideoList{
		Videos:      videos,
		TotalPages:  TotalPages(total, limit),
		CurrentPage: page,
		Total:       total,
	}, nil
}

// UpdateVideoHost reemplaza la entrada de un host dentro del registro.
// El status global pasa a 'completed' en cuanto se actualiza cualquier host.
// TODO: revisar con el propietario del sistema si el status debe quedarse en
// 'completed' también cuando la entrada del host registra un fallo.
func (s *mongoVideoStore) UpdateVideoHost(ctx context.Context, slug, host string, entry models.HostEntry) error {
	coll, err := s.collection()
	if err != nil {
		return err
	}

	_, err = coll.UpdateOne(ctx, bson.M{"slug": slug}, bson.M{
		"$set": bson.M{
			"hosts." + host: entry,
			"status":        models.Completed,
		},
	})
	return err
}

// TotalPages calcula el número de páginas de un listado
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
