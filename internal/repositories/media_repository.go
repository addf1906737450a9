package repositories

import (
	"context"
	"time"

	"github.com/PlayHaven/PlayHaven/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MediaRepository defines the interface for media data operations
type MediaRepository interface {
	CreateMedia(ctx context.Context, media *models.Media) error
	GetMediaByID(ctx context.Context, id string) (*models.Media, error)
	GetMediaByUserID(ctx context.Context, userID uint) ([]models.Media, error)
	DeleteMedia(ctx context.Context, id string) error
}

// MongoMediaRepository implements MediaRepository for MongoDB
type MongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new MongoMediaRepository
func NewMongoMediaRepository(db *mongo.Database) *MongoMediaRepository {
	return &MongoMediaRepository{collection: db.Collection("media")}
}

// CreateMedia stores a media document, binary data included
func (r *MongoMediaRepository) CreateMedia(ctx context.Context, media *models.Media) error {
	media.ID = primitive.NewObjectID()
	media.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, media)
	if err != nil {
		return storeError(err)
	}
	return nil
}

// GetMediaByID retrieves a media document by hex ObjectID
func (r *MongoMediaRepository) GetMediaByID(ctx context.Context, id string) (*models.Media, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrMediaNotFound
	}

	var media models.Media
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&media)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMediaNotFound
		}
		return nil, storeError(err)
	}
	return &media, nil
}

// GetMediaByUserID retrieves a user's media, newest first. Binary data is
// excluded from the projection; fetch a single item to get the bytes.
func (r *MongoMediaRepository) GetMediaByUserID(ctx context.Context, userID uint) ([]models.Media, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"data": 0})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, storeError(err)
	}
	defer cursor.Close(ctx)

	var items []models.Media
	if err = cursor.All(ctx, &items); err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

// DeleteMedia removes a media document by hex ObjectID
func (r *MongoMediaRepository) DeleteMedia(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrMediaNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return storeError(err)
	}
	if res.DeletedCount == 0 {
		return ErrMediaNotFound
	}
	return nil
}
