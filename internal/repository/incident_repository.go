package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"repair-app/internal/models"
)

type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetAll(ctx context.Context) ([]models.Incident, error)
	GetByClient(ctx context.Context, clientID string) ([]models.Incident, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Incident, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Incident, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type incidentRepository struct {
	collection *mongo.Collection
}

func NewIncidentRepository(db *mongo.Database) IncidentRepository {
	return &incidentRepository{collection: db.Collection("incidents")}
}

func (r *incidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	incident.ID = primitive.NewObjectID()
	incident.CreatedAt = time.Now()
	incident.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, incident)
	return err
}

func (r *incidentRepository) GetAll(ctx context.Context) ([]models.Incident, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var incidents []models.Incident
	err = cursor.All(ctx, &incidents)
	return incidents, err
}

func (r *incidentRepository) GetByClient(ctx context.Context, clientID string) ([]models.Incident, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, err
	}
	var incidents []models.Incident
	err = cursor.All(ctx, &incidents)
	return incidents, err
}

func (r *incidentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Incident, error) {
	var incident models.Incident
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&incident)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &incident, nil
}

// Update returns (nil, nil) for a missing id; callers serialize the null
// body as-is instead of raising a not-found error.
func (r *incidentRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Incident, error) {
	fields["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var incident models.Incident
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&incident)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &incident, nil
}

func (r *incidentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
