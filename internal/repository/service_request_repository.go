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

type ServiceRequestRepository interface {
	Create(ctx context.Context, request *models.ServiceRequest) error
	GetAll(ctx context.Context) ([]models.ServiceRequest, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceRequest, error)
	GetByClient(ctx context.Context, clientID string) ([]models.ServiceRequest, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.ServiceRequest, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type serviceRequestRepository struct {
	collection *mongo.Collection
}

func NewServiceRequestRepository(db *mongo.Database) ServiceRequestRepository {
	return &serviceRequestRepository{collection: db.Collection("service_requests")}
}

func (r *serviceRequestRepository) Create(ctx context.Context, request *models.ServiceRequest) error {
	request.ID = primitive.NewObjectID()
	if request.Status == "" {
		request.Status = models.RequestPending
	}
	request.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, request)
	return err
}

func (r *serviceRequestRepository) GetAll(ctx context.Context) ([]models.ServiceRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var requests []models.ServiceRequest
	err = cursor.All(ctx, &requests)
	return requests, err
}

func (r *serviceRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *serviceRequestRepository) GetByClient(ctx context.Context, clientID string) ([]models.ServiceRequest, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, err
	}
	var requests []models.ServiceRequest
	err = cursor.All(ctx, &requests)
	return requests, err
}

func (r *serviceRequestRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.ServiceRequest, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var request models.ServiceRequest
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *serviceRequestRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
