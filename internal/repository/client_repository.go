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

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetAll(ctx context.Context) ([]models.Client, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Client, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type clientRepository struct {
	collection *mongo.Collection
}

func NewClientRepository(db *mongo.Database) ClientRepository {
	return &clientRepository{collection: db.Collection("clients")}
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	client.ID = primitive.NewObjectID()
	client.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, client)
	return err
}

func (r *clientRepository) GetAll(ctx context.Context) ([]models.Client, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var clients []models.Client
	err = cursor.All(ctx, &clients)
	return clients, err
}

func (r *clientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	var client models.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Client, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var client models.Client
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
