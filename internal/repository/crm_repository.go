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

type InventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetAll(ctx context.Context) ([]models.InventoryItem, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.InventoryItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type inventoryRepository struct {
	collection *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) InventoryRepository {
	return &inventoryRepository{collection: db.Collection("inventory")}
}

func (r *inventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	item.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, item)
	return err
}

func (r *inventoryRepository) GetAll(ctx context.Context) ([]models.InventoryItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var items []models.InventoryItem
	err = cursor.All(ctx, &items)
	return items, err
}

func (r *inventoryRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.InventoryItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.InventoryItem
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetAll(ctx context.Context) ([]models.Invoice, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Invoice, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type invoiceRepository struct {
	collection *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) InvoiceRepository {
	return &invoiceRepository{collection: db.Collection("invoices")}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	invoice.ID = primitive.NewObjectID()
	if invoice.Status == "" {
		invoice.Status = models.InvoiceUnpaid
	}
	if invoice.InvoiceDate.IsZero() {
		invoice.InvoiceDate = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, invoice)
	return err
}

func (r *invoiceRepository) GetAll(ctx context.Context) ([]models.Invoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "invoice_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var invoices []models.Invoice
	err = cursor.All(ctx, &invoices)
	return invoices, err
}

func (r *invoiceRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Invoice, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var invoice models.Invoice
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

type LeadRepository interface {
	Create(ctx context.Context, lead *models.WebLead) error
	GetAll(ctx context.Context) ([]models.WebLead, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type leadRepository struct {
	collection *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) LeadRepository {
	return &leadRepository{collection: db.Collection("web_leads")}
}

func (r *leadRepository) Create(ctx context.Context, lead *models.WebLead) error {
	lead.ID = primitive.NewObjectID()
	lead.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, lead)
	return err
}

func (r *leadRepository) GetAll(ctx context.Context) ([]models.WebLead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var leads []models.WebLead
	err = cursor.All(ctx, &leads)
	return leads, err
}

func (r *leadRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
