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

type TicketRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, ticket *models.Ticket) error
	GetAll(ctx context.Context) ([]models.Ticket, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error)
	GetByServiceRequest(ctx context.Context, serviceRequestID string) ([]models.Ticket, error)
	GetOrCreateByServiceRequest(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Ticket, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	AddMessage(ctx context.Context, msg *models.TicketMessage) error
	MarkMessageEmailSent(ctx context.Context, id primitive.ObjectID) error
	GetMessages(ctx context.Context, ticketID primitive.ObjectID) ([]models.TicketMessage, error)
}

type ticketRepository struct {
	ticketsCol  *mongo.Collection
	messagesCol *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) TicketRepository {
	return &ticketRepository{
		ticketsCol:  db.Collection("tickets"),
		messagesCol: db.Collection("ticket_messages"),
	}
}

// EnsureIndexes creates the unique sparse index that backs the
// one-ticket-per-service-request guarantee, and the message read path index.
func (r *ticketRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.ticketsCol.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "service_request_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	if err != nil {
		return err
	}
	_, err = r.messagesCol.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ticket_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	ticket.ID = primitive.NewObjectID()
	if ticket.Status == "" {
		ticket.Status = models.TicketOpen
	}
	if ticket.Priority == "" {
		ticket.Priority = models.PriorityMedium
	}
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = time.Now()
	_, err := r.ticketsCol.InsertOne(ctx, ticket)
	return err
}

func (r *ticketRepository) GetAll(ctx context.Context) ([]models.Ticket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.ticketsCol.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var tickets []models.Ticket
	err = cursor.All(ctx, &tickets)
	return tickets, err
}

func (r *ticketRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.ticketsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) GetByServiceRequest(ctx context.Context, serviceRequestID string) ([]models.Ticket, error) {
	cursor, err := r.ticketsCol.Find(ctx, bson.M{"service_request_id": serviceRequestID})
	if err != nil {
		return nil, err
	}
	var tickets []models.Ticket
	err = cursor.All(ctx, &tickets)
	return tickets, err
}

// GetOrCreateByServiceRequest inserts the ticket unless one already exists
// for the same service request, and returns whichever won. A single upsert
// against the unique index closes the read-then-write race two concurrent
// first-accesses would otherwise hit.
func (r *ticketRepository) GetOrCreateByServiceRequest(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error) {
	now := time.Now()
	insert := bson.M{
		"_id":                  primitive.NewObjectID(),
		"client_id":            ticket.ClientID,
		"title":                ticket.Title,
		"description":          ticket.Description,
		"priority":             models.PriorityMedium,
		"status":               models.TicketOpen,
		"assigned_to":          ticket.AssignedTo,
		"tech_email":           ticket.TechEmail,
		"client_notifications": true,
		"email_notifications":  false,
		"created_at":           now,
		"updated_at":           now,
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var result models.Ticket
	err := r.ticketsCol.FindOneAndUpdate(ctx,
		bson.M{"service_request_id": ticket.ServiceRequestID},
		bson.M{"$setOnInsert": insert},
		opts,
	).Decode(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ticketRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Ticket, error) {
	fields["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ticket models.Ticket
	err := r.ticketsCol.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.ticketsCol.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *ticketRepository) AddMessage(ctx context.Context, msg *models.TicketMessage) error {
	msg.ID = primitive.NewObjectID()
	if msg.MessageType == "" {
		msg.MessageType = models.MessageChat
	}
	msg.CreatedAt = time.Now()
	_, err := r.messagesCol.InsertOne(ctx, msg)
	return err
}

func (r *ticketRepository) MarkMessageEmailSent(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.messagesCol.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"email_sent": true}})
	return err
}

// GetMessages returns the log newest-first; chat views reverse it.
func (r *ticketRepository) GetMessages(ctx context.Context, ticketID primitive.ObjectID) ([]models.TicketMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.messagesCol.Find(ctx, bson.M{"ticket_id": ticketID}, opts)
	if err != nil {
		return nil, err
	}
	var messages []models.TicketMessage
	err = cursor.All(ctx, &messages)
	return messages, err
}
