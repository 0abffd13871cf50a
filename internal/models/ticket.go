package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

type SenderType string

const (
	SenderTech   SenderType = "tech"
	SenderClient SenderType = "client"
	SenderSystem SenderType = "system"
)

type MessageType string

const (
	MessageChat   MessageType = "chat"
	MessageEmail  MessageType = "email"
	MessageUpdate MessageType = "update"
	MessageSystem MessageType = "system"
)

type Ticket struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceRequestID    string             `bson:"service_request_id,omitempty" json:"service_request_id,omitempty"`
	ClientID            string             `bson:"client_id,omitempty" json:"client_id,omitempty"`
	Title               string             `bson:"title" json:"title"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	Priority            TicketPriority     `bson:"priority" json:"priority"`
	Status              TicketStatus       `bson:"status" json:"status"`
	AssignedTo          string             `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	TechEmail           string             `bson:"tech_email,omitempty" json:"tech_email,omitempty"`
	ClientNotifications bool               `bson:"client_notifications" json:"client_notifications"`
	EmailNotifications  bool               `bson:"email_notifications" json:"email_notifications"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}

func (t *Ticket) Validate() error {
	if t.Title == "" {
		return errors.New("missing required ticket fields")
	}
	return nil
}

type TicketMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TicketID    primitive.ObjectID `bson:"ticket_id" json:"ticket_id"`
	SenderType  SenderType         `bson:"sender_type" json:"sender_type"`
	SenderName  string             `bson:"sender_name,omitempty" json:"sender_name,omitempty"`
	SenderEmail string             `bson:"sender_email,omitempty" json:"sender_email,omitempty"`
	Message     string             `bson:"message" json:"message"`
	MessageType MessageType        `bson:"message_type" json:"message_type"`
	IsInternal  bool               `bson:"is_internal" json:"is_internal"`
	EmailSent   bool               `bson:"email_sent" json:"email_sent"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// TicketMessageRequest is what callers may submit. Sender type is never taken
// from the body, it comes from the authenticated principal.
type TicketMessageRequest struct {
	Message     string      `json:"message" binding:"required"`
	MessageType MessageType `json:"message_type"`
	IsInternal  bool        `json:"is_internal"`
	SenderName  string      `json:"sender_name"`
	SenderEmail string      `json:"sender_email"`
}

// TicketUpdateRequest carries the mutable ticket fields for PATCH. Nil fields
// are left untouched.
type TicketUpdateRequest struct {
	Title               *string         `json:"title"`
	Description         *string         `json:"description"`
	Priority            *TicketPriority `json:"priority"`
	Status              *TicketStatus   `json:"status"`
	AssignedTo          *string         `json:"assigned_to"`
	TechEmail           *string         `json:"tech_email"`
	ClientNotifications *bool           `json:"client_notifications"`
	EmailNotifications  *bool           `json:"email_notifications"`
}
