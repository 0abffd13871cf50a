package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InventoryItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemName string             `bson:"item_name" json:"item_name"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Notes    string             `bson:"notes,omitempty" json:"notes,omitempty"`
	LastUsed *time.Time         `bson:"last_used,omitempty" json:"last_used,omitempty"`
}

type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "unpaid"
	InvoicePaid   InvoiceStatus = "paid"
)

type Invoice struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID    string             `bson:"client_id,omitempty" json:"client_id,omitempty"`
	Amount      float64            `bson:"amount" json:"amount"`
	Status      InvoiceStatus      `bson:"status" json:"status"`
	InvoiceDate time.Time          `bson:"invoice_date" json:"invoice_date"`
	PDFURL      string             `bson:"pdf_url,omitempty" json:"pdf_url,omitempty"`
}

// WebLead is an unconverted prospect captured from the public contact form.
type WebLead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	Source    string             `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// DashboardStats is the staff dashboard summary.
type DashboardStats struct {
	ActiveClients   int `json:"activeClients"`
	OpenRequests    int `json:"openRequests"`
	PendingInvoices int `json:"pendingInvoices"`
	NewLeads        int `json:"newLeads"`
}
