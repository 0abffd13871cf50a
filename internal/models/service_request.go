package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "in-progress"
	RequestCompleted  RequestStatus = "completed"
	RequestCancelled  RequestStatus = "cancelled"
)

type ServiceRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID    string             `bson:"client_id,omitempty" json:"client_id,omitempty"`
	ServiceType string             `bson:"service_type" json:"service_type"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Status      RequestStatus      `bson:"status" json:"status"`
	AssignedTo  string             `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

func (r *ServiceRequest) Validate() error {
	if r.ServiceType == "" {
		return errors.New("missing required service request fields")
	}
	return nil
}
