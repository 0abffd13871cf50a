package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Incident tracks the physical repair progress for a client through four
// boolean gates. It is independent of any ticket on the same repair.
type Incident struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID     string             `bson:"client_id,omitempty" json:"client_id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	CallStage    bool               `bson:"call_stage" json:"call_stage"`
	ReceiveStage bool               `bson:"receive_stage" json:"receive_stage"`
	RepairStage  bool               `bson:"repair_stage" json:"repair_stage"`
	PickupStage  bool               `bson:"pickup_stage" json:"pickup_stage"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

func (i *Incident) Validate() error {
	if i.Title == "" {
		return errors.New("missing required incident fields")
	}
	return nil
}

// IncidentUpdateRequest carries partial updates. Any stage flag may be set in
// any order; the UI discourages skipping stages but the data model does not.
type IncidentUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	CallStage    *bool   `json:"call_stage"`
	ReceiveStage *bool   `json:"receive_stage"`
	RepairStage  *bool   `json:"repair_stage"`
	PickupStage  *bool   `json:"pickup_stage"`
}
