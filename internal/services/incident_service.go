package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
	"repair-app/internal/repository"
)

// IncidentService tracks the four repair stages. Stages are independent
// flags: the service applies whatever subset the caller sends, in any order.
type IncidentService struct {
	repo repository.IncidentRepository
}

func NewIncidentService(repo repository.IncidentRepository) *IncidentService {
	return &IncidentService{repo: repo}
}

func (s *IncidentService) Create(ctx context.Context, incident *models.Incident) error {
	if err := incident.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, incident)
}

func (s *IncidentService) GetAll(ctx context.Context) ([]models.Incident, error) {
	return s.repo.GetAll(ctx)
}

func (s *IncidentService) GetByClient(ctx context.Context, clientID string) ([]models.Incident, error) {
	return s.repo.GetByClient(ctx, clientID)
}

func (s *IncidentService) Update(ctx context.Context, id primitive.ObjectID, req *models.IncidentUpdateRequest) (*models.Incident, error) {
	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.CallStage != nil {
		fields["call_stage"] = *req.CallStage
	}
	if req.ReceiveStage != nil {
		fields["receive_stage"] = *req.ReceiveStage
	}
	if req.RepairStage != nil {
		fields["repair_stage"] = *req.RepairStage
	}
	if req.PickupStage != nil {
		fields["pickup_stage"] = *req.PickupStage
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *IncidentService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}
