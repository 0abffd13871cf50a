package services

import (
	"context"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
)

type fakeIncidentRepo struct {
	lastFields bson.M
}

func (f *fakeIncidentRepo) Create(ctx context.Context, incident *models.Incident) error {
	incident.ID = primitive.NewObjectID()
	return nil
}
func (f *fakeIncidentRepo) GetAll(ctx context.Context) ([]models.Incident, error) { return nil, nil }
func (f *fakeIncidentRepo) GetByClient(ctx context.Context, clientID string) ([]models.Incident, error) {
	return nil, nil
}
func (f *fakeIncidentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Incident, error) {
	return nil, nil
}
func (f *fakeIncidentRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Incident, error) {
	f.lastFields = fields
	return &models.Incident{}, nil
}
func (f *fakeIncidentRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestIncidentCreateRequiresTitle(t *testing.T) {
	service := NewIncidentService(&fakeIncidentRepo{})

	if err := service.Create(context.Background(), &models.Incident{}); err == nil {
		t.Error("expected validation error for missing title")
	}
	if err := service.Create(context.Background(), &models.Incident{Title: "Screen swap"}); err != nil {
		t.Errorf("Create: %v", err)
	}
}

func TestIncidentUpdatePatchesOnlySentFields(t *testing.T) {
	repo := &fakeIncidentRepo{}
	service := NewIncidentService(repo)

	_, err := service.Update(context.Background(), primitive.NewObjectID(), &models.IncidentUpdateRequest{
		CallStage:   boolPtr(true),
		RepairStage: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	// false is a real value, not an omission
	want := bson.M{"call_stage": true, "repair_stage": false}
	if !reflect.DeepEqual(repo.lastFields, want) {
		t.Errorf("fields = %+v, want %+v", repo.lastFields, want)
	}
}

func TestIncidentUpdateTextFields(t *testing.T) {
	repo := &fakeIncidentRepo{}
	service := NewIncidentService(repo)

	_, err := service.Update(context.Background(), primitive.NewObjectID(), &models.IncidentUpdateRequest{
		Title:       strPtr("Rework"),
		Description: strPtr("Second pass on the hinge"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	want := bson.M{"title": "Rework", "description": "Second pass on the hinge"}
	if !reflect.DeepEqual(repo.lastFields, want) {
		t.Errorf("fields = %+v, want %+v", repo.lastFields, want)
	}
}
