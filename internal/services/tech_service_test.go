package services

import (
	"context"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
)

type fakeTechRepo struct {
	profiles    []models.TechProfile
	completions []models.ServiceCompletion
	lastPatch   bson.M
}

func (f *fakeTechRepo) GetProfileByUserID(ctx context.Context, userID string) (*models.TechProfile, error) {
	for i := range f.profiles {
		if f.profiles[i].UserID == userID {
			return &f.profiles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTechRepo) GetProfileByID(ctx context.Context, id primitive.ObjectID) (*models.TechProfile, error) {
	for i := range f.profiles {
		if f.profiles[i].ID == id {
			return &f.profiles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTechRepo) UpsertProfile(ctx context.Context, profile *models.TechProfile) (*models.TechProfile, error) {
	return profile, nil
}

func (f *fakeTechRepo) GetAvailableProfiles(ctx context.Context) ([]models.TechProfile, error) {
	available := []models.TechProfile{}
	for _, p := range f.profiles {
		if p.IsAvailable {
			available = append(available, p)
		}
	}
	return available, nil
}

func (f *fakeTechRepo) DeleteProfile(ctx context.Context, id primitive.ObjectID) error { return nil }

func (f *fakeTechRepo) GetCertifications(ctx context.Context, techProfileID string) ([]models.TechCertification, error) {
	return nil, nil
}
func (f *fakeTechRepo) CreateCertification(ctx context.Context, cert *models.TechCertification) error {
	return nil
}
func (f *fakeTechRepo) UpdateCertification(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.TechCertification, error) {
	f.lastPatch = fields
	return &models.TechCertification{}, nil
}
func (f *fakeTechRepo) DeleteCertification(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (f *fakeTechRepo) GetSkills(ctx context.Context, techProfileID string) ([]models.TechSkill, error) {
	return nil, nil
}
func (f *fakeTechRepo) CreateSkill(ctx context.Context, skill *models.TechSkill) error { return nil }
func (f *fakeTechRepo) UpdateSkill(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.TechSkill, error) {
	f.lastPatch = fields
	return &models.TechSkill{}, nil
}
func (f *fakeTechRepo) DeleteSkill(ctx context.Context, id primitive.ObjectID) error { return nil }

func (f *fakeTechRepo) GetCompletions(ctx context.Context, techProfileID string) ([]models.ServiceCompletion, error) {
	return f.completions, nil
}
func (f *fakeTechRepo) CreateCompletion(ctx context.Context, completion *models.ServiceCompletion) error {
	return nil
}
func (f *fakeTechRepo) UpdateCompletion(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.ServiceCompletion, error) {
	f.lastPatch = fields
	return &models.ServiceCompletion{}, nil
}
func (f *fakeTechRepo) DeleteCompletion(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func intPtr(v int) *int { return &v }

func TestComputeStatsEmpty(t *testing.T) {
	stats := computeStats(nil)

	want := models.TechStats{
		TotalCompletions: 0,
		TotalHours:       0,
		AverageRating:    0,
		Categories:       []models.CategoryCount{},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("computeStats(nil) = %+v, want %+v", stats, want)
	}
}

func TestComputeStatsAggregation(t *testing.T) {
	completions := []models.ServiceCompletion{
		{Category: "Laptop", HoursWorked: 2.0, ClientSatisfactionRating: intPtr(5)},
		{Category: "Laptop", HoursWorked: 3.5},
		{Category: "Printer", HoursWorked: 1.0, ClientSatisfactionRating: intPtr(4)},
	}

	stats := computeStats(completions)

	if stats.TotalCompletions != 3 {
		t.Errorf("TotalCompletions = %d, want 3", stats.TotalCompletions)
	}
	if stats.TotalHours != 6.5 {
		t.Errorf("TotalHours = %v, want 6.5", stats.TotalHours)
	}
	// only the two rated completions count towards the average
	if stats.AverageRating != 4.5 {
		t.Errorf("AverageRating = %v, want 4.5", stats.AverageRating)
	}

	wantCategories := []models.CategoryCount{
		{Category: "Laptop", Count: 2},
		{Category: "Printer", Count: 1},
	}
	if !reflect.DeepEqual(stats.Categories, wantCategories) {
		t.Errorf("Categories = %+v, want %+v", stats.Categories, wantCategories)
	}
}

func TestComputeStatsSkipsUncategorized(t *testing.T) {
	completions := []models.ServiceCompletion{
		{Category: "", HoursWorked: 1.5},
		{Category: "Desktop", HoursWorked: 2.0},
	}

	stats := computeStats(completions)

	if stats.TotalCompletions != 2 {
		t.Errorf("TotalCompletions = %d, want 2", stats.TotalCompletions)
	}
	if stats.TotalHours != 3.5 {
		t.Errorf("TotalHours = %v, want 3.5", stats.TotalHours)
	}
	wantCategories := []models.CategoryCount{{Category: "Desktop", Count: 1}}
	if !reflect.DeepEqual(stats.Categories, wantCategories) {
		t.Errorf("Categories = %+v, want %+v", stats.Categories, wantCategories)
	}
}

func TestAvailableTechsFiltersByMode(t *testing.T) {
	repo := &fakeTechRepo{profiles: []models.TechProfile{
		{UserID: "u1", Name: "Open", IsAvailable: true, AvailabilityMode: models.AvailabilityAll},
		{UserID: "u2", Name: "Picky", IsAvailable: true, AvailabilityMode: models.AvailabilitySpecific, AllowedClientIDs: []string{"client7"}},
		{UserID: "u3", Name: "Hidden", IsAvailable: true, AvailabilityMode: models.AvailabilityNone},
		{UserID: "u4", Name: "Weird", IsAvailable: true, AvailabilityMode: "sometimes"},
		{UserID: "u5", Name: "Offline", IsAvailable: false, AvailabilityMode: models.AvailabilityAll},
	}}
	service := NewTechService(repo)

	techs, err := service.AvailableTechs(context.Background(), "client7")
	if err != nil {
		t.Fatalf("AvailableTechs: %v", err)
	}
	if len(techs) != 2 || techs[0].Name != "Open" || techs[1].Name != "Picky" {
		t.Errorf("client7 sees %+v, want Open and Picky", names(techs))
	}

	techs, err = service.AvailableTechs(context.Background(), "client8")
	if err != nil {
		t.Fatalf("AvailableTechs: %v", err)
	}
	if len(techs) != 1 || techs[0].Name != "Open" {
		t.Errorf("client8 sees %+v, want only Open", names(techs))
	}
}

func names(techs []models.TechProfile) []string {
	out := make([]string, len(techs))
	for i, tech := range techs {
		out[i] = tech.Name
	}
	return out
}

func TestTechForClientRespectsVisibility(t *testing.T) {
	hiddenID := primitive.NewObjectID()
	pickyID := primitive.NewObjectID()
	repo := &fakeTechRepo{profiles: []models.TechProfile{
		{ID: hiddenID, UserID: "u1", IsAvailable: true, AvailabilityMode: models.AvailabilityNone},
		{ID: pickyID, UserID: "u2", IsAvailable: true, AvailabilityMode: models.AvailabilitySpecific, AllowedClientIDs: []string{"client7"}},
	}}
	service := NewTechService(repo)

	tech, err := service.TechForClient(context.Background(), hiddenID, "client7")
	if err != nil {
		t.Fatalf("TechForClient: %v", err)
	}
	if tech != nil {
		t.Error("hidden profile resolved for a client")
	}

	tech, err = service.TechForClient(context.Background(), pickyID, "client7")
	if err != nil {
		t.Fatalf("TechForClient: %v", err)
	}
	if tech == nil || tech.UserID != "u2" {
		t.Errorf("allowed client could not resolve the profile: %+v", tech)
	}

	tech, err = service.TechForClient(context.Background(), pickyID, "client8")
	if err != nil {
		t.Fatalf("TechForClient: %v", err)
	}
	if tech != nil {
		t.Error("profile resolved for a client outside the allow list")
	}
}

func TestUpsertProfileDefaultsMode(t *testing.T) {
	service := NewTechService(&fakeTechRepo{})

	saved, err := service.UpsertProfile(context.Background(), &models.TechProfile{UserID: "u1"})
	if err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if saved.AvailabilityMode != models.AvailabilityNone {
		t.Errorf("AvailabilityMode = %q, want %q", saved.AvailabilityMode, models.AvailabilityNone)
	}
}

func TestPatchFieldsDropsProtectedKeys(t *testing.T) {
	repo := &fakeTechRepo{}
	service := NewTechService(repo)

	_, err := service.UpdateSkill(context.Background(), primitive.NewObjectID(), map[string]interface{}{
		"name":            "soldering",
		"verified":        true,
		"id":              "x",
		"_id":             "x",
		"created_at":      "x",
		"tech_profile_id": "x",
	})
	if err != nil {
		t.Fatalf("UpdateSkill: %v", err)
	}

	want := bson.M{"name": "soldering", "verified": true}
	if !reflect.DeepEqual(repo.lastPatch, want) {
		t.Errorf("patch = %+v, want %+v", repo.lastPatch, want)
	}
}
