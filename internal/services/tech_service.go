package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
	"repair-app/internal/repository"
)

// TechService covers the customer-facing technician directory and the
// credential/stats side of staff profiles.
type TechService struct {
	repo repository.TechRepository
}

func NewTechService(repo repository.TechRepository) *TechService {
	return &TechService{repo: repo}
}

func (s *TechService) ProfileForUser(ctx context.Context, userID string) (*models.TechProfile, error) {
	return s.repo.GetProfileByUserID(ctx, userID)
}

func (s *TechService) UpsertProfile(ctx context.Context, profile *models.TechProfile) (*models.TechProfile, error) {
	if profile.AvailabilityMode == "" {
		profile.AvailabilityMode = models.AvailabilityNone
	}
	return s.repo.UpsertProfile(ctx, profile)
}

func (s *TechService) DeleteProfile(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteProfile(ctx, id)
}

// TechForClient resolves a single directory entry. Profiles the client may not
// see resolve to nil, same as a missing profile.
func (s *TechService) TechForClient(ctx context.Context, id primitive.ObjectID, clientID string) (*models.TechProfile, error) {
	profile, err := s.repo.GetProfileByID(ctx, id)
	if err != nil || profile == nil {
		return nil, err
	}
	if !profile.IsAvailable || !visibleTo(profile, clientID) {
		return nil, nil
	}
	return profile, nil
}

// AvailableTechs lists technicians the given client is allowed to see. The
// store narrows to is_available=true, the mode filter runs here.
func (s *TechService) AvailableTechs(ctx context.Context, clientID string) ([]models.TechProfile, error) {
	profiles, err := s.repo.GetAvailableProfiles(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]models.TechProfile, 0, len(profiles))
	for _, p := range profiles {
		if visibleTo(&p, clientID) {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

func visibleTo(p *models.TechProfile, clientID string) bool {
	switch p.AvailabilityMode {
	case models.AvailabilityAll:
		return true
	case models.AvailabilitySpecific:
		for _, id := range p.AllowedClientIDs {
			if id == clientID {
				return true
			}
		}
		return false
	default:
		// "none" and unknown modes both hide the tech
		return false
	}
}

// Certifications

func (s *TechService) Certifications(ctx context.Context, techProfileID string) ([]models.TechCertification, error) {
	return s.repo.GetCertifications(ctx, techProfileID)
}

func (s *TechService) CreateCertification(ctx context.Context, cert *models.TechCertification) error {
	return s.repo.CreateCertification(ctx, cert)
}

func (s *TechService) UpdateCertification(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.TechCertification, error) {
	return s.repo.UpdateCertification(ctx, id, patchFields(fields))
}

func (s *TechService) DeleteCertification(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteCertification(ctx, id)
}

// Skills

func (s *TechService) Skills(ctx context.Context, techProfileID string) ([]models.TechSkill, error) {
	return s.repo.GetSkills(ctx, techProfileID)
}

func (s *TechService) CreateSkill(ctx context.Context, skill *models.TechSkill) error {
	return s.repo.CreateSkill(ctx, skill)
}

func (s *TechService) UpdateSkill(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.TechSkill, error) {
	return s.repo.UpdateSkill(ctx, id, patchFields(fields))
}

func (s *TechService) DeleteSkill(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteSkill(ctx, id)
}

// Service completions

func (s *TechService) Completions(ctx context.Context, techProfileID string) ([]models.ServiceCompletion, error) {
	return s.repo.GetCompletions(ctx, techProfileID)
}

func (s *TechService) CreateCompletion(ctx context.Context, completion *models.ServiceCompletion) error {
	return s.repo.CreateCompletion(ctx, completion)
}

func (s *TechService) UpdateCompletion(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.ServiceCompletion, error) {
	return s.repo.UpdateCompletion(ctx, id, patchFields(fields))
}

func (s *TechService) DeleteCompletion(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteCompletion(ctx, id)
}

// Stats recomputes the summary from scratch on every call; the history is
// small enough that caching would buy nothing.
func (s *TechService) Stats(ctx context.Context, techProfileID string) (*models.TechStats, error) {
	completions, err := s.repo.GetCompletions(ctx, techProfileID)
	if err != nil {
		return nil, err
	}
	stats := computeStats(completions)
	return &stats, nil
}

func computeStats(completions []models.ServiceCompletion) models.TechStats {
	stats := models.TechStats{
		TotalCompletions: len(completions),
		Categories:       []models.CategoryCount{},
	}

	ratingsSum, ratingsCount := 0, 0
	categoryIndex := map[string]int{}

	for _, c := range completions {
		stats.TotalHours += c.HoursWorked
		if c.ClientSatisfactionRating != nil {
			ratingsSum += *c.ClientSatisfactionRating
			ratingsCount++
		}
		if c.Category == "" {
			// uncategorized completions are left out of the grouping
			continue
		}
		if i, ok := categoryIndex[c.Category]; ok {
			stats.Categories[i].Count++
		} else {
			categoryIndex[c.Category] = len(stats.Categories)
			stats.Categories = append(stats.Categories, models.CategoryCount{Category: c.Category, Count: 1})
		}
	}

	if ratingsCount > 0 {
		stats.AverageRating = float64(ratingsSum) / float64(ratingsCount)
	}
	return stats
}

// patchFields turns a loose JSON body into a $set document, dropping the
// keys that must never be patched.
func patchFields(fields map[string]interface{}) bson.M {
	set := bson.M{}
	for k, v := range fields {
		switch k {
		case "id", "_id", "created_at", "tech_profile_id":
			continue
		}
		set[k] = v
	}
	return set
}
