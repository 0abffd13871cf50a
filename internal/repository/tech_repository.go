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

type TechRepository interface {
	GetProfileByUserID(ctx context.Context, userID string) (*models.TechProfile, error)
	GetProfileByID(ctx context.Context, id primitive.ObjectID) (*models.TechProfile, error)
	UpsertProfile(ctx context.Context, profile *models.TechProfile) (*models.TechProfile, error)
	GetAvailableProfiles(ctx context.Context) ([]models.TechProfile, error)
	DeleteProfile(ctx context.Context, id primitive.ObjectID) error

	GetCertifications(ctx context.Context, techProfileID string) ([]models.TechCertification, error)
	CreateCertification(ctx context.Context, cert *models.TechCertification) error
	UpdateCertification(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.TechCertification, error)
	DeleteCertification(ctx context.Context, id primitive.ObjectID) error

	GetSkills(ctx context.Context, techProfileID string) ([]models.TechSkill, error)
	CreateSkill(ctx context.Context, skill *models.TechSkill) error
	UpdateSkill(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.TechSkill, error)
	DeleteSkill(ctx context.Context, id primitive.ObjectID) error

	GetCompletions(ctx context.Context, techProfileID string) ([]models.ServiceCompletion, error)
	CreateCompletion(ctx context.Context, completion *models.ServiceCompletion) error
	UpdateCompletion(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.ServiceCompletion, error)
	DeleteCompletion(ctx context.Context, id primitive.ObjectID) error
}

type techRepository struct {
	profilesCol       *mongo.Collection
	certificationsCol *mongo.Collection
	skillsCol         *mongo.Collection
	completionsCol    *mongo.Collection
}

func NewTechRepository(db *mongo.Database) TechRepository {
	return &techRepository{
		profilesCol:       db.Collection("tech_profiles"),
		certificationsCol: db.Collection("tech_certifications"),
		skillsCol:         db.Collection("tech_skills"),
		completionsCol:    db.Collection("service_completions"),
	}
}

func (r *techRepository) GetProfileByUserID(ctx context.Context, userID string) (*models.TechProfile, error) {
	var profile models.TechProfile
	err := r.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *techRepository) GetProfileByID(ctx context.Context, id primitive.ObjectID) (*models.TechProfile, error) {
	var profile models.TechProfile
	err := r.profilesCol.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile inserts or replaces the profile keyed by its owning staff
// user, one profile per user.
func (r *techRepository) UpsertProfile(ctx context.Context, profile *models.TechProfile) (*models.TechProfile, error) {
	now := time.Now()
	set := bson.M{
		"name":               profile.Name,
		"personal_email":     profile.PersonalEmail,
		"email_signature":    profile.EmailSignature,
		"is_available":       profile.IsAvailable,
		"availability_mode":  profile.AvailabilityMode,
		"allowed_client_ids": profile.AllowedClientIDs,
		"specialties":        profile.Specialties,
		"latitude":           profile.Latitude,
		"longitude":          profile.Longitude,
		"address":            profile.Address,
		"phone":              profile.Phone,
		"profile_image_url":  profile.ProfileImageURL,
		"bio":                profile.Bio,
		"hourly_rate":        profile.HourlyRate,
		"years_experience":   profile.YearsExperience,
		"education":          profile.Education,
		"resume_url":         profile.ResumeURL,
		"portfolio_url":      profile.PortfolioURL,
		"updated_at":         now,
	}
	insert := bson.M{
		"_id":        primitive.NewObjectID(),
		"created_at": now,
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var result models.TechProfile
	err := r.profilesCol.FindOneAndUpdate(ctx,
		bson.M{"user_id": profile.UserID},
		bson.M{"$set": set, "$setOnInsert": insert},
		opts,
	).Decode(&result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *techRepository) GetAvailableProfiles(ctx context.Context) ([]models.TechProfile, error) {
	cursor, err := r.profilesCol.Find(ctx, bson.M{"is_available": true})
	if err != nil {
		return nil, err
	}
	var profiles []models.TechProfile
	err = cursor.All(ctx, &profiles)
	return profiles, err
}

// DeleteProfile also removes the certifications and skills owned by the
// profile. Completions stay, they feed historical stats elsewhere.
func (r *techRepository) DeleteProfile(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.profilesCol.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	owner := bson.M{"tech_profile_id": id.Hex()}
	if _, err := r.certificationsCol.DeleteMany(ctx, owner); err != nil {
		return err
	}
	_, err := r.skillsCol.DeleteMany(ctx, owner)
	return err
}

// Certifications

func (r *techRepository) GetCertifications(ctx context.Context, techProfileID string) ([]models.TechCertification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "issue_date", Value: -1}})
	cursor, err := r.certificationsCol.Find(ctx, bson.M{"tech_profile_id": techProfileID}, opts)
	if err != nil {
		return nil, err
	}
	var certs []models.TechCertification
	err = cursor.All(ctx, &certs)
	return certs, err
}

func (r *techRepository) CreateCertification(ctx context.Context, cert *models.TechCertification) error {
	cert.ID = primitive.NewObjectID()
	cert.CreatedAt = time.Now()
	_, err := r.certificationsCol.InsertOne(ctx, cert)
	return err
}

func (r *techRepository) UpdateCertification(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.TechCertification, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var cert models.TechCertification
	err := r.certificationsCol.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&cert)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &cert, nil
}

func (r *techRepository) DeleteCertification(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.certificationsCol.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Skills

func (r *techRepository) GetSkills(ctx context.Context, techProfileID string) ([]models.TechSkill, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.skillsCol.Find(ctx, bson.M{"tech_profile_id": techProfileID}, opts)
	if err != nil {
		return nil, err
	}
	var skills []models.TechSkill
	err = cursor.All(ctx, &skills)
	return skills, err
}

func (r *techRepository) CreateSkill(ctx context.Context, skill *models.TechSkill) error {
	skill.ID = primitive.NewObjectID()
	skill.CreatedAt = time.Now()
	_, err := r.skillsCol.InsertOne(ctx, skill)
	return err
}

func (r *techRepository) UpdateSkill(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.TechSkill, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var skill models.TechSkill
	err := r.skillsCol.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&skill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &skill, nil
}

func (r *techRepository) DeleteSkill(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.skillsCol.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Service completions

func (r *techRepository) GetCompletions(ctx context.Context, techProfileID string) ([]models.ServiceCompletion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})
	cursor, err := r.completionsCol.Find(ctx, bson.M{"tech_profile_id": techProfileID}, opts)
	if err != nil {
		return nil, err
	}
	var completions []models.ServiceCompletion
	err = cursor.All(ctx, &completions)
	return completions, err
}

func (r *techRepository) CreateCompletion(ctx context.Context, completion *models.ServiceCompletion) error {
	completion.ID = primitive.NewObjectID()
	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = time.Now()
	}
	completion.CreatedAt = time.Now()
	_, err := r.completionsCol.InsertOne(ctx, completion)
	return err
}

func (r *techRepository) UpdateCompletion(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.ServiceCompletion, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var completion models.ServiceCompletion
	err := r.completionsCol.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&completion)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &completion, nil
}

func (r *techRepository) DeleteCompletion(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.completionsCol.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
