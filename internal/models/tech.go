package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AvailabilityMode controls which clients can see a technician in the
// portal directory. Anything outside the three known values hides the tech.
type AvailabilityMode string

const (
	AvailabilityNone     AvailabilityMode = "none"
	AvailabilityAll      AvailabilityMode = "all"
	AvailabilitySpecific AvailabilityMode = "specific"
)

type TechProfile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"user_id" json:"user_id"`
	Name             string             `bson:"name,omitempty" json:"name,omitempty"`
	PersonalEmail    string             `bson:"personal_email,omitempty" json:"personal_email,omitempty"`
	EmailSignature   string             `bson:"email_signature,omitempty" json:"email_signature,omitempty"`
	IsAvailable      bool               `bson:"is_available" json:"is_available"`
	AvailabilityMode AvailabilityMode   `bson:"availability_mode" json:"availability_mode"`
	AllowedClientIDs []string           `bson:"allowed_client_ids,omitempty" json:"allowed_client_ids,omitempty"`
	Specialties      string             `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Latitude         float64            `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude        float64            `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Address          string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone            string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfileImageURL  string             `bson:"profile_image_url,omitempty" json:"profile_image_url,omitempty"`
	Bio              string             `bson:"bio,omitempty" json:"bio,omitempty"`
	HourlyRate       float64            `bson:"hourly_rate,omitempty" json:"hourly_rate,omitempty"`
	YearsExperience  int                `bson:"years_experience,omitempty" json:"years_experience,omitempty"`
	Education        string             `bson:"education,omitempty" json:"education,omitempty"`
	ResumeURL        string             `bson:"resume_url,omitempty" json:"resume_url,omitempty"`
	PortfolioURL     string             `bson:"portfolio_url,omitempty" json:"portfolio_url,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

type TechCertification struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TechProfileID       string             `bson:"tech_profile_id" json:"tech_profile_id"`
	Name                string             `bson:"name" json:"name"`
	IssuingOrganization string             `bson:"issuing_organization" json:"issuing_organization"`
	CredentialID        string             `bson:"credential_id,omitempty" json:"credential_id,omitempty"`
	CredentialURL       string             `bson:"credential_url,omitempty" json:"credential_url,omitempty"`
	IssueDate           *time.Time         `bson:"issue_date,omitempty" json:"issue_date,omitempty"`
	ExpirationDate      *time.Time         `bson:"expiration_date,omitempty" json:"expiration_date,omitempty"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}

type TechSkill struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TechProfileID    string             `bson:"tech_profile_id" json:"tech_profile_id"`
	Name             string             `bson:"name" json:"name"`
	Category         string             `bson:"category,omitempty" json:"category,omitempty"`
	ProficiencyLevel string             `bson:"proficiency_level,omitempty" json:"proficiency_level,omitempty"`
	Verified         bool               `bson:"verified" json:"verified"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

type ServiceCompletion struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TechProfileID            string             `bson:"tech_profile_id" json:"tech_profile_id"`
	ServiceRequestID         string             `bson:"service_request_id,omitempty" json:"service_request_id,omitempty"`
	ClientID                 string             `bson:"client_id,omitempty" json:"client_id,omitempty"`
	Title                    string             `bson:"title" json:"title"`
	Description              string             `bson:"description,omitempty" json:"description,omitempty"`
	Category                 string             `bson:"category,omitempty" json:"category,omitempty"`
	HoursWorked              float64            `bson:"hours_worked,omitempty" json:"hours_worked,omitempty"`
	ClientSatisfactionRating *int               `bson:"client_satisfaction_rating,omitempty" json:"client_satisfaction_rating,omitempty"`
	ClientTestimonial        string             `bson:"client_testimonial,omitempty" json:"client_testimonial,omitempty"`
	CompletedAt              time.Time          `bson:"completed_at" json:"completed_at"`
	SkillsUsed               []string           `bson:"skills_used,omitempty" json:"skills_used,omitempty"`
	ChallengesSolved         string             `bson:"challenges_solved,omitempty" json:"challenges_solved,omitempty"`
	CreatedAt                time.Time          `bson:"created_at" json:"created_at"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TechStats is a read-time fold over a technician's completion history.
// AverageRating is 0 when no rated completions exist; ratings are 1-5 so the
// zero value is unambiguous as a "no data" sentinel.
type TechStats struct {
	TotalCompletions int             `json:"totalCompletions"`
	TotalHours       float64         `json:"totalHours"`
	AverageRating    float64         `json:"averageRating"`
	Categories       []CategoryCount `json:"categories"`
}
