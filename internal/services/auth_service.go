package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/api/idtoken"

	"repair-app/internal/models"
	"repair-app/internal/repository"
	"repair-app/internal/utils"
)

// AuthService handles staff identity: Google ID-token login exchanged for a
// service JWT, mirroring the OIDC flow the dashboard frontend expects.
type AuthService struct {
	userRepo       repository.UserRepository
	jwtUtil        *utils.JWTUtil
	googleClientID string
}

func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, googleClientID string) *AuthService {
	return &AuthService{userRepo: userRepo, jwtUtil: jwtUtil, googleClientID: googleClientID}
}

func (s *AuthService) GoogleLogin(ctx context.Context, idTokenStr string) (string, *models.User, error) {
	payload, err := idtoken.Validate(ctx, idTokenStr, s.googleClientID)
	if err != nil {
		return "", nil, errors.New("invalid id token")
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", nil, errors.New("id token has no email claim")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		user = &models.User{Email: email, Role: "tech"}
		if name, ok := payload.Claims["given_name"].(string); ok {
			user.FirstName = name
		}
		if name, ok := payload.Claims["family_name"].(string); ok {
			user.LastName = name
		}
		if picture, ok := payload.Claims["picture"].(string); ok {
			user.ProfileImageURL = picture
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", nil, err
		}
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errors.New("invalid user id")
	}
	return s.userRepo.GetByID(ctx, id)
}
