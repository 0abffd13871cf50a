package services

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"repair-app/internal/models"
	"repair-app/internal/repository"
	"repair-app/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ClientAuthService backs the customer portal: bcrypt-hashed credentials in
// the clients collection and opaque session tokens in Redis.
type ClientAuthService struct {
	clientRepo repository.ClientRepository
	redis      *utils.RedisClient
}

func NewClientAuthService(clientRepo repository.ClientRepository, redis *utils.RedisClient) *ClientAuthService {
	return &ClientAuthService{clientRepo: clientRepo, redis: redis}
}

func (s *ClientAuthService) Signup(ctx context.Context, req *models.ClientSignupRequest) (*models.Client, error) {
	existing, err := s.clientRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	client := &models.Client{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashed),
		IsActive: true,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Login verifies the password and issues a session token stored in Redis.
func (s *ClientAuthService) Login(ctx context.Context, email, password string) (*models.Client, string, error) {
	client, err := s.clientRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if client == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.Password), []byte(password)); err != nil {
		log.Printf("client login rejected for %s", email)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateSessionToken(32)
	if err != nil {
		return nil, "", err
	}
	if err := s.redis.Set(ctx, utils.SessionKey(token), client.ID.Hex(), utils.SessionTTL); err != nil {
		return nil, "", err
	}
	return client, token, nil
}

func (s *ClientAuthService) Logout(ctx context.Context, token string) error {
	return s.redis.Delete(ctx, utils.SessionKey(token))
}

func (s *ClientAuthService) Profile(ctx context.Context, clientID string) (*models.Client, error) {
	id, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, errors.New("invalid client id")
	}
	return s.clientRepo.GetByID(ctx, id)
}
