package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
	"repair-app/internal/services"
)

type stubTicketRepo struct {
	createErr error
}

func (s *stubTicketRepo) EnsureIndexes(ctx context.Context) error { return nil }
func (s *stubTicketRepo) Create(ctx context.Context, ticket *models.Ticket) error {
	return s.createErr
}
func (s *stubTicketRepo) GetAll(ctx context.Context) ([]models.Ticket, error) { return nil, nil }
func (s *stubTicketRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	return nil, nil
}
func (s *stubTicketRepo) GetByServiceRequest(ctx context.Context, serviceRequestID string) ([]models.Ticket, error) {
	return nil, nil
}
func (s *stubTicketRepo) GetOrCreateByServiceRequest(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error) {
	return nil, nil
}
func (s *stubTicketRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Ticket, error) {
	return nil, nil
}
func (s *stubTicketRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }
func (s *stubTicketRepo) AddMessage(ctx context.Context, msg *models.TicketMessage) error {
	return nil
}
func (s *stubTicketRepo) MarkMessageEmailSent(ctx context.Context, id primitive.ObjectID) error {
	return nil
}
func (s *stubTicketRepo) GetMessages(ctx context.Context, ticketID primitive.ObjectID) ([]models.TicketMessage, error) {
	return nil, nil
}

type stubRequestRepo struct{}

func (s *stubRequestRepo) Create(ctx context.Context, request *models.ServiceRequest) error {
	return nil
}
func (s *stubRequestRepo) GetAll(ctx context.Context) ([]models.ServiceRequest, error) {
	return nil, nil
}
func (s *stubRequestRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceRequest, error) {
	return nil, nil
}
func (s *stubRequestRepo) GetByClient(ctx context.Context, clientID string) ([]models.ServiceRequest, error) {
	return nil, nil
}
func (s *stubRequestRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.ServiceRequest, error) {
	return nil, nil
}
func (s *stubRequestRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

type stubClientRepo struct{}

func (s *stubClientRepo) Create(ctx context.Context, client *models.Client) error { return nil }
func (s *stubClientRepo) GetAll(ctx context.Context) ([]models.Client, error)     { return nil, nil }
func (s *stubClientRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	return nil, nil
}
func (s *stubClientRepo) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	return nil, nil
}
func (s *stubClientRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Client, error) {
	return nil, nil
}
func (s *stubClientRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

type stubMailer struct{}

func (s *stubMailer) SendTicketMessage(to, subject, body string) error { return nil }

// A duplicate service_request_id surfaces as a storage error; the response
// must not echo its text.
func TestCreateTicketErrorStaysGeneric(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &stubTicketRepo{createErr: errors.New("E11000 duplicate key error collection: tickets")}
	service := services.NewTicketService(repo, &stubRequestRepo{}, &stubClientRepo{}, &stubMailer{})
	handler := NewTicketHandler(service)

	router := gin.New()
	router.POST("/tickets", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/tickets",
		strings.NewReader(`{"title":"Broken fan","service_request_id":"sr1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if strings.Contains(w.Body.String(), "E11000") {
		t.Errorf("storage error text leaked: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Invalid input") {
		t.Errorf("body = %s, want generic error message", w.Body.String())
	}
}
