package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
	"repair-app/internal/utils"
)

type fakeTicketRepo struct {
	tickets  map[primitive.ObjectID]*models.Ticket
	messages []models.TicketMessage
	seed     *models.Ticket
	clock    time.Time
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[primitive.ObjectID]*models.Ticket{}}
}

func (f *fakeTicketRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *models.Ticket) error {
	ticket.ID = primitive.NewObjectID()
	if ticket.Status == "" {
		ticket.Status = models.TicketOpen
	}
	if ticket.Priority == "" {
		ticket.Priority = models.PriorityMedium
	}
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeTicketRepo) GetAll(ctx context.Context) ([]models.Ticket, error) { return nil, nil }

func (f *fakeTicketRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	return f.tickets[id], nil
}

func (f *fakeTicketRepo) GetByServiceRequest(ctx context.Context, serviceRequestID string) ([]models.Ticket, error) {
	return nil, nil
}

func (f *fakeTicketRepo) GetOrCreateByServiceRequest(ctx context.Context, ticket *models.Ticket) (*models.Ticket, error) {
	f.seed = ticket
	for _, existing := range f.tickets {
		if existing.ServiceRequestID == ticket.ServiceRequestID {
			return existing, nil
		}
	}
	if err := f.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (f *fakeTicketRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Ticket, error) {
	return f.tickets[id], nil
}

func (f *fakeTicketRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (f *fakeTicketRepo) AddMessage(ctx context.Context, msg *models.TicketMessage) error {
	msg.ID = primitive.NewObjectID()
	if msg.MessageType == "" {
		msg.MessageType = models.MessageChat
	}
	f.clock = f.clock.Add(time.Second)
	msg.CreatedAt = f.clock
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeTicketRepo) MarkMessageEmailSent(ctx context.Context, id primitive.ObjectID) error {
	for i := range f.messages {
		if f.messages[i].ID == id {
			f.messages[i].EmailSent = true
		}
	}
	return nil
}

// GetMessages mirrors the store's created_at descending sort.
func (f *fakeTicketRepo) GetMessages(ctx context.Context, ticketID primitive.ObjectID) ([]models.TicketMessage, error) {
	out := []models.TicketMessage{}
	for _, m := range f.messages {
		if m.TicketID == ticketID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeRequestRepo struct {
	requests map[primitive.ObjectID]*models.ServiceRequest
}

func (f *fakeRequestRepo) Create(ctx context.Context, request *models.ServiceRequest) error {
	return nil
}
func (f *fakeRequestRepo) GetAll(ctx context.Context) ([]models.ServiceRequest, error) {
	return nil, nil
}
func (f *fakeRequestRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ServiceRequest, error) {
	return f.requests[id], nil
}
func (f *fakeRequestRepo) GetByClient(ctx context.Context, clientID string) ([]models.ServiceRequest, error) {
	return nil, nil
}
func (f *fakeRequestRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.ServiceRequest, error) {
	return nil, nil
}
func (f *fakeRequestRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

type fakeClientRepo struct {
	clients map[primitive.ObjectID]*models.Client
	byEmail map[string]*models.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		clients: map[primitive.ObjectID]*models.Client{},
		byEmail: map[string]*models.Client{},
	}
}

func (f *fakeClientRepo) Create(ctx context.Context, client *models.Client) error {
	client.ID = primitive.NewObjectID()
	f.clients[client.ID] = client
	f.byEmail[client.Email] = client
	return nil
}
func (f *fakeClientRepo) GetAll(ctx context.Context) ([]models.Client, error) { return nil, nil }
func (f *fakeClientRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	return f.clients[id], nil
}
func (f *fakeClientRepo) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	return f.byEmail[email], nil
}
func (f *fakeClientRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Client, error) {
	return nil, nil
}
func (f *fakeClientRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

type fakeMailer struct {
	sentTo  []string
	failing bool
	onSend  func()
}

func (f *fakeMailer) SendTicketMessage(to, subject, body string) error {
	if f.onSend != nil {
		f.onSend()
	}
	if f.failing {
		return errors.New("smtp down")
	}
	f.sentTo = append(f.sentTo, to)
	return nil
}

func newTicketService(repo *fakeTicketRepo, requests *fakeRequestRepo, clients *fakeClientRepo, mailer *fakeMailer) *TicketService {
	if requests == nil {
		requests = &fakeRequestRepo{requests: map[primitive.ObjectID]*models.ServiceRequest{}}
	}
	if clients == nil {
		clients = newFakeClientRepo()
	}
	if mailer == nil {
		mailer = &fakeMailer{}
	}
	return NewTicketService(repo, requests, clients, mailer)
}

func TestCreateTicketDefaults(t *testing.T) {
	repo := newFakeTicketRepo()
	service := newTicketService(repo, nil, nil, nil)

	ticket := &models.Ticket{Title: "Broken screen"}
	if err := service.Create(context.Background(), ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.Status != models.TicketOpen {
		t.Errorf("Status = %q, want %q", ticket.Status, models.TicketOpen)
	}
	if ticket.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, want %q", ticket.Priority, models.PriorityMedium)
	}
}

func TestCreateTicketRequiresTitle(t *testing.T) {
	service := newTicketService(newFakeTicketRepo(), nil, nil, nil)

	if err := service.Create(context.Background(), &models.Ticket{}); err == nil {
		t.Error("expected validation error for missing title")
	}
}

func TestAddMessageSenderTypeFromPrincipal(t *testing.T) {
	repo := newFakeTicketRepo()
	service := newTicketService(repo, nil, nil, nil)

	ticket := &models.Ticket{Title: "No power"}
	if err := service.Create(context.Background(), ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}

	staff := utils.Principal{Kind: utils.PrincipalStaff, ID: "staff1"}
	msg, err := service.AddMessage(context.Background(), ticket.ID, staff, &models.TicketMessageRequest{
		Message: "Looking into it",
	})
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if msg.SenderType != models.SenderTech {
		t.Errorf("staff message SenderType = %q, want %q", msg.SenderType, models.SenderTech)
	}

	client := utils.Principal{Kind: utils.PrincipalClient, ID: "client1"}
	msg, err = service.AddMessage(context.Background(), ticket.ID, client, &models.TicketMessageRequest{
		Message: "Any update?",
	})
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if msg.SenderType != models.SenderClient {
		t.Errorf("client message SenderType = %q, want %q", msg.SenderType, models.SenderClient)
	}
}

func TestAddMessageUnknownTicket(t *testing.T) {
	service := newTicketService(newFakeTicketRepo(), nil, nil, nil)

	_, err := service.AddMessage(context.Background(), primitive.NewObjectID(),
		utils.Principal{Kind: utils.PrincipalStaff}, &models.TicketMessageRequest{Message: "hi"})
	if !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("err = %v, want ErrTicketNotFound", err)
	}
}

func TestAddMessageEmailRelay(t *testing.T) {
	repo := newFakeTicketRepo()
	mailer := &fakeMailer{}
	service := newTicketService(repo, nil, nil, mailer)

	ticket := &models.Ticket{
		Title:              "Water damage",
		TechEmail:          "tech@example.com",
		EmailNotifications: true,
	}
	if err := service.Create(context.Background(), ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// a client email message goes to the assigned tech
	client := utils.Principal{Kind: utils.PrincipalClient, ID: "client1"}
	msg, err := service.AddMessage(context.Background(), ticket.ID, client, &models.TicketMessageRequest{
		Message:     "Photos attached",
		MessageType: models.MessageEmail,
	})
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if !msg.EmailSent {
		t.Error("EmailSent = false, want true")
	}
	if len(mailer.sentTo) != 1 || mailer.sentTo[0] != "tech@example.com" {
		t.Errorf("sentTo = %v, want [tech@example.com]", mailer.sentTo)
	}
	if !repo.messages[0].EmailSent {
		t.Error("stored record not flagged email_sent")
	}

	// chat messages are never relayed
	msg, err = service.AddMessage(context.Background(), ticket.ID, client, &models.TicketMessageRequest{
		Message: "Just chatting",
	})
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if msg.EmailSent {
		t.Error("chat message relayed over email")
	}
}

func TestAddMessageEmailFailureStillStores(t *testing.T) {
	repo := newFakeTicketRepo()
	mailer := &fakeMailer{failing: true}
	service := newTicketService(repo, nil, nil, mailer)

	ticket := &models.Ticket{
		Title:              "Slow boot",
		TechEmail:          "tech@example.com",
		EmailNotifications: true,
	}
	if err := service.Create(context.Background(), ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}

	msg, err := service.AddMessage(context.Background(), ticket.ID,
		utils.Principal{Kind: utils.PrincipalClient, ID: "client1"},
		&models.TicketMessageRequest{Message: "Still broken", MessageType: models.MessageEmail})
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if msg.EmailSent {
		t.Error("EmailSent = true after relay failure")
	}
	if len(repo.messages) != 1 {
		t.Errorf("stored %d messages, want 1", len(repo.messages))
	}
}

func TestAddMessageStoresBeforeRelay(t *testing.T) {
	repo := newFakeTicketRepo()
	mailer := &fakeMailer{}
	service := newTicketService(repo, nil, nil, mailer)

	ticket := &models.Ticket{
		Title:              "Dead pixel",
		TechEmail:          "tech@example.com",
		EmailNotifications: true,
	}
	if err := service.Create(context.Background(), ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mailer.onSend = func() {
		if len(repo.messages) != 1 {
			t.Errorf("relay ran with %d stored messages, want 1", len(repo.messages))
		}
	}

	_, err := service.AddMessage(context.Background(), ticket.ID,
		utils.Principal{Kind: utils.PrincipalClient, ID: "client1"},
		&models.TicketMessageRequest{Message: "See photo", MessageType: models.MessageEmail})
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if len(mailer.sentTo) != 1 {
		t.Fatalf("relay did not run")
	}
}

func TestMessagesNewestFirst(t *testing.T) {
	repo := newFakeTicketRepo()
	service := newTicketService(repo, nil, nil, nil)

	ticket := &models.Ticket{Title: "Keyboard replacement"}
	if err := service.Create(context.Background(), ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}

	staff := utils.Principal{Kind: utils.PrincipalStaff, ID: "staff1"}
	for _, text := range []string{"first", "second", "third"} {
		if _, err := service.AddMessage(context.Background(), ticket.ID, staff,
			&models.TicketMessageRequest{Message: text}); err != nil {
			t.Fatalf("AddMessage: %v", err)
		}
	}

	messages, err := service.Messages(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	for i, want := range []string{"third", "second", "first"} {
		if messages[i].Message != want {
			t.Errorf("messages[%d] = %q, want %q", i, messages[i].Message, want)
		}
	}
	if messages[0].CreatedAt.Before(messages[1].CreatedAt) {
		t.Error("messages not sorted newest-first")
	}
}

func TestGetOrCreateForServiceRequest(t *testing.T) {
	repo := newFakeTicketRepo()
	requestID := primitive.NewObjectID()
	requests := &fakeRequestRepo{requests: map[primitive.ObjectID]*models.ServiceRequest{
		requestID: {
			ID:          requestID,
			ClientID:    "client1",
			ServiceType: "Laptop repair",
			Description: "Cracked hinge",
			AssignedTo:  "tech1",
		},
	}}
	service := newTicketService(repo, requests, nil, nil)

	ticket, err := service.GetOrCreateForServiceRequest(context.Background(), requestID)
	if err != nil {
		t.Fatalf("GetOrCreateForServiceRequest: %v", err)
	}
	if ticket == nil {
		t.Fatal("ticket is nil")
	}
	if ticket.ServiceRequestID != requestID.Hex() {
		t.Errorf("ServiceRequestID = %q, want %q", ticket.ServiceRequestID, requestID.Hex())
	}
	if ticket.Title != "Laptop repair" || ticket.Description != "Cracked hinge" {
		t.Errorf("ticket not seeded from request: %+v", ticket)
	}
	if ticket.ClientID != "client1" || ticket.AssignedTo != "tech1" {
		t.Errorf("ticket not seeded from request: %+v", ticket)
	}

	// second call resolves to the same ticket
	again, err := service.GetOrCreateForServiceRequest(context.Background(), requestID)
	if err != nil {
		t.Fatalf("GetOrCreateForServiceRequest: %v", err)
	}
	if again.ID != ticket.ID {
		t.Errorf("second call created a new ticket: %s vs %s", again.ID.Hex(), ticket.ID.Hex())
	}
}

func TestGetOrCreateForMissingServiceRequest(t *testing.T) {
	service := newTicketService(newFakeTicketRepo(), nil, nil, nil)

	ticket, err := service.GetOrCreateForServiceRequest(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetOrCreateForServiceRequest: %v", err)
	}
	if ticket != nil {
		t.Errorf("ticket = %+v, want nil for unknown request", ticket)
	}
}
