package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
	"repair-app/internal/repository"
	"repair-app/internal/utils"
)

var ErrTicketNotFound = errors.New("ticket not found")

// TicketService owns the ticket lifecycle and its message log. Status and
// priority carry no transition guards: any value can be patched over any
// other, matching how the dashboard drives them.
type TicketService struct {
	repo        repository.TicketRepository
	requestRepo repository.ServiceRequestRepository
	clientRepo  repository.ClientRepository
	mailer      EmailService
}

func NewTicketService(repo repository.TicketRepository, requestRepo repository.ServiceRequestRepository, clientRepo repository.ClientRepository, mailer EmailService) *TicketService {
	return &TicketService{repo: repo, requestRepo: requestRepo, clientRepo: clientRepo, mailer: mailer}
}

func (s *TicketService) Create(ctx context.Context, ticket *models.Ticket) error {
	if err := ticket.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, ticket)
}

func (s *TicketService) GetAll(ctx context.Context) ([]models.Ticket, error) {
	return s.repo.GetAll(ctx)
}

func (s *TicketService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TicketService) GetByServiceRequest(ctx context.Context, serviceRequestID string) ([]models.Ticket, error) {
	return s.repo.GetByServiceRequest(ctx, serviceRequestID)
}

// GetOrCreateForServiceRequest returns the ticket bound to a service request,
// creating it from the request's fields on first access.
func (s *TicketService) GetOrCreateForServiceRequest(ctx context.Context, serviceRequestID primitive.ObjectID) (*models.Ticket, error) {
	request, err := s.requestRepo.GetByID(ctx, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, nil
	}

	seed := &models.Ticket{
		ServiceRequestID: request.ID.Hex(),
		ClientID:         request.ClientID,
		Title:            request.ServiceType,
		Description:      request.Description,
		AssignedTo:       request.AssignedTo,
	}
	return s.repo.GetOrCreateByServiceRequest(ctx, seed)
}

func (s *TicketService) Update(ctx context.Context, id primitive.ObjectID, req *models.TicketUpdateRequest) (*models.Ticket, error) {
	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.AssignedTo != nil {
		fields["assigned_to"] = *req.AssignedTo
	}
	if req.TechEmail != nil {
		fields["tech_email"] = *req.TechEmail
	}
	if req.ClientNotifications != nil {
		fields["client_notifications"] = *req.ClientNotifications
	}
	if req.EmailNotifications != nil {
		fields["email_notifications"] = *req.EmailNotifications
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *TicketService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

// AddMessage appends to the log. The sender type always comes from the
// authenticated principal; whatever the body claims is ignored. Messages of
// type "email" on a ticket with email notifications enabled are also relayed
// over SMTP after the record is stored, so no mail goes out for a message
// that was never persisted. The stored record reflects whether the send
// succeeded.
func (s *TicketService) AddMessage(ctx context.Context, ticketID primitive.ObjectID, principal utils.Principal, req *models.TicketMessageRequest) (*models.TicketMessage, error) {
	ticket, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	senderType := models.SenderClient
	if principal.Kind == utils.PrincipalStaff {
		senderType = models.SenderTech
	}

	msg := &models.TicketMessage{
		TicketID:    ticketID,
		SenderType:  senderType,
		SenderName:  req.SenderName,
		SenderEmail: req.SenderEmail,
		Message:     req.Message,
		MessageType: req.MessageType,
		IsInternal:  req.IsInternal,
	}
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		return nil, err
	}

	if ticket.EmailNotifications && req.MessageType == models.MessageEmail {
		if to := s.emailCounterpart(ctx, ticket, senderType); to != "" {
			subject := fmt.Sprintf("Ticket update: %s", ticket.Title)
			if err := s.mailer.SendTicketMessage(to, subject, req.Message); err != nil {
				log.Printf("ticket %s: email relay failed: %v", ticketID.Hex(), err)
			} else {
				msg.EmailSent = true
				if err := s.repo.MarkMessageEmailSent(ctx, msg.ID); err != nil {
					log.Printf("ticket %s: email_sent flag update failed: %v", ticketID.Hex(), err)
				}
			}
		}
	}
	return msg, nil
}

func (s *TicketService) emailCounterpart(ctx context.Context, ticket *models.Ticket, sender models.SenderType) string {
	if sender == models.SenderClient {
		return ticket.TechEmail
	}
	if ticket.ClientID == "" {
		return ""
	}
	clientID, err := primitive.ObjectIDFromHex(ticket.ClientID)
	if err != nil {
		return ""
	}
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil || client == nil {
		return ""
	}
	return client.Email
}

func (s *TicketService) Messages(ctx context.Context, ticketID primitive.ObjectID) ([]models.TicketMessage, error) {
	return s.repo.GetMessages(ctx, ticketID)
}
