package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
	"repair-app/internal/repository"
	"repair-app/internal/utils"
)

// CRMService is the staff-side CRUD surface: clients, service requests,
// inventory, invoices and web leads.
type CRMService struct {
	clientRepo    repository.ClientRepository
	requestRepo   repository.ServiceRequestRepository
	inventoryRepo repository.InventoryRepository
	invoiceRepo   repository.InvoiceRepository
	leadRepo      repository.LeadRepository
}

func NewCRMService(clientRepo repository.ClientRepository, requestRepo repository.ServiceRequestRepository, inventoryRepo repository.InventoryRepository, invoiceRepo repository.InvoiceRepository, leadRepo repository.LeadRepository) *CRMService {
	return &CRMService{
		clientRepo:    clientRepo,
		requestRepo:   requestRepo,
		inventoryRepo: inventoryRepo,
		invoiceRepo:   invoiceRepo,
		leadRepo:      leadRepo,
	}
}

// Clients

func (s *CRMService) Clients(ctx context.Context) ([]models.Client, error) {
	return s.clientRepo.GetAll(ctx)
}

func (s *CRMService) CreateClient(ctx context.Context, client *models.Client) error {
	if err := utils.ValidateStruct(client); err != nil {
		return errors.New("missing required client fields")
	}
	client.IsActive = true
	return s.clientRepo.Create(ctx, client)
}

func (s *CRMService) UpdateClient(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Client, error) {
	return s.clientRepo.Update(ctx, id, patchFields(fields))
}

func (s *CRMService) DeleteClient(ctx context.Context, id primitive.ObjectID) error {
	return s.clientRepo.Delete(ctx, id)
}

// Service requests

func (s *CRMService) ServiceRequests(ctx context.Context) ([]models.ServiceRequest, error) {
	return s.requestRepo.GetAll(ctx)
}

func (s *CRMService) ServiceRequestsForClient(ctx context.Context, clientID string) ([]models.ServiceRequest, error) {
	return s.requestRepo.GetByClient(ctx, clientID)
}

func (s *CRMService) CreateServiceRequest(ctx context.Context, request *models.ServiceRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}
	return s.requestRepo.Create(ctx, request)
}

func (s *CRMService) UpdateServiceRequest(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.ServiceRequest, error) {
	return s.requestRepo.Update(ctx, id, patchFields(fields))
}

func (s *CRMService) DeleteServiceRequest(ctx context.Context, id primitive.ObjectID) error {
	return s.requestRepo.Delete(ctx, id)
}

// Inventory

func (s *CRMService) InventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	return s.inventoryRepo.GetAll(ctx)
}

func (s *CRMService) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	if item.ItemName == "" {
		return errors.New("missing required inventory fields")
	}
	return s.inventoryRepo.Create(ctx, item)
}

func (s *CRMService) UpdateInventoryItem(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.InventoryItem, error) {
	return s.inventoryRepo.Update(ctx, id, patchFields(fields))
}

func (s *CRMService) DeleteInventoryItem(ctx context.Context, id primitive.ObjectID) error {
	return s.inventoryRepo.Delete(ctx, id)
}

// Invoices

func (s *CRMService) Invoices(ctx context.Context) ([]models.Invoice, error) {
	return s.invoiceRepo.GetAll(ctx)
}

func (s *CRMService) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	return s.invoiceRepo.Create(ctx, invoice)
}

func (s *CRMService) UpdateInvoice(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Invoice, error) {
	return s.invoiceRepo.Update(ctx, id, patchFields(fields))
}

func (s *CRMService) DeleteInvoice(ctx context.Context, id primitive.ObjectID) error {
	return s.invoiceRepo.Delete(ctx, id)
}

// Web leads

func (s *CRMService) Leads(ctx context.Context) ([]models.WebLead, error) {
	return s.leadRepo.GetAll(ctx)
}

func (s *CRMService) CreateLead(ctx context.Context, lead *models.WebLead) error {
	if err := utils.ValidateStruct(lead); err != nil {
		return errors.New("missing required lead fields")
	}
	return s.leadRepo.Create(ctx, lead)
}

func (s *CRMService) DeleteLead(ctx context.Context, id primitive.ObjectID) error {
	return s.leadRepo.Delete(ctx, id)
}
