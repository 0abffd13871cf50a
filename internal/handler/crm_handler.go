package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"repair-app/internal/models"
	"repair-app/internal/services"
)

// CRMHandler is the staff dashboard surface: clients, service requests,
// inventory, invoices, leads and the stats endpoint.
type CRMHandler struct {
	crm       *services.CRMService
	dashboard *services.DashboardService
}

func NewCRMHandler(crm *services.CRMService, dashboard *services.DashboardService) *CRMHandler {
	return &CRMHandler{crm: crm, dashboard: dashboard}
}

// Clients

func (h *CRMHandler) GetClients(c *gin.Context) {
	clients, err := h.crm.Clients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *CRMHandler) CreateClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.crm.CreateClient(c.Request.Context(), &client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, client)
}

func (h *CRMHandler) UpdateClient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	client, err := h.crm.UpdateClient(c.Request.Context(), id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, client)
}

func (h *CRMHandler) DeleteClient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	if err := h.crm.DeleteClient(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Service requests

func (h *CRMHandler) GetServiceRequests(c *gin.Context) {
	requests, err := h.crm.ServiceRequests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *CRMHandler) CreateServiceRequest(c *gin.Context) {
	var request models.ServiceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.crm.CreateServiceRequest(c.Request.Context(), &request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, request)
}

func (h *CRMHandler) UpdateServiceRequest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	request, err := h.crm.UpdateServiceRequest(c.Request.Context(), id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service request"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, request)
}

func (h *CRMHandler) DeleteServiceRequest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	if err := h.crm.DeleteServiceRequest(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service request"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Inventory

func (h *CRMHandler) GetInventory(c *gin.Context) {
	items, err := h.crm.InventoryItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CRMHandler) CreateInventoryItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.crm.CreateInventoryItem(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CRMHandler) UpdateInventoryItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	item, err := h.crm.UpdateInventoryItem(c.Request.Context(), id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CRMHandler) DeleteInventoryItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	if err := h.crm.DeleteInventoryItem(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Invoices

func (h *CRMHandler) GetInvoices(c *gin.Context) {
	invoices, err := h.crm.Invoices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *CRMHandler) CreateInvoice(c *gin.Context) {
	var invoice models.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.crm.CreateInvoice(c.Request.Context(), &invoice); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invoice"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, invoice)
}

func (h *CRMHandler) UpdateInvoice(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	invoice, err := h.crm.UpdateInvoice(c.Request.Context(), id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update invoice"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, invoice)
}

func (h *CRMHandler) DeleteInvoice(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	if err := h.crm.DeleteInvoice(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Web leads

// CreateLead is public: the landing page form posts here without a session.
func (h *CRMHandler) CreateLead(c *gin.Context) {
	var lead models.WebLead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := h.crm.CreateLead(c.Request.Context(), &lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, lead)
}

func (h *CRMHandler) GetLeads(c *gin.Context) {
	leads, err := h.crm.Leads(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *CRMHandler) DeleteLead(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	if err := h.crm.DeleteLead(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lead"})
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Dashboard

func (h *CRMHandler) DashboardStats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
