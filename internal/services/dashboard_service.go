package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"repair-app/internal/models"
	"repair-app/internal/repository"
	"repair-app/internal/utils"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = time.Minute
)

// DashboardService aggregates the staff dashboard counters. The four
// collection reads are independent, so they run concurrently.
type DashboardService struct {
	clientRepo  repository.ClientRepository
	requestRepo repository.ServiceRequestRepository
	invoiceRepo repository.InvoiceRepository
	leadRepo    repository.LeadRepository
	cache       *utils.RedisClient
}

func NewDashboardService(clientRepo repository.ClientRepository, requestRepo repository.ServiceRequestRepository, invoiceRepo repository.InvoiceRepository, leadRepo repository.LeadRepository, cache *utils.RedisClient) *DashboardService {
	return &DashboardService{
		clientRepo:  clientRepo,
		requestRepo: requestRepo,
		invoiceRepo: invoiceRepo,
		leadRepo:    leadRepo,
		cache:       cache,
	}
}

func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var cached models.DashboardStats
	if err := s.cache.Get(ctx, dashboardCacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, utils.ErrCacheMiss) {
		log.Printf("dashboard cache read failed: %v", err)
	}

	var (
		wg       sync.WaitGroup
		clients  []models.Client
		requests []models.ServiceRequest
		invoices []models.Invoice
		leads    []models.WebLead
		errs     [4]error
	)

	wg.Add(4)
	go func() { defer wg.Done(); clients, errs[0] = s.clientRepo.GetAll(ctx) }()
	go func() { defer wg.Done(); requests, errs[1] = s.requestRepo.GetAll(ctx) }()
	go func() { defer wg.Done(); invoices, errs[2] = s.invoiceRepo.GetAll(ctx) }()
	go func() { defer wg.Done(); leads, errs[3] = s.leadRepo.GetAll(ctx) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	stats := &models.DashboardStats{ActiveClients: len(clients)}
	for _, r := range requests {
		if r.Status == models.RequestPending || r.Status == models.RequestInProgress {
			stats.OpenRequests++
		}
	}
	for _, inv := range invoices {
		if inv.Status == models.InvoiceUnpaid {
			stats.PendingInvoices++
		}
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	for _, l := range leads {
		if l.CreatedAt.After(weekAgo) {
			stats.NewLeads++
		}
	}

	if err := s.cache.Set(ctx, dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
		log.Printf("dashboard cache write failed: %v", err)
	}
	return stats, nil
}

// Invalidate drops the cached counters after any mutation that feeds them.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
		log.Printf("dashboard cache invalidation failed: %v", err)
	}
}
