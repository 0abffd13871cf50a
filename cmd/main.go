package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"repair-app/internal/config"
	"repair-app/internal/handler"
	"repair-app/internal/repository"
	"repair-app/internal/services"
	"repair-app/internal/utils"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// MongoDB
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Mongo connection failed:", err)
	}
	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})
	db := mongoClient.Database(cfg.MongoDB)

	// Redis (client sessions + dashboard cache)
	redisClient, err := utils.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing Redis connection...")
		return redisClient.Close()
	})

	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret)
	mailer := services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	requestRepo := repository.NewServiceRequestRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	techRepo := repository.NewTechRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	leadRepo := repository.NewLeadRepository(db)

	if err := ticketRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create ticket indexes:", err)
	}

	// Services
	authService := services.NewAuthService(userRepo, jwtUtil, cfg.GoogleClientID)
	clientAuthService := services.NewClientAuthService(clientRepo, redisClient)
	ticketService := services.NewTicketService(ticketRepo, requestRepo, clientRepo, mailer)
	incidentService := services.NewIncidentService(incidentRepo)
	techService := services.NewTechService(techRepo)
	crmService := services.NewCRMService(clientRepo, requestRepo, inventoryRepo, invoiceRepo, leadRepo)
	dashboardService := services.NewDashboardService(clientRepo, requestRepo, invoiceRepo, leadRepo, redisClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	portalHandler := handler.NewClientPortalHandler(clientAuthService, crmService, techService)
	ticketHandler := handler.NewTicketHandler(ticketService)
	incidentHandler := handler.NewIncidentHandler(incidentService)
	techHandler := handler.NewTechHandler(techService)
	crmHandler := handler.NewCRMHandler(crmService, dashboardService)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	staffAuth := utils.StaffAuthMiddleware(jwtUtil)
	clientAuth := utils.ClientSessionMiddleware(redisClient)
	eitherAuth := utils.EitherAuthMiddleware(jwtUtil, redisClient)

	api := router.Group("/api")
	{
		// Public
		api.POST("/auth/google", authHandler.GoogleLogin)
		api.POST("/leads", crmHandler.CreateLead)
		api.POST("/client/signup", portalHandler.Signup)
		api.POST("/client/login", portalHandler.Login)

		// Staff
		staff := api.Group("/", staffAuth)
		{
			staff.GET("/auth/validate", authHandler.Validate)
			staff.GET("/auth/user", authHandler.GetUser)

			staff.GET("/leads", crmHandler.GetLeads)
			staff.DELETE("/leads/:id", crmHandler.DeleteLead)

			staff.GET("/clients", crmHandler.GetClients)
			staff.POST("/clients", crmHandler.CreateClient)
			staff.PUT("/clients/:id", crmHandler.UpdateClient)
			staff.DELETE("/clients/:id", crmHandler.DeleteClient)

			staff.GET("/service-requests", crmHandler.GetServiceRequests)
			staff.POST("/service-requests", crmHandler.CreateServiceRequest)
			staff.PUT("/service-requests/:id", crmHandler.UpdateServiceRequest)
			staff.DELETE("/service-requests/:id", crmHandler.DeleteServiceRequest)
			staff.GET("/service-requests/:id/tickets", ticketHandler.GetByServiceRequest)

			staff.GET("/inventory", crmHandler.GetInventory)
			staff.POST("/inventory", crmHandler.CreateInventoryItem)
			staff.PUT("/inventory/:id", crmHandler.UpdateInventoryItem)
			staff.DELETE("/inventory/:id", crmHandler.DeleteInventoryItem)

			staff.GET("/invoices", crmHandler.GetInvoices)
			staff.POST("/invoices", crmHandler.CreateInvoice)
			staff.PUT("/invoices/:id", crmHandler.UpdateInvoice)
			staff.DELETE("/invoices/:id", crmHandler.DeleteInvoice)

			staff.GET("/dashboard/stats", crmHandler.DashboardStats)

			staff.GET("/incidents", incidentHandler.GetAll)
			staff.GET("/incidents/client/:clientId", incidentHandler.GetByClient)
			staff.POST("/incidents", incidentHandler.Create)
			staff.PATCH("/incidents/:id", incidentHandler.Update)
			staff.DELETE("/incidents/:id", incidentHandler.Delete)

			staff.GET("/tickets", ticketHandler.GetAll)
			staff.GET("/tickets/:id", ticketHandler.GetByID)
			staff.POST("/tickets", ticketHandler.Create)
			staff.PATCH("/tickets/:id", ticketHandler.Update)
			staff.DELETE("/tickets/:id", ticketHandler.Delete)

			staff.GET("/tech-profile", techHandler.GetProfile)
			staff.POST("/tech-profile", techHandler.UpsertProfile)
			staff.DELETE("/tech-profile/:id", techHandler.DeleteProfile)

			staff.GET("/tech-certifications/:techProfileId", techHandler.GetCertifications)
			staff.POST("/tech-certifications", techHandler.CreateCertification)
			staff.PATCH("/tech-certifications/:id", techHandler.UpdateCertification)
			staff.DELETE("/tech-certifications/:id", techHandler.DeleteCertification)

			staff.GET("/tech-skills/:techProfileId", techHandler.GetSkills)
			staff.POST("/tech-skills", techHandler.CreateSkill)
			staff.PATCH("/tech-skills/:id", techHandler.UpdateSkill)
			staff.DELETE("/tech-skills/:id", techHandler.DeleteSkill)

			staff.GET("/service-completions/:techProfileId", techHandler.GetCompletions)
			staff.POST("/service-completions", techHandler.CreateCompletion)
			staff.PATCH("/service-completions/:id", techHandler.UpdateCompletion)
			staff.DELETE("/service-completions/:id", techHandler.DeleteCompletion)

			staff.GET("/tech-stats/:techProfileId", techHandler.Stats)
		}

		// Client portal
		client := api.Group("/client", clientAuth)
		{
			client.POST("/logout", portalHandler.Logout)
			client.GET("/profile", portalHandler.Profile)
			client.GET("/service-requests", portalHandler.MyServiceRequests)
			client.POST("/service-requests", portalHandler.CreateServiceRequest)
			client.GET("/available-techs", portalHandler.AvailableTechs)
			client.GET("/techs/:id", portalHandler.TechByID)
			client.GET("/tickets/:ticketId/messages", ticketHandler.Messages)
			client.POST("/tickets/:ticketId/messages", ticketHandler.PostMessage)
		}

		// Shared between staff and client sessions
		shared := api.Group("/", eitherAuth)
		{
			shared.GET("/tickets/:id/messages", ticketHandler.Messages)
			shared.POST("/tickets/:id/messages", ticketHandler.PostMessage)
			shared.GET("/service-requests/:id/ticket", ticketHandler.EnsureForServiceRequest)
		}
	}

	server := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Repair service running on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	select {}
}
