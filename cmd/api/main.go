package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yarotech/pos-api/internal/application/service"
	"github.com/yarotech/pos-api/internal/config"
	"github.com/yarotech/pos-api/internal/domain/entity"
	"github.com/yarotech/pos-api/internal/infrastructure/database"
	"github.com/yarotech/pos-api/internal/infrastructure/repository"
	"github.com/yarotech/pos-api/internal/presentation/http/handler"
	"github.com/yarotech/pos-api/internal/presentation/http/routes"
	"github.com/yarotech/pos-api/pkg/email"
	"github.com/yarotech/pos-api/pkg/invoice"
	"github.com/yarotech/pos-api/pkg/oauth"
	"github.com/yarotech/pos-api/pkg/printer"
	"github.com/yarotech/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		AdminEmail:   cfg.Email.AdminEmail,
		FrontendURL:  cfg.Email.FrontendURL,
		CompanyName:  cfg.Company.Name,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Fetch the company logo once at startup. A missing logo degrades the
	// invoice header but never blocks rendering.
	var logo []byte
	if cfg.Company.LogoURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		logo, err = invoice.FetchLogo(ctx, cfg.Company.LogoURL)
		cancel()
		if err != nil {
			log.Printf("Warning: Failed to fetch company logo: %v", err)
		}
	}

	// Initialize invoice renderer
	renderer := invoice.NewRenderer(invoice.Branding{
		CompanyName: cfg.Company.Name,
		Address:     cfg.Company.Address,
		Phone:       cfg.Company.Phone,
		Email:       cfg.Company.Email,
		Currency:    cfg.Company.Currency,
		Logo:        logo,
	})

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo)
	invoiceService := service.NewInvoiceService(saleRepo, renderer, emailService)
	statsService := service.NewStatsService(statsRepo)
	userService := service.NewUserService(userRepo, roleRepo)
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, entity.ReceiptHeader{
		StoreName: cfg.Company.Name,
		Address:   cfg.Company.Address,
		Phone:     cfg.Company.Phone,
	}, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService, googleOAuthService),
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Sale:     handler.NewSaleHandler(saleService, invoiceService),
		Stats:    handler.NewStatsHandler(statsService),
		User:     handler.NewUserHandler(userService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
