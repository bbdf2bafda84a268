package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
	"github.com/streadway/amqp"

	"bazar/internal/config"
	"bazar/internal/database"
	"bazar/internal/handlers"
	"bazar/internal/middleware"
	"bazar/internal/repositories"
	"bazar/internal/services"
	"bazar/internal/session"
	"bazar/pkg/rabbitmq"
	"bazar/web"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- RabbitMQ client (optional) ---
	// The app works without a broker; contact notifications are then skipped.
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("RabbitMQ unavailable, contact notifications disabled: %v", err)
		mqClient = nil
	} else {
		defer mqClient.Close() // Ensure the connection is closed on exit
	}

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)
	itemRepo := repositories.NewGORMItemRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo)
	contactService := services.NewContactService(contactRepo, mqClient)
	itemService := services.NewItemService(itemRepo)

	// --- Session manager ---
	sessions := session.NewManager(cfg.SecretKey)

	// --- Initialize Handlers ---
	pageHandler := handlers.NewPageHandler(sessions)
	authHandler := handlers.NewAuthHandler(authService, sessions)
	contactHandler := handlers.NewContactHandler(contactService, sessions)
	itemHandler := handlers.NewItemHandler(itemService, sessions)

	// --- Initialize Fiber App ---
	engine := html.NewFileSystem(http.FS(web.TemplatesFS()), ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	authRequired := middleware.LoginRequired(sessions)

	// --- Routes ---
	pageHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)
	contactHandler.RegisterRoutes(app, authRequired)
	itemHandler.RegisterRoutes(app, authRequired)

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Listens for contact notification events. Downstream processing (mail,
	// CRM sync) would hang off this handler.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for contact notifications...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received contact event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeNotificationEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
