package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/codewithemmax/WordLinkapp/internal/db"
	"github.com/codewithemmax/WordLinkapp/internal/handlers"
	"github.com/codewithemmax/WordLinkapp/internal/router"
	"github.com/codewithemmax/WordLinkapp/internal/services"
	"github.com/codewithemmax/WordLinkapp/internal/store"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	conn := db.Init()
	stores := store.NewGormStores(conn)

	// Services
	notify := services.NewNotificationService(stores.Notifications)
	toggles := services.NewToggleService(stores.Users, stores.Posts, notify)
	content := services.NewContentService(stores.Users, stores.Posts, notify)
	uploads := services.NewUploadService(services.NewCloudinaryClient())
	otp := services.NewOtpService(stores.Otps, services.NewMailService())

	// Initialize Gin
	r := gin.Default()

	router.RegisterRoutes(r, router.Deps{
		Users:         stores.Users,
		Auth:          handlers.NewAuthHandler(stores.Users, otp, uploads),
		Posts:         handlers.NewPostHandler(content, toggles, uploads),
		Profiles:      handlers.NewUserHandler(stores.Users, toggles),
		Notifications: handlers.NewNotificationHandler(notify),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Printf("WordLink server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
