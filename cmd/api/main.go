// cmd/api/main.go
package main

import (
	"log"
	"time"

	"food-donation-api-server/config"
	"food-donation-api-server/internal/api/routes"
	"food-donation-api-server/internal/auth"
	"food-donation-api-server/internal/database"
	"food-donation-api-server/internal/mailer"
	"food-donation-api-server/internal/notify"
	"food-donation-api-server/internal/s3"
	"food-donation-api-server/internal/socket"
	"food-donation-api-server/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load configuration (.env first, then yaml + env overrides)
	godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	auth.JwtSecret = []byte(cfg.JWT.Secret)

	jwtExpiration, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		jwtExpiration = auth.DefaultExpiration
	}

	// 2. Connect to MongoDB and ensure indexes
	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := database.EnsureIndexes(db); err != nil {
		log.Fatalf("Failed to ensure database indexes: %v", err)
	}
	if err := database.SeedAdmin(db, cfg.Admin); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	donations := store.NewMongoDonationStore(db)
	donors := store.NewMongoDonorStore(db)
	ngos := store.NewMongoNgoStore(db)
	admins := store.NewMongoAdminStore(db)

	// 3. Mail transport and notification dispatcher
	sendTimeout, err := time.ParseDuration(cfg.Mail.SendTimeout)
	if err != nil {
		sendTimeout = notify.DefaultSendTimeout
	}
	dispatcher := notify.NewDispatcher(mailer.NewMailgun(cfg.Mail), sendTimeout)

	// 4. S3 uploader for proof photos (optional)
	var s3Uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		s3Uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to initialize S3 uploader: %v", err)
		}
	} else {
		log.Println("S3 bucket not configured, proof photo upload disabled")
	}

	// 5. WebSocket hub for live status updates
	wsHub := socket.NewHub()

	// 6. Router
	router := routes.SetupRouter(donations, donors, ngos, admins, dispatcher, s3Uploader, wsHub, jwtExpiration)

	// 7. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
