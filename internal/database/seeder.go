// internal/database/seeder.go
package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"food-donation-api-server/config"
	"food-donation-api-server/internal/auth"
	"food-donation-api-server/internal/models"
)

// EnsureIndexes creates the indexes the list queries and logins rely on.
// Safe to call on every startup; existing indexes are left alone.
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	donationIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "donor._id", Value: 1}, {Key: "donatedAt", Value: -1}}},
		{Keys: bson.D{{Key: "ngo._id", Value: 1}, {Key: "donatedAt", Value: -1}}},
		{Keys: bson.D{{Key: "ngo._id", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := db.Collection("donations").Indexes().CreateMany(ctx, donationIndexes); err != nil {
		return err
	}

	unique := options.Index().SetUnique(true)
	if _, err := db.Collection("donors").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}}, Options: unique,
	}); err != nil {
		return err
	}
	if _, err := db.Collection("ngos").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}}, Options: unique,
	}); err != nil {
		return err
	}

	if _, err := db.Collection("admins").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}}, Options: unique,
	}); err != nil {
		return err
	}

	log.Println("Database indexes ensured.")
	return nil
}

// SeedAdmin creates the platform admin account if it does not exist yet.
// Skipped entirely when no admin email is configured.
func SeedAdmin(db *mongo.Database, cfg config.AdminConfig) error {
	if cfg.Email == "" {
		log.Println("Admin email not configured. Seeding skipped.")
		return nil
	}

	adminCollection := db.Collection("admins")

	count, err := adminCollection.CountDocuments(context.Background(), bson.M{"email": cfg.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin already exists. Seeding skipped.")
		return nil
	}

	log.Println("Admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Name:      "Platform Admin",
		Email:     cfg.Email,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}

	if _, err := adminCollection.InsertOne(context.Background(), admin); err != nil {
		return err
	}

	log.Println("Admin seeded successfully.")
	return nil
}
