// Package store defines the persistence interfaces for donations, donors
// and NGOs, with MongoDB implementations used by the API and an in-memory
// implementation used by tests.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-donation-api-server/internal/models"
)

// Sentinel not-found errors, one per entity so callers can map them to
// distinct API responses.
var (
	ErrDonationNotFound = errors.New("donation not found")
	ErrDonorNotFound    = errors.New("donor not found")
	ErrNgoNotFound      = errors.New("ngo not found")
	ErrAdminNotFound    = errors.New("admin not found")
)

// DonationStore persists donation records. List results are ordered by
// donatedAt descending (newest first).
type DonationStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error)
	Insert(ctx context.Context, donation *models.Donation) (*models.Donation, error)
	Update(ctx context.Context, donation *models.Donation) error
	ListByDonor(ctx context.Context, donorID primitive.ObjectID) ([]models.Donation, error)
	ListByNgo(ctx context.Context, ngoID primitive.ObjectID) ([]models.Donation, error)
	ListByNgoAndStatus(ctx context.Context, ngoID primitive.ObjectID, status models.Status) ([]models.Donation, error)
}

type DonorStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Donor, error)
	FindByEmail(ctx context.Context, email string) (*models.Donor, error)
	Insert(ctx context.Context, donor *models.Donor) (*models.Donor, error)
}

type NgoStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ngo, error)
	FindByEmail(ctx context.Context, email string) (*models.Ngo, error)
	Insert(ctx context.Context, ngo *models.Ngo) (*models.Ngo, error)
}

// AdminStore covers the seeded platform admin accounts. Only login needs
// them, so the surface is minimal.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
}
