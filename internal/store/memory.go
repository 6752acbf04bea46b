package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"food-donation-api-server/internal/models"
)

// MemoryStore is an in-memory implementation of DonationStore, DonorStore
// and NgoStore, used by tests.
type MemoryStore struct {
	donations map[primitive.ObjectID]*models.Donation
	donors    map[primitive.ObjectID]*models.Donor
	ngos      map[primitive.ObjectID]*models.Ngo
	admins    map[primitive.ObjectID]*models.Admin
	mu        sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		donations: make(map[primitive.ObjectID]*models.Donation),
		donors:    make(map[primitive.ObjectID]*models.Donor),
		ngos:      make(map[primitive.ObjectID]*models.Ngo),
		admins:    make(map[primitive.ObjectID]*models.Admin),
	}
}

func (s *MemoryStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	donation, ok := s.donations[id]
	if !ok {
		return nil, ErrDonationNotFound
	}
	copied := *donation
	return &copied, nil
}

func (s *MemoryStore) Insert(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if donation.ID.IsZero() {
		donation.ID = primitive.NewObjectID()
	}
	copied := *donation
	s.donations[donation.ID] = &copied
	return donation, nil
}

func (s *MemoryStore) Update(ctx context.Context, donation *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.donations[donation.ID]; !ok {
		return ErrDonationNotFound
	}
	donation.UpdatedAt = time.Now()
	copied := *donation
	s.donations[donation.ID] = &copied
	return nil
}

func (s *MemoryStore) ListByDonor(ctx context.Context, donorID primitive.ObjectID) ([]models.Donation, error) {
	return s.list(func(d *models.Donation) bool {
		return d.Donor != nil && d.Donor.ID == donorID
	}), nil
}

func (s *MemoryStore) ListByNgo(ctx context.Context, ngoID primitive.ObjectID) ([]models.Donation, error) {
	return s.list(func(d *models.Donation) bool {
		return d.Ngo != nil && d.Ngo.ID == ngoID
	}), nil
}

func (s *MemoryStore) ListByNgoAndStatus(ctx context.Context, ngoID primitive.ObjectID, status models.Status) ([]models.Donation, error) {
	return s.list(func(d *models.Donation) bool {
		return d.Ngo != nil && d.Ngo.ID == ngoID && d.Status == status
	}), nil
}

func (s *MemoryStore) list(match func(*models.Donation) bool) []models.Donation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []models.Donation{}
	for _, donation := range s.donations {
		if match(donation) {
			result = append(result, *donation)
		}
	}
	// Newest first, same as the Mongo implementation.
	sort.Slice(result, func(i, j int) bool {
		return result[i].DonatedAt.After(result[j].DonatedAt)
	})
	return result
}

// --- Donors ---

func (s *MemoryStore) FindDonorByID(ctx context.Context, id primitive.ObjectID) (*models.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	donor, ok := s.donors[id]
	if !ok {
		return nil, ErrDonorNotFound
	}
	copied := *donor
	return &copied, nil
}

func (s *MemoryStore) FindDonorByEmail(ctx context.Context, email string) (*models.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, donor := range s.donors {
		if donor.Email == email {
			copied := *donor
			return &copied, nil
		}
	}
	return nil, ErrDonorNotFound
}

func (s *MemoryStore) InsertDonor(ctx context.Context, donor *models.Donor) (*models.Donor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if donor.ID.IsZero() {
		donor.ID = primitive.NewObjectID()
	}
	copied := *donor
	s.donors[donor.ID] = &copied
	return donor, nil
}

// --- NGOs ---

func (s *MemoryStore) FindNgoByID(ctx context.Context, id primitive.ObjectID) (*models.Ngo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ngo, ok := s.ngos[id]
	if !ok {
		return nil, ErrNgoNotFound
	}
	copied := *ngo
	return &copied, nil
}

func (s *MemoryStore) FindNgoByEmail(ctx context.Context, email string) (*models.Ngo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ngo := range s.ngos {
		if ngo.Email == email {
			copied := *ngo
			return &copied, nil
		}
	}
	return nil, ErrNgoNotFound
}

func (s *MemoryStore) InsertNgo(ctx context.Context, ngo *models.Ngo) (*models.Ngo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ngo.ID.IsZero() {
		ngo.ID = primitive.NewObjectID()
	}
	copied := *ngo
	s.ngos[ngo.ID] = &copied
	return ngo, nil
}

// --- Admins ---

func (s *MemoryStore) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, admin := range s.admins {
		if admin.Email == email {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, ErrAdminNotFound
}

func (s *MemoryStore) InsertAdmin(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	copied := *admin
	s.admins[admin.ID] = &copied
	return admin, nil
}

// DonorView and NgoView expose the MemoryStore through the DonorStore and
// NgoStore interfaces, whose method names differ from the donation ones.
type DonorView struct{ *MemoryStore }

func (v DonorView) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Donor, error) {
	return v.FindDonorByID(ctx, id)
}

func (v DonorView) FindByEmail(ctx context.Context, email string) (*models.Donor, error) {
	return v.FindDonorByEmail(ctx, email)
}

func (v DonorView) Insert(ctx context.Context, donor *models.Donor) (*models.Donor, error) {
	return v.InsertDonor(ctx, donor)
}

type NgoView struct{ *MemoryStore }

func (v NgoView) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ngo, error) {
	return v.FindNgoByID(ctx, id)
}

func (v NgoView) FindByEmail(ctx context.Context, email string) (*models.Ngo, error) {
	return v.FindNgoByEmail(ctx, email)
}

func (v NgoView) Insert(ctx context.Context, ngo *models.Ngo) (*models.Ngo, error) {
	return v.InsertNgo(ctx, ngo)
}

type AdminView struct{ *MemoryStore }

func (v AdminView) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return v.FindAdminByEmail(ctx, email)
}
