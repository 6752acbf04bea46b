package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"food-donation-api-server/internal/models"
)

// Collection names.
const (
	donationCollection = "donations"
	donorCollection    = "donors"
	ngoCollection      = "ngos"
	adminCollection    = "admins"
)

// newestFirst sorts by donation date descending.
var newestFirst = options.Find().SetSort(bson.D{{Key: "donatedAt", Value: -1}})

// --- Donations ---

type MongoDonationStore struct {
	coll *mongo.Collection
}

func NewMongoDonationStore(db *mongo.Database) *MongoDonationStore {
	return &MongoDonationStore{coll: db.Collection(donationCollection)}
}

func (s *MongoDonationStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	var donation models.Donation
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&donation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return &donation, nil
}

func (s *MongoDonationStore) Insert(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	result, err := s.coll.InsertOne(ctx, donation)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		donation.ID = oid
	}
	return donation, nil
}

func (s *MongoDonationStore) Update(ctx context.Context, donation *models.Donation) error {
	donation.UpdatedAt = time.Now()
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": donation.ID}, donation)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrDonationNotFound
	}
	return nil
}

func (s *MongoDonationStore) ListByDonor(ctx context.Context, donorID primitive.ObjectID) ([]models.Donation, error) {
	return s.list(ctx, bson.M{"donor._id": donorID})
}

func (s *MongoDonationStore) ListByNgo(ctx context.Context, ngoID primitive.ObjectID) ([]models.Donation, error) {
	return s.list(ctx, bson.M{"ngo._id": ngoID})
}

func (s *MongoDonationStore) ListByNgoAndStatus(ctx context.Context, ngoID primitive.ObjectID, status models.Status) ([]models.Donation, error) {
	return s.list(ctx, bson.M{"ngo._id": ngoID, "status": status})
}

func (s *MongoDonationStore) list(ctx context.Context, filter bson.M) ([]models.Donation, error) {
	cursor, err := s.coll.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var donations []models.Donation
	if err = cursor.All(ctx, &donations); err != nil {
		return nil, err
	}
	if donations == nil {
		donations = []models.Donation{}
	}
	return donations, nil
}

// --- Donors ---

type MongoDonorStore struct {
	coll *mongo.Collection
}

func NewMongoDonorStore(db *mongo.Database) *MongoDonorStore {
	return &MongoDonorStore{coll: db.Collection(donorCollection)}
}

func (s *MongoDonorStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Donor, error) {
	var donor models.Donor
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&donor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}
	return &donor, nil
}

func (s *MongoDonorStore) FindByEmail(ctx context.Context, email string) (*models.Donor, error) {
	var donor models.Donor
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&donor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}
	return &donor, nil
}

func (s *MongoDonorStore) Insert(ctx context.Context, donor *models.Donor) (*models.Donor, error) {
	result, err := s.coll.InsertOne(ctx, donor)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		donor.ID = oid
	}
	return donor, nil
}

// --- NGOs ---

type MongoNgoStore struct {
	coll *mongo.Collection
}

func NewMongoNgoStore(db *mongo.Database) *MongoNgoStore {
	return &MongoNgoStore{coll: db.Collection(ngoCollection)}
}

func (s *MongoNgoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ngo, error) {
	var ngo models.Ngo
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ngo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNgoNotFound
		}
		return nil, err
	}
	return &ngo, nil
}

func (s *MongoNgoStore) FindByEmail(ctx context.Context, email string) (*models.Ngo, error) {
	var ngo models.Ngo
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&ngo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNgoNotFound
		}
		return nil, err
	}
	return &ngo, nil
}

func (s *MongoNgoStore) Insert(ctx context.Context, ngo *models.Ngo) (*models.Ngo, error) {
	result, err := s.coll.InsertOne(ctx, ngo)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		ngo.ID = oid
	}
	return ngo, nil
}

// --- Admins ---

type MongoAdminStore struct {
	coll *mongo.Collection
}

func NewMongoAdminStore(db *mongo.Database) *MongoAdminStore {
	return &MongoAdminStore{coll: db.Collection(adminCollection)}
}

func (s *MongoAdminStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}
