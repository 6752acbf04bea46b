package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation types.
const (
	TypeFood       = "FOOD"
	TypeClothes    = "CLOTHES"
	TypeEssentials = "ESSENTIALS"
	TypeMoney      = "MONEY"
)

// ProofImage holds a completion proof photo as received from the client.
// The payload is kept in its transport encoding so it can be re-attached
// to the completion email.
type ProofImage struct {
	Base64 string `bson:"base64" json:"base64"`
	Name   string `bson:"name" json:"name"`
	Type   string `bson:"type" json:"type"` // e.g. "image/png"
}

// Donation is the central entity, tracked from creation to completion.
// Donor and Ngo are embedded snapshots taken at creation time so status
// updates and notifications never need a second lookup.
type Donation struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Donor *Donor             `bson:"donor" json:"donor"`
	Ngo   *Ngo               `bson:"ngo,omitempty" json:"ngo,omitempty"`

	DonationType   string     `bson:"donationType" json:"donationType"` // FOOD, CLOTHES, ESSENTIALS, MONEY
	FoodName       string     `bson:"foodName,omitempty" json:"foodName,omitempty"`
	MealType       string     `bson:"mealType,omitempty" json:"mealType,omitempty"`
	Category       string     `bson:"category,omitempty" json:"category,omitempty"`
	ClothesType    string     `bson:"clothesType,omitempty" json:"clothesType,omitempty"`
	ItemName       string     `bson:"itemName,omitempty" json:"itemName,omitempty"`
	Amount         string     `bson:"amount,omitempty" json:"amount,omitempty"`
	Quantity       string     `bson:"quantity,omitempty" json:"quantity,omitempty"`
	City           string     `bson:"city,omitempty" json:"city,omitempty"`
	ExpiryDateTime *time.Time `bson:"expiryDateTime,omitempty" json:"expiryDateTime,omitempty"`

	Status        Status `bson:"status" json:"status"`
	StatusMessage string `bson:"statusMessage,omitempty" json:"statusMessage,omitempty"`
	NgoNotes      string `bson:"ngoNotes,omitempty" json:"ngoNotes,omitempty"`
	UpdatedBy     string `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`

	// One timestamp per lifecycle status, set when that status is reached.
	ConfirmedAt *time.Time `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	ScheduledAt *time.Time `bson:"scheduledAt,omitempty" json:"scheduledAt,omitempty"`
	PickedUpAt  *time.Time `bson:"pickedUpAt,omitempty" json:"pickedUpAt,omitempty"`
	InTransitAt *time.Time `bson:"inTransitAt,omitempty" json:"inTransitAt,omitempty"`
	DeliveredAt *time.Time `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	// Pickup scheduling.
	PickupScheduledDate *time.Time `bson:"pickupScheduledDate,omitempty" json:"pickupScheduledDate,omitempty"`
	PickupAddress       string     `bson:"pickupAddress,omitempty" json:"pickupAddress,omitempty"`
	SpecialInstructions string     `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`

	// Delivery impact.
	BeneficiariesCount *int   `bson:"beneficiariesCount,omitempty" json:"beneficiariesCount,omitempty"`
	ImpactDescription  string `bson:"impactDescription,omitempty" json:"impactDescription,omitempty"`

	// Completion proof. ProofPhoto points at the S3 copy once uploaded.
	ProofImage *ProofImage   `bson:"proofImage,omitempty" json:"proofImage,omitempty"`
	ProofPhoto *MediaPointer `bson:"proofPhoto,omitempty" json:"proofPhoto,omitempty"`

	DonatedAt time.Time `bson:"donatedAt" json:"donatedAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
