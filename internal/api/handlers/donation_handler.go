package handlers

import (
	"context"
	"net/http"
	"time"

	"food-donation-api-server/internal/donation"
	"food-donation-api-server/internal/models"
	"food-donation-api-server/internal/notify"
	"food-donation-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DonationHandler struct {
	Donations  store.DonationStore
	Donors     store.DonorStore
	Ngos       store.NgoStore
	Engine     *donation.Engine
	Dispatcher *notify.Dispatcher
}

// DonationRequest is the body for creating a donation and for editing one
// that is still pending. Status is never accepted here; it only moves
// through the status endpoints.
type DonationRequest struct {
	DonationType   string     `json:"donationType" binding:"required"`
	FoodName       string     `json:"foodName"`
	MealType       string     `json:"mealType"`
	Category       string     `json:"category"`
	ClothesType    string     `json:"clothesType"`
	ItemName       string     `json:"itemName"`
	Amount         string     `json:"amount"`
	Quantity       string     `json:"quantity"`
	City           string     `json:"city"`
	ExpiryDateTime *time.Time `json:"expiryDateTime"`
	NgoID          string     `json:"ngoID"`
}

// resolveNgo looks up the NGO referenced in the request, if any.
func (h *DonationHandler) resolveNgo(c *gin.Context, ngoID string) (*models.Ngo, bool) {
	if ngoID == "" {
		return nil, true
	}
	oid, err := primitive.ObjectIDFromHex(ngoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid NGO id"})
		return nil, false
	}
	ngo, err := h.Ngos.FindByID(context.Background(), oid)
	if err != nil {
		if err == store.ErrNgoNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "NGO not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up NGO"})
		}
		return nil, false
	}
	// Snapshot without the password hash.
	ngo.Password = ""
	return ngo, true
}

// CreateDonation registers a new donation for the authenticated donor.
// MONEY donations complete immediately and trigger a receipt email.
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	donorID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid donor identity"})
		return
	}

	donor, err := h.Donors.FindByID(context.Background(), donorID)
	if err != nil {
		if err == store.ErrDonorNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up donor"})
		}
		return
	}
	donor.Password = ""

	var req DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ngo, ok := h.resolveNgo(c, req.NgoID)
	if !ok {
		return
	}

	newDonation := &models.Donation{
		Donor:          donor,
		Ngo:            ngo,
		DonationType:   req.DonationType,
		FoodName:       req.FoodName,
		MealType:       req.MealType,
		Category:       req.Category,
		ClothesType:    req.ClothesType,
		ItemName:       req.ItemName,
		Amount:         req.Amount,
		Quantity:       req.Quantity,
		City:           req.City,
		ExpiryDateTime: req.ExpiryDateTime,
	}

	sendReceipt := h.Engine.PrepareNew(newDonation)

	saved, err := h.Donations.Insert(context.Background(), newDonation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create donation"})
		return
	}

	if sendReceipt {
		receiptCopy := *saved
		go h.Dispatcher.NotifyReceipt(&receiptCopy)
	}

	c.JSON(http.StatusCreated, saved)
}

// UpdateDonation edits a donation's descriptive fields. No status side
// effects; status only moves through the status endpoints.
func (h *DonationHandler) UpdateDonation(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation id"})
		return
	}

	existing, err := h.Donations.FindByID(context.Background(), id)
	if err != nil {
		if err == store.ErrDonationNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	if existing.Donor == nil || existing.Donor.ID.Hex() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own donations"})
		return
	}

	var req DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing.DonationType = req.DonationType
	existing.FoodName = req.FoodName
	existing.MealType = req.MealType
	existing.Category = req.Category
	existing.ClothesType = req.ClothesType
	existing.ItemName = req.ItemName
	existing.Amount = req.Amount
	existing.Quantity = req.Quantity
	existing.City = req.City
	existing.ExpiryDateTime = req.ExpiryDateTime

	if req.NgoID != "" {
		ngo, ok := h.resolveNgo(c, req.NgoID)
		if !ok {
			return
		}
		existing.Ngo = ngo
	}

	if err := h.Donations.Update(context.Background(), existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donation"})
		return
	}

	c.JSON(http.StatusOK, existing)
}

// GetDonation returns a single donation with full details.
func (h *DonationHandler) GetDonation(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation id"})
		return
	}

	found, err := h.Donations.FindByID(context.Background(), id)
	if err != nil {
		if err == store.ErrDonationNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return
	}

	c.JSON(http.StatusOK, found)
}

// ListByDonor returns a donor's donations, newest first.
func (h *DonationHandler) ListByDonor(c *gin.Context) {
	donorID, err := primitive.ObjectIDFromHex(c.Param("donorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donor id"})
		return
	}

	donations, err := h.Donations.ListByDonor(context.Background(), donorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query donations"})
		return
	}

	c.JSON(http.StatusOK, donations)
}

// ListByNgo returns an NGO's donations, newest first.
func (h *DonationHandler) ListByNgo(c *gin.Context) {
	ngoID, err := primitive.ObjectIDFromHex(c.Param("ngoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid NGO id"})
		return
	}

	donations, err := h.Donations.ListByNgo(context.Background(), ngoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query donations"})
		return
	}

	c.JSON(http.StatusOK, donations)
}

// ListByNgoAndStatus filters an NGO's donations by lifecycle status.
func (h *DonationHandler) ListByNgoAndStatus(c *gin.Context) {
	ngoID, err := primitive.ObjectIDFromHex(c.Param("ngoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid NGO id"})
		return
	}

	status, err := models.ParseStatus(c.Param("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status: " + c.Param("status")})
		return
	}

	donations, err := h.Donations.ListByNgoAndStatus(context.Background(), ngoID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query donations"})
		return
	}

	c.JSON(http.StatusOK, donations)
}

// DonorStats aggregates a donor's donations per status plus the total
// number of beneficiaries reached.
func (h *DonationHandler) DonorStats(c *gin.Context) {
	donorID, err := primitive.ObjectIDFromHex(c.Param("donorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donor id"})
		return
	}

	donations, err := h.Donations.ListByDonor(context.Background(), donorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query donations"})
		return
	}

	counts := map[models.Status]int{}
	totalBeneficiaries := 0
	for _, d := range donations {
		counts[d.Status]++
		if d.BeneficiariesCount != nil {
			totalBeneficiaries += *d.BeneficiariesCount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalDonations":     len(donations),
		"pending":            counts[models.StatusPending],
		"confirmed":          counts[models.StatusConfirmed],
		"scheduled":          counts[models.StatusScheduled],
		"pickedUp":           counts[models.StatusPickedUp],
		"inTransit":          counts[models.StatusInTransit],
		"delivered":          counts[models.StatusDelivered],
		"completed":          counts[models.StatusCompleted],
		"totalBeneficiaries": totalBeneficiaries,
	})
}
