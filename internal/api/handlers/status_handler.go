package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"food-donation-api-server/internal/donation"
	"food-donation-api-server/internal/models"
	"food-donation-api-server/internal/notify"
	"food-donation-api-server/internal/s3"
	"food-donation-api-server/internal/socket"
	"food-donation-api-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusHandler owns the donation lifecycle endpoints: the main status
// update, the NGO schedule-pickup shortcut and the proof photo upload.
type StatusHandler struct {
	Donations  store.DonationStore
	Engine     *donation.Engine
	Dispatcher *notify.Dispatcher
	Hub        *socket.Hub
	S3Uploader *s3.Uploader
}

func (h *StatusHandler) findDonation(c *gin.Context) (*models.Donation, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation id"})
		return nil, false
	}

	found, err := h.Donations.FindByID(context.Background(), id)
	if err != nil {
		if err == store.ErrDonationNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donation"})
		}
		return nil, false
	}
	return found, true
}

// UpdateStatus is the main transition endpoint. On reaching COMPLETED the
// completion email is dispatched in the background; a mail failure never
// fails the transition.
func (h *StatusHandler) UpdateStatus(c *gin.Context) {
	found, ok := h.findDonation(c)
	if !ok {
		return
	}

	var req donation.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Engine.ApplyTransition(found, req)
	if err != nil {
		h.transitionError(c, err)
		return
	}

	if err := h.Donations.Update(context.Background(), found); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save donation"})
		return
	}

	h.pushStatusEvent(found)

	if result.Completed {
		notifyCopy := *found
		go h.Dispatcher.NotifyCompletion(&notifyCopy)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"donation": found,
		"message":  result.Message,
	})
}

// SchedulePickup forces the donation to SCHEDULED with pickup details.
func (h *StatusHandler) SchedulePickup(c *gin.Context) {
	found, ok := h.findDonation(c)
	if !ok {
		return
	}

	var req donation.SchedulePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Engine.SchedulePickup(found, req)
	if err != nil {
		h.transitionError(c, err)
		return
	}

	if err := h.Donations.Update(context.Background(), found); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save donation"})
		return
	}

	h.pushStatusEvent(found)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"donation": found,
		"message":  result.Message,
	})
}

// UploadProofPhoto stores a proof photo on S3 and records the pointer on
// the donation.
func (h *StatusHandler) UploadProofPhoto(c *gin.Context) {
	if h.S3Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo storage is not configured"})
		return
	}

	found, ok := h.findDonation(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	photoID := uuid.New().String()
	objectKey := fmt.Sprintf("donations/%s/proof-%s%s", found.ID.Hex(), photoID[:8], filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.S3Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo", "details": err.Error()})
		return
	}

	found.ProofPhoto = &models.MediaPointer{
		ID:       photoID,
		URL:      url,
		FileName: fileHeader.Filename,
		FileType: contentType,
	}

	if err := h.Donations.Update(context.Background(), found); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save donation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"proofPhoto": found.ProofPhoto,
	})
}

// transitionError maps engine errors to API responses.
func (h *StatusHandler) transitionError(c *gin.Context, err error) {
	var invalidStatus *models.InvalidStatusError
	var backward *donation.BackwardTransitionError
	var invalidTimestamp *donation.InvalidTimestampError

	switch {
	case errors.As(err, &invalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status: " + invalidStatus.Value})
	case errors.As(err, &backward):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot move status backwards", "details": err.Error()})
	case errors.As(err, &invalidTimestamp):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timestamp", "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// statusEvent is the payload pushed to connected clients on a status change.
type statusEvent struct {
	Event         string        `json:"event"`
	DonationID    string        `json:"donationID"`
	Status        models.Status `json:"status"`
	StatusMessage string        `json:"statusMessage"`
}

// pushStatusEvent notifies connected clients about a status change, best
// effort.
func (h *StatusHandler) pushStatusEvent(d *models.Donation) {
	if h.Hub == nil {
		return
	}

	eventJSON, err := json.Marshal(statusEvent{
		Event:         "donation_status_updated",
		DonationID:    d.ID.Hex(),
		Status:        d.Status,
		StatusMessage: d.StatusMessage,
	})
	if err != nil {
		log.Printf("Failed to marshal status event for donation %s: %v", d.ID.Hex(), err)
		return
	}

	if d.Donor != nil {
		h.Hub.Send(d.Donor.ID.Hex(), eventJSON)
	}
	if d.Ngo != nil {
		h.Hub.Send(d.Ngo.ID.Hex(), eventJSON)
	}
}
