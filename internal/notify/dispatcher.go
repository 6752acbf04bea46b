// Package notify renders and dispatches donor email notifications. Every
// send is best effort: failures are logged and never propagated to the
// status transition that triggered them.
package notify

import (
	"context"
	"encoding/base64"
	"log"
	"strings"
	"time"

	"food-donation-api-server/internal/mailer"
	"food-donation-api-server/internal/models"
)

const completedDateLayout = "Jan 02, 2006 at 03:04 PM"

// DefaultSendTimeout bounds a single mail-transport call.
const DefaultSendTimeout = 10 * time.Second

type Dispatcher struct {
	Mail    mailer.Transport
	Timeout time.Duration
}

func NewDispatcher(mail mailer.Transport, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	return &Dispatcher{Mail: mail, Timeout: timeout}
}

// NotifyCompletion emails the donor that their donation reached its
// terminal status. Donations without a usable donor email are skipped
// silently. Callers usually run this in a goroutine.
func (dp *Dispatcher) NotifyCompletion(d *models.Donation) {
	if d.Donor == nil || strings.TrimSpace(d.Donor.Email) == "" {
		log.Printf("notify: skipping completion email for donation %s, donor email not available", d.ID.Hex())
		return
	}

	subject := "Your Donation Has Been Completed!"
	body := renderCompletion(d)

	ctx, cancel := context.WithTimeout(context.Background(), dp.Timeout)
	defer cancel()

	if d.ProofImage != nil && d.ProofImage.Base64 != "" {
		attachment, err := decodeProofImage(d.ProofImage.Base64)
		if err != nil {
			// Bad transport encoding degrades to a plain-text send.
			log.Printf("notify: failed to decode proof image for donation %s: %v", d.ID.Hex(), err)
		} else {
			err = dp.Mail.SendWithAttachment(ctx, d.Donor.Email, subject, body, attachment, d.ProofImage.Name, d.ProofImage.Type)
			if err == nil {
				return
			}
			log.Printf("notify: failed to send completion email with attachment to %s: %v", d.Donor.Email, err)
		}
	}

	if err := dp.Mail.Send(ctx, d.Donor.Email, subject, body); err != nil {
		log.Printf("notify: failed to send completion email to %s: %v", d.Donor.Email, err)
	}
}

// NotifyReceipt emails a simple receipt for a money donation that was
// auto-completed at creation time. No attachment support.
func (dp *Dispatcher) NotifyReceipt(d *models.Donation) {
	if d.Donor == nil || strings.TrimSpace(d.Donor.Email) == "" {
		log.Printf("notify: skipping receipt email for donation %s, donor email not available", d.ID.Hex())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dp.Timeout)
	defer cancel()

	subject := "Donation Receipt - Thank You!"
	if err := dp.Mail.Send(ctx, d.Donor.Email, subject, renderReceipt(d)); err != nil {
		log.Printf("notify: failed to send receipt email to %s: %v", d.Donor.Email, err)
	}
}

// decodeProofImage decodes a base64 payload, stripping a data-URL prefix
// ("data:image/png;base64,...") when one is present.
func decodeProofImage(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 {
		encoded = encoded[idx+1:]
	}
	return base64.StdEncoding.DecodeString(encoded)
}
