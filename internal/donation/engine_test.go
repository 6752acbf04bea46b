package donation

import (
	"errors"
	"testing"
	"time"

	"food-donation-api-server/internal/models"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return &Engine{Now: func() time.Time { return testNow }}
}

func pendingDonation() *models.Donation {
	return &models.Donation{
		DonationType: models.TypeFood,
		FoodName:     "Rice",
		Status:       models.StatusPending,
	}
}

func TestApplyTransition_ForwardAndBackwardPairs(t *testing.T) {
	all := models.AllStatuses()
	for i, from := range all {
		for j, to := range all {
			d := pendingDonation()
			d.Status = from

			_, err := newTestEngine().ApplyTransition(d, UpdateStatusRequest{Status: string(to)})

			if j >= i {
				if err != nil {
					t.Errorf("transition %s -> %s: unexpected error %v", from, to, err)
				}
				if d.Status != to {
					t.Errorf("transition %s -> %s: status = %s", from, to, d.Status)
				}
			} else {
				if err == nil {
					t.Errorf("transition %s -> %s: expected rejection", from, to)
				}
				var backward *BackwardTransitionError
				if !errors.As(err, &backward) {
					t.Errorf("transition %s -> %s: error type = %T", from, to, err)
				}
				if d.Status != from {
					t.Errorf("transition %s -> %s: status mutated to %s on rejection", from, to, d.Status)
				}
			}
		}
	}
}

func TestApplyTransition_FirstTransitionOnBrandNewDonation(t *testing.T) {
	// A donation with no status yet accepts any target, even late ones.
	for _, to := range models.AllStatuses() {
		d := &models.Donation{DonationType: models.TypeFood}

		result, err := newTestEngine().ApplyTransition(d, UpdateStatusRequest{Status: string(to)})
		if err != nil {
			t.Errorf("first transition to %s: unexpected error %v", to, err)
			continue
		}
		if result.Donation.Status != to {
			t.Errorf("first transition to %s: status = %s", to, result.Donation.Status)
		}
	}
}

func TestApplyTransition_Confirmed(t *testing.T) {
	d := pendingDonation()

	result, err := newTestEngine().ApplyTransition(d, UpdateStatusRequest{Status: "CONFIRMED"})
	if err != nil {
		t.Fatalf("ApplyTransition failed: %v", err)
	}

	if d.ConfirmedAt == nil || !d.ConfirmedAt.Equal(testNow) {
		t.Errorf("ConfirmedAt = %v, want %v", d.ConfirmedAt, testNow)
	}
	if d.StatusMessage != "Donation confirmed. NGO will contact you soon." {
		t.Errorf("StatusMessage = %q", d.StatusMessage)
	}
	if result.Message != "Status updated to Confirmed" {
		t.Errorf("Message = %q", result.Message)
	}
	if result.Completed {
		t.Error("Completed = true for CONFIRMED")
	}

	// No other lifecycle timestamp may be touched.
	for name, ts := range map[string]*time.Time{
		"ScheduledAt": d.ScheduledAt,
		"PickedUpAt":  d.PickedUpAt,
		"InTransitAt": d.InTransitAt,
		"DeliveredAt": d.DeliveredAt,
		"CompletedAt": d.CompletedAt,
	} {
		if ts != nil {
			t.Errorf("%s = %v, want nil", name, ts)
		}
	}
}

func TestApplyTransition_ScheduledConsumesPayload(t *testing.T) {
	d := pendingDonation()
	d.Status = models.StatusConfirmed

	req := UpdateStatusRequest{
		Status:              "scheduled",
		PickupScheduledDate: "2024-06-20T09:00:00Z",
		SpecialInstructions: "Ring the bell twice",
	}
	_, err := newTestEngine().ApplyTransition(d, req)
	if err != nil {
		t.Fatalf("ApplyTransition failed: %v", err)
	}

	if d.ScheduledAt == nil || !d.ScheduledAt.Equal(testNow) {
		t.Errorf("ScheduledAt = %v, want %v", d.ScheduledAt, testNow)
	}
	want := time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)
	if d.PickupScheduledDate == nil || !d.PickupScheduledDate.Equal(want) {
		t.Errorf("PickupScheduledDate = %v, want %v", d.PickupScheduledDate, want)
	}
	if d.SpecialInstructions != "Ring the bell twice" {
		t.Errorf("SpecialInstructions = %q", d.SpecialInstructions)
	}
	if d.StatusMessage != "Pickup scheduled successfully." {
		t.Errorf("StatusMessage = %q", d.StatusMessage)
	}
}

func TestApplyTransition_ScheduledRejectsBadTimestamp(t *testing.T) {
	d := pendingDonation()

	_, err := newTestEngine().ApplyTransition(d, UpdateStatusRequest{
		Status:              "SCHEDULED",
		PickupScheduledDate: "next tuesday",
	})

	var invalidTimestamp *InvalidTimestampError
	if !errors.As(err, &invalidTimestamp) {
		t.Fatalf("error = %v, want InvalidTimestampError", err)
	}
	// Validation failed before any mutation.
	if d.Status != models.StatusPending || d.ScheduledAt != nil {
		t.Errorf("donation mutated on invalid timestamp: status=%s scheduledAt=%v", d.Status, d.ScheduledAt)
	}
}

func TestApplyTransition_DeliveredRecordsBeneficiaries(t *testing.T) {
	d := pendingDonation()
	count := 42

	_, err := newTestEngine().ApplyTransition(d, UpdateStatusRequest{
		Status:             "DELIVERED",
		BeneficiariesCount: &count,
		ImpactDescription:  "Fed two shelters for a week",
	})
	if err != nil {
		t.Fatalf("ApplyTransition failed: %v", err)
	}

	if d.DeliveredAt == nil || !d.DeliveredAt.Equal(testNow) {
		t.Errorf("DeliveredAt = %v, want %v", d.DeliveredAt, testNow)
	}
	if d.BeneficiariesCount == nil || *d.BeneficiariesCount != 42 {
		t.Errorf("BeneficiariesCount = %v, want 42", d.BeneficiariesCount)
	}
	if d.ImpactDescription != "Fed two shelters for a week" {
		t.Errorf("ImpactDescription = %q", d.ImpactDescription)
	}
	if d.StatusMessage != "Donation delivered to beneficiaries." {
		t.Errorf("StatusMessage = %q", d.StatusMessage)
	}
}

func TestApplyTransition_CompletedSignalsNotificationAndStoresProof(t *testing.T) {
	d := pendingDonation()
	d.Status = models.StatusDelivered
	count := 10

	result, err := newTestEngine().ApplyTransition(d, UpdateStatusRequest{
		Status:             "COMPLETED",
		BeneficiariesCount: &count,
		ImpactDescription:  "Supplies reached the night shelter",
		ProofImageBase64:   "aGVsbG8=",
		ProofImageName:     "proof.png",
		ProofImageType:     "image/png",
	})
	if err != nil {
		t.Fatalf("ApplyTransition failed: %v", err)
	}

	if !result.Completed {
		t.Error("Completed = false, want true")
	}
	if result.Message != "Status updated to Completed" {
		t.Errorf("Message = %q", result.Message)
	}
	if d.CompletedAt == nil || !d.CompletedAt.Equal(testNow) {
		t.Errorf("CompletedAt = %v, want %v", d.CompletedAt, testNow)
	}
	if d.ProofImage == nil || d.ProofImage.Name != "proof.png" || d.ProofImage.Type != "image/png" {
		t.Errorf("ProofImage = %+v", d.ProofImage)
	}
	if d.ImpactDescription != "Supplies reached the night shelter" {
		t.Errorf("ImpactDescription = %q", d.ImpactDescription)
	}
}

func TestApplyTransition_InvalidStatusLeavesDonationUnmutated(t *testing.T) {
	d := pendingDonation()
	before := *d

	_, err := newTestEngine().ApplyTransition(d, UpdateStatusRequest{Status: "FOOBAR"})

	var invalidStatus *models.InvalidStatusError
	if !errors.As(err, &invalidStatus) {
		t.Fatalf("error = %v, want InvalidStatusError", err)
	}
	if *d != before {
		t.Errorf("donation mutated on invalid status: %+v", d)
	}
}

func TestApplyTransition_Overrides(t *testing.T) {
	d := pendingDonation()

	_, err := newTestEngine().ApplyTransition(d, UpdateStatusRequest{
		Status:        "CONFIRMED",
		NgoNotes:      "Will collect in the morning",
		UpdatedBy:     "ngo-staff-1",
		StatusMessage: "Custom confirmation text",
	})
	if err != nil {
		t.Fatalf("ApplyTransition failed: %v", err)
	}

	if d.NgoNotes != "Will collect in the morning" {
		t.Errorf("NgoNotes = %q", d.NgoNotes)
	}
	if d.UpdatedBy != "ngo-staff-1" {
		t.Errorf("UpdatedBy = %q", d.UpdatedBy)
	}
	if d.StatusMessage != "Custom confirmation text" {
		t.Errorf("StatusMessage = %q, custom override lost", d.StatusMessage)
	}
}

func TestApplyTransition_BlankOverridesIgnored(t *testing.T) {
	d := pendingDonation()

	_, err := newTestEngine().ApplyTransition(d, UpdateStatusRequest{
		Status:        "CONFIRMED",
		NgoNotes:      "   ",
		StatusMessage: "  ",
	})
	if err != nil {
		t.Fatalf("ApplyTransition failed: %v", err)
	}

	if d.NgoNotes != "" {
		t.Errorf("NgoNotes = %q, blank override applied", d.NgoNotes)
	}
	if d.StatusMessage != "Donation confirmed. NGO will contact you soon." {
		t.Errorf("StatusMessage = %q, default lost to blank override", d.StatusMessage)
	}
}

// Re-applying the current status is allowed and re-runs the side effects,
// overwriting the status timestamp. This mirrors the behavior of the
// system this replaces; the ordering rule only rejects strictly backward
// moves.
func TestApplyTransition_SameStatusReappliesSideEffects(t *testing.T) {
	d := pendingDonation()

	engine := newTestEngine()
	if _, err := engine.ApplyTransition(d, UpdateStatusRequest{Status: "CONFIRMED"}); err != nil {
		t.Fatalf("first ApplyTransition failed: %v", err)
	}

	later := testNow.Add(2 * time.Hour)
	engine.Now = func() time.Time { return later }

	if _, err := engine.ApplyTransition(d, UpdateStatusRequest{Status: "CONFIRMED"}); err != nil {
		t.Fatalf("same-status ApplyTransition failed: %v", err)
	}
	if d.ConfirmedAt == nil || !d.ConfirmedAt.Equal(later) {
		t.Errorf("ConfirmedAt = %v, want overwritten to %v", d.ConfirmedAt, later)
	}
}

func TestSchedulePickup(t *testing.T) {
	d := pendingDonation()
	// Forced even from a later status; this entry point skips the
	// ordering check on purpose.
	d.Status = models.StatusDelivered

	result, err := newTestEngine().SchedulePickup(d, SchedulePickupRequest{
		PickupDate:          "2024-06-21T14:00:00Z",
		PickupAddress:       "12 Charity Lane",
		SpecialInstructions: "Call on arrival",
		NgoNotes:            "Truck #3",
	})
	if err != nil {
		t.Fatalf("SchedulePickup failed: %v", err)
	}

	if d.Status != models.StatusScheduled {
		t.Errorf("Status = %s, want SCHEDULED", d.Status)
	}
	if d.ScheduledAt == nil || !d.ScheduledAt.Equal(testNow) {
		t.Errorf("ScheduledAt = %v, want %v", d.ScheduledAt, testNow)
	}
	want := time.Date(2024, 6, 21, 14, 0, 0, 0, time.UTC)
	if d.PickupScheduledDate == nil || !d.PickupScheduledDate.Equal(want) {
		t.Errorf("PickupScheduledDate = %v, want %v", d.PickupScheduledDate, want)
	}
	if d.PickupAddress != "12 Charity Lane" {
		t.Errorf("PickupAddress = %q", d.PickupAddress)
	}
	if d.UpdatedBy != UpdatedByNgo {
		t.Errorf("UpdatedBy = %q, want %q", d.UpdatedBy, UpdatedByNgo)
	}
	if d.StatusMessage != "Pickup scheduled for Jun 21, 2024 at 02:00 PM" {
		t.Errorf("StatusMessage = %q", d.StatusMessage)
	}
	if result.Message != "Pickup scheduled successfully" {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestSchedulePickup_InvalidDate(t *testing.T) {
	d := pendingDonation()

	_, err := newTestEngine().SchedulePickup(d, SchedulePickupRequest{PickupDate: "not-a-date"})

	var invalidTimestamp *InvalidTimestampError
	if !errors.As(err, &invalidTimestamp) {
		t.Fatalf("error = %v, want InvalidTimestampError", err)
	}
	if d.Status != models.StatusPending {
		t.Errorf("Status = %s, mutated on invalid date", d.Status)
	}
}

func TestPrepareNew_MoneyAutoCompletes(t *testing.T) {
	d := &models.Donation{
		DonationType: " money ",
		Amount:       "500",
	}

	sendReceipt := newTestEngine().PrepareNew(d)

	if !sendReceipt {
		t.Error("sendReceipt = false, want true for MONEY")
	}
	if d.DonationType != models.TypeMoney {
		t.Errorf("DonationType = %q, want normalized MONEY", d.DonationType)
	}
	if d.Status != models.StatusCompleted {
		t.Errorf("Status = %s, want COMPLETED", d.Status)
	}
	if d.Quantity != "500" {
		t.Errorf("Quantity = %q, want defaulted to amount", d.Quantity)
	}
	if d.UpdatedBy != UpdatedBySystem {
		t.Errorf("UpdatedBy = %q, want %q", d.UpdatedBy, UpdatedBySystem)
	}

	// All six lifecycle timestamps carry the same instant.
	for name, ts := range map[string]*time.Time{
		"ConfirmedAt": d.ConfirmedAt,
		"ScheduledAt": d.ScheduledAt,
		"PickedUpAt":  d.PickedUpAt,
		"InTransitAt": d.InTransitAt,
		"DeliveredAt": d.DeliveredAt,
		"CompletedAt": d.CompletedAt,
	} {
		if ts == nil || !ts.Equal(testNow) {
			t.Errorf("%s = %v, want %v", name, ts, testNow)
		}
	}
}

func TestPrepareNew_MoneyKeepsExplicitQuantity(t *testing.T) {
	d := &models.Donation{
		DonationType: "MONEY",
		Amount:       "500",
		Quantity:     "1",
	}

	newTestEngine().PrepareNew(d)

	if d.Quantity != "1" {
		t.Errorf("Quantity = %q, explicit value overwritten", d.Quantity)
	}
}

func TestPrepareNew_FoodDefaultsToPending(t *testing.T) {
	d := &models.Donation{
		DonationType: "FOOD",
		FoodName:     "Rice",
	}

	sendReceipt := newTestEngine().PrepareNew(d)

	if sendReceipt {
		t.Error("sendReceipt = true, want false for FOOD")
	}
	if d.Status != models.StatusPending {
		t.Errorf("Status = %s, want PENDING", d.Status)
	}
	if d.StatusMessage != "Donation added to cart. Waiting for confirmation." {
		t.Errorf("StatusMessage = %q", d.StatusMessage)
	}
	if d.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil", d.CompletedAt)
	}
}
