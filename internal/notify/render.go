package notify

import (
	"fmt"
	"strings"

	"food-donation-api-server/internal/models"
)

const divider = "======================================================="

// renderCompletion builds the plain-text completion email body.
func renderCompletion(d *models.Donation) string {
	donorName := "Valued Donor"
	if d.Donor != nil && d.Donor.Name != "" {
		donorName = d.Donor.Name
	}

	ngoName := "Our Organization"
	if d.Ngo != nil && d.Ngo.NgoName != "" {
		ngoName = d.Ngo.NgoName
	}

	quantity := d.Quantity
	if quantity == "" {
		quantity = "N/A"
	}

	completedDate := "Recently"
	if d.CompletedAt != nil {
		completedDate = d.CompletedAt.Format(completedDateLayout)
	}

	attachmentNote := ""
	if d.ProofImage != nil && d.ProofImage.Base64 != "" {
		attachmentNote = "Please find attached proof image of the donation impact.\n\n"
	}

	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"We are delighted to inform you that your generous donation has been successfully completed!\n\n"+
			"%s\n"+
			"                    DONATION DETAILS\n"+
			"%s\n\n"+
			"Status: COMPLETED\n"+
			"Donation Type: %s\n"+
			"Item: %s\n"+
			"Quantity: %s\n"+
			"NGO: %s\n"+
			"Completed On: %s\n\n"+
			"%s\n"+
			"%s"+
			"%s\n\n"+
			"Your contribution has made a real difference in the lives of those who need it most. "+
			"Thank you for your compassion and generosity!\n\n"+
			"%s\n\n"+
			"If you have any questions or would like to know more about the impact of your donation, "+
			"please feel free to reach out to us.\n\n"+
			"With heartfelt gratitude,\n"+
			"The Food Donation Team\n\n"+
			"This is an automated notification. Please do not reply to this email.",
		donorName,
		divider,
		divider,
		d.DonationType,
		itemDescription(d),
		quantity,
		ngoName,
		completedDate,
		impactMessage(d),
		attachmentNote,
		divider,
		thankYouMessage(d.DonationType),
	)
}

// renderReceipt builds the creation-time receipt for money donations.
func renderReceipt(d *models.Donation) string {
	donorName := "Valued Donor"
	if d.Donor != nil && d.Donor.Name != "" {
		donorName = d.Donor.Name
	}

	ngoName := "our organization"
	if d.Ngo != nil && d.Ngo.NgoName != "" {
		ngoName = d.Ngo.NgoName
	}

	date := ""
	if d.CompletedAt != nil {
		date = d.CompletedAt.Format(completedDateLayout)
	}

	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for your generous donation of ₹%s.\n"+
			"Your support helps us serve the community better.\n\n"+
			"Donation Details:\n"+
			"Amount: ₹%s\n"+
			"NGO: %s\n"+
			"Status: COMPLETED\n"+
			"Date: %s\n\n"+
			"Your donation has been immediately processed and recorded.\n"+
			"This contribution will directly help those in need.\n\n"+
			"Thank you for making a difference!\n\n"+
			"With gratitude,\n"+
			"Food Donation Team",
		donorName,
		d.Amount,
		d.Amount,
		ngoName,
		date,
	)
}

// itemDescription derives a human-readable line for what was donated, in
// priority order: food, clothes, generic item, money amount, fallback.
func itemDescription(d *models.Donation) string {
	switch {
	case d.FoodName != "":
		if d.MealType != "" {
			return d.FoodName + " (" + d.MealType + ")"
		}
		return d.FoodName
	case d.ClothesType != "":
		return d.ClothesType
	case d.ItemName != "":
		return d.ItemName
	case d.DonationType == models.TypeMoney && d.Amount != "":
		return "₹" + d.Amount
	}
	return "Various Items"
}

// impactMessage renders the beneficiary count and impact story, with a
// generic line when neither is present.
func impactMessage(d *models.Donation) string {
	var impact strings.Builder

	if d.BeneficiariesCount != nil && *d.BeneficiariesCount > 0 {
		noun := "people"
		if *d.BeneficiariesCount == 1 {
			noun = "person"
		}
		fmt.Fprintf(&impact, "Your donation helped %d %s!\n", *d.BeneficiariesCount, noun)
	}

	if strings.TrimSpace(d.ImpactDescription) != "" {
		impact.WriteString("Impact Story: " + d.ImpactDescription + "\n")
	}

	if impact.Len() == 0 {
		impact.WriteString("Your donation has reached those in need and made a positive impact!\n")
	}

	return impact.String()
}

// thankYouMessage picks the closing paragraph for the donation type.
func thankYouMessage(donationType string) string {
	switch donationType {
	case models.TypeFood:
		return "Your food donation has helped feed hungry families and individuals. " +
			"Every meal matters, and your contribution is deeply appreciated."
	case models.TypeClothes:
		return "Your clothing donation has provided warmth and dignity to those in need. " +
			"Thank you for helping us clothe the community."
	case models.TypeEssentials:
		return "Your donation of essential items has made daily life easier for those facing hardship. " +
			"These necessities make a real difference."
	case models.TypeMoney:
		return "Your financial contribution enables us to address the most urgent needs " +
			"and support our ongoing programs. Thank you for your trust and generosity."
	}
	return "Your generous donation is making a meaningful difference in our community. " +
		"Thank you for your support!"
}
