package handlers

import (
	"mime/multipart"
	"strconv"

	"property-listing-portal/internal/models"
)

// The admin frontend submits nested groups in bracket notation
// (location[street], propertyDetails[bedrooms], contactInfo[contactName]).
// A group counts as present when any of its keys appears; present groups are
// applied atomically.

var (
	locationKeys = []string{"street", "city", "state", "country", "zipCode"}
	detailKeys   = []string{"bedrooms", "bathrooms", "squareArea", "parkingSpaces",
		"direction", "furnishingStatus", "possessionStatus", "yearBuilt"}
	contactKeys = []string{"contactName", "phoneNumber", "emailAddress"}
)

func formValue(form *multipart.Form, key string) (string, bool) {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func groupPresent(form *multipart.Form, group string, keys []string) bool {
	for _, k := range keys {
		if _, ok := formValue(form, group+"["+k+"]"); ok {
			return true
		}
	}
	return false
}

func parseLocation(form *multipart.Form) (models.Location, bool) {
	if !groupPresent(form, "location", locationKeys) {
		return models.Location{}, false
	}
	get := func(k string) string {
		v, _ := formValue(form, "location["+k+"]")
		return v
	}
	return models.Location{
		Street:  get("street"),
		City:    get("city"),
		State:   get("state"),
		Country: get("country"),
		ZipCode: get("zipCode"),
	}, true
}

func parseDetails(form *multipart.Form) (models.Details, bool) {
	if !groupPresent(form, "propertyDetails", detailKeys) {
		return models.Details{}, false
	}
	get := func(k string) string {
		v, _ := formValue(form, "propertyDetails["+k+"]")
		return v
	}
	atoi := func(k string) int {
		n, _ := strconv.Atoi(get(k))
		return n
	}
	area, _ := strconv.ParseFloat(get("squareArea"), 64)
	return models.Details{
		Bedrooms:         atoi("bedrooms"),
		Bathrooms:        atoi("bathrooms"),
		SquareArea:       area,
		ParkingSpaces:    get("parkingSpaces"),
		Direction:        get("direction"),
		FurnishingStatus: get("furnishingStatus"),
		PossessionStatus: get("possessionStatus"),
		YearBuilt:        atoi("yearBuilt"),
	}, true
}

func parseContactInfo(form *multipart.Form) (models.ContactInfo, bool) {
	if !groupPresent(form, "contactInfo", contactKeys) {
		return models.ContactInfo{}, false
	}
	get := func(k string) string {
		v, _ := formValue(form, "contactInfo["+k+"]")
		return v
	}
	return models.ContactInfo{
		ContactName:  get("contactName"),
		PhoneNumber:  get("phoneNumber"),
		EmailAddress: get("emailAddress"),
	}, true
}
