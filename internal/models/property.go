package models

import "time"

// Property is the root listing entity. Nested groups (location, details,
// contact) are embedded structs flattened into the properties table; images
// live in their own table and are loaded as an association.
type Property struct {
	ID           string  `gorm:"type:varchar(36);primaryKey" json:"_id"`
	Title        string  `gorm:"type:text" json:"title"`
	Price        float64 `gorm:"type:decimal(14,2);not null" json:"price" validate:"gte=0"`
	PropertyType string  `gorm:"type:varchar(50);not null;index" json:"propertyType" validate:"required"`
	MapLink      string  `gorm:"type:text;not null" json:"googleMap" validate:"required"`

	Location    Location    `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Details     Details     `gorm:"embedded;embeddedPrefix:details_" json:"propertyDetails"`
	ContactInfo ContactInfo `gorm:"embedded;embeddedPrefix:contact_" json:"contactInfo"`

	Images []PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"images"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_created_at,sort:desc" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// Location is the postal address of a property.
type Location struct {
	Street  string `gorm:"type:text;not null" json:"street" validate:"required"`
	City    string `gorm:"type:varchar(100);not null;index" json:"city" validate:"required"`
	State   string `gorm:"type:varchar(100);not null" json:"state" validate:"required"`
	Country string `gorm:"type:varchar(100);not null" json:"country" validate:"required"`
	ZipCode string `gorm:"type:varchar(20);not null" json:"zipCode" validate:"required"`
}

// Details holds the structural attributes of a property.
type Details struct {
	Bedrooms         int     `gorm:"not null" json:"bedrooms" validate:"gte=0"`
	Bathrooms        int     `gorm:"not null" json:"bathrooms" validate:"gte=0"`
	SquareArea       float64 `gorm:"not null" json:"squareArea" validate:"gte=0"`
	ParkingSpaces    string  `gorm:"type:varchar(50);not null" json:"parkingSpaces" validate:"required"`
	Direction        string  `gorm:"type:varchar(100);not null" json:"direction" validate:"required"`
	FurnishingStatus string  `gorm:"type:varchar(50);not null" json:"furnishingStatus" validate:"required"`
	PossessionStatus string  `gorm:"type:varchar(50);not null" json:"possessionStatus" validate:"required"`
	YearBuilt        int     `gorm:"not null" json:"yearBuilt" validate:"gte=0"`
}

// ContactInfo is the listing contact.
type ContactInfo struct {
	ContactName  string `gorm:"type:varchar(200);not null" json:"contactName" validate:"required"`
	PhoneNumber  string `gorm:"type:varchar(50);not null" json:"phoneNumber" validate:"required"`
	EmailAddress string `gorm:"type:varchar(200);not null" json:"emailAddress" validate:"required"`
}

// TableName specifies the table name for Property
func (Property) TableName() string {
	return "properties"
}

// CoverImage returns the image designated for list-view display: the first
// primary-flagged image, falling back to the first image in display order.
func (p *Property) CoverImage() *PropertyImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}
