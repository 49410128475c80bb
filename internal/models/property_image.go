package models

import "time"

// PropertyImage represents an image embedded in a property listing. The
// binary content is kept base64-encoded in the data column so responses can
// be rendered client-side as data URIs without a separate binary endpoint.
type PropertyImage struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"_id"`
	PropertyID  string    `gorm:"type:varchar(36);not null;index" json:"-"`
	Data        string    `gorm:"type:longtext;not null" json:"data"`
	ContentType string    `gorm:"type:varchar(100);not null" json:"contentType"`
	Filename    string    `gorm:"type:varchar(255);not null" json:"filename"`
	Size        int64     `json:"size,omitempty"`
	Alt         string    `gorm:"type:text" json:"alt,omitempty"`
	IsPrimary   bool      `gorm:"not null;default:false" json:"isPrimary"`
	SortOrder   int       `gorm:"not null;default:0;index" json:"-"`
	UploadDate  time.Time `gorm:"not null" json:"uploadDate"`
}

// TableName specifies the table name for PropertyImage
func (PropertyImage) TableName() string {
	return "property_images"
}
