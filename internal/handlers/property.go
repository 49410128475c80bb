package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"property-listing-portal/internal/database"
	"property-listing-portal/internal/images"
	"property-listing-portal/internal/merge"
	"property-listing-portal/internal/models"

	"github.com/gin-gonic/gin"
)

// PropertyStore is the persistence surface the handlers depend on,
// implemented by database.GormDB.
type PropertyStore interface {
	CreateProperty(p *models.Property) error
	GetProperties(filters database.PropertyFilters) (*database.PaginatedResult, error)
	GetPropertyByID(id string) (*models.Property, error)
	UpdateProperty(p *models.Property) error
	DeleteProperty(id string) error
}

// PropertyHandler handles property CRUD requests
type PropertyHandler struct {
	store PropertyStore
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(store PropertyStore) *PropertyHandler {
	return &PropertyHandler{store: store}
}

// List returns one page of properties, filtered by property type and city.
// Page and limit default to 1 and 10 when unset or non-numeric.
func (h *PropertyHandler) List(c *gin.Context) {
	filters := database.PropertyFilters{
		PropertyType: c.Query("propertyType"),
		City:         c.Query("location.city"),
	}
	if filters.City == "" {
		filters.City = c.Query("city")
	}
	filters.Page, _ = strconv.Atoi(c.Query("page"))
	filters.PageSize, _ = strconv.Atoi(c.Query("limit"))

	result, err := h.store.GetProperties(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching properties", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns a single property by id.
func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.store.GetPropertyByID(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching property", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, property)
}

// Create ingests the multipart payload and persists a new property. At least
// one image (home image or gallery) is required; the rejection happens before
// any store write.
func (h *PropertyHandler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	altHint, _ := formValue(form, "alt")
	imageSet, err := images.BuildSet(singleFile(form, "homeImage"), form.File["images"], altHint)
	if errors.Is(err, images.ErrNoImages) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "At least one image is required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	property := propertyFromForm(form)
	property.Images = imageSet

	if err := h.store.CreateProperty(property); err != nil {
		h.writeError(c, err, "Failed to create property")
		return
	}

	log.Printf("Property created: id=%s images=%d", property.ID, len(property.Images))

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Property created successfully",
		"property": createSummary(property),
	})
}

// Update loads the existing record, applies the merge rules to the partial
// multipart payload, and writes the full next state.
func (h *PropertyHandler) Update(c *gin.Context) {
	id := c.Param("id")
	existing, err := h.store.GetPropertyByID(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching property", "error": err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	req, err := updateRequestFromForm(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	next := merge.Apply(existing, req)
	if err := h.store.UpdateProperty(&next); err != nil {
		h.writeError(c, err, "Failed to update property")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Property updated successfully",
		"property": next,
	})
}

// Delete removes a property and its embedded images.
func (h *PropertyHandler) Delete(c *gin.Context) {
	err := h.store.DeleteProperty(c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Property not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Property deleted successfully"})
}

func (h *PropertyHandler) writeError(c *gin.Context, err error, fallback string) {
	var verr *database.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": verr.Message})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Property not found"})
	default:
		log.Printf("Store error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": fallback})
	}
}

// propertyFromForm builds a new property from the creation payload. Absent
// or malformed fields come out as zero values; the store's validation pass
// decides whether the record is acceptable.
func propertyFromForm(form *multipart.Form) *models.Property {
	p := &models.Property{}
	if v, ok := formValue(form, "title"); ok {
		p.Title = v
	}
	if v, ok := formValue(form, "price"); ok {
		p.Price, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := formValue(form, "propertyType"); ok {
		p.PropertyType = v
	}
	if v, ok := formValue(form, "googleMap"); ok {
		p.MapLink = v
	}
	if loc, ok := parseLocation(form); ok {
		p.Location = loc
	}
	if det, ok := parseDetails(form); ok {
		p.Details = det
	}
	if ci, ok := parseContactInfo(form); ok {
		p.ContactInfo = ci
	}
	return p
}

// updateRequestFromForm translates the multipart update payload into the
// explicit partial-update structure consumed by the merge logic.
func updateRequestFromForm(form *multipart.Form) (*merge.UpdateRequest, error) {
	req := &merge.UpdateRequest{}

	if v, ok := formValue(form, "title"); ok {
		req.Title = &v
	}
	if v, ok := formValue(form, "price"); ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("price must be a number")
		}
		req.Price = &price
	}
	if v, ok := formValue(form, "propertyType"); ok {
		req.PropertyType = &v
	}
	if v, ok := formValue(form, "googleMap"); ok {
		req.MapLink = &v
	}
	if loc, ok := parseLocation(form); ok {
		req.Location = &loc
	}
	if det, ok := parseDetails(form); ok {
		req.Details = &det
	}
	if ci, ok := parseContactInfo(form); ok {
		req.ContactInfo = &ci
	}

	altHint, _ := formValue(form, "alt")
	if gallery := form.File["images"]; len(gallery) > 0 {
		newImages, err := images.FromFileHeaders(gallery, altHint)
		if err != nil {
			return nil, err
		}
		req.NewImages = newImages
	}
	if home := singleFile(form, "homeImage"); home != nil {
		alt := altHint
		if alt == "" {
			alt = "Home Image"
		}
		cover, err := images.FromFileHeader(home, alt, true)
		if err != nil {
			return nil, err
		}
		req.NewHomeImage = &cover
	}

	if v, ok := formValue(form, "replaceImages"); ok {
		req.ReplaceImages = v == "true"
	}
	if ids, ok := form.Value["existingImages"]; ok {
		req.ExistingImageIDs = ids
	}
	if _, ok := formValue(form, "existingHomeImage"); ok {
		req.KeepHomeImage = true
	}
	if v, ok := formValue(form, "primaryImageId"); ok {
		req.PrimaryImageID = v
	}

	return req, nil
}

func singleFile(form *multipart.Form, key string) *multipart.FileHeader {
	files := form.File[key]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// createSummary is the trimmed creation response: image metadata without the
// base64 payloads.
func createSummary(p *models.Property) gin.H {
	imgs := make([]gin.H, 0, len(p.Images))
	for _, img := range p.Images {
		imgs = append(imgs, gin.H{
			"_id":       img.ID,
			"isPrimary": img.IsPrimary,
			"filename":  img.Filename,
		})
	}
	return gin.H{
		"_id":    p.ID,
		"title":  p.Title,
		"images": imgs,
	}
}
