package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"property-listing-portal/internal/database"
	"property-listing-portal/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore is an in-memory PropertyStore with the same pagination and
// not-found semantics as the GORM-backed store.
type fakeStore struct {
	properties  map[string]*models.Property
	seq         int
	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{properties: make(map[string]*models.Property)}
}

func (s *fakeStore) CreateProperty(p *models.Property) error {
	s.createCalls++
	if len(p.Images) == 0 {
		return &database.ValidationError{Message: "at least one image is required"}
	}
	s.seq++
	if p.ID == "" {
		p.ID = fmt.Sprintf("prop-%d", s.seq)
	}
	p.CreatedAt = time.Now().Add(time.Duration(s.seq) * time.Second)
	for i := range p.Images {
		if p.Images[i].ID == "" {
			p.Images[i].ID = fmt.Sprintf("img-%d-%d", s.seq, i)
		}
	}
	clone := *p
	s.properties[p.ID] = &clone
	return nil
}

func (s *fakeStore) GetProperties(filters database.PropertyFilters) (*database.PaginatedResult, error) {
	var all []models.Property
	for _, p := range s.properties {
		if filters.PropertyType != "" && p.PropertyType != filters.PropertyType {
			continue
		}
		if filters.City != "" && p.Location.City != filters.City {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	page, pageSize := filters.Page, filters.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(all))
	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	pages := 0
	if total > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	return &database.PaginatedResult{
		Properties: all[start:end],
		Total:      total,
		Page:       page,
		Pages:      pages,
	}, nil
}

func (s *fakeStore) GetPropertyByID(id string) (*models.Property, error) {
	p, ok := s.properties[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *fakeStore) UpdateProperty(p *models.Property) error {
	s.updateCalls++
	if _, ok := s.properties[p.ID]; !ok {
		return database.ErrNotFound
	}
	clone := *p
	s.properties[p.ID] = &clone
	return nil
}

func (s *fakeStore) DeleteProperty(id string) error {
	s.deleteCalls++
	if _, ok := s.properties[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.properties, id)
	return nil
}

func newRouter(store *fakeStore) *gin.Engine {
	h := NewPropertyHandler(store)
	r := gin.New()
	r.GET("/properties", h.List)
	r.GET("/properties/:id", h.Get)
	r.POST("/properties", h.Create)
	r.PUT("/properties/:id", h.Update)
	r.DELETE("/properties/:id", h.Delete)
	return r
}

// multipartBody builds a multipart payload from form fields and named fake
// image files.
func multipartBody(t *testing.T, fields map[string][]string, files map[string][]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	for field, names := range files {
		for _, name := range names {
			part, err := w.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = part.Write([]byte("fake image bytes for " + name))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func validCreateFields() map[string][]string {
	return map[string][]string{
		"title":        {"Lakeside villa"},
		"price":        {"450000"},
		"propertyType": {"House"},
		"googleMap":    {"https://maps.example.com/lakeside"},

		"location[street]":  {"12 Shore Rd"},
		"location[city]":    {"Lakeview"},
		"location[state]":   {"LV"},
		"location[country]": {"Utopia"},
		"location[zipCode]": {"12345"},

		"propertyDetails[bedrooms]":         {"4"},
		"propertyDetails[bathrooms]":        {"3"},
		"propertyDetails[squareArea]":       {"280.5"},
		"propertyDetails[parkingSpaces]":    {"2"},
		"propertyDetails[direction]":        {"East"},
		"propertyDetails[furnishingStatus]": {"Furnished"},
		"propertyDetails[possessionStatus]": {"Ready to Move"},
		"propertyDetails[yearBuilt]":        {"2015"},

		"contactInfo[contactName]":  {"Pat Agent"},
		"contactInfo[phoneNumber]":  {"+1-555-0100"},
		"contactInfo[emailAddress]": {"pat@example.com"},
	}
}

func seedProperty(t *testing.T, store *fakeStore, imageIDs ...string) *models.Property {
	t.Helper()

	imgs := make([]models.PropertyImage, len(imageIDs))
	for i, id := range imageIDs {
		imgs[i] = models.PropertyImage{
			ID: id, Data: "ZGF0YQ==", ContentType: "image/jpeg",
			Filename: id + ".jpg", IsPrimary: i == 0,
		}
	}
	p := &models.Property{
		Title: "Seeded", Price: 100, PropertyType: "House",
		MapLink: "https://maps.example.com/x",
		Location: models.Location{
			Street: "1 St", City: "Town", State: "TS",
			Country: "C", ZipCode: "1",
		},
		Images: imgs,
	}
	require.NoError(t, store.CreateProperty(p))
	return p
}

func TestCreate_WithoutImagesRejectsBeforeStoreWrite(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)

	body, contentType := multipartBody(t, validCreateFields(), nil)
	req := httptest.NewRequest(http.MethodPost, "/properties", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, store.createCalls)
	assert.Contains(t, rec.Body.String(), "At least one image is required")
}

func TestCreate_HomeImageIsPrimary(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)

	body, contentType := multipartBody(t, validCreateFields(), map[string][]string{
		"homeImage": {"cover.jpg"},
		"images":    {"a.jpg", "b.jpg"},
	})
	req := httptest.NewRequest(http.MethodPost, "/properties", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Success  bool `json:"success"`
		Property struct {
			ID     string `json:"_id"`
			Title  string `json:"title"`
			Images []struct {
				ID        string `json:"_id"`
				IsPrimary bool   `json:"isPrimary"`
				Filename  string `json:"filename"`
			} `json:"images"`
		} `json:"property"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Lakeside villa", resp.Property.Title)
	require.Len(t, resp.Property.Images, 3)
	assert.Equal(t, "cover.jpg", resp.Property.Images[0].Filename)
	assert.True(t, resp.Property.Images[0].IsPrimary)
	assert.False(t, resp.Property.Images[1].IsPrimary)
	assert.False(t, resp.Property.Images[2].IsPrimary)
}

func TestCreate_FirstGalleryImagePrimaryWithoutHomeImage(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)

	body, contentType := multipartBody(t, validCreateFields(), map[string][]string{
		"images": {"a.jpg", "b.jpg"},
	})
	req := httptest.NewRequest(http.MethodPost, "/properties", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	stored := store.properties[firstKey(store)]
	primaries := 0
	for _, img := range stored.Images {
		if img.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
	assert.True(t, stored.Images[0].IsPrimary)
}

func firstKey(s *fakeStore) string {
	for k := range s.properties {
		return k
	}
	return ""
}

func TestList_PaginatesNewestFirst(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)

	for i := 0; i < 12; i++ {
		seedProperty(t, store, fmt.Sprintf("img-%d", i))
	}

	req := httptest.NewRequest(http.MethodGet, "/properties?page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Properties []models.Property `json:"properties"`
		Total      int64             `json:"total"`
		Page       int               `json:"page"`
		Pages      int               `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.Pages)
	require.Len(t, resp.Properties, 5)
	// Newest first: page 2 of 5 holds records 6 through 10.
	assert.Equal(t, "prop-7", resp.Properties[0].ID)
	assert.Equal(t, "prop-3", resp.Properties[4].ID)
}

func TestList_DefaultsOnNonNumericParams(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)
	seedProperty(t, store, "img-a")

	req := httptest.NewRequest(http.MethodGet, "/properties?page=abc&limit=xyz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Page  int `json:"page"`
		Pages int `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 1, resp.Pages)
}

func TestList_FiltersByTypeAndCity(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)

	house := seedProperty(t, store, "h1")
	condo := seedProperty(t, store, "c1")
	condo2 := store.properties[condo.ID]
	condo2.PropertyType = "Condo"
	condo2.Location.City = "Harbor"

	req := httptest.NewRequest(http.MethodGet, "/properties?propertyType=Condo&location.city=Harbor", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Properties []models.Property `json:"properties"`
		Total      int64             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Properties, 1)
	assert.NotEqual(t, house.ID, resp.Properties[0].ID)
}

func TestGet_NotFound(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/properties/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdate_NotFoundBeforeMerge(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)

	body, contentType := multipartBody(t, map[string][]string{"title": {"x"}}, nil)
	req := httptest.NewRequest(http.MethodPut, "/properties/nope", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, store.updateCalls)
}

func TestUpdate_ReplaceImagesDiscardsOldOnes(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)
	p := seedProperty(t, store, "old1", "old2", "old3")

	body, contentType := multipartBody(t,
		map[string][]string{"replaceImages": {"true"}},
		map[string][]string{"images": {"n1.jpg", "n2.jpg"}},
	)
	req := httptest.NewRequest(http.MethodPut, "/properties/"+p.ID, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored := store.properties[p.ID]
	require.Len(t, stored.Images, 2)
	for _, img := range stored.Images {
		assert.NotContains(t, []string{"old1", "old2", "old3"}, img.ID)
	}
}

func TestUpdate_RetainListKeepsOnlyListedImages(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)
	p := seedProperty(t, store, "id1", "id2", "id3")

	body, contentType := multipartBody(t,
		map[string][]string{"existingImages": {"id1", "id3"}},
		nil,
	)
	req := httptest.NewRequest(http.MethodPut, "/properties/"+p.ID, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored := store.properties[p.ID]
	require.Len(t, stored.Images, 2)
	assert.Equal(t, "id1", stored.Images[0].ID)
	assert.Equal(t, "id3", stored.Images[1].ID)
}

func TestUpdate_OmittedFieldsRetainValues(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)
	p := seedProperty(t, store, "id1")

	body, contentType := multipartBody(t, map[string][]string{"title": {"Renamed"}}, nil)
	req := httptest.NewRequest(http.MethodPut, "/properties/"+p.ID, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored := store.properties[p.ID]
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, p.Price, stored.Price)
	assert.Equal(t, p.Location, stored.Location)
	require.Len(t, stored.Images, 1)
}

func TestDelete_RemovesRecord(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)
	p := seedProperty(t, store, "id1")

	req := httptest.NewRequest(http.MethodDelete, "/properties/"+p.ID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := store.GetPropertyByID(p.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	store := newFakeStore()
	r := newRouter(store)

	req := httptest.NewRequest(http.MethodDelete, "/properties/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
