// Package images converts multipart file uploads into storable image
// records. Files are read fully in memory and base64-encoded; the declared
// MIME type is trusted as-is.
package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"property-listing-portal/internal/models"
)

// ErrNoImages is returned when a creation payload carries no image files.
var ErrNoImages = errors.New("at least one image is required")

// FromFileHeader reads one uploaded file and builds an image record.
func FromFileHeader(fh *multipart.FileHeader, alt string, isPrimary bool) (models.PropertyImage, error) {
	file, err := fh.Open()
	if err != nil {
		return models.PropertyImage{}, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.PropertyImage{}, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}

	return models.PropertyImage{
		Data:        base64.StdEncoding.EncodeToString(data),
		ContentType: fh.Header.Get("Content-Type"),
		Filename:    fh.Filename,
		Size:        fh.Size,
		Alt:         alt,
		IsPrimary:   isPrimary,
		UploadDate:  time.Now(),
	}, nil
}

// FromFileHeaders converts a gallery of uploads in order. No image is marked
// primary here; primary assignment is the caller's policy.
func FromFileHeaders(headers []*multipart.FileHeader, altHint string) ([]models.PropertyImage, error) {
	imgs := make([]models.PropertyImage, 0, len(headers))
	for i, fh := range headers {
		alt := altHint
		if alt == "" {
			alt = fmt.Sprintf("Property image %d", i+1)
		}
		img, err := FromFileHeader(fh, alt, false)
		if err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}

// BuildSet assembles the full image set for a new property. A designated
// home image, when present, becomes the primary cover and is placed first;
// otherwise the first gallery image is marked primary. Zero files is a
// validation failure and must reject before any store write.
func BuildSet(home *multipart.FileHeader, gallery []*multipart.FileHeader, altHint string) ([]models.PropertyImage, error) {
	if home == nil && len(gallery) == 0 {
		return nil, ErrNoImages
	}

	var set []models.PropertyImage

	if home != nil {
		alt := altHint
		if alt == "" {
			alt = "Property main image"
		}
		cover, err := FromFileHeader(home, alt, true)
		if err != nil {
			return nil, err
		}
		set = append(set, cover)
	}

	rest, err := FromFileHeaders(gallery, altHint)
	if err != nil {
		return nil, err
	}
	if home == nil && len(rest) > 0 {
		rest[0].IsPrimary = true
	}

	return append(set, rest...), nil
}
