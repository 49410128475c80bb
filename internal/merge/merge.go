// Package merge computes the next state of a property record from a partial
// update payload. It is pure: no store access, no side effects. The caller
// loads the existing record, applies the merge, and hands the result to the
// store for the actual write.
package merge

import "property-listing-portal/internal/models"

// UpdateRequest is an explicit partial-update payload. Nil pointers mean
// "field not present, keep the existing value"; nested objects are atomic —
// either the whole group is replaced or none of it.
type UpdateRequest struct {
	Title        *string
	Price        *float64
	PropertyType *string
	MapLink      *string
	Location     *models.Location
	Details      *models.Details
	ContactInfo  *models.ContactInfo

	// NewImages are freshly ingested gallery uploads. With ReplaceImages
	// set, they replace the existing gallery outright; the discarded images
	// are gone permanently. Otherwise they are appended after the existing
	// images in order.
	NewImages     []models.PropertyImage
	ReplaceImages bool

	// ExistingImageIDs, when non-nil and no new images are supplied, is the
	// retain list: any existing image id not in it is dropped.
	ExistingImageIDs []string

	// NewHomeImage replaces the current cover image. KeepHomeImage
	// preserves it explicitly; with neither set, the cover is left as-is.
	NewHomeImage  *models.PropertyImage
	KeepHomeImage bool

	// PrimaryImageID, when set, marks exactly that image primary and clears
	// the flag on all others. Applied after image add/remove/replace.
	PrimaryImageID string
}

// Apply computes the full next-state record. The existing record is not
// mutated; id and creation timestamp carry over unchanged.
func Apply(existing *models.Property, req *UpdateRequest) models.Property {
	next := *existing

	if req.Title != nil {
		next.Title = *req.Title
	}
	if req.Price != nil {
		next.Price = *req.Price
	}
	if req.PropertyType != nil {
		next.PropertyType = *req.PropertyType
	}
	if req.MapLink != nil {
		next.MapLink = *req.MapLink
	}
	if req.Location != nil {
		next.Location = *req.Location
	}
	if req.Details != nil {
		next.Details = *req.Details
	}
	if req.ContactInfo != nil {
		next.ContactInfo = *req.ContactInfo
	}

	next.Images = mergeImages(existing.Images, req)

	if req.PrimaryImageID != "" {
		for i := range next.Images {
			next.Images[i].IsPrimary = next.Images[i].ID == req.PrimaryImageID
		}
	}
	restorePrimary(next.Images)

	return next
}

// mergeImages applies the image instructions: gallery replace/append,
// deletion-by-omission via the retain list, and cover replacement. Relative
// order of surviving images is always preserved.
func mergeImages(existing []models.PropertyImage, req *UpdateRequest) []models.PropertyImage {
	next := make([]models.PropertyImage, len(existing))
	copy(next, existing)

	switch {
	case len(req.NewImages) > 0:
		incoming := make([]models.PropertyImage, len(req.NewImages))
		copy(incoming, req.NewImages)
		for i := range incoming {
			incoming[i].IsPrimary = false
		}
		if req.ReplaceImages {
			// Destructive: prior images, cover included, are gone for good.
			next = incoming
		} else {
			if len(next) == 0 && req.NewHomeImage == nil && len(incoming) > 0 {
				incoming[0].IsPrimary = true
			}
			next = append(next, incoming...)
		}
	case req.ExistingImageIDs != nil:
		retain := make(map[string]bool, len(req.ExistingImageIDs))
		for _, id := range req.ExistingImageIDs {
			retain[id] = true
		}
		kept := next[:0]
		for _, img := range next {
			if retain[img.ID] {
				kept = append(kept, img)
			}
		}
		next = kept
	}

	if req.NewHomeImage != nil {
		cover := *req.NewHomeImage
		cover.IsPrimary = true
		replaced := false
		for i := range next {
			if next[i].IsPrimary {
				next[i] = cover
				replaced = true
				break
			}
		}
		if !replaced {
			next = append([]models.PropertyImage{cover}, next...)
		}
	}

	return next
}

// restorePrimary enforces the soft invariant: at most one primary image, and
// when any images exist, at least one. Extra flags are cleared in favor of
// the first; with none flagged the first image becomes the cover.
func restorePrimary(imgs []models.PropertyImage) {
	seen := false
	for i := range imgs {
		if imgs[i].IsPrimary {
			if seen {
				imgs[i].IsPrimary = false
			}
			seen = true
		}
	}
	if !seen && len(imgs) > 0 {
		imgs[0].IsPrimary = true
	}
}
