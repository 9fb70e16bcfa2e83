package store

import "github.com/beacondyn/beaconstore/internal/domain"

// Draft gallery editing. These operate on the ordered image list of an
// unsaved product draft; nothing touches the database until the draft is
// saved, at which point stored sort_order follows list position.

// AppendImage adds url at the end of the gallery under a temporary ID.
func AppendImage(images []domain.ProductImage, url string) []domain.ProductImage {
	return append(images, domain.ProductImage{
		ID:        NewImageDraftID(),
		ImageURL:  url,
		SortOrder: len(images),
	})
}

// MoveImageUp swaps the image with its predecessor. First position is a no-op.
func MoveImageUp(images []domain.ProductImage, imageID string) []domain.ProductImage {
	for i := range images {
		if images[i].ID == imageID {
			if i > 0 {
				images[i-1], images[i] = images[i], images[i-1]
			}
			break
		}
	}
	return renumber(images)
}

// MoveImageDown swaps the image with its successor. Last position is a no-op.
func MoveImageDown(images []domain.ProductImage, imageID string) []domain.ProductImage {
	for i := range images {
		if images[i].ID == imageID {
			if i < len(images)-1 {
				images[i], images[i+1] = images[i+1], images[i]
			}
			break
		}
	}
	return renumber(images)
}

// RemoveImage deletes the image by ID and closes the gap.
func RemoveImage(images []domain.ProductImage, imageID string) []domain.ProductImage {
	for i := range images {
		if images[i].ID == imageID {
			images = append(images[:i], images[i+1:]...)
			break
		}
	}
	return renumber(images)
}

func renumber(images []domain.ProductImage) []domain.ProductImage {
	for i := range images {
		images[i].SortOrder = i
	}
	return images
}
