package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacondyn/beaconstore/internal/domain"
)

func sampleGallery() []domain.ProductImage {
	var images []domain.ProductImage
	images = AppendImage(images, "/img/a.jpg")
	images = AppendImage(images, "/img/b.jpg")
	images = AppendImage(images, "/img/c.jpg")
	return images
}

func urls(images []domain.ProductImage) []string {
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = img.ImageURL
	}
	return out
}

func TestAppendImageAssignsNextIndex(t *testing.T) {
	images := sampleGallery()
	require.Len(t, images, 3)
	for i, img := range images {
		assert.Equal(t, i, img.SortOrder)
		assert.True(t, IsDraftID(img.ID))
	}
}

func TestMoveImageUpAndDown(t *testing.T) {
	images := sampleGallery()
	mid := images[1].ID

	images = MoveImageUp(images, mid)
	assert.Equal(t, []string{"/img/b.jpg", "/img/a.jpg", "/img/c.jpg"}, urls(images))

	images = MoveImageDown(images, mid)
	assert.Equal(t, []string{"/img/a.jpg", "/img/b.jpg", "/img/c.jpg"}, urls(images))

	for i, img := range images {
		assert.Equal(t, i, img.SortOrder)
	}
}

func TestMoveImageBoundariesAreNoops(t *testing.T) {
	images := sampleGallery()

	images = MoveImageUp(images, images[0].ID)
	assert.Equal(t, []string{"/img/a.jpg", "/img/b.jpg", "/img/c.jpg"}, urls(images))

	images = MoveImageDown(images, images[2].ID)
	assert.Equal(t, []string{"/img/a.jpg", "/img/b.jpg", "/img/c.jpg"}, urls(images))
}

func TestRemoveImageClosesGap(t *testing.T) {
	images := sampleGallery()
	images = RemoveImage(images, images[1].ID)

	assert.Equal(t, []string{"/img/a.jpg", "/img/c.jpg"}, urls(images))
	for i, img := range images {
		assert.Equal(t, i, img.SortOrder)
	}

	images = RemoveImage(images, "missing")
	assert.Len(t, images, 2)
}
