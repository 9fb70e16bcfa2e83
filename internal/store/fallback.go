package store

import (
	"time"

	"github.com/beacondyn/beaconstore/internal/domain"
)

// The storefront never renders an empty shell: when the catalog query fails
// or returns nothing, these fixed samples take its place. They are display
// data only and are never written back.

var fallbackCategories = []domain.Category{
	{ID: "fb_cat_apparel", Name: "Apparel"},
	{ID: "fb_cat_essentials", Name: "Essentials"},
	{ID: "fb_cat_gear", Name: "Gear"},
}

var fallbackProducts = []domain.Product{
	{
		ID:          "fb_prod_hoodie",
		Name:        "Signal Hoodie",
		Price:       89,
		Description: "Heavyweight fleece hoodie with embroidered beacon mark.",
		CategoryID:  "fb_cat_apparel",
		IsFeatured:  true,
		Images: []domain.ProductImage{
			{ID: "fb_img_hoodie_0", ProductID: "fb_prod_hoodie", ImageURL: "/static/samples/hoodie-front.jpg", SortOrder: 0},
			{ID: "fb_img_hoodie_1", ProductID: "fb_prod_hoodie", ImageURL: "/static/samples/hoodie-back.jpg", SortOrder: 1},
		},
		CreatedAt: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:          "fb_prod_bottle",
		Name:        "Harbor Bottle",
		Price:       32,
		Description: "Insulated steel bottle, 750ml, matte black.",
		CategoryID:  "fb_cat_essentials",
		Images: []domain.ProductImage{
			{ID: "fb_img_bottle_0", ProductID: "fb_prod_bottle", ImageURL: "/static/samples/bottle.jpg", SortOrder: 0},
		},
		CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:          "fb_prod_duffel",
		Name:        "Crossing Duffel",
		Price:       140,
		Description: "Waxed canvas duffel sized for a weekend away.",
		CategoryID:  "fb_cat_gear",
		Images: []domain.ProductImage{
			{ID: "fb_img_duffel_0", ProductID: "fb_prod_duffel", ImageURL: "/static/samples/duffel.jpg", SortOrder: 0},
		},
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	},
}

// FallbackProducts returns a copy of the sample catalog, newest first.
func FallbackProducts() []domain.Product {
	out := make([]domain.Product, len(fallbackProducts))
	copy(out, fallbackProducts)
	return out
}

// FallbackCategories returns a copy of the sample categories, name order.
func FallbackCategories() []domain.Category {
	out := make([]domain.Category, len(fallbackCategories))
	copy(out, fallbackCategories)
	return out
}
