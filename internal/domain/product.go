package domain

import "time"

// Product is a storefront catalog item. Exactly one category per product;
// the category must exist before the product does.
type Product struct {
	ID          string         `gorm:"primaryKey;size:64" json:"id" form:"id"`
	Name        string         `gorm:"index" json:"name" form:"name"`
	Price       float64        `json:"price" form:"price"`
	Description string         `json:"description" form:"description"`
	CategoryID  string         `gorm:"index;size:64" json:"category_id" form:"category_id"`
	IsFeatured  bool           `json:"is_featured" form:"is_featured"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;references:ID" json:"images"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// ProductImage is one entry of a product's ordered gallery. SortOrder is
// dense per product starting at 0 and equals the list position at save time.
type ProductImage struct {
	ID        string `gorm:"primaryKey;size:64" json:"id" form:"id"`
	ProductID string `gorm:"index;size:64" json:"product_id" form:"product_id"`
	ImageURL  string `gorm:"size:1024" json:"image_url" form:"image_url"`
	SortOrder int    `json:"sort_order" form:"sort_order"`
}

// TableName Specify table name
func (ProductImage) TableName() string {
	return "product_images"
}

// Category groups products for storefront filtering.
type Category struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id" form:"id"`
	Name      string    `gorm:"uniqueIndex" json:"name" form:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}
