package store

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beacondyn/beaconstore/internal/domain"
)

// Gateway is the catalog's persistence boundary. List operations absorb
// failures and empty results into the fallback samples; write operations
// return classified errors for the admin surfaces to present.
type Gateway interface {
	// ListProducts returns products newest-created first, images in
	// sort_order. Query errors and empty results yield the fallback set.
	ListProducts(ctx context.Context) []domain.Product

	// SaveProduct inserts drafts (temporary ID) or updates existing rows,
	// then replaces the product's image list with the draft's, sort_order
	// following list position. Returns the product with its adopted ID.
	SaveProduct(ctx context.Context, draft *domain.Product) (*domain.Product, error)

	// DeleteProduct removes a product and its images.
	DeleteProduct(ctx context.Context, id string) error

	// ListCategories returns categories in name order, with the same
	// fallback policy as ListProducts.
	ListCategories(ctx context.Context) []domain.Category

	// SaveCategory inserts drafts or renames existing categories.
	SaveCategory(ctx context.Context, draft *domain.Category) (*domain.Category, error)

	// DeleteCategory removes a category; refused with ErrCategoryInUse
	// while any product references it.
	DeleteCategory(ctx context.Context, id string) error
}

// GormGateway is the GORM implementation of Gateway.
type GormGateway struct {
	db *gorm.DB
}

// NewGormGateway creates a gateway over db.
func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db: db}
}

var _ Gateway = (*GormGateway)(nil)

func (g *GormGateway) ListProducts(ctx context.Context) []domain.Product {
	var products []domain.Product
	err := g.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		zap.L().Error("product query failed, serving fallback catalog", zap.Error(err))
		return FallbackProducts()
	}
	if len(products) == 0 {
		zap.L().Warn("product table empty, serving fallback catalog")
		return FallbackProducts()
	}
	return products
}

func (g *GormGateway) SaveProduct(ctx context.Context, draft *domain.Product) (*domain.Product, error) {
	if draft.CategoryID == "" {
		return nil, ErrCategoryRequired
	}

	var catCount int64
	if err := g.db.WithContext(ctx).Model(&domain.Category{}).
		Where("id = ?", draft.CategoryID).Count(&catCount).Error; err != nil {
		return nil, classify(err)
	}
	if catCount == 0 {
		return nil, errors.Errorf("category %s does not exist", draft.CategoryID)
	}

	saved := *draft
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if IsDraftID(saved.ID) || saved.ID == "" {
			saved.ID = NextID()
			if err := tx.Omit("Images").Create(&saved).Error; err != nil {
				return err
			}
		} else {
			ret := tx.Model(&domain.Product{}).
				Where("id = ?", saved.ID).
				Updates(map[string]interface{}{
					"name":        saved.Name,
					"price":       saved.Price,
					"description": saved.Description,
					"category_id": saved.CategoryID,
					"is_featured": saved.IsFeatured,
				})
			if ret.Error != nil {
				return ret.Error
			}
			if ret.RowsAffected == 0 {
				return errors.Wrapf(ErrNotFound, "product %s", saved.ID)
			}
		}

		// Replace the whole gallery so stored order always matches the
		// order the editor last arranged.
		if err := tx.Where("product_id = ?", saved.ID).
			Delete(&domain.ProductImage{}).Error; err != nil {
			return err
		}
		for i := range saved.Images {
			saved.Images[i].ID = NextID()
			saved.Images[i].ProductID = saved.ID
			saved.Images[i].SortOrder = i
		}
		if len(saved.Images) > 0 {
			if err := tx.Create(&saved.Images).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &saved, nil
}

func (g *GormGateway) DeleteProduct(ctx context.Context, id string) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).
			Delete(&domain.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Product{}).Error
	})
	return classify(err)
}

func (g *GormGateway) ListCategories(ctx context.Context) []domain.Category {
	var categories []domain.Category
	err := g.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		zap.L().Error("category query failed, serving fallback categories", zap.Error(err))
		return FallbackCategories()
	}
	if len(categories) == 0 {
		zap.L().Warn("category table empty, serving fallback categories")
		return FallbackCategories()
	}
	return categories
}

func (g *GormGateway) SaveCategory(ctx context.Context, draft *domain.Category) (*domain.Category, error) {
	saved := *draft
	if IsDraftID(saved.ID) || saved.ID == "" {
		saved.ID = NextID()
		if err := g.db.WithContext(ctx).Create(&saved).Error; err != nil {
			return nil, classify(err)
		}
		return &saved, nil
	}
	ret := g.db.WithContext(ctx).Model(&domain.Category{}).
		Where("id = ?", saved.ID).
		Update("name", saved.Name)
	if ret.Error != nil {
		return nil, classify(ret.Error)
	}
	if ret.RowsAffected == 0 {
		return nil, errors.Wrapf(ErrNotFound, "category %s", saved.ID)
	}
	return &saved, nil
}

func (g *GormGateway) DeleteCategory(ctx context.Context, id string) error {
	var refs int64
	if err := g.db.WithContext(ctx).Model(&domain.Product{}).
		Where("category_id = ?", id).Count(&refs).Error; err != nil {
		return classify(err)
	}
	if refs > 0 {
		return errors.Wrapf(ErrCategoryInUse, "%d products attached", refs)
	}
	return classify(g.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Category{}).Error)
}
