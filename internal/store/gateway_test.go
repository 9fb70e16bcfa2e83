package store

import (
	"context"
	"fmt"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beacondyn/beaconstore/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path.Join(t.TempDir(), "store_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) domain.Category {
	t.Helper()
	cat := domain.Category{ID: NextID(), Name: name}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func TestSaveProductInsertsDraft(t *testing.T) {
	db := setupTestDB(t)
	g := NewGormGateway(db)
	cat := seedCategory(t, db, "Apparel")

	draft := &domain.Product{
		ID:         NewProductDraftID(),
		Name:       "Signal Hoodie",
		Price:      89,
		CategoryID: cat.ID,
	}
	saved, err := g.SaveProduct(context.Background(), draft)
	require.NoError(t, err)
	assert.False(t, IsDraftID(saved.ID), "saved product must adopt a backend ID")

	var count int64
	db.Model(&domain.Product{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSaveProductUpdatesExisting(t *testing.T) {
	db := setupTestDB(t)
	g := NewGormGateway(db)
	cat := seedCategory(t, db, "Apparel")

	saved, err := g.SaveProduct(context.Background(), &domain.Product{
		ID:         NewProductDraftID(),
		Name:       "Signal Hoodie",
		Price:      89,
		CategoryID: cat.ID,
	})
	require.NoError(t, err)

	saved.Price = 99
	saved.Name = "Signal Hoodie v2"
	again, err := g.SaveProduct(context.Background(), saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID, "update must not mint a new ID")

	var count int64
	db.Model(&domain.Product{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var row domain.Product
	require.NoError(t, db.First(&row, "id = ?", saved.ID).Error)
	assert.Equal(t, 99.0, row.Price)
	assert.Equal(t, "Signal Hoodie v2", row.Name)
}

func TestSaveProductUnknownIDFails(t *testing.T) {
	db := setupTestDB(t)
	g := NewGormGateway(db)
	cat := seedCategory(t, db, "Apparel")

	_, err := g.SaveProduct(context.Background(), &domain.Product{
		ID:         "no_such_row",
		Name:       "Ghost",
		CategoryID: cat.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveProductRequiresCategory(t *testing.T) {
	db := setupTestDB(t)
	g := NewGormGateway(db)

	_, err := g.SaveProduct(context.Background(), &domain.Product{
		ID:   NewProductDraftID(),
		Name: "Orphan",
	})
	assert.ErrorIs(t, err, ErrCategoryRequired)

	_, err = g.SaveProduct(context.Background(), &domain.Product{
		ID:         NewProductDraftID(),
		Name:       "Orphan",
		CategoryID: "missing_cat",
	})
	require.Error(t, err)

	var count int64
	db.Model(&domain.Product{}).Count(&count)
	assert.Zero(t, count)
}

func TestImageOrderRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	g := NewGormGateway(db)
	cat := seedCategory(t, db, "Gear")

	draft := &domain.Product{
		ID:         NewProductDraftID(),
		Name:       "Crossing Duffel",
		CategoryID: cat.ID,
	}
	for i := 0; i < 5; i++ {
		draft.Images = AppendImage(draft.Images, fmt.Sprintf("/img/%d.jpg", i))
	}
	saved, err := g.SaveProduct(context.Background(), draft)
	require.NoError(t, err)

	products := g.ListProducts(context.Background())
	require.Len(t, products, 1)
	require.Len(t, products[0].Images, 5)
	for i, img := range products[0].Images {
		assert.Equal(t, i, img.SortOrder)
		assert.Equal(t, fmt.Sprintf("/img/%d.jpg", i), img.ImageURL)
		assert.False(t, IsDraftID(img.ID))
	}

	// Reversing the list and saving again must persist the new order.
	for i, j := 0, len(saved.Images)-1; i < j; i, j = i+1, j-1 {
		saved.Images[i], saved.Images[j] = saved.Images[j], saved.Images[i]
	}
	_, err = g.SaveProduct(context.Background(), saved)
	require.NoError(t, err)

	products = g.ListProducts(context.Background())
	require.Len(t, products[0].Images, 5)
	for i, img := range products[0].Images {
		assert.Equal(t, i, img.SortOrder)
		assert.Equal(t, fmt.Sprintf("/img/%d.jpg", 4-i), img.ImageURL)
	}

	var imgCount int64
	db.Model(&domain.ProductImage{}).Count(&imgCount)
	assert.EqualValues(t, 5, imgCount, "resave must not leave stale rows")
}

func TestListProductsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	g := NewGormGateway(db)
	cat := seedCategory(t, db, "Gear")

	for i := 0; i < 3; i++ {
		p := domain.Product{
			ID:         NextID(),
			Name:       fmt.Sprintf("Item %d", i),
			CategoryID: cat.ID,
			CreatedAt:  time.Date(2024, 3, i+1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, db.Create(&p).Error)
	}

	products := g.ListProducts(context.Background())
	require.Len(t, products, 3)
	assert.Equal(t, "Item 2", products[0].Name)
	assert.Equal(t, "Item 0", products[2].Name)
}

func TestListFallsBackWhenEmpty(t *testing.T) {
	db := setupTestDB(t)
	g := NewGormGateway(db)

	products := g.ListProducts(context.Background())
	require.NotEmpty(t, products, "empty table must yield the sample catalog")
	assert.Equal(t, FallbackProducts(), products)

	categories := g.ListCategories(context.Background())
	require.NotEmpty(t, categories)
	assert.Equal(t, FallbackCategories(), categories)
}

func TestListFallsBackOnQueryError(t *testing.T) {
	db := setupTestDB(t)
	g := NewGormGateway(db)

	// Dropping the tables forces the query down the error path.
	require.NoError(t, db.Migrator().DropTable(&domain.Product{}, &domain.Category{}))

	assert.Equal(t, FallbackProducts(), g.ListProducts(context.Background()))
	assert.Equal(t, FallbackCategories(), g.ListCategories(context.Background()))
}

func TestDeleteProductRemovesImages(t *testing.T) {
	db := setupTestDB(t)
	g := NewGormGateway(db)
	cat := seedCategory(t, db, "Gear")

	draft := &domain.Product{ID: NewProductDraftID(), Name: "Duffel", CategoryID: cat.ID}
	draft.Images = AppendImage(draft.Images, "/img/a.jpg")
	saved, err := g.SaveProduct(context.Background(), draft)
	require.NoError(t, err)

	require.NoError(t, g.DeleteProduct(context.Background(), saved.ID))

	var pCount, iCount int64
	db.Model(&domain.Product{}).Count(&pCount)
	db.Model(&domain.ProductImage{}).Count(&iCount)
	assert.Zero(t, pCount)
	assert.Zero(t, iCount)
}

func TestSaveCategoryInsertAndRename(t *testing.T) {
	db := setupTestDB(t)
	g := NewGormGateway(db)

	saved, err := g.SaveCategory(context.Background(), &domain.Category{
		ID:   NewCategoryDraftID(),
		Name: "Apparel",
	})
	require.NoError(t, err)
	assert.False(t, IsDraftID(saved.ID))

	saved.Name = "Premium Apparel"
	again, err := g.SaveCategory(context.Background(), saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)

	var row domain.Category
	require.NoError(t, db.First(&row, "id = ?", saved.ID).Error)
	assert.Equal(t, "Premium Apparel", row.Name)
}

func TestDeleteCategoryRefusedWhileReferenced(t *testing.T) {
	db := setupTestDB(t)
	g := NewGormGateway(db)
	cat := seedCategory(t, db, "Gear")

	_, err := g.SaveProduct(context.Background(), &domain.Product{
		ID:         NewProductDraftID(),
		Name:       "Duffel",
		CategoryID: cat.ID,
	})
	require.NoError(t, err)

	err = g.DeleteCategory(context.Background(), cat.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	var count int64
	db.Model(&domain.Category{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDraftIDPredicates(t *testing.T) {
	assert.True(t, IsDraftID(NewProductDraftID()))
	assert.True(t, IsDraftID(NewCategoryDraftID()))
	assert.True(t, IsDraftID(NewImageDraftID()))
	assert.False(t, IsDraftID(NextID()))
	assert.False(t, IsDraftID(""))
}

func TestClassifyPermissionErrors(t *testing.T) {
	err := classify(fmt.Errorf(`new row violates row-level security policy for table "products"`))
	assert.True(t, IsPermissionDenied(err))

	err = classify(fmt.Errorf("permission denied for table products"))
	assert.True(t, IsPermissionDenied(err))

	err = classify(fmt.Errorf("connection refused"))
	assert.False(t, IsPermissionDenied(err))
	assert.Nil(t, classify(nil))
}
