package catalog

import (
	"context"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beacondyn/beaconstore/internal/domain"
	"github.com/beacondyn/beaconstore/internal/events"
	"github.com/beacondyn/beaconstore/internal/store"
)

func setupCatalog(t *testing.T) (*Catalog, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path.Join(t.TempDir(), "catalog_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return New(store.NewGormGateway(db)), db
}

func seedProducts(t *testing.T, db *gorm.DB) domain.Category {
	t.Helper()
	cat := domain.Category{ID: store.NextID(), Name: "Apparel"}
	require.NoError(t, db.Create(&cat).Error)
	other := domain.Category{ID: store.NextID(), Name: "Gear"}
	require.NoError(t, db.Create(&other).Error)

	rows := []domain.Product{
		{ID: store.NextID(), Name: "Signal Hoodie", CategoryID: cat.ID,
			CreatedAt: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)},
		{ID: store.NextID(), Name: "Harbor Bottle", CategoryID: other.ID, IsFeatured: true,
			CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{ID: store.NextID(), Name: "Crossing Duffel", CategoryID: other.ID,
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
	return cat
}

func TestVisibleAppliesBothFilters(t *testing.T) {
	cat, db := setupCatalog(t)
	apparel := seedProducts(t, db)
	cat.Reload(context.Background())

	assert.Len(t, cat.Visible(), 3)

	cat.SetSearchTerm("HOODIE")
	visible := cat.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Signal Hoodie", visible[0].Name)

	cat.SetCategoryFilter(apparel.ID)
	assert.Len(t, cat.Visible(), 1)

	cat.SetSearchTerm("duffel")
	assert.Empty(t, cat.Visible(), "filters intersect")

	cat.SetCategoryFilter("")
	visible = cat.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Crossing Duffel", visible[0].Name)
}

func TestFeaturedPrefersFlaggedProduct(t *testing.T) {
	cat, db := setupCatalog(t)
	seedProducts(t, db)
	cat.Reload(context.Background())

	featured, found := cat.Featured()
	require.True(t, found)
	assert.Equal(t, "Harbor Bottle", featured.Name)
}

func TestFeaturedFallsBackToFirstProduct(t *testing.T) {
	cat, db := setupCatalog(t)
	seedProducts(t, db)
	require.NoError(t, db.Model(&domain.Product{}).
		Where("is_featured = ?", true).
		Update("is_featured", false).Error)
	cat.Reload(context.Background())

	featured, found := cat.Featured()
	require.True(t, found)
	assert.Equal(t, "Signal Hoodie", featured.Name, "first in newest-first order")
}

func TestEmptyCatalogServesFallback(t *testing.T) {
	cat, _ := setupCatalog(t)
	cat.Reload(context.Background())

	// The gateway substitutes samples, so Featured always finds something.
	_, found := cat.Featured()
	assert.True(t, found)
	assert.NotEmpty(t, cat.Products())
	assert.NotEmpty(t, cat.Categories())
}

func TestChangeEventTriggersReload(t *testing.T) {
	cat, db := setupCatalog(t)
	apparel := domain.Category{ID: store.NextID(), Name: "Apparel"}
	require.NoError(t, db.Create(&apparel).Error)

	cat.Start(context.Background())
	defer cat.Stop()

	p := domain.Product{ID: store.NextID(), Name: "Signal Hoodie", CategoryID: apparel.ID}
	require.NoError(t, db.Create(&p).Error)
	events.PublishProductsChanged()

	require.Eventually(t, func() bool {
		_, found := cat.FindProduct(p.ID)
		return found
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFindProduct(t *testing.T) {
	cat, db := setupCatalog(t)
	seedProducts(t, db)
	cat.Reload(context.Background())

	products := cat.Products()
	require.NotEmpty(t, products)

	found, ok := cat.FindProduct(products[0].ID)
	assert.True(t, ok)
	assert.Equal(t, products[0].Name, found.Name)

	_, ok = cat.FindProduct("missing")
	assert.False(t, ok)
}
