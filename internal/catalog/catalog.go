package catalog

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/beacondyn/beaconstore/internal/domain"
	"github.com/beacondyn/beaconstore/internal/events"
	"github.com/beacondyn/beaconstore/internal/store"
)

// Catalog is the storefront's cached view of products and categories.
// Any change event triggers a full reload from the gateway; the cache is
// never patched in place.
type Catalog struct {
	gateway store.Gateway

	mu             sync.RWMutex
	products       []domain.Product
	categories     []domain.Category
	searchTerm     string
	categoryFilter string
	loading        bool

	reloadFn func()
	authFn   func(string)
}

func New(gateway store.Gateway) *Catalog {
	return &Catalog{gateway: gateway}
}

// Start loads the catalog and subscribes to change events.
func (c *Catalog) Start(ctx context.Context) {
	c.reloadFn = func() { c.Reload(context.Background()) }
	c.authFn = func(username string) { c.reloadFn() }
	events.Subscribe(events.TopicProductsChanged, c.reloadFn)
	events.Subscribe(events.TopicCategoriesChanged, c.reloadFn)
	events.Subscribe(events.TopicAuthChanged, c.authFn)
	c.Reload(ctx)
}

// Stop detaches the catalog from the change bus.
func (c *Catalog) Stop() {
	if c.reloadFn != nil {
		events.Unsubscribe(events.TopicProductsChanged, c.reloadFn)
		events.Unsubscribe(events.TopicCategoriesChanged, c.reloadFn)
		events.Unsubscribe(events.TopicAuthChanged, c.authFn)
	}
}

// Reload replaces both cached lists from the gateway.
func (c *Catalog) Reload(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	products := c.gateway.ListProducts(ctx)
	categories := c.gateway.ListCategories(ctx)

	c.mu.Lock()
	c.products = products
	c.categories = categories
	c.loading = false
	c.mu.Unlock()

	zap.L().Debug("catalog reloaded",
		zap.Int("products", len(products)),
		zap.Int("categories", len(categories)))
}

// Loading reports whether a reload is in flight.
func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// SetSearchTerm updates the name filter.
func (c *Catalog) SetSearchTerm(term string) {
	c.mu.Lock()
	c.searchTerm = term
	c.mu.Unlock()
}

// SetCategoryFilter updates the category filter; empty clears it.
func (c *Catalog) SetCategoryFilter(categoryID string) {
	c.mu.Lock()
	c.categoryFilter = categoryID
	c.mu.Unlock()
}

// Products returns the cached product list, newest first.
func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories returns the cached category list, name order.
func (c *Catalog) Categories() []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Visible applies both filters: case-insensitive substring match on the
// name, and exact category match when a category is selected.
func (c *Catalog) Visible() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	term := strings.ToLower(c.searchTerm)
	var out []domain.Product
	for _, p := range c.products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if c.categoryFilter != "" && p.CategoryID != c.categoryFilter {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MatchVisible reports the filtered list for explicit term/category values,
// independent of the stored filter state.
func (c *Catalog) MatchVisible(term, categoryID string) []domain.Product {
	c.mu.RLock()
	products := c.products
	c.mu.RUnlock()

	lterm := strings.ToLower(term)
	var out []domain.Product
	for _, p := range products {
		if lterm != "" && !strings.Contains(strings.ToLower(p.Name), lterm) {
			continue
		}
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Featured picks the first flagged product, falling back to the first
// product in list order. ok is false only for an empty catalog.
func (c *Catalog) Featured() (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.IsFeatured {
			return p, true
		}
	}
	if len(c.products) > 0 {
		return c.products[0], true
	}
	return domain.Product{}, false
}

// FindProduct looks a product up by ID in the cache.
func (c *Catalog) FindProduct(id string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
