package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/beacondyn/beaconstore/internal/domain"
	"github.com/beacondyn/beaconstore/internal/events"
	"github.com/beacondyn/beaconstore/internal/store"
	"github.com/beacondyn/beaconstore/internal/webserver"
	"gorm.io/gorm"
)

type productImagePayload struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url" validate:"required"`
}

type productPayload struct {
	ID          string                `json:"id"`
	Name        string                `json:"name" validate:"required,min=1,max=200"`
	Price       float64               `json:"price" validate:"gte=0"`
	Description string                `json:"description"`
	CategoryID  string                `json:"category_id"`
	IsFeatured  bool                  `json:"is_featured"`
	Images      []productImagePayload `json:"images"`
}

type galleryArrangePayload struct {
	Op      string                `json:"op" validate:"required,oneof=append up down remove"`
	ImageID string                `json:"image_id"`
	URL     string                `json:"url"`
	Images  []productImagePayload `json:"images"`
}

// registerProductRoutes registers product catalog CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/catalog/products", listProducts)
	webserver.ApiGET("/catalog/products/draft", newProductDraft)
	webserver.ApiGET("/catalog/products/:id", getProduct)
	webserver.ApiPOST("/catalog/products", saveProduct)
	webserver.ApiDELETE("/catalog/products/:id", deleteProduct)
	webserver.ApiPOST("/catalog/gallery/arrange", arrangeGallery)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	categoryID := strings.TrimSpace(c.QueryParam("category_id"))

	db := GetDB(c).Model(&domain.Product{})
	if q != "" {
		if strings.EqualFold(db.Name(), "postgres") {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}
	if categoryID != "" {
		db = db.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	err := db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	var p domain.Product
	err := GetDB(c).Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("id = ?", c.Param("id")).First(&p).Error
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

// newProductDraft hands the console a blank draft. Refused while no
// category exists, before any draft state is created.
func newProductDraft(c echo.Context) error {
	var categories []domain.Category
	if err := GetDB(c).Order("name ASC").Find(&categories).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	if len(categories) == 0 {
		return fail(c, http.StatusConflict, "CATEGORY_REQUIRED",
			"Create at least one category before adding products", nil)
	}
	return ok(c, domain.Product{
		ID:         store.NewProductDraftID(),
		CategoryID: categories[0].ID,
		Images:     []domain.ProductImage{},
	})
}

func saveProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Product is invalid", err.Error())
	}
	if payload.CategoryID == "" {
		return fail(c, http.StatusBadRequest, "CATEGORY_REQUIRED", "The product must have a valid category", nil)
	}

	draft := domain.Product{
		ID:          payload.ID,
		Name:        strings.TrimSpace(payload.Name),
		Price:       payload.Price,
		Description: payload.Description,
		CategoryID:  payload.CategoryID,
		IsFeatured:  payload.IsFeatured,
	}
	for _, img := range payload.Images {
		draft.Images = append(draft.Images, domain.ProductImage{
			ID:       img.ID,
			ImageURL: img.ImageURL,
		})
	}

	saved, err := GetApp(c).Gateway().SaveProduct(c.Request().Context(), &draft)
	if err != nil {
		return failSave(c, "product", err)
	}

	if opr, signed := GetSessionMgr(c).Current(); signed {
		GetApp(c).WriteOprLog(opr.Username, "save_product", saved.ID)
	}

	events.PublishProductsChanged()
	return ok(c, saved)
}

func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if err := GetApp(c).Gateway().DeleteProduct(c.Request().Context(), id); err != nil {
		return failSave(c, "product", err)
	}
	events.PublishProductsChanged()
	return ok(c, map[string]interface{}{"id": id})
}

// arrangeGallery applies one draft gallery edit for the console and
// returns the reordered list; nothing is persisted here.
func arrangeGallery(c echo.Context) error {
	var payload galleryArrangePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse gallery edit", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Gallery edit is invalid", err.Error())
	}

	images := make([]domain.ProductImage, 0, len(payload.Images)+1)
	for i, img := range payload.Images {
		images = append(images, domain.ProductImage{
			ID:        img.ID,
			ImageURL:  img.ImageURL,
			SortOrder: i,
		})
	}

	switch payload.Op {
	case "append":
		if payload.URL == "" {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "URL is required for append", nil)
		}
		images = store.AppendImage(images, payload.URL)
	case "up":
		images = store.MoveImageUp(images, payload.ImageID)
	case "down":
		images = store.MoveImageDown(images, payload.ImageID)
	case "remove":
		images = store.RemoveImage(images, payload.ImageID)
	}
	return ok(c, images)
}

// failSave maps gateway errors onto admin-facing responses, swapping
// access-control rejections for a more actionable message.
func failSave(c echo.Context, kind string, err error) error {
	switch {
	case store.IsPermissionDenied(err):
		zap.L().Warn("write rejected by security policy", zap.String("kind", kind), zap.Error(err))
		return fail(c, http.StatusForbidden, "PERMISSION_DENIED",
			"Permission error: you are not allowed to save "+kind+" records. Check the security policies.", err.Error())
	case errors.Is(err, store.ErrCategoryRequired):
		return fail(c, http.StatusBadRequest, "CATEGORY_REQUIRED", "The product must have a valid category", nil)
	case errors.Is(err, store.ErrCategoryInUse):
		return fail(c, http.StatusConflict, "CATEGORY_IN_USE",
			"The category still has products attached", err.Error())
	case errors.Is(err, store.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "The "+kind+" does not exist", nil)
	default:
		return fail(c, http.StatusInternalServerError, "SAVE_FAILED", err.Error(), nil)
	}
}
