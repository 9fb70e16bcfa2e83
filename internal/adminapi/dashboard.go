package adminapi

import (
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"github.com/beacondyn/beaconstore/internal/domain"
	"github.com/beacondyn/beaconstore/internal/webserver"
)

type dashboardStats struct {
	Items        int64   `json:"items"`
	Categories   int64   `json:"categories"`
	Featured     int64   `json:"featured"`
	CatalogValue float64 `json:"catalog_value"`
	AveragePrice float64 `json:"average_price"`
	HighestPrice float64 `json:"highest_price"`
	LowestPrice  float64 `json:"lowest_price"`
}

type productCsvRow struct {
	ID          string  `csv:"id"`
	Name        string  `csv:"name"`
	Price       float64 `csv:"price"`
	Description string  `csv:"description"`
	CategoryID  string  `csv:"category_id"`
	IsFeatured  bool    `csv:"is_featured"`
	Images      int     `csv:"images"`
	CreatedAt   string  `csv:"created_at"`
}

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard/stats", getDashboardStats)
	webserver.ApiGET("/catalog/products/export", exportProducts)
}

func getDashboardStats(c echo.Context) error {
	db := GetDB(c)

	var out dashboardStats
	if err := db.Model(&domain.Product{}).Count(&out.Items).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	if err := db.Model(&domain.Category{}).Count(&out.Categories).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	if err := db.Model(&domain.Product{}).Where("is_featured = ?", true).Count(&out.Featured).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var prices []float64
	if err := db.Model(&domain.Product{}).Pluck("price", &prices).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query prices", err.Error())
	}
	if len(prices) > 0 {
		out.CatalogValue, _ = stats.Sum(prices)
		out.AveragePrice, _ = stats.Mean(prices)
		out.HighestPrice, _ = stats.Max(prices)
		out.LowestPrice, _ = stats.Min(prices)
	}
	return ok(c, out)
}

func exportProducts(c echo.Context) error {
	var products []domain.Product
	err := GetDB(c).Preload("Images").Order("created_at DESC").Find(&products).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	rows := make([]productCsvRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productCsvRow{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			CategoryID:  p.CategoryID,
			IsFeatured:  p.IsFeatured,
			Images:      len(p.Images),
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		})
	}

	csvData, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to render CSV", err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(csvData))
}
