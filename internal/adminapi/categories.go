package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/beacondyn/beaconstore/internal/domain"
	"github.com/beacondyn/beaconstore/internal/events"
	"github.com/beacondyn/beaconstore/internal/store"
	"github.com/beacondyn/beaconstore/internal/webserver"
)

type categoryPayload struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// registerCategoryRoutes registers category CRUD endpoints
func registerCategoryRoutes() {
	webserver.ApiGET("/catalog/categories", listCategories)
	webserver.ApiGET("/catalog/categories/draft", newCategoryDraft)
	webserver.ApiPOST("/catalog/categories", saveCategory)
	webserver.ApiDELETE("/catalog/categories/:id", deleteCategory)
}

func listCategories(c echo.Context) error {
	var rows []domain.Category
	if err := GetDB(c).Order("name ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, rows)
}

func newCategoryDraft(c echo.Context) error {
	return ok(c, domain.Category{ID: store.NewCategoryDraftID()})
}

func saveCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", err.Error())
	}

	draft := domain.Category{
		ID:   payload.ID,
		Name: strings.TrimSpace(payload.Name),
	}
	saved, err := GetApp(c).Gateway().SaveCategory(c.Request().Context(), &draft)
	if err != nil {
		return failSave(c, "categorie", err)
	}

	if opr, signed := GetSessionMgr(c).Current(); signed {
		GetApp(c).WriteOprLog(opr.Username, "save_category", saved.ID)
	}

	events.PublishCategoriesChanged()
	return ok(c, saved)
}

func deleteCategory(c echo.Context) error {
	id := c.Param("id")
	if err := GetApp(c).Gateway().DeleteCategory(c.Request().Context(), id); err != nil {
		return failSave(c, "categorie", err)
	}
	events.PublishCategoriesChanged()
	return ok(c, map[string]interface{}{"id": id})
}
