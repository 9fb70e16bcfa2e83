package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beacondyn/beaconstore/internal/domain"
	"github.com/beacondyn/beaconstore/internal/webserver"
)

// StorefrontSettings is the typed view of the "storefront" config category.
type StorefrontSettings struct {
	StoreName      string `json:"store_name" mapstructure:"StoreName"`
	WhatsappNumber string `json:"whatsapp_number" mapstructure:"WhatsappNumber"`
	CheckoutHeader string `json:"checkout_header" mapstructure:"CheckoutHeader"`
	CheckoutFooter string `json:"checkout_footer" mapstructure:"CheckoutFooter"`
}

func registerSettingsRoutes() {
	webserver.ApiGET("/settings", listSettings)
	webserver.ApiGET("/settings/storefront", getStorefrontSettings)
	webserver.ApiPOST("/settings", saveSettings)
}

func listSettings(c echo.Context) error {
	var rows []domain.SysConfig
	if err := GetDB(c).Order("sort ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query settings", err.Error())
	}
	return ok(c, rows)
}

func getStorefrontSettings(c echo.Context) error {
	var out StorefrontSettings
	if err := GetApp(c).ConfigMgr().LoadStruct("storefront", &out); err != nil {
		return fail(c, http.StatusInternalServerError, "SETTINGS_ERROR", "Failed to decode settings", err.Error())
	}
	return ok(c, out)
}

func saveSettings(c echo.Context) error {
	values := map[string]interface{}{}
	if err := c.Bind(&values); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", err.Error())
	}
	if err := GetApp(c).SaveSettings(values); err != nil {
		return fail(c, http.StatusInternalServerError, "SETTINGS_ERROR", "Failed to save settings", err.Error())
	}
	if opr, signed := GetSessionMgr(c).Current(); signed {
		GetApp(c).WriteOprLog(opr.Username, "save_settings", "")
	}
	return ok(c, nil)
}
