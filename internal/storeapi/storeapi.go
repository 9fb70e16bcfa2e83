package storeapi

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/beacondyn/beaconstore/internal/app"
	"github.com/beacondyn/beaconstore/internal/cart"
	"github.com/beacondyn/beaconstore/internal/catalog"
	"github.com/beacondyn/beaconstore/internal/webserver"
)

const cartSessionKey = "cart"

var view *catalog.Catalog

// InitRouter registers the storefront routes over the shared catalog view.
func InitRouter(cat *catalog.Catalog) {
	view = cat

	webserver.PubGET("/catalog", getCatalog)
	webserver.PubGET("/featured", getFeatured)
	webserver.PubGET("/cart", getCart)
	webserver.PubPOST("/cart/add", addToCart)
	webserver.PubPOST("/cart/adjust", adjustCart)
	webserver.PubPOST("/cart/remove", removeFromCart)
	webserver.PubPOST("/checkout", checkout)
	webserver.PubGET("/prefs/sound", getSoundPref)
	webserver.PubPOST("/prefs/sound", setSoundPref)
}

func getApp(c echo.Context) app.AppContext {
	return c.Get(webserver.ContextAppKey).(app.AppContext)
}

// loadCart reads the visitor's cart out of the cookie session. A missing
// or corrupt value yields a fresh empty cart.
func loadCart(c echo.Context) *cart.Cart {
	sess, err := echosession.Get(getApp(c).Config().Storefront.SessionName, c)
	if err != nil {
		return cart.New()
	}
	raw, ok := sess.Values[cartSessionKey].(string)
	if !ok || raw == "" {
		return cart.New()
	}
	ct := cart.New()
	if err := jsoniter.UnmarshalFromString(raw, ct); err != nil {
		zap.L().Warn("discarding unreadable cart session", zap.Error(err))
		return cart.New()
	}
	return ct
}

func storeCart(c echo.Context, ct *cart.Cart) error {
	sess, err := echosession.Get(getApp(c).Config().Storefront.SessionName, c)
	if err != nil {
		return err
	}
	raw, err := jsoniter.MarshalToString(ct)
	if err != nil {
		return err
	}
	sess.Values[cartSessionKey] = raw
	sess.Options.HttpOnly = true
	sess.Options.Path = "/"
	return sess.Save(c.Request(), c.Response())
}

func cartPayload(ct *cart.Cart) map[string]interface{} {
	return map[string]interface{}{
		"items":    ct.Items,
		"count":    ct.Count(),
		"subtotal": ct.Subtotal(),
	}
}

// getCatalog serves the filtered product list plus categories and the
// featured pick in one response, the shape the storefront renders from.
func getCatalog(c echo.Context) error {
	term := c.QueryParam("q")
	categoryID := c.QueryParam("category")

	payload := map[string]interface{}{
		"loading":    view.Loading(),
		"products":   view.MatchVisible(term, categoryID),
		"categories": view.Categories(),
	}
	if featured, found := view.Featured(); found {
		payload["featured"] = featured
	}
	return c.JSON(http.StatusOK, payload)
}

func getFeatured(c echo.Context) error {
	featured, found := view.Featured()
	if !found {
		return c.JSON(http.StatusOK, map[string]interface{}{})
	}
	return c.JSON(http.StatusOK, featured)
}

func getCart(c echo.Context) error {
	return c.JSON(http.StatusOK, cartPayload(loadCart(c)))
}

type cartOpPayload struct {
	ProductID string `json:"product_id" validate:"required"`
	Delta     int    `json:"delta"`
}

func addToCart(c echo.Context) error {
	var payload cartOpPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse request")
	}
	if err := c.Validate(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	product, found := view.FindProduct(payload.ProductID)
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	ct := loadCart(c)
	ct.Add(product)
	if err := storeCart(c, ct); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to store cart")
	}
	return c.JSON(http.StatusOK, cartPayload(ct))
}

func adjustCart(c echo.Context) error {
	var payload cartOpPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse request")
	}
	if err := c.Validate(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	ct := loadCart(c)
	ct.Adjust(payload.ProductID, payload.Delta)
	if err := storeCart(c, ct); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to store cart")
	}
	return c.JSON(http.StatusOK, cartPayload(ct))
}

func removeFromCart(c echo.Context) error {
	var payload cartOpPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse request")
	}
	if err := c.Validate(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	ct := loadCart(c)
	ct.Remove(payload.ProductID)
	if err := storeCart(c, ct); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to store cart")
	}
	return c.JSON(http.StatusOK, cartPayload(ct))
}

// checkout renders the order message and hands back the wa.me link for
// the shopper's device to open. The cart stays as it was; no order row
// is written anywhere.
func checkout(c echo.Context) error {
	ct := loadCart(c)
	if len(ct.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	appCtx := getApp(c)
	number := appCtx.GetSettingsStringValue("storefront", "WhatsappNumber")
	header := appCtx.GetSettingsStringValue("storefront", "CheckoutHeader")
	footer := appCtx.GetSettingsStringValue("storefront", "CheckoutFooter")

	return c.JSON(http.StatusOK, map[string]interface{}{
		"link":     ct.CheckoutLink(number, header, footer),
		"message":  ct.CheckoutMessage(header, footer),
		"count":    ct.Count(),
		"subtotal": ct.Subtotal(),
	})
}

func getSoundPref(c echo.Context) error {
	prefs := getApp(c).Prefs()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"enabled": prefs.SoundEnabled(),
	})
}

type soundPrefPayload struct {
	Enabled bool `json:"enabled"`
}

func setSoundPref(c echo.Context) error {
	var payload soundPrefPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse request")
	}
	prefs := getApp(c).Prefs()
	if err := prefs.SetSoundEnabled(payload.Enabled); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to store preference")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"enabled": payload.Enabled,
	})
}
