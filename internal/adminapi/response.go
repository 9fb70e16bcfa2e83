package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/beacondyn/beaconstore/internal/app"
	"github.com/beacondyn/beaconstore/internal/session"
	"github.com/beacondyn/beaconstore/internal/webserver"
)

type apiResponse struct {
	Code   string      `json:"code"`
	Msg    string      `json:"msg,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Detail interface{} `json:"detail,omitempty"`
}

type pagedResponse struct {
	Code     string      `json:"code"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, apiResponse{Code: "OK", Data: data})
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return c.JSON(status, apiResponse{Code: code, Msg: msg, Detail: detail})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, pagedResponse{
		Code:     "OK",
		Data:     rows,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextDBKey).(*gorm.DB)
}

// GetApp returns the application context.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(webserver.ContextAppKey).(app.AppContext)
}

// GetSessionMgr returns the operator session manager.
func GetSessionMgr(c echo.Context) *session.Manager {
	return c.Get(webserver.ContextSessionKey).(*session.Manager)
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

// InitRouter registers every admin API route. The web server must be
// initialized first.
func InitRouter() {
	registerAuthRoutes()
	registerProductRoutes()
	registerCategoryRoutes()
	registerUploadRoutes()
	registerDashboardRoutes()
	registerSettingsRoutes()
}
