package webserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	jsoniter "github.com/json-iterator/go"
	echosession "github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/beacondyn/beaconstore/internal/app"
	"github.com/beacondyn/beaconstore/internal/session"
)

// Context keys set by the server's middleware for every request.
const (
	ContextDBKey      = "gdb"
	ContextAppKey     = "appctx"
	ContextSessionKey = "oprsession"
)

var server *WebServer

// WebServer hosts both API surfaces: the JWT-guarded admin API under /api
// and the cookie-session storefront API under /store.
type WebServer struct {
	appCtx  app.AppContext
	sessMgr *session.Manager
	root    *echo.Echo
	api     *echo.Group
	pub     *echo.Group
}

type jsoniterSerializer struct{}

func (jsoniterSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsoniterSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := jsoniter.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

type webValidator struct {
	validate *validator.Validate
}

func (v *webValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Init builds the process-wide web server.
func Init(appCtx app.AppContext, sessMgr *session.Manager) *WebServer {
	cfg := appCtx.Config()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.System.Debug
	e.JSONSerializer = jsoniterSerializer{}
	e.Validator = &webValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(zapLogger())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextDBKey, appCtx.DB())
			c.Set(ContextAppKey, appCtx)
			c.Set(ContextSessionKey, sessMgr)
			return next(c)
		}
	})

	// Uploaded product images are served straight off the workdir.
	e.Static("/storage/images", cfg.GetImageDir())

	api := e.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Web.Secret),
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/api/login")
		},
	}))

	pub := e.Group("/store")
	pub.Use(echosession.Middleware(sessions.NewCookieStore([]byte(cfg.Storefront.SessionSecret))))

	server = &WebServer{
		appCtx:  appCtx,
		sessMgr: sessMgr,
		root:    e,
		api:     api,
		pub:     pub,
	}
	return server
}

func zapLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				zap.L().Warn("http request failed",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status),
					zap.Error(v.Error))
				return nil
			}
			zap.L().Debug("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	})
}

// Start serves until the listener fails or Shutdown is called.
func (s *WebServer) Start() error {
	cfg := s.appCtx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	err := s.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// Echo exposes the underlying engine (used in tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// Admin API route helpers, called by the handler packages at registration.

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// Storefront route helpers.

func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

func PubPUT(path string, h echo.HandlerFunc) {
	server.pub.PUT(path, h)
}

func PubDELETE(path string, h echo.HandlerFunc) {
	server.pub.DELETE(path, h)
}
