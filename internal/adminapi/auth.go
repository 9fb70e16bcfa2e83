package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/beacondyn/beaconstore/internal/app"
	"github.com/beacondyn/beaconstore/internal/domain"
	"github.com/beacondyn/beaconstore/internal/webserver"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func registerAuthRoutes() {
	webserver.ApiPOST("/login", login)
	webserver.ApiPOST("/logout", logout)
	webserver.ApiGET("/session", currentSession)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	username := strings.TrimSpace(payload.Username)
	var opr domain.SysOpr
	err := GetDB(c).Where("username = ? or email = ?", username, username).First(&opr).Error
	if err != nil {
		return fail(c, http.StatusUnauthorized, "AUTH_FAILED", "Invalid username or password", nil)
	}
	if !strings.EqualFold(opr.Status, app.ENABLED) {
		return fail(c, http.StatusForbidden, "AUTH_DISABLED", "Account is disabled", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(opr.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "AUTH_FAILED", "Invalid username or password", nil)
	}

	sessMgr := GetSessionMgr(c)
	token, err := sessMgr.IssueToken(&opr)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", err.Error())
	}
	sessMgr.Login(&opr)

	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", opr.ID).
		Update("last_login", time.Now())

	zap.L().Info("operator signed in", zap.String("username", opr.Username))
	return ok(c, map[string]interface{}{
		"token":    token,
		"username": opr.Username,
		"level":    opr.Level,
	})
}

func logout(c echo.Context) error {
	sessMgr := GetSessionMgr(c)
	if opr, signed := sessMgr.Current(); signed {
		zap.L().Info("operator signed out", zap.String("username", opr.Username))
	}
	sessMgr.Logout()
	return ok(c, nil)
}

func currentSession(c echo.Context) error {
	opr, signed := GetSessionMgr(c).Current()
	if !signed {
		return ok(c, map[string]interface{}{"signed_in": false})
	}
	return ok(c, map[string]interface{}{
		"signed_in": true,
		"username":  opr.Username,
		"level":     opr.Level,
	})
}
