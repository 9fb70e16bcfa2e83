package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/beacondyn/beaconstore/internal/domain"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

// configSchema describes one sys_config row seeded at first boot.
// Key is "category.name".
type configSchema struct {
	Key         string
	Default     string
	Description string
}

var defaultConfigSchemas = []configSchema{
	{Key: "storefront.StoreName", Default: "Beacon Premium", Description: "Storefront display name"},
	{Key: "storefront.WhatsappNumber", Default: "1172023171", Description: "Destination number for checkout order messages"},
	{Key: "storefront.CheckoutHeader", Default: "\U0001F531 BEACON PREMIUM ORDER", Description: "First line of the checkout order message"},
	{Key: "storefront.CheckoutFooter", Default: "Por favor confirmar pedido.", Description: "Closing line of the checkout order message"},
	{Key: "system.OprLogRetentionDays", Default: "365", Description: "Days to keep operator audit logs"},
}

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "beaconstore"

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default password", zap.Error(err))
		return
	}

	var operator domain.SysOpr
	err = a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        time.Now().UnixNano(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     "admin@beaconstore.local",
			Username:  superUsername,
			Password:  string(hashedPassword),
			Level:     "super",
			Status:    ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, "super")
	resetStatus := !strings.EqualFold(operator.Status, ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = string(hashedPassword)
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = ENABLED
	}

	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

func (a *Application) checkSettings() {
	// Iterate over all configuration definitions, checking and initializing missing entries
	for sortid, schema := range defaultConfigSchemas {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		category := parts[0]
		name := parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}
