package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/beacondyn/beaconstore/config"
	"github.com/beacondyn/beaconstore/internal/store"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
	SaveSettings(settings map[string]interface{}) error
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// ConfigManagerProvider provides configuration manager access
type ConfigManagerProvider interface {
	ConfigMgr() *ConfigManager
}

// GatewayProvider provides the catalog persistence gateway
type GatewayProvider interface {
	Gateway() store.Gateway
}

// PrefsProvider provides the local preference store
type PrefsProvider interface {
	Prefs() *Prefs
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	ConfigManagerProvider
	GatewayProvider
	PrefsProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()

	// WriteOprLog records an admin action in the audit table
	WriteOprLog(oprName, action, desc string)
}
