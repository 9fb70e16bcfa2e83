package app

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beacondyn/beaconstore/config"
	"github.com/beacondyn/beaconstore/internal/domain"
)

func setupApp(t *testing.T) *Application {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path.Join(t.TempDir(), "app_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	a := NewApplication(config.DefaultAppConfig)
	a.OverrideDB(db)
	return a
}

func TestCheckSettingsSeedsDefaults(t *testing.T) {
	a := setupApp(t)
	a.checkSettings()

	assert.Equal(t, "1172023171", a.GetSettingsStringValue("storefront", "WhatsappNumber"))
	assert.Equal(t, "Beacon Premium", a.GetSettingsStringValue("storefront", "StoreName"))
	assert.EqualValues(t, 365, a.GetSettingsInt64Value("system", "OprLogRetentionDays"))

	// Re-running must not duplicate rows.
	a.checkSettings()
	var count int64
	a.DB().Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", "storefront", "WhatsappNumber").
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSetValueUpdatesAndCreates(t *testing.T) {
	a := setupApp(t)
	a.checkSettings()

	require.NoError(t, a.ConfigMgr().SetValue("storefront.WhatsappNumber", "5511999999999"))
	assert.Equal(t, "5511999999999", a.GetSettingsStringValue("storefront", "WhatsappNumber"))

	require.NoError(t, a.ConfigMgr().SetValue("storefront.Motto", "precision tech"))
	assert.Equal(t, "precision tech", a.GetSettingsStringValue("storefront", "Motto"))

	assert.Error(t, a.ConfigMgr().SetValue("no-dot-key", "x"))
}

func TestLoadStructDecodesCategory(t *testing.T) {
	a := setupApp(t)
	a.checkSettings()

	var out struct {
		StoreName      string `mapstructure:"StoreName"`
		WhatsappNumber string `mapstructure:"WhatsappNumber"`
	}
	require.NoError(t, a.ConfigMgr().LoadStruct("storefront", &out))
	assert.Equal(t, "Beacon Premium", out.StoreName)
	assert.Equal(t, "1172023171", out.WhatsappNumber)
}

func TestCheckSuperSeedsAndRepairs(t *testing.T) {
	a := setupApp(t)
	a.checkSuper()

	var opr domain.SysOpr
	require.NoError(t, a.DB().Where("username = ?", "admin").First(&opr).Error)
	assert.Equal(t, "super", opr.Level)
	assert.Equal(t, ENABLED, opr.Status)
	assert.NotEmpty(t, opr.Password)

	// Disable the account, then let the boot check repair it.
	require.NoError(t, a.DB().Model(&domain.SysOpr{}).
		Where("id = ?", opr.ID).Update("status", DISABLED).Error)
	a.checkSuper()

	require.NoError(t, a.DB().Where("username = ?", "admin").First(&opr).Error)
	assert.Equal(t, ENABLED, opr.Status)
}
