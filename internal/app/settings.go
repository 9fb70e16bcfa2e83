package app

import (
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/beacondyn/beaconstore/internal/domain"
)

const settingsCacheTTL = 30 * time.Second

// ConfigManager reads runtime settings from the sys_config table with a
// short-lived in-memory cache. Values are stored as strings and converted
// on read.
type ConfigManager struct {
	app      *Application
	mu       sync.RWMutex
	cache    map[string]string
	loadedAt time.Time
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{app: app, cache: map[string]string{}}
}

func (m *ConfigManager) reloadLocked() {
	var rows []domain.SysConfig
	if err := m.app.gormDB.Find(&rows).Error; err != nil {
		zap.L().Error("settings reload failed", zap.Error(err))
		return
	}
	m.cache = make(map[string]string, len(rows))
	for _, row := range rows {
		m.cache[row.Type+"."+row.Name] = row.Value
	}
	m.loadedAt = time.Now()
}

func (m *ConfigManager) getValue(category, name string) string {
	m.mu.RLock()
	fresh := time.Since(m.loadedAt) < settingsCacheTTL
	val, ok := m.cache[category+"."+name]
	m.mu.RUnlock()
	if fresh && ok {
		return val
	}

	m.mu.Lock()
	if time.Since(m.loadedAt) >= settingsCacheTTL {
		m.reloadLocked()
	}
	val = m.cache[category+"."+name]
	m.mu.Unlock()
	return val
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.getValue(category, name)
}

func (m *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(m.getValue(category, name))
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.getValue(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.getValue(category, name))
}

// SetValue writes one setting by "category.Name" key and refreshes the cache.
func (m *ConfigManager) SetValue(key string, value interface{}) error {
	category, name, ok := splitConfigKey(key)
	if !ok {
		return errors.Errorf("invalid config key %q", key)
	}

	strval := cast.ToString(value)
	ret := m.app.gormDB.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, name).
		Update("value", strval)
	if ret.Error != nil {
		return ret.Error
	}
	if ret.RowsAffected == 0 {
		if err := m.app.gormDB.Create(&domain.SysConfig{
			Type:  category,
			Name:  name,
			Value: strval,
		}).Error; err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.cache[category+"."+name] = strval
	m.mu.Unlock()
	return nil
}

// LoadStruct decodes all settings of one category into a tagged struct,
// matching fields by mapstructure tag or name.
func (m *ConfigManager) LoadStruct(category string, out interface{}) error {
	m.mu.Lock()
	if time.Since(m.loadedAt) >= settingsCacheTTL {
		m.reloadLocked()
	}
	values := map[string]interface{}{}
	prefix := category + "."
	for key, val := range m.cache {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			values[key[len(prefix):]] = val
		}
	}
	m.mu.Unlock()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(values)
}

func splitConfigKey(key string) (category, name string, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			if i == 0 || i == len(key)-1 {
				return "", "", false
			}
			return key[:i], key[i+1:], true
		}
	}
	return "", "", false
}
