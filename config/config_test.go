package config

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	cfg := LoadConfig(path.Join(t.TempDir(), "nope.yml"))
	assert.Equal(t, "BeaconStore", cfg.System.Appid)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "beacon_session", cfg.Storefront.SessionName)
}

func TestLoadConfigFromYaml(t *testing.T) {
	cfile := path.Join(t.TempDir(), "beaconstore.yml")
	data := `
system:
  workdir: /tmp/beacon-test
web:
  port: 9090
database:
  type: sqlite
  name: catalog
`
	require.NoError(t, os.WriteFile(cfile, []byte(data), 0644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, "/tmp/beacon-test", cfg.System.Workdir)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "catalog", cfg.Database.Name)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	t.Setenv("BEACONSTORE_WEB_PORT", "7070")
	t.Setenv("BEACONSTORE_DB_TYPE", "sqlite")
	t.Setenv("BEACONSTORE_SYSTEM_DEBUG", "false")

	cfg := LoadConfig("")
	assert.Equal(t, 7070, cfg.Web.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.False(t, cfg.System.Debug)
}

func TestWorkdirLayout(t *testing.T) {
	cfg := LoadConfig("")
	cfg.System.Workdir = "/srv/beacon"
	assert.Equal(t, "/srv/beacon/logs", cfg.GetLogDir())
	assert.Equal(t, "/srv/beacon/data", cfg.GetDataDir())
	assert.Equal(t, "/srv/beacon/storage/images", cfg.GetImageDir())
}
