package config

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gopkg.in/yaml.v2"
)

// SysConfig system config
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig admin/storefront web server config
type WebConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	TlsPort int    `yaml:"tls_port" json:"tls_port"`
	Secret  string `yaml:"secret" json:"secret"`
}

// DBConfig database config
type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// LogConfig logger config
type LogConfig struct {
	Mode          string `yaml:"mode" json:"mode"`
	ConsoleEnable bool   `yaml:"console_enable" json:"console_enable"`
	FileEnable    bool   `yaml:"file_enable" json:"file_enable"`
	Filename      string `yaml:"filename" json:"filename"`
}

// StorefrontConfig public storefront config
type StorefrontConfig struct {
	SessionName   string `yaml:"session_name" json:"session_name"`
	SessionSecret string `yaml:"session_secret" json:"session_secret"`
	RefreshCron   string `yaml:"refresh_cron" json:"refresh_cron"`
}

type AppConfig struct {
	System     SysConfig        `yaml:"system" json:"system"`
	Web        WebConfig        `yaml:"web" json:"web"`
	Database   DBConfig         `yaml:"database" json:"database"`
	Logger     LogConfig        `yaml:"logger" json:"logger"`
	Storefront StorefrontConfig `yaml:"storefront" json:"storefront"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetImageDir() string {
	return path.Join(c.System.Workdir, "storage", "images")
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0755)
	_ = os.MkdirAll(c.GetDataDir(), 0755)
	_ = os.MkdirAll(c.GetImageDir(), 0755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "BeaconStore",
		Location: "Asia/Jakarta",
		Workdir:  "/var/beaconstore",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-0731-1203-xxtx-0f568ac9da37",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "beaconstore",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:          "development",
		ConsoleEnable: true,
		FileEnable:    true,
		Filename:      "beaconstore.log",
	},
	Storefront: StorefrontConfig{
		SessionName:   "beacon_session",
		SessionSecret: "7c1de5cc-1731-2203-xxtx-1f568ac9da38",
		RefreshCron:   "@every 10m",
	},
}

func setEnvStringValue(name string, val *string) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvIntValue(name string, val *int) {
	evalue := os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := strconv.ParseInt(evalue, 10, 64)
	if err == nil {
		*val = int(p)
	}
}

func setEnvBoolValue(name string, val *bool) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig loads the yaml config file and applies environment overrides.
// A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err == nil {
				if err = yaml.Unmarshal(data, cfg); err != nil {
					fmt.Fprintf(os.Stderr, "parse config %s: %v\n", cfile, err)
				}
			}
		}
	}

	setEnvStringValue("BEACONSTORE_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("BEACONSTORE_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvStringValue("BEACONSTORE_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("BEACONSTORE_WEB_PORT", &cfg.Web.Port)
	setEnvStringValue("BEACONSTORE_WEB_SECRET", &cfg.Web.Secret)
	setEnvStringValue("BEACONSTORE_DB_TYPE", &cfg.Database.Type)
	setEnvStringValue("BEACONSTORE_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("BEACONSTORE_DB_PORT", &cfg.Database.Port)
	setEnvStringValue("BEACONSTORE_DB_NAME", &cfg.Database.Name)
	setEnvStringValue("BEACONSTORE_DB_USER", &cfg.Database.User)
	setEnvStringValue("BEACONSTORE_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("BEACONSTORE_DB_DEBUG", &cfg.Database.Debug)
	setEnvStringValue("BEACONSTORE_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvStringValue("BEACONSTORE_SESSION_SECRET", &cfg.Storefront.SessionSecret)

	return cfg
}
