package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Secret  string `yaml:"secret" json:"secret"`
	JwtExpH int    `yaml:"jwt_exp_hours" json:"jwt_exp_hours"`
}

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

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "quickstore",
		Location: "Asia/Kuwait",
		Workdir:  "/var/quickstore",
		Debug:    true,
	},
	Web: WebConfig{
		Host:    "0.0.0.0",
		Port:    1816,
		Secret:  "9b6de5cc-0001-1203-xxtt-0f568ac9da37",
		JwtExpH: 24,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "quickstore",
		User:     "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/quickstore/quickstore.log",
	},
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "exports"), 0755)
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvInt64Value(name string, f func(v int64)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := cast.ToInt64E(evalue)
	if err == nil {
		f(p)
	}
}

// LoadConfig reads the YAML config file and applies QUICKSTORE_* env overrides.
// A missing file falls back to DefaultAppConfig.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					cfg = DefaultAppConfig
				}
			}
		} else {
			cfg = DefaultAppConfig
		}
	} else {
		cfg = DefaultAppConfig
	}

	setEnvValue("QUICKSTORE_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("QUICKSTORE_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = v == "true" })
	setEnvValue("QUICKSTORE_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("QUICKSTORE_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvInt64Value("QUICKSTORE_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })
	setEnvValue("QUICKSTORE_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt64Value("QUICKSTORE_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })
	setEnvValue("QUICKSTORE_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("QUICKSTORE_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("QUICKSTORE_DB_PWD", func(v string) { cfg.Database.Passwd = v })

	return cfg
}
