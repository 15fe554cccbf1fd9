package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	Config struct {
		App    `yaml:"app"`
		HTTP   `yaml:"http"`
		Log    `yaml:"logger"`
		Device `yaml:"device"`
	}

	App struct {
		Env      string `yaml:"env"      env-default:"local"`
		Name     string `yaml:"name"     env-default:"alarm-go"`
		Version  string `yaml:"version"  env-default:"dev"       env:"APP_VERSION"`
		Timezone string `yaml:"timezone" env-default:"Local"     env:"APP_TIMEZONE"`
	}

	HTTP struct {
		IP              string        `yaml:"ip"               env-default:"0.0.0.0"`
		Port            string        `yaml:"port"             env-default:"8082"    env:"HTTP_PORT"`
		Timeout         time.Duration `yaml:"timeout"          env-default:"4s"`
		IdleTimout      time.Duration `yaml:"idle_timeout"     env-default:"60s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"3s"`
		CORS            struct {
			AllowedMethods     []string `yaml:"allowed_methods"`
			AllowedOrigins     []string `yaml:"allowed_origins"`
			AllowCredentials   bool     `yaml:"allow_credentials"`
			AllowedHeaders     []string `yaml:"allowed_headers"`
			OptionsPassthrough bool     `yaml:"options_passthrough"`
			ExposedHeaders     []string `yaml:"exposed_headers"`
			Debug              bool     `yaml:"debug"`
		} `yaml:"cors"`
	}

	Log struct {
		Level string `yaml:"log_level" env-default:"info" env:"LOG_LEVEL"`
	}

	// Device is the ESP32 that receives new alarms.
	Device struct {
		URL         string        `yaml:"url"           env-default:"http://192.168.160.121/set_alarm" env:"DEVICE_URL"`
		Timeout     time.Duration `yaml:"timeout"       env-default:"0s"                                env:"DEVICE_TIMEOUT"`
		MaxInFlight int           `yaml:"max_in_flight" env-default:"8"`
	}
)

const (
	EnvConfigPathName  = "CONFIG-PATH"
	FlagConfigPathName = "config"
)

var (
	configPath string
	instance   *Config
	once       sync.Once
)

// GetConfig returns app configs.
func GetConfig() *Config {
	once.Do(func() {
		flag.StringVar(
			&configPath,
			FlagConfigPathName,
			"./configs/config.yml",
			"this is app config file",
		)
		flag.Parse()

		log.Print("config init")

		if configPath == "" {
			configPath = os.Getenv(EnvConfigPathName)
		}

		if configPath == "" {
			log.Fatal("config path is required")
		}

		cfg, err := Load(configPath)
		if err != nil {
			helpText := "Alarm-Go - ESP32 alarm manager"
			help, _ := cleanenv.GetDescription(&Config{}, &helpText)
			log.Print(help)
			log.Fatal(err)
		}
		instance = cfg
	})
	return instance
}

// Load reads the config file at path, applying env overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.App.LoadLocation(); err != nil {
		return nil, fmt.Errorf("config - Load - app.timezone: %w", err)
	}
	return cfg, nil
}

// LoadLocation resolves App.Timezone. Empty and "Local" mean time.Local.
func (a App) LoadLocation() (*time.Location, error) {
	if a.Timezone == "" || a.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}

// Location is LoadLocation for a config that went through Load, which has
// already rejected unknown zones.
func (a App) Location() *time.Location {
	loc, err := a.LoadLocation()
	if err != nil {
		return time.Local
	}
	return loc
}
