package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName  string
	Port     string
	Env      string
	Debug    bool
	Operator string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:  os.Getenv("APP_NAME"),
			Port:     os.Getenv("PORT"),
			Env:      os.Getenv("APP_ENV"),
			Debug:    os.Getenv("DEBUG") == "true",
			Operator: defaultOperator(),
		}
	})
}

// defaultOperator is recorded in history rows when the caller identity is not
// forwarded by the auth layer.
func defaultOperator() string {
	if v := os.Getenv("DEFAULT_OPERATOR"); v != "" {
		return v
	}
	return "system"
}
