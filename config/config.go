package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

// Cfg 全局配置，进程启动时加载一次
var Cfg *Config

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Model    ModelConfig    `yaml:"model"`
	Database DatabaseConfig `yaml:"database"`
	Upload   UploadConfig   `yaml:"upload"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type ModelConfig struct {
	APIKey string `yaml:"api_key"`
	Name   string `yaml:"name"`
}

// DatabaseConfig 持久化存储配置，DSN为空时运行于纯内存模式
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type UploadConfig struct {
	Dir string `yaml:"dir"`
}

func Load() error {
	return LoadFrom(defaultConfigPath)
}

func LoadFrom(path string) error {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file %s: %v", path, err)
	}

	applyEnvOverrides(cfg)

	Cfg = cfg
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8000",
		},
		Model: ModelConfig{
			Name: "gemini-1.5-flash-latest",
		},
		Upload: UploadConfig{
			Dir: "uploads",
		},
	}
}

// 环境变量优先于配置文件
func applyEnvOverrides(cfg *Config) {
	overrides := map[string]*string{
		"GEMINI_API_KEY":    &cfg.Model.APIKey,
		"GEMINI_MODEL_NAME": &cfg.Model.Name,
		"BACKEND_HOST":      &cfg.Server.Host,
		"BACKEND_PORT":      &cfg.Server.Port,
		"DATABASE_DSN":      &cfg.Database.DSN,
		"UPLOADS_DIR":       &cfg.Upload.Dir,
	}

	for key, field := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
	}
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
