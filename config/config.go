// Ininicializing common application configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "PROMO"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	App    AppConfig    `mapstructure:"app"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Idle_timeout time.Duration `mapstructure:"idle_timeout"`
}

type AppConfig struct {
	EventsRoot   string   `mapstructure:"events_root"`
	OutputRoot   string   `mapstructure:"output_root"`
	Background   string   `mapstructure:"background"`
	TargetHeight int      `mapstructure:"target_height"`
	FontPaths    []string `mapstructure:"font_paths"`
	Workers      int      `mapstructure:"workers"`
	JPEGQuality  int      `mapstructure:"jpeg_quality"`
	StoragePath  string   `mapstructure:"storage_path"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

// LoadConfig reads config.yaml from ./config (or the given directories).
// A missing file is not an error: defaults and PROMO_* variables still apply.
func LoadConfig(paths ...string) (*viper.Viper, error) {

	viperInstance := viper.New()
	setDefaults(viperInstance)

	if len(paths) == 0 {
		paths = []string{"./config"}
	}
	for _, p := range paths {
		viperInstance.AddConfigPath(p)
	}
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	viperInstance.SetEnvPrefix(envPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	err := viperInstance.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("app.events_root", "./events")
	v.SetDefault("app.output_root", "./output")
	v.SetDefault("app.background", "background.jpg")
	v.SetDefault("app.target_height", 1080)
	v.SetDefault("app.font_paths", []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
		"C:\\Windows\\Fonts\\arialbd.ttf",
	})
	v.SetDefault("app.workers", 0)
	v.SetDefault("app.jpeg_quality", 95)
	v.SetDefault("app.storage_path", "./storage")

	v.SetDefault("kafka.brokers", []string{"localhost:9094"})
	v.SetDefault("kafka.topic", "render-jobs")
	v.SetDefault("kafka.group_id", "promo-renderer")
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
