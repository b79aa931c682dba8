package config

import (
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server Server   `yaml:"server"`
	Relays []string `yaml:"relays"`
	View   View     `yaml:"view"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type View struct {
	DefaultTimezone  string `yaml:"defaultTimezone"`
	RefreshCron      string `yaml:"refreshCron"`
	FeedCacheSeconds int32  `yaml:"feedCacheSeconds"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}
	if config.View.RefreshCron == "" {
		config.View.RefreshCron = "*/10 * * * *"
	}
	if config.View.FeedCacheSeconds == 0 {
		config.View.FeedCacheSeconds = 60
	}

	return config, nil
}
