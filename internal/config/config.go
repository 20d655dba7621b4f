package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-yaml/yaml"

	"github.com/totegamma/foodgram/internal/domain"
)

type Config struct {
	Server Server        `yaml:"server"`
	Auth   Auth          `yaml:"auth"`
	Media  Media         `yaml:"media"`
	API    domain.Config `yaml:"api"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	TraceInsecure bool   `yaml:"traceInsecure"`
	LogMode       string `yaml:"logMode"` // development, production
}

type Auth struct {
	JwtSecret     string `yaml:"jwtSecret"`
	TokenTTLHours int    `yaml:"tokenTTLHours"`
}

func (a Auth) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

type Media struct {
	Driver string `yaml:"driver"` // local, s3
	Root   string `yaml:"root"`
	S3     S3     `yaml:"s3"`
}

type S3 struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
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

	config.SetDefaults()

	err = config.Validate()
	if err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c *Config) SetDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8000"
	}
	if c.Server.LogMode == "" {
		c.Server.LogMode = "development"
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 24 * 30
	}
	if c.Media.Driver == "" {
		c.Media.Driver = "local"
	}
	if c.Media.Root == "" {
		c.Media.Root = "media"
	}
	if c.API.PageSize <= 0 {
		c.API.PageSize = 6
	}
	if c.API.MaxPageSize <= 0 {
		c.API.MaxPageSize = 100
	}
	if c.API.MediaURL == "" {
		c.API.MediaURL = "/media/"
	}
}

func (c Config) Validate() error {
	if c.Server.PostgresDsn == "" {
		return fmt.Errorf("server.postgresDsn is required")
	}
	if c.Auth.JwtSecret == "" {
		return fmt.Errorf("auth.jwtSecret is required")
	}
	switch c.Media.Driver {
	case "local":
	case "s3":
		if c.Media.S3.Bucket == "" {
			return fmt.Errorf("media.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown media driver %q", c.Media.Driver)
	}
	return nil
}
