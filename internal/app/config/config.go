package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"estimator/internal/app/dsn"
)

type Config struct {
	ServiceHost string
	ServicePort int
	LogLevel    string
	CORSOrigins []string
	FontPath    string
	DSN         string `mapstructure:"-"`
	JWT         JWTConfig
	Redis       RedisConfig
	Minio       MinioConfig
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

const (
	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envJWTSecret  = "JWT_SECRET"
	envJWTExpires = "JWT_EXPIRES_IN"

	envMinioEndpoint  = "MINIO_ENDPOINT"
	envMinioAccessKey = "MINIO_ACCESS_KEY"
	envMinioSecretKey = "MINIO_SECRET_KEY"
	envMinioBucket    = "MINIO_BUCKET"
	envMinioUseSSL    = "MINIO_USE_SSL"
	envMinioPublicURL = "MINIO_PUBLIC_URL"

	envFontPath = "PDF_FONT_PATH"

	defaultBucket = "company-assets"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("CORSOrigins", []string{"http://localhost:3000"})
	viper.SetDefault("Minio.Bucket", defaultBucket)

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Warn("config file not found, using defaults and environment")
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	if err = applyEnv(cfg); err != nil {
		return nil, err
	}

	log.Info("config parsed")

	return cfg, nil
}

// applyEnv overrides secrets and endpoints from the environment.
func applyEnv(cfg *Config) error {
	var err error

	cfg.DSN = dsn.FromEnv()

	cfg.JWT.SigningMethod = jwt.SigningMethodHS256
	cfg.JWT.Token = os.Getenv(envJWTSecret)
	if cfg.JWT.Token == "" {
		return fmt.Errorf("%s is not set", envJWTSecret)
	}
	cfg.JWT.ExpiresIn = time.Hour
	if v := os.Getenv(envJWTExpires); v != "" {
		cfg.JWT.ExpiresIn, err = time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s must be a duration: %w", envJWTExpires, err)
		}
	}

	cfg.Redis.Host = os.Getenv(envRedisHost)
	cfg.Redis.Port = 6379
	if v := os.Getenv(envRedisPort); v != "" {
		cfg.Redis.Port, err = strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("redis port must be int value: %w", err)
		}
	}
	cfg.Redis.Password = os.Getenv(envRedisPass)
	cfg.Redis.User = os.Getenv(envRedisUser)
	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	if v := os.Getenv(envMinioEndpoint); v != "" {
		cfg.Minio.Endpoint = v
	}
	if v := os.Getenv(envMinioAccessKey); v != "" {
		cfg.Minio.AccessKey = v
	}
	if v := os.Getenv(envMinioSecretKey); v != "" {
		cfg.Minio.SecretKey = v
	}
	if v := os.Getenv(envMinioBucket); v != "" {
		cfg.Minio.Bucket = v
	}
	if v := os.Getenv(envMinioPublicURL); v != "" {
		cfg.Minio.PublicURL = v
	}
	if v := os.Getenv(envMinioUseSSL); v != "" {
		cfg.Minio.UseSSL, err = strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be bool: %w", envMinioUseSSL, err)
		}
	}

	if v := os.Getenv(envFontPath); v != "" {
		cfg.FontPath = v
	}

	return nil
}
