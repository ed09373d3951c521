package config

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/estimator")
	t.Setenv(envJWTSecret, "s3cret")
	t.Setenv(envJWTExpires, "30m")
	t.Setenv(envRedisHost, "redis")
	t.Setenv(envRedisPort, "6380")
	t.Setenv(envMinioBucket, "assets")
	t.Setenv(envMinioUseSSL, "true")
	t.Setenv(envFontPath, "/fonts/NanumGothic.ttf")

	cfg := &Config{Minio: MinioConfig{Bucket: defaultBucket, Endpoint: "localhost:9000"}}
	if err := applyEnv(cfg); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}

	if cfg.DSN != "postgres://u:p@db:5432/estimator" {
		t.Errorf("DSN = %q", cfg.DSN)
	}
	if cfg.JWT.Token != "s3cret" || cfg.JWT.ExpiresIn != 30*time.Minute || cfg.JWT.SigningMethod != jwt.SigningMethodHS256 {
		t.Errorf("JWT = %+v", cfg.JWT)
	}
	if cfg.Redis.Host != "redis" || cfg.Redis.Port != 6380 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Minio.Bucket != "assets" || !cfg.Minio.UseSSL || cfg.Minio.Endpoint != "localhost:9000" {
		t.Errorf("Minio = %+v", cfg.Minio)
	}
	if cfg.FontPath != "/fonts/NanumGothic.ttf" {
		t.Errorf("FontPath = %q", cfg.FontPath)
	}
}

func TestApplyEnvDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/estimator")
	t.Setenv(envJWTSecret, "s3cret")
	t.Setenv(envJWTExpires, "")
	t.Setenv(envRedisPort, "")

	cfg := &Config{}
	if err := applyEnv(cfg); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if cfg.JWT.ExpiresIn != time.Hour {
		t.Errorf("ExpiresIn = %v, want 1h", cfg.JWT.ExpiresIn)
	}
	if cfg.Redis.Port != 6379 {
		t.Errorf("Redis.Port = %d, want 6379", cfg.Redis.Port)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{envJWTSecret: ""}},
		{"bad duration", map[string]string{envJWTSecret: "x", envJWTExpires: "soon"}},
		{"bad redis port", map[string]string{envJWTSecret: "x", envRedisPort: "six"}},
		{"bad ssl flag", map[string]string{envJWTSecret: "x", envMinioUseSSL: "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/estimator")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if err := applyEnv(&Config{}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
