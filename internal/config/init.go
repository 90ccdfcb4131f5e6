package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config تنظیمات برنامه که از .env و متغیرهای محیطی خوانده می‌شود
type Config struct {
	Env     string
	AppPort string

	DBDriver      string
	DBDSN         string
	DBWaitTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	StorageDriver string
	MediaRoot     string
	MediaURL      string
	MaxUploadMB   int
	S3            S3Config

	BlockedWords []string
}

type S3Config struct {
	Endpoint       string
	PublicEndpoint string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	DisableSSL     bool
}

// Load بارگذاری .env (در صورت وجود) و خواندن متغیرهای محیطی
func Load() (*Config, error) {
	// نبودن .env خطا نیست
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv فقط متغیرهای محیطی فعلی را می‌خواند
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:           getEnv("APP_ENV", "development"),
		AppPort:       getEnv("APP_PORT", "8080"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBDSN:         os.Getenv("DB_DSN"),
		DBWaitTimeout: getDuration("DB_WAIT_TIMEOUT", time.Minute),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      getDuration("TOKEN_TTL", 24*time.Hour),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		MediaRoot:     getEnv("MEDIA_ROOT", "./media"),
		MediaURL:      getEnv("MEDIA_URL", "/media/"),
		MaxUploadMB:   getInt("MAX_UPLOAD_MB", 10),
		S3: S3Config{
			Endpoint:       os.Getenv("S3_ENDPOINT"),
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			Region:         getEnv("S3_REGION", "us-east-1"),
			Bucket:         os.Getenv("S3_BUCKET"),
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			DisableSSL:     getBool("S3_DISABLE_SSL", false),
		},
		BlockedWords: splitList(os.Getenv("BLOCKED_WORDS")),
	}

	var missing []string
	if cfg.DBDSN == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.RedisAddr == "" {
		missing = append(missing, "REDIS_ADDR")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	switch cfg.DBDriver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.StorageDriver {
	case "local":
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if !strings.HasSuffix(cfg.MediaURL, "/") {
		cfg.MediaURL += "/"
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
