package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/utils"
)

type Config struct {
	AppName string
	AppPort string
	AppUrl  string
	DBUrl   string

	RSAPublicKey *rsa.PublicKey

	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
	S3PublicURLBase   string
	S3UsePathStyle    bool
}

// LoadConfig reads the environment (optionally seeded by a .env file)
// and fails fast on anything required.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, relying on process environment")
	}

	cfg := &Config{
		AppName:           getEnvOr("APP_NAME", "pms-backend"),
		AppPort:           mustGetEnv("APP_PORT"),
		AppUrl:            getEnvOr("APP_URL", ""),
		DBUrl:             mustGetEnv("DB_URL"),
		S3Region:          mustGetEnv("S3_REGION"),
		S3Bucket:          mustGetEnv("S3_BUCKET"),
		S3AccessKeyID:     mustGetEnv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: mustGetEnv("S3_SECRET_ACCESS_KEY"),
		S3Endpoint:        getEnvOr("S3_ENDPOINT", ""),
		S3PublicURLBase:   getEnvOr("S3_PUBLIC_URL_BASE", ""),
	}

	if v := os.Getenv("S3_USE_PATH_STYLE"); v != "" {
		usePathStyle, err := strconv.ParseBool(v)
		if err != nil {
			utils.Logger.Fatalf("S3_USE_PATH_STYLE is not a boolean: %q", v)
		}
		cfg.S3UsePathStyle = usePathStyle
	}

	pubB64 := mustGetEnv("RSA_PUBLIC_KEY_BASE64")
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}
	cfg.RSAPublicKey = pubKey

	return cfg
}

func mustGetEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
