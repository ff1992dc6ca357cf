package config

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type TwitterConfig struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

type FacebookConfig struct {
	PageID      string
	AccessToken string
}

type LinkedInConfig struct {
	AuthorURN   string
	AccessToken string
}

type VertexConfig struct {
	ProjectID   string
	Location    string
	AccessToken string
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

type Config struct {
	DB_URL        string
	Port          string
	JWTSecret     string
	EncryptionKey string
	Environment   string
	CorsConfig    cors.Options
	GeminiAPIKey  string // server-side fallback for the default provider only
	Twitter       TwitterConfig
	Facebook      FacebookConfig
	LinkedIn      LinkedInConfig
	Vertex        VertexConfig
	R2            R2Config
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DB_URL:        getEnv("DB_URL", ""),
		Port:          getEnv("PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "not-so-secret-now-is-it?"),
		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		Environment:   getEnv("ENV", "development"),
		CorsConfig:    CorsConfig(),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		Twitter: TwitterConfig{
			APIKey:            getEnv("X_API_KEY", ""),
			APISecret:         getEnv("X_API_SECRET", ""),
			AccessToken:       getEnv("X_ACCESS_TOKEN", ""),
			AccessTokenSecret: getEnv("X_ACCESS_TOKEN_SECRET", ""),
		},
		Facebook: FacebookConfig{
			PageID:      getEnv("FACEBOOK_PAGE_ID", ""),
			AccessToken: getEnv("FACEBOOK_PAGE_ACCESS_TOKEN", ""),
		},
		LinkedIn: LinkedInConfig{
			AuthorURN:   getEnv("LINKEDIN_AUTHOR_URN", ""),
			AccessToken: getEnv("LINKEDIN_ACCESS_TOKEN", ""),
		},
		Vertex: VertexConfig{
			ProjectID:   getEnv("GCP_PROJECT_ID", ""),
			Location:    getEnv("GCP_LOCATION", "us-central1"),
			AccessToken: getEnv("GCP_ACCESS_TOKEN", ""),
		},
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", "generated-images"),
			Region:          getEnv("R2_REGION", "auto"),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://postarmory.vercel.app"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
