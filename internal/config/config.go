package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort string
	JWTSecret  string
	JWTExpiry  int // hours
	LogLevel   string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Cloud project / identity
	GoogleCloudProject     string
	FirebaseProjectID      string
	FirebaseWebAPIKey      string
	ApplicationCredentials string
	VertexAILocation       string

	// Generative AI
	GeminiAPIKey string
	ImageModel   string
	VisionModel  string
	TTSModel     string

	// Object storage
	StorageBucketName string
	StorageRoot       string

	// Operational tools
	APIBaseURL    string
	TestUserToken string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiry:  getEnvInt("JWT_EXPIRY_HOURS", 24),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "aac_user"),
		DBPassword: getEnv("DB_PASSWORD", "aac_pass"),
		DBName:     getEnv("DB_NAME", "aac_db"),

		GoogleCloudProject:     getEnv("GOOGLE_CLOUD_PROJECT", ""),
		FirebaseProjectID:      getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseWebAPIKey:      getEnv("FIREBASE_WEB_API_KEY", ""),
		ApplicationCredentials: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		VertexAILocation:       getEnv("VERTEX_AI_LOCATION", "us-central1"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		ImageModel:   getEnv("IMAGE_MODEL", "gemini-2.5-flash-image-preview"),
		VisionModel:  getEnv("VISION_MODEL", "gemini-2.5-flash"),
		TTSModel:     getEnv("TTS_MODEL", "gemini-2.5-flash-preview-tts"),

		StorageBucketName: getEnv("STORAGE_BUCKET_NAME", ""),
		StorageRoot:       getEnv("STORAGE_ROOT", "./data/storage"),

		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080"),
		TestUserToken: getEnv("TEST_USER_TOKEN", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}
