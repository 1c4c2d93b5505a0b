package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MongoURI       string
	AdminPassword  string
	BaseURL        string
	StreamHGApiKey string
	EarnVidsApiKey string
	FileMoonApiKey string
	Production     bool
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No se pudo cargar el archivo .env, usando las variables de entorno del sistema")
	}

	return Config{
		Port:           getEnv("PORT", "3000"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		BaseURL:        getEnv("BASE_URL", "https://your-domain.vercel.app"),
		StreamHGApiKey: getEnv("STREAMHG_API_KEY", ""),
		EarnVidsApiKey: getEnv("EARNVIDS_API_KEY", ""),
		FileMoonApiKey: getEnv("FILEMOON_API_KEY", ""),
		Production:     getEnv("PRODUCTION", "false") == "true",
	}
}

// getEnv obtiene una variable de entorno o usa un valor por defecto

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
