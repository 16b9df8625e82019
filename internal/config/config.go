package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	GinMode       string
	MongoURI      string
	MongoDatabase string
	RabbitMQURI   string
	EventExchange string
	JWTSecret     string
	ServiceName   string

	// Proficiency update tuning. FeedbackRate scales the
	// relevance-weighted feedback rule; QuizSwing is the maximum
	// adjustment a whole-quiz outcome can apply to a skill.
	FeedbackRate float64
	QuizSwing    float64

	CORSOrigins []string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		GinMode:       getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "adaptlearn"),
		RabbitMQURI:   getEnvOrDefault("RABBITMQ_URI", ""),
		EventExchange: getEnvOrDefault("RABBITMQ_EXCHANGE", "adaptlearn.events"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "your-jwt-secret-key"),
		ServiceName:   getEnvOrDefault("SERVICE_NAME", "adaptlearn-service"),
		FeedbackRate:  getEnvFloat("FEEDBACK_LEARNING_RATE", 0.15),
		QuizSwing:     getEnvFloat("QUIZ_ADJUSTMENT_SWING", 0.2),
		CORSOrigins:   []string{getEnvOrDefault("CORS_ORIGIN", "http://localhost:3000")},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}
