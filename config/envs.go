package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP            string  // Host IP for the server
	RESTPort          int     // Port for the REST API
	GinMode           string  // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret         string  // Secret key for session token signing
	JWTIssuer         string  // Issuer claim for session tokens
	RedisAddr         string  // Redis address for win broadcasts; empty disables Redis
	RedisChannel      string  // Redis channel win events are published on
	MazeRows          int     // Default maze rows
	MazeCols          int     // Default maze columns
	WorldWidth        float64 // World width in physics units
	WorldHeight       float64 // World height in physics units
	SessionTTLMinutes int     // Idle minutes before a session is evicted
}

// Envs holds the application's configuration loaded by Init.
var Envs Config

// Init loads the configuration into Envs. It must run before Envs is read.
func Init() {
	Envs = initConfig()
}

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:            getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:          getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:           getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:         mustGetEnv("JWT_SECRET"),
		JWTIssuer:         getEnvWithDefault("JWT_ISSUER", "tilt-maze"),
		RedisAddr:         getEnvWithDefault("REDIS_ADDR", ""),
		RedisChannel:      getEnvWithDefault("REDIS_CHANNEL", "maze:won"),
		MazeRows:          getEnvAsIntWithDefault("MAZE_ROWS", 10),
		MazeCols:          getEnvAsIntWithDefault("MAZE_COLS", 14),
		WorldWidth:        getEnvAsFloatWithDefault("WORLD_WIDTH", 840),
		WorldHeight:       getEnvAsFloatWithDefault("WORLD_HEIGHT", 600),
		SessionTTLMinutes: getEnvAsIntWithDefault("SESSION_TTL_MINUTES", 30),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault parses an integer environment variable, logging a fatal error if it is malformed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault parses a float environment variable, logging a fatal error if it is malformed.
func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}
