package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr        string
	DataDir           string
	ImagePath         string
	StorageBackend    string
	DBPath            string
	LockPolicy        string
	PruneImages       bool
	IDScheme          string
	AdminPassword     string
	AdminPasswordHash string
	SessionTTL        time.Duration
	ShutdownTimeout   time.Duration
	LogLevel          string
	LogFile           string
	LogFormat         string
}

func Load() *Config {
	dataDir := getEnv("DATA_DIR", "data")
	return &Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		DataDir:           dataDir,
		ImagePath:         getEnv("IMAGE_DIR", filepath.Join(dataDir, "images")),
		StorageBackend:    getEnv("STORAGE_BACKEND", "file"),
		DBPath:            getEnv("DB_PATH", filepath.Join(dataDir, "spotshare.db")),
		LockPolicy:        getEnv("LOCK_POLICY", "mutex"),
		PruneImages:       getBool("PRUNE_IMAGES", false),
		IDScheme:          getEnv("ID_SCHEME", "uuid"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionTTL:        getDuration("SESSION_TTL", 12*time.Hour),
		ShutdownTimeout:   getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", ""),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
