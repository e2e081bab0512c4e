package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Data sources for the three tables.
const (
	SourceFiles    = "files"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataDir     string
	RentFile    string
	RentSheet   string
	VenuesFile  string
	GroupsFile  string
	GeoJSONFile string
	DataSource  string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	HTTPAddr string

	DefaultRecommendations int
	MaxRecommendations     int
	RentSliderMin          int
	RentSliderMax          int
	RentSliderStep         int
	VenueSampleStride      int

	LogLevel  string
	LogFormat string

	MaxRetries     int
	MaxConcurrency int

	ChromeBin      string
	SnapshotWidth  int
	SnapshotHeight int
	SnapshotDir    string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DataDir:     getEnv("DATA_DIR", "./data"),
		RentFile:    getEnv("RENT_FILE", "ldn_rents.csv"),
		RentSheet:   getEnv("RENT_SHEET", ""),
		VenuesFile:  getEnv("VENUES_FILE", "ldn_venues_raw.csv"),
		GroupsFile:  getEnv("GROUPS_FILE", "ldn_groups_norm.csv"),
		GeoJSONFile: getEnv("GEOJSON_FILE", "london_boroughs_proper.geojson"),
		DataSource:  getEnv("DATA_SOURCE", SourceFiles),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "boroughs"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "boroughs123"),
		PostgresDB:       getEnv("POSTGRES_DB", "borough_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		HTTPAddr: getEnv("HTTP_ADDR", ":8050"),

		DefaultRecommendations: getEnvInt("DEFAULT_RECOMMENDATIONS", 5),
		MaxRecommendations:     getEnvInt("MAX_RECOMMENDATIONS", 6),
		RentSliderMin:          getEnvInt("RENT_SLIDER_MIN", 0),
		RentSliderMax:          getEnvInt("RENT_SLIDER_MAX", 3200),
		RentSliderStep:         getEnvInt("RENT_SLIDER_STEP", 200),
		VenueSampleStride:      getEnvInt("VENUE_SAMPLE_STRIDE", 10),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),

		ChromeBin:      getEnv("CHROME_BIN", ""),
		SnapshotWidth:  getEnvInt("SNAPSHOT_WIDTH", 1280),
		SnapshotHeight: getEnvInt("SNAPSHOT_HEIGHT", 800),
		SnapshotDir:    getEnv("SNAPSHOT_DIR", "./output"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// DataPath resolves a table file name against DataDir. Absolute names are
// returned unchanged.
func (c *Config) DataPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
