package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the recommendation service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP server.
// - GeocoderType: The type of geocoding provider to use (google, nominatim, static).
// - GeocoderKey: The API key for the geocoding provider (required for Google).
// - PlacesKey: The API key for the online places provider; empty disables the online path.
// - CatalogSource: Where the offline dataset is loaded from (csv, postgres).
// - DatasetPath: Path to the offline dataset file for the csv source.
// - DefaultRadius: Search radius in meters applied when a request omits one.
// - MaxResults: Cap on the number of returned places.
// - RequestTimeout: Bound on a single recommendation request.
// - Database: Configuration settings for the PostgreSQL catalog source.
type Config struct {
	Env            string
	Port           int
	GeocoderType   string
	GeocoderKey    string
	PlacesKey      string
	CatalogSource  string
	DatasetPath    string
	DefaultRadius  float64
	MaxResults     int
	RequestTimeout time.Duration
	Database       PostgresConfig
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad loads the configuration from the environment (with optional
// .env support) and returns a Config struct. It panics when a value
// cannot be parsed. Absent provider keys are not an error: they switch
// the service into its degraded modes instead of crashing the process.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("COMPASS_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for the HTTP server from configuration")
	}

	radius, err := strconv.ParseFloat(setDefaultEnv("COMPASS_DEFAULT_RADIUS", "8000"), 64)
	if err != nil {
		panic("failed to parse default radius from configuration")
	}

	maxResults, err := strconv.Atoi(setDefaultEnv("COMPASS_MAX_RESULTS", "12"))
	if err != nil {
		panic("failed to parse max results from configuration, must be an integer type")
	}

	timeout, err := time.ParseDuration(setDefaultEnv("COMPASS_REQUEST_TIMEOUT", "15s"))
	if err != nil {
		panic("failed to parse request timeout from configuration")
	}

	return &Config{
		Env:            setDefaultEnv("COMPASS_ENV", "production"),
		Port:           port,
		GeocoderType:   setDefaultEnv("COMPASS_GEOCODER_TYPE", "nominatim"),
		GeocoderKey:    os.Getenv("COMPASS_GEOCODER_KEY"),
		PlacesKey:      os.Getenv("COMPASS_PLACES_KEY"),
		CatalogSource:  setDefaultEnv("COMPASS_CATALOG_SOURCE", "csv"),
		DatasetPath:    os.Getenv("COMPASS_DATASET_PATH"),
		DefaultRadius:  radius,
		MaxResults:     maxResults,
		RequestTimeout: timeout,
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
