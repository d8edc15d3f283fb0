package config

import (
	"os"
	"strconv"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/models"
	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the location picker.
// It includes the environment, monitoring server port, geocoding provider
// selection, the default map region, GPS acquisition tuning, and the data
// directory for the recent-search store.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - Port: The port for the picker monitoring server.
// - ProviderType: The type of geocoding provider to use (photon, google).
// - APIKey: The API key for accessing external services (required for Google).
// - RateLimit: Requests per second allowed toward the geocoding provider.
// - DataDir: Directory for the embedded recent-search store (empty = in-memory).
// - Device: Device class the picker serves (desktop, mobile).
// - DefaultCenter: Region the map centers on when no coordinate is preset.
// - GPS: Timeouts and cached-fix ages for position acquisition.
type Config struct {
	Env           string            // Env is the current environment: local, dev, prod.
	Port          int               // Port is the picker monitoring server port.
	ProviderType  string            // ProviderType specifies which geocoding provider to use.
	APIKey        string            // The API key for accessing external services.
	RateLimit     int               // Requests per second toward the provider.
	DataDir       string            // Directory for the durable key-value store.
	Device        models.DeviceClass
	DefaultCenter models.Coordinate
	GPS           GPSConfig
}

// GPSConfig tunes position acquisition. Mobile devices get longer budgets to
// accommodate cold GPS starts.
type GPSConfig struct {
	DesktopTimeout time.Duration
	MobileTimeout  time.Duration
	DesktopMaxAge  time.Duration
	MobileMaxAge   time.Duration
}

// Timeout returns the acquisition timeout for the given device class.
func (g GPSConfig) Timeout(device models.DeviceClass) time.Duration {
	if device.IsMobile() {
		return g.MobileTimeout
	}
	return g.DesktopTimeout
}

// MaxAge returns the maximum cached-fix age for the given device class.
func (g GPSConfig) MaxAge(device models.DeviceClass) time.Duration {
	if device.IsMobile() {
		return g.MobileMaxAge
	}
	return g.DesktopMaxAge
}

// MustLoad loads the configuration from environment variables (with .env
// support) and returns a Config struct. It panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	healthPort, err := strconv.Atoi(setDefaultEnv("PINPOINT_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	rateLimit, err := strconv.Atoi(setDefaultEnv("PINPOINT_RATE_LIMIT", "5"))
	if err != nil {
		panic("failed to parse rate limit from configuration, must be an integer")
	}

	defaultLat, err := strconv.ParseFloat(setDefaultEnv("PINPOINT_DEFAULT_LAT", "-7.257500"), 64)
	if err != nil {
		panic("failed to parse default latitude from configuration")
	}

	defaultLng, err := strconv.ParseFloat(setDefaultEnv("PINPOINT_DEFAULT_LNG", "112.752100"), 64)
	if err != nil {
		panic("failed to parse default longitude from configuration")
	}

	center := models.Coordinate{Lat: defaultLat, Lng: defaultLng}
	if !center.Valid() {
		panic("default map center is outside the valid lat/lng range")
	}

	return &Config{
		Env:           setDefaultEnv("PINPOINT_ENV", "production"),
		Port:          healthPort,
		ProviderType:  setDefaultEnv("PINPOINT_PROVIDER_TYPE", "photon"),
		APIKey:        os.Getenv("PINPOINT_PROVIDER_KEY"),
		RateLimit:     rateLimit,
		DataDir:       os.Getenv("PINPOINT_DATA_DIR"),
		Device:        models.DeviceClass(setDefaultEnv("PINPOINT_DEVICE_CLASS", "desktop")),
		DefaultCenter: center,
		GPS: GPSConfig{
			DesktopTimeout: mustDuration("PINPOINT_GPS_TIMEOUT", "10s"),
			MobileTimeout:  mustDuration("PINPOINT_GPS_TIMEOUT_MOBILE", "20s"),
			DesktopMaxAge:  mustDuration("PINPOINT_GPS_MAX_AGE", "30s"),
			MobileMaxAge:   mustDuration("PINPOINT_GPS_MAX_AGE_MOBILE", "60s"),
		},
	}
}

func mustDuration(key, override string) time.Duration {
	value, err := time.ParseDuration(setDefaultEnv(key, override))
	if err != nil {
		panic("failed to parse " + key + " from configuration")
	}
	return value
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
