package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time parses duration values
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Required variables are enforced by must()
// and missing values cause the program to exit with a fatal log message;
// tunables fall back to the defaults the service ships with.
type Config struct {
    Env                 string        // application environment (e.g. "dev", "prod")
    Port                string        // HTTP port to listen on
    DBUser              string        // database username
    DBPass              string        // database password (optional)
    DBHost              string        // database host address
    DBPort              string        // database port number
    DBName              string        // database name
    DBMaxOpenConns      int           // connection pool ceiling
    DBMaxIdleConns      int           // idle connections kept around
    DBConnMaxLifetime   time.Duration // recycle age for pooled connections
    DBPingTimeout       time.Duration // bound on the startup connectivity check
    WeatherAPIKey       string        // API key for the weather provider
    WeatherAPIURL       string        // base URL of the weather provider
    WeatherTTL          time.Duration // freshness window for cached forecasts
    WeatherSweepEvery   time.Duration // period of the cache eviction loop
    WeatherAPITimeout   time.Duration // per-request timeout for provider calls
    ReservationCapacity int64         // max active reservations per restaurant
}

// Load reads configuration values from environment variables and
// returns a Config.
func Load() Config {
    return Config{
        Env:                 must("APP_ENV"),
        Port:                must("APP_PORT"),
        DBUser:              must("DB_USER"),
        DBPass:              os.Getenv("DB_PASS"), // empty allowed
        DBHost:              must("DB_HOST"),
        DBPort:              must("DB_PORT"),
        DBName:              must("DB_NAME"),
        DBMaxOpenConns:      envInt("DB_MAX_OPEN_CONNS", 25),
        DBMaxIdleConns:      envInt("DB_MAX_IDLE_CONNS", 25),
        DBConnMaxLifetime:   envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
        DBPingTimeout:       envDur("DB_PING_TIMEOUT", 5*time.Second),
        WeatherAPIKey:       must("WEATHER_API_KEY"),
        WeatherAPIURL:       envStr("WEATHER_API_URL", "https://api.weatherapi.com/v1"),
        WeatherTTL:          time.Duration(envInt("WEATHER_CACHE_TTL_HOURS", 24)) * time.Hour,
        WeatherSweepEvery:   envDur("WEATHER_SWEEP_INTERVAL", time.Hour),
        WeatherAPITimeout:   envDur("WEATHER_API_TIMEOUT", 5*time.Second),
        ReservationCapacity: int64(envInt("RESERVATION_CAPACITY", 200)),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// Shared helpers for optional variables with defaults.  Reused by the
// redis, cache and rate limit loaders in this package.
func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envBool(k string, d bool) bool {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    switch v {
    case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
        return true
    case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
        return dur
    }
    return d
}
