package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  The DB* settings belong to
// the storage collaborator; the Validate* flags control the one-off
// consistency pass that runs over the loaded data at startup.
type Config struct {
	Env    string // application environment (e.g. "dev", "prod")
	Port   string // HTTP port to listen on
	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	Prefill       bool // seed an empty database with demonstration data
	ValidatePurge bool // mirror validator removals back to the database (destructive)
	StrictOverlap bool // use the corrected symmetric overlap predicate
	QueueConsumer bool // run the booking.confirmed log consumer in-process
}

// Load reads configuration values from the environment, after loading
// a .env file when one is present.  Required variables are enforced
// by must() and missing values cause the program to exit with a fatal
// log message.
func Load() Config {
	// A missing .env file is fine; deployed environments set
	// variables directly.
	_ = godotenv.Load()

	return Config{
		Env:    must("APP_ENV"),
		Port:   must("APP_PORT"),
		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),

		Prefill:       envBool("PREFILL", true),
		ValidatePurge: envBool("VALIDATE_PURGE", false),
		StrictOverlap: envBool("VALIDATE_STRICT_OVERLAP", false),
		QueueConsumer: envBool("QUEUE_CONSUMER", false),
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

// envBool reads an optional boolean environment variable, falling back
// to the given default when unset or unparsable.
func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
