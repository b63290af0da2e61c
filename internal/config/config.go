package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits and normalizes list values
)

// Config holds all runtime configuration values.  Each field corresponds to
// one or more environment variables.  Required values are enforced by must();
// everything else falls back to a sensible default so a bare dev environment
// only needs the database and signing secret set up.
type Config struct {
	Env                 string   // application environment (e.g. "dev", "prod")
	Port                string   // HTTP port to listen on
	DBUser              string   // database username
	DBPass              string   // database password (optional)
	DBHost              string   // database host address
	DBPort              string   // database port number
	DBName              string   // database name
	JWTSecret           string   // secret used to sign session tokens
	SessionTTLDays      int      // session cookie/token lifetime in days
	BcryptCost          int      // bcrypt cost for password hashing
	AllowedEmailDomains []string // registration allow-list; empty means any domain
	AdminEmail          string   // bootstrap admin email (optional)
	AdminPassword       string   // bootstrap admin password
	AdminName           string   // bootstrap admin display name
	RetentionMonths     int      // reservations older than this many months are purged
	RetentionCron       string   // cron schedule for the in-process retention job
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:                 must("APP_ENV"),
		Port:                must("APP_PORT"),
		DBUser:              must("DB_USER"),
		DBPass:              os.Getenv("DB_PASS"), // empty allowed
		DBHost:              must("DB_HOST"),
		DBPort:              must("DB_PORT"),
		DBName:              must("DB_NAME"),
		JWTSecret:           must("JWT_SECRET"),
		SessionTTLDays:      getenvInt("SESSION_TTL_DAYS", 7),
		BcryptCost:          getenvInt("BCRYPT_COST", 10),
		AllowedEmailDomains: ParseDomains(os.Getenv("OFFICE_EMAIL_DOMAINS")),
		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		AdminPassword:       getenv("ADMIN_PASSWORD", "Admin@123"),
		AdminName:           getenv("ADMIN_NAME", "Admin"),
		RetentionMonths:     getenvInt("RETENTION_MONTHS", 6),
		RetentionCron:       getenv("RETENTION_CRON", "0 3 * * *"),
	}
}

// ParseDomains splits a comma-separated domain list into normalized entries.
// Blank items are dropped so trailing commas are harmless.
func ParseDomains(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
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

// getenv returns the variable's value or def when unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt is like getenv but converts the value to an integer.  Values that
// fail to parse fall back to the default rather than aborting startup.
func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
