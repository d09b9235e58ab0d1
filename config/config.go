package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	MYSQL_DSN      = ""                          // MySQL will be used if this is set
	SQLITE_FILE    = "travelog.db"               // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS   = "0.0.0.0:8080"
	TLS_DOMAINS    = ""                          // e.g. "example.com,example2.com"
	DEBUG_MODE     = true
	PHOTO_DIR      = "/var/lib/travelog/photos" // Used for creating the initial photo bucket
	GOOGLE_API_KEY = ""                          // Google Places API credential

	// External Places API tuning
	PLACES_TIMEOUT_SECONDS = 10
	PLACES_MAX_RETRIES     = 2   // additional attempts on transient errors only
	PHOTO_MAX_WIDTH_PX     = 400 // requested from the API and enforced on stored payloads
	MAX_PHOTOS_PER_PLACE   = 2

	// JWT settings
	JWT_SECRET             = ""
	JWT_EXPIRATION_MINUTES = 60
)

func init() {
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("PHOTO_DIR", &PHOTO_DIR)
	readEnvString("GOOGLE_API_KEY", &GOOGLE_API_KEY)
	readEnvInt("PLACES_TIMEOUT_SECONDS", &PLACES_TIMEOUT_SECONDS)
	readEnvInt("PLACES_MAX_RETRIES", &PLACES_MAX_RETRIES)
	readEnvInt("PHOTO_MAX_WIDTH_PX", &PHOTO_MAX_WIDTH_PX)
	readEnvInt("MAX_PHOTOS_PER_PLACE", &MAX_PHOTOS_PER_PLACE)
	readEnvString("JWT_SECRET", &JWT_SECRET)
	readEnvInt("JWT_EXPIRATION_MINUTES", &JWT_EXPIRATION_MINUTES)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
