package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings needed to run the server.
type Configuration struct {
	Address        string `env:"ADDRESS" envDefault:"8000"`        // Listen port
	BodyLimitMB    int    `env:"BODY_LIMIT_MB" envDefault:"512"`   // Max request body, uploads included
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"true"`  // Secure flag on auth cookies
	FrontendDomain string `env:"COOKIE_DOMAIN" envDefault:""`      // Cookie domain, empty = host only

	// Tokens
	AccessTokenSecret  string `env:"ACCESS_TOKEN_SECRET,required"`
	AccessTokenExpiry  string `env:"ACCESS_TOKEN_EXPIRY" envDefault:"15m"`
	RefreshTokenSecret string `env:"REFRESH_TOKEN_SECRET,required"`
	RefreshTokenExpiry string `env:"REFRESH_TOKEN_EXPIRY" envDefault:"240h"`
	TokenIssuer        string `env:"TOKEN_ISSUER" envDefault:"yoto"`

	// MongoDB
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"yoto"`

	// HTTP
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Comma separated, * = all
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Allow cookies cross-origin
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Requests per window (0 = disabled)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Window in seconds
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	// Object storage (S3 compatible)
	S3_Endpoint      string `env:"S3_ENDPOINT"`                     // Custom endpoint for MinIO/R2, empty = AWS
	S3_Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	S3_Bucket        string `env:"S3_BUCKET"`
	S3_AccessKey     string `env:"S3_ACCESS_KEY"`
	S3_SecretKey     string `env:"S3_SECRET_KEY"`
	S3_PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`              // Prefix for public object URLs
	S3_UsePathStyle  bool   `env:"S3_USE_PATH_STYLE" envDefault:"true"`

	// Media
	MediaTempDir       string `env:"MEDIA_TEMP_DIR" envDefault:"public/temp"`
	MediaUploadTimeout string `env:"MEDIA_UPLOAD_TIMEOUT" envDefault:"120s"`
	FFProbePath        string `env:"FFPROBE_PATH" envDefault:"ffprobe"`
	TempSweepInterval  string `env:"MEDIA_TEMP_SWEEP_INTERVAL" envDefault:"10m"`
	TempMaxAge         string `env:"MEDIA_TEMP_MAX_AGE" envDefault:"1h"` // staged files older than this are orphans
}

// AccessTokenTTL parses AccessTokenExpiry, falling back to 15 minutes.
func (c *Configuration) AccessTokenTTL() time.Duration {
	return parseDuration(c.AccessTokenExpiry, 15*time.Minute)
}

// RefreshTokenTTL parses RefreshTokenExpiry, falling back to 10 days.
func (c *Configuration) RefreshTokenTTL() time.Duration {
	return parseDuration(c.RefreshTokenExpiry, 240*time.Hour)
}

// UploadTimeout parses MediaUploadTimeout, falling back to 2 minutes.
func (c *Configuration) UploadTimeout() time.Duration {
	return parseDuration(c.MediaUploadTimeout, 2*time.Minute)
}

// TempSweep returns how often the temp sweeper runs and the age after which
// staged files are removed.
func (c *Configuration) TempSweep() (interval, maxAge time.Duration) {
	return parseDuration(c.TempSweepInterval, 10*time.Minute), parseDuration(c.TempMaxAge, time.Hour)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// getEnvPath returns config/env/<GO_ENV>.env, searching upwards from the working directory.
func getEnvPath() string {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// logger may not be initialised yet
		fmt.Printf("Cannot get working directory: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads the env file for the current GO_ENV, then parses the process environment.
// A missing env file falls back to the process environment.
func NewConfig() *Configuration {
	if envPath := getEnvPath(); envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Cannot load env file at %s: %v\n", envPath, err)
		}
	} else {
		fmt.Printf("config/env directory not found, using process environment\n")
	}

	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() *Configuration {
	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Failed to parse config: %+v\n", err)
		return nil
	}
	return &cfg
}
