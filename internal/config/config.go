package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort         = "8080"
	defaultZkParkAPIURL = "https://zkpark-b3df457d7927.herokuapp.com"
	defaultHumanityURL  = "https://issuer.humanity.org/credentials/issue"
	defaultSenderName   = "ZKpark"
	defaultHTTPTimeout  = 15 * time.Second
	defaultJobSchedule  = "@every 5m"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	ZkParkAPIURL string

	VisionAPIKey   string
	VisionEndpoint string

	HumanityAPIURL string
	HumanityAPIKey string

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	HTTPTimeout time.Duration
	SampleTrips bool
	JobSchedule string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{
		Port:              getEnv("PORT", defaultPort),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		SupabaseURL:       os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:   os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseJWTSecret: os.Getenv("SUPABASE_JWT_SECRET"),
		ZkParkAPIURL:      getEnv("ZKPARK_API_URL", defaultZkParkAPIURL),
		VisionAPIKey:      os.Getenv("GOOGLE_VISION_API_KEY"),
		VisionEndpoint:    os.Getenv("GOOGLE_VISION_ENDPOINT"),
		HumanityAPIURL:    getEnv("HUMANITY_API_URL", defaultHumanityURL),
		HumanityAPIKey:    os.Getenv("HUMANITY_API_KEY"),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", defaultSenderName),
		JobSchedule:       getEnv("JOB_SCHEDULE", defaultJobSchedule),
	}

	timeout, err := parseDuration("HTTP_TIMEOUT", defaultHTTPTimeout)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	sample, err := parseBool("SAMPLE_TRIPS", true)
	if err != nil {
		return nil, err
	}
	cfg.SampleTrips = sample

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET not set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}
