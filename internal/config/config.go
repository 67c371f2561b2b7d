package config

import (
	"log"
	"os"
	"strconv"
)

const (
	DefaultPostsPerPage = 10
	// One form submission every two seconds per client IP, bursts of five.
	DefaultFormRate  = 0.5
	DefaultFormBurst = 5
)

type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	PostsPerPage  int
	CORSOrigin    string
	FormRate      float64
	FormBurst     int
}

// Load reads configuration from the environment. godotenv has already been
// applied by the caller, so .env values show up here too.
func Load() *Config {
	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   getenv("DATABASE_URL", "sqlite://blogicum.db"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		PostsPerPage:  DefaultPostsPerPage,
		CORSOrigin:    getenv("CORS_ORIGIN", "*"),
		FormRate:      DefaultFormRate,
		FormBurst:     DefaultFormBurst,
	}

	if cfg.SessionSecret == "" {
		log.Println("SESSION_SECRET not set, using an insecure development key")
		cfg.SessionSecret = "secret_key_change_me"
	}

	if v := os.Getenv("POSTS_PER_PAGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Printf("Invalid POSTS_PER_PAGE %q, using %d", v, DefaultPostsPerPage)
		} else {
			cfg.PostsPerPage = n
		}
	}

	if v := os.Getenv("FORM_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			log.Printf("Invalid FORM_RATE_LIMIT %q, using %v", v, DefaultFormRate)
		} else {
			cfg.FormRate = f
		}
	}

	if v := os.Getenv("FORM_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Printf("Invalid FORM_RATE_BURST %q, using %d", v, DefaultFormBurst)
		} else {
			cfg.FormBurst = n
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
