// Package config carga la configuración desde variables de entorno, con
// defaults que permiten levantar todo localmente sin setup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ImageHost son las credenciales del hosting de imágenes. El BFF no sube
// archivos: las pasa tal cual a la UI, que sube directo.
type ImageHost struct {
	CloudName    string `json:"cloudName"`
	UploadPreset string `json:"uploadPreset"`
	Folder       string `json:"folder,omitempty"`
}

const (
	AuthModeDev     = "dev"     // identidad en headers X-Debug-User-ID / X-User-Role
	AuthModeBackend = "backend" // bearer token verificado contra /auth/me
)

type Config struct {
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	BackendBaseURL string
	BackendTimeout time.Duration // 0 = sin timeout
	BackendAPIKey  string

	AuthMode     string
	AuthCacheTTL time.Duration

	Timezone             string
	ChatPollInterval     time.Duration
	TrackingPollInterval time.Duration
	AgendaTTL            time.Duration

	CORSAllowedOrigins []string

	ImageHost ImageHost
}

func defaultConfig() Config {
	return Config{
		HTTPAddr:             ":8080",
		ReadTimeout:          5 * time.Second,
		WriteTimeout:         15 * time.Second,
		ShutdownTimeout:      10 * time.Second,
		BackendBaseURL:       "http://localhost:8081",
		AuthMode:             AuthModeDev,
		AuthCacheTTL:         time.Minute,
		Timezone:             "America/Argentina/Buenos_Aires",
		ChatPollInterval:     30 * time.Second,
		TrackingPollInterval: 30 * time.Second,
		AgendaTTL:            30 * time.Second,
		CORSAllowedOrigins:   []string{"http://localhost:5173"},
	}
}

// Load lee el entorno del BFF. Junta todos los errores de parseo.
func Load() (Config, error) {
	cfg := defaultConfig()
	var errs []error

	setStringFromEnv(&cfg.HTTPAddr, "HTTP_ADDR")
	setDurationFromEnv(&cfg.ReadTimeout, "HTTP_READ_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.WriteTimeout, "HTTP_WRITE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.ShutdownTimeout, "HTTP_SHUTDOWN_TIMEOUT", &errs)

	setStringFromEnv(&cfg.BackendBaseURL, "BACKEND_BASE_URL")
	setDurationFromEnv(&cfg.BackendTimeout, "BACKEND_TIMEOUT", &errs)
	cfg.BackendAPIKey = strings.TrimSpace(os.Getenv("BACKEND_API_KEY"))

	if v := os.Getenv("AUTH_MODE"); v != "" {
		cfg.AuthMode = strings.ToLower(strings.TrimSpace(v))
	}
	setDurationFromEnv(&cfg.AuthCacheTTL, "AUTH_CACHE_TTL", &errs)

	setStringFromEnv(&cfg.Timezone, "APP_TIMEZONE")
	setDurationFromEnv(&cfg.ChatPollInterval, "CHAT_POLL_INTERVAL", &errs)
	setDurationFromEnv(&cfg.TrackingPollInterval, "TRACKING_POLL_INTERVAL", &errs)
	setDurationFromEnv(&cfg.AgendaTTL, "AGENDA_CACHE_TTL", &errs)

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitAndTrim(v)
	}

	cfg.ImageHost = ImageHost{
		CloudName:    strings.TrimSpace(os.Getenv("IMAGE_HOST_CLOUD_NAME")),
		UploadPreset: strings.TrimSpace(os.Getenv("IMAGE_HOST_UPLOAD_PRESET")),
		Folder:       strings.TrimSpace(os.Getenv("IMAGE_HOST_FOLDER")),
	}

	if cfg.AuthMode != AuthModeDev && cfg.AuthMode != AuthModeBackend {
		errs = append(errs, fmt.Errorf("AUTH_MODE must be %q or %q", AuthModeDev, AuthModeBackend))
	}
	if cfg.BackendTimeout < 0 {
		errs = append(errs, fmt.Errorf("BACKEND_TIMEOUT must be >= 0"))
	}
	if cfg.ChatPollInterval <= 0 {
		errs = append(errs, fmt.Errorf("CHAT_POLL_INTERVAL must be > 0"))
	}
	if cfg.TrackingPollInterval <= 0 {
		errs = append(errs, fmt.Errorf("TRACKING_POLL_INTERVAL must be > 0"))
	}

	return cfg, errors.Join(errs...)
}

type DevBackendConfig struct {
	HTTPAddr string

	// Vacíos = stores en memoria.
	DBDSN         string
	RedisAddr     string
	RedisPassword string
	RouteTTL      time.Duration
}

func LoadDevBackend() (DevBackendConfig, error) {
	cfg := DevBackendConfig{
		HTTPAddr: ":8081",
		RouteTTL: 24 * time.Hour,
	}
	var errs []error

	setStringFromEnv(&cfg.HTTPAddr, "DEVBACKEND_ADDR")
	cfg.DBDSN = strings.TrimSpace(os.Getenv("DB_DSN"))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	setDurationFromEnv(&cfg.RouteTTL, "REDIS_ROUTE_TTL", &errs)

	return cfg, errors.Join(errs...)
}

// LoadDotEnv carga los archivos .env indicados (o ./.env). Que no exista no
// es error; las variables ya definidas en el entorno ganan.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func setDurationFromEnv(target *time.Duration, key string, errs *[]error) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = d
	}
}

func setStringFromEnv(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func splitAndTrim(v string) []string {
	raw := strings.Split(v, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
