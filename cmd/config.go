package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"restaurant/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	LocalAuth    = "local"
	FirebaseAuth = "firebase"
)

type Config struct {
	Env      string
	LogLevel string
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	ListenerMinReconnect time.Duration
	ListenerMaxReconnect time.Duration

	StateFile      string
	StoreTimezone  string
	FallbackTenant string

	AuthProvider            string
	JWTSecret               string
	JWTIssuer               string
	TokenTTL                time.Duration
	FirebaseProjectID       string
	FirebaseAPIKey          string
	FirebaseCredentialsFile string

	MaintenanceSchedule string
	SweepPause          time.Duration
	BackgroundTimeout   time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("LISTENER_MIN_RECONNECT", 10*time.Second)
	v.SetDefault("LISTENER_MAX_RECONNECT", time.Minute)
	v.SetDefault("STATE_FILE", "restaurant.db")
	v.SetDefault("STORE_TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("AUTH_PROVIDER", LocalAuth)
	v.SetDefault("JWT_ISSUER", "restaurant")
	v.SetDefault("TOKEN_TTL", time.Hour)
	v.SetDefault("MAINTENANCE_SCHEDULE", "@hourly")
	v.SetDefault("SWEEP_PAUSE", 100*time.Millisecond)
	v.SetDefault("BACKGROUND_TIMEOUT", 30*time.Second)
}

// LoadConfig reads envFile when it exists and then the process environment,
// which takes precedence.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		Env:      v.GetString("ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),
		HTTPPort: v.GetString("HTTP_PORT"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),

		ListenerMinReconnect: v.GetDuration("LISTENER_MIN_RECONNECT"),
		ListenerMaxReconnect: v.GetDuration("LISTENER_MAX_RECONNECT"),

		StateFile:      v.GetString("STATE_FILE"),
		StoreTimezone:  v.GetString("STORE_TIMEZONE"),
		FallbackTenant: v.GetString("FALLBACK_TENANT"),

		AuthProvider:            strings.ToLower(v.GetString("AUTH_PROVIDER")),
		JWTSecret:               v.GetString("JWT_SECRET"),
		JWTIssuer:               v.GetString("JWT_ISSUER"),
		TokenTTL:                v.GetDuration("TOKEN_TTL"),
		FirebaseProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
		FirebaseAPIKey:          v.GetString("FIREBASE_API_KEY"),
		FirebaseCredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),

		MaintenanceSchedule: v.GetString("MAINTENANCE_SCHEDULE"),
		SweepPause:          v.GetDuration("SWEEP_PAUSE"),
		BackgroundTimeout:   v.GetDuration("BACKGROUND_TIMEOUT"),
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var all []error
	if c.DBName == "" {
		all = append(all, errs.NewValueIsRequiredError("DB_NAME"))
	}
	if c.DBUser == "" {
		all = append(all, errs.NewValueIsRequiredError("DB_USER"))
	}
	if _, err := time.LoadLocation(c.StoreTimezone); err != nil {
		all = append(all, errs.NewValueIsInvalidErrorWithCause("STORE_TIMEZONE", err))
	}

	switch c.AuthProvider {
	case LocalAuth:
		if c.JWTSecret == "" {
			all = append(all, errs.NewValueIsRequiredError("JWT_SECRET"))
		}
	case FirebaseAuth:
		if c.FirebaseAPIKey == "" {
			all = append(all, errs.NewValueIsRequiredError("FIREBASE_API_KEY"))
		}
	default:
		all = append(all, errs.NewValueIsInvalidErrorWithCause("AUTH_PROVIDER",
			fmt.Errorf("%q is neither %q nor %q", c.AuthProvider, LocalAuth, FirebaseAuth)))
	}

	return errors.Join(all...)
}

// DSN is the libpq connection string of the store.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Location is the validated store time zone.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.StoreTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
