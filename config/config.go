package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Auth         Auth
	Quiz         Quiz
	Mail         Mail
	Storage      Storage
	LogLevel     string
	GeminiApiKey string
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Auth struct {
	JWTSecret string
}

type Quiz struct {
	SubmitGrace   time.Duration
	SweepSchedule string
}

// Storage limits which uploaded answer files the server will download.
type Storage struct {
	AllowedHosts []string
	MaxFileBytes int64
}

type Mail struct {
	SendgridApiKey string
	FromName       string
	FromEmail      string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("QUIZ_SUBMIT_GRACE", "30s")
	v.SetDefault("QUIZ_SWEEP_SCHEDULE", "@every 10s")
	v.SetDefault("MAIL_FROM_NAME", "Nihongo")
	v.SetDefault("MAIL_FROM", "noreply@localhost")
	v.SetDefault("STORAGE_MAX_FILE_BYTES", 20<<20)
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.GinMode = v.GetString("GIN_MODE")

	config.Database.Driver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")

	config.Auth.JWTSecret = v.GetString("JWT_SECRET")

	config.Quiz.SubmitGrace = v.GetDuration("QUIZ_SUBMIT_GRACE")
	config.Quiz.SweepSchedule = v.GetString("QUIZ_SWEEP_SCHEDULE")

	config.Mail.SendgridApiKey = v.GetString("SENDGRID_API_KEY")
	config.Mail.FromName = v.GetString("MAIL_FROM_NAME")
	config.Mail.FromEmail = v.GetString("MAIL_FROM")

	config.Storage.AllowedHosts = splitList(v.GetString("STORAGE_ALLOWED_HOSTS"))
	config.Storage.MaxFileBytes = v.GetInt64("STORAGE_MAX_FILE_BYTES")

	config.LogLevel = v.GetString("LOG_LEVEL")
	config.GeminiApiKey = v.GetString("GEMINI_API_KEY")

	if config.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set. Every authenticated request will be rejected.")
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("db_driver", config.Database.Driver).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Dur("submit_grace", config.Quiz.SubmitGrace).
		Str("sweep_schedule", config.Quiz.SweepSchedule).
		Bool("gemini_enabled", config.GeminiApiKey != "").
		Bool("mail_enabled", config.Mail.SendgridApiKey != "").
		Strs("storage_hosts", config.Storage.AllowedHosts).
		Msg("Config loaded")
	return &config
}

// splitList reads a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}
