package config

import (
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog/log"
)

// Config is the full process configuration, read from the environment.
type Config struct {
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	Port                string   `env:"PORT" env-default:"8080"`
	ReadTimeoutSeconds  int      `env:"READ_TIMEOUT_SECONDS" env-default:"180"`
	WriteTimeoutSeconds int      `env:"WRITE_TIMEOUT_SECONDS" env-default:"180"`
	IdleTimeoutSeconds  int      `env:"IDLE_TIMEOUT_SECONDS" env-default:"180"`
	AcceptedOrigins     []string `env:"ACCEPTED_ORIGINS" env-separator:","`
	MaxBodyBytes        int64    `env:"MAX_BODY_BYTES" env-default:"10485760"`

	Database Database
	Admin    Admin
	Mail     Mail
	SMS      SMS

	AdminStaticDir       string `env:"ADMIN_STATIC_DIR"`
	GenerateModels       bool   `env:"GENERATE_MODELS" env-default:"false"`
	GenerateColumnReport bool   `env:"GENERATE_COLUMN_REPORT" env-default:"false"`
}

type Database struct {
	// Type selects the document store: mongo, supa (postgres) or memory.
	Type       string   `env:"DB_TYPE" env-default:"mongo"`
	MongoURI   string   `env:"MONGODB_URI" env-default:"mongodb://localhost:27017/portfolio"`
	Host       string   `env:"SUPABASE_DB_HOST"`
	User       string   `env:"SUPABASE_DB_USER"`
	Password   string   `env:"SUPABASE_DB_PASSWORD"`
	Name       string   `env:"SUPABASE_DB_NAME"`
	DBPort     string   `env:"SUPABASE_DB_PORT" env-default:"5432"`
	ReplicaDSN []string `env:"DB_REPLICA_DSNS" env-separator:";"`
}

type Admin struct {
	Email                string `env:"ADMIN_EMAIL"`
	Password             string `env:"ADMIN_PASSWORD"`
	Name                 string `env:"ADMIN_NAME" env-default:"Admin"`
	SessionSecret        string `env:"SESSION_SECRET"`
	SessionTTLHours      int    `env:"SESSION_TTL_HOURS" env-default:"24"`
	SecureCookies        bool   `env:"SECURE_COOKIES" env-default:"false"`
	RequireAuthForWrites bool   `env:"REQUIRE_AUTH_FOR_WRITES" env-default:"true"`
}

type Mail struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromEmail    string `env:"RESEND_FROM_EMAIL"`
	Recipient    string `env:"CONTACT_RECIPIENT"`
}

type SMS struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `env:"TWILIO_FROM_NUMBER"`
	ToNumber   string `env:"TWILIO_TO_NUMBER"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded, using process environment")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.AcceptedOrigins = trimAll(cfg.AcceptedOrigins)
	cfg.Database.ReplicaDSN = trimAll(cfg.Database.ReplicaDSN)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Admin.Email == "" {
		return errs.NewConfigMissingError("ADMIN_EMAIL")
	}
	if c.Admin.Password == "" {
		return errs.NewConfigMissingError("ADMIN_PASSWORD")
	}
	if c.Admin.SessionSecret == "" {
		return errs.NewConfigMissingError("SESSION_SECRET")
	}
	if c.Admin.SessionTTLHours <= 0 {
		return errs.NewConfigInvalidError("SESSION_TTL_HOURS", "must be positive")
	}
	switch c.Database.Type {
	case "mongo", "supa", "memory":
	default:
		return errs.NewConfigInvalidError("DB_TYPE", "must be one of mongo, supa, memory")
	}
	return nil
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Admin.SessionTTLHours) * time.Hour
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// PostgresDSN builds the connection string for DB_TYPE=supa.
func (d Database) PostgresDSN() string {
	return "host=" + d.Host + " user=" + d.User + " password=" + d.Password +
		" dbname=" + d.Name + " port=" + d.DBPort + " sslmode=require"
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
