package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("Initializing app...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	ctx := context.Background()
	log.Info().Str("DB_TYPE", cfg.Database.Type).Msg("opening document store")

	store, done, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	if done {
		return
	}
	currentDB := database.New(store)
	defer func() {
		if err := currentDB.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("error closing document store")
		}
	}()

	mailer := services.NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.FromEmail)
	if !mailer.Configured() {
		log.Warn().Msg("RESEND_API_KEY or RESEND_FROM_EMAIL not set, contact messages will fail")
	}
	var notifier services.Notifier
	if n := services.NewTwilioNotifier(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.FromNumber, cfg.SMS.ToNumber); n != nil {
		notifier = n
	}
	recipient := cfg.Mail.Recipient
	if recipient == "" {
		recipient = cfg.Admin.Email
	}

	server, err := api.NewServer(cfg, api.Dependencies{
		Database:    currentDB,
		Sessions:    auth.NewSessions(cfg.Admin.SessionSecret, cfg.SessionTTL()),
		Credentials: auth.NewCredentials(cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password),
		Contact:     services.NewContactService(mailer, notifier, recipient),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing server")
	}

	// Buffered so the listener can still report after shutdown has begun.
	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// openStore connects the configured document store. done is true when a maintenance
// mode (GENERATE_MODELS, GENERATE_COLUMN_REPORT) ran and the process should exit.
func openStore(ctx context.Context, cfg *config.Config) (database.DocumentStore, bool, error) {
	switch cfg.Database.Type {
	case "mongo":
		mongoStore, err := database.NewMongoStore(ctx, cfg.Database.MongoURI)
		if err != nil {
			return nil, false, err
		}
		if err := mongoStore.Initialize(ctx, models.Sections()); err != nil {
			return nil, false, err
		}
		return mongoStore, false, nil

	case "supa":
		log.Info().Msg("Connecting to Supabase database...")
		db, err := database.OpenPostgres(cfg.Database)
		if err != nil {
			return nil, false, err
		}

		// If generating models, run generation and exit
		if cfg.GenerateModels {
			log.Info().Msg("Generating models and query helpers...")
			return nil, true, models.GenerateModels(db)
		}
		// If generating column mismatch report, run report and exit
		if cfg.GenerateColumnReport {
			log.Info().Msg("Generating column mismatch report...")
			_, err := models.GenerateColumnMismatchReport(db)
			return nil, true, err
		}

		pgStore := database.NewPostgresStore(db)
		if err := pgStore.Migrate(ctx); err != nil {
			return nil, false, fmt.Errorf("migrating documents table: %w", err)
		}
		return pgStore, false, nil

	case "memory":
		log.Warn().Msg("using in-memory document store, content is lost on restart")
		return database.NewMemoryStore(), false, nil

	default:
		return nil, false, fmt.Errorf("unsupported DB_TYPE %q", cfg.Database.Type)
	}
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
