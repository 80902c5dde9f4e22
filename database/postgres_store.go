package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// OpenPostgres connects to the Supabase postgres database, registering any read replicas.
func OpenPostgres(cfg config.Database) (*gorm.DB, error) {
	gormLogger := logger.New(
		&log.Logger,
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.PostgresDSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if len(cfg.ReplicaDSN) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.ReplicaDSN))
		for _, dsn := range cfg.ReplicaDSN {
			replicas = append(replicas, postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("registering read replicas: %w", err)
		}
		log.Info().Int("replicas", len(replicas)).Msg("read replicas registered")
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return nil, fmt.Errorf("enabling pgcrypto extension: %w", err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("testing database connection: %w", err)
	}
	return db, nil
}

// PostgresStore keeps all sections in one documents table with a jsonb body per row.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates or updates the documents table.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	return p.db.WithContext(ctx).AutoMigrate(&models.StoredDocument{})
}

// sortColumn maps a document sort field to its column.
func sortColumn(field string) string {
	if field == models.FieldCreatedAt {
		return "created_at"
	}
	return "last_modified"
}

func (p *PostgresStore) FindByKey(ctx context.Context, collection, key string) (models.Document, error) {
	var row models.StoredDocument
	err := p.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewStoreUnavailable("find", collection, err)
	}
	return row.ToDocument(), nil
}

func (p *PostgresStore) ReplaceByKey(ctx context.Context, collection, key string, doc models.Document) error {
	modified := timeOr(doc.Time(models.FieldLastModified), time.Now())
	row := models.StoredDocument{
		ID:           uuid.New(),
		Collection:   collection,
		Key:          &key,
		Body:         datatypes.JSONMap(bodyOf(doc)),
		CreatedAt:    modified,
		LastModified: modified,
	}

	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "last_modified"}),
	}).Create(&row).Error
	if err != nil {
		return errs.NewStoreUnavailable("replace", collection, err)
	}
	return nil
}

func (p *PostgresStore) FindAll(ctx context.Context, collection, sortField string) ([]models.Document, error) {
	var rows []models.StoredDocument
	err := p.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order(sortColumn(sortField) + " DESC").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errs.NewStoreUnavailable("list", collection, err)
	}

	out := make([]models.Document, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDocument())
	}
	return out, nil
}

func (p *PostgresStore) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	row := models.StoredDocument{
		ID:           uuid.New(),
		Collection:   collection,
		Body:         datatypes.JSONMap(bodyOf(doc)),
		CreatedAt:    timeOr(doc.Time(models.FieldCreatedAt), time.Now()),
		LastModified: timeOr(doc.Time(models.FieldLastModified), time.Now()),
	}
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", errs.NewStoreUnavailable("insert", collection, err)
	}
	return row.ID.String(), nil
}

func (p *PostgresStore) MergeByID(ctx context.Context, collection, id string, patch models.Document) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return errs.NewEntryNotFound(collection, id)
	}

	raw, err := json.Marshal(bodyOf(patch))
	if err != nil {
		return errs.NewMalformedPayloadError(collection, err)
	}
	updates := map[string]any{
		"body": gorm.Expr("body || ?::jsonb", string(raw)),
	}
	if lm := patch.Time(models.FieldLastModified); !lm.IsZero() {
		updates["last_modified"] = lm
	}

	result := p.db.WithContext(ctx).
		Model(&models.StoredDocument{}).
		Where("id = ? AND collection = ?", uid, collection).
		Updates(updates)
	if result.Error != nil {
		return errs.NewStoreUnavailable("update", collection, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewEntryNotFound(collection, id)
	}
	return nil
}

func (p *PostgresStore) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	result := p.db.WithContext(ctx).
		Where("id = ? AND collection = ?", uid, collection).
		Delete(&models.StoredDocument{})
	if result.Error != nil {
		return false, errs.NewStoreUnavailable("delete", collection, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return errs.NewStoreUnavailable("ping", "documents", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errs.NewStoreUnavailable("ping", "documents", err)
	}
	return nil
}

func (p *PostgresStore) Close(context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
