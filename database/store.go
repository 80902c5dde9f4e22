package database

import (
	"context"

	"github.com/rpupo63/portfolio-backend/models"
)

// DocumentStore is the document database capability every section store is built on.
// Implementations wrap driver failures with errs.NewStoreUnavailable.
type DocumentStore interface {
	// FindByKey returns the document addressed by key, or nil when none exists.
	FindByKey(ctx context.Context, collection, key string) (models.Document, error)
	// ReplaceByKey creates or fully replaces the document addressed by key.
	ReplaceByKey(ctx context.Context, collection, key string, doc models.Document) error
	// FindAll lists a collection newest first by sortField, ties broken by newest insertion.
	FindAll(ctx context.Context, collection, sortField string) ([]models.Document, error)
	// Insert stores doc under a new identifier and returns it.
	Insert(ctx context.Context, collection string, doc models.Document) (string, error)
	// MergeByID sets the patch fields on one document in a single store operation.
	// It reports errs.ErrNotFound when no document matches id.
	MergeByID(ctx context.Context, collection, id string, patch models.Document) error
	// DeleteByID removes one document and reports whether anything was deleted.
	DeleteByID(ctx context.Context, collection, id string) (bool, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// bodyOf strips store-managed fields from doc.
func bodyOf(doc models.Document) models.Document {
	body := doc.Clone()
	if body == nil {
		return models.Document{}
	}
	for _, f := range []string{models.FieldID, models.FieldMongoID, models.FieldKey, models.FieldCreatedAt, models.FieldLastModified} {
		delete(body, f)
	}
	return body
}
