package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// SingletonStore reads and replaces the one record of hero, about and contact.
type SingletonStore struct {
	store DocumentStore
	now   func() time.Time
}

func NewSingletonStore(store DocumentStore, now func() time.Time) *SingletonStore {
	return &SingletonStore{store: store, now: now}
}

// Get returns the section record, or its all-empty defaults when nothing was saved yet.
func (s *SingletonStore) Get(ctx context.Context, section models.Section) (models.Document, error) {
	if err := requireKind(section, models.Singleton); err != nil {
		return nil, err
	}
	doc, err := s.store.FindByKey(ctx, section.Collection, section.Key)
	if err != nil {
		return nil, err
	}
	return section.Present(doc), nil
}

// Upsert overwrites the section record with the whitelisted fields of patch. Fields the
// patch omits are reset to empty.
func (s *SingletonStore) Upsert(ctx context.Context, section models.Section, patch map[string]any) error {
	if err := requireKind(section, models.Singleton); err != nil {
		return err
	}
	doc, err := section.Whitelist(patch)
	if err != nil {
		return err
	}
	if len(doc) == 0 {
		return errs.NewValidationError(section.Name, "no recognized fields in request")
	}
	if err := section.ValidateRecord(doc); err != nil {
		return err
	}
	doc[models.FieldLastModified] = s.now().UTC()
	return s.store.ReplaceByKey(ctx, section.Collection, section.Key, doc)
}

func requireKind(section models.Section, kind models.SectionKind) error {
	if section.Kind != kind {
		return errs.NewInternalErrorWithCause("section store mismatch",
			fmt.Errorf("section %s has kind %d, want %d", section.Name, section.Kind, kind))
	}
	return nil
}
