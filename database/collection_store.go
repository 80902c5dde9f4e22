package database

import (
	"context"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// CollectionStore manages the entries of education, techstack, certificates and projects.
type CollectionStore struct {
	store DocumentStore
	now   func() time.Time
}

func NewCollectionStore(store DocumentStore, now func() time.Time) *CollectionStore {
	return &CollectionStore{store: store, now: now}
}

// List returns every entry of the section newest first. It never returns nil.
func (c *CollectionStore) List(ctx context.Context, section models.Section) ([]models.Document, error) {
	if err := requireKind(section, models.Collection); err != nil {
		return nil, err
	}
	docs, err := c.store.FindAll(ctx, section.Collection, section.Order.SortField())
	if err != nil {
		return nil, err
	}
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, section.Present(d))
	}
	return out, nil
}

// Create stores a new entry and returns its identifier. Missing optional fields are stored empty.
func (c *CollectionStore) Create(ctx context.Context, section models.Section, entry map[string]any) (string, error) {
	if err := requireKind(section, models.Collection); err != nil {
		return "", err
	}
	doc, err := section.Whitelist(entry)
	if err != nil {
		return "", err
	}
	if err := section.ValidateRecord(doc); err != nil {
		return "", err
	}

	doc = section.WithDefaults(doc)
	now := c.now().UTC()
	doc[models.FieldCreatedAt] = now
	doc[models.FieldLastModified] = now
	return c.store.Insert(ctx, section.Collection, doc)
}

// Update sets only the fields present in patch on the entry with id.
func (c *CollectionStore) Update(ctx context.Context, section models.Section, id string, patch map[string]any) error {
	if err := requireKind(section, models.Collection); err != nil {
		return err
	}
	if id == "" {
		return errs.NewMissingRequiredFieldError("id")
	}
	doc, err := section.Whitelist(patch)
	if err != nil {
		return err
	}
	if err := section.ValidatePatch(doc); err != nil {
		return err
	}
	doc[models.FieldLastModified] = c.now().UTC()
	return c.store.MergeByID(ctx, section.Collection, id, doc)
}

// Delete removes the entry with id. Deleting an entry that does not exist succeeds.
func (c *CollectionStore) Delete(ctx context.Context, section models.Section, id string) error {
	if err := requireKind(section, models.Collection); err != nil {
		return err
	}
	if id == "" {
		return errs.NewMissingRequiredFieldError("id")
	}
	_, err := c.store.DeleteByID(ctx, section.Collection, id)
	return err
}
