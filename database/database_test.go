package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newTestDatabase(step time.Duration) Database {
	clock := &stepClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), step: step}
	return New(NewMemoryStore(), WithClock(clock.Now))
}

// failingStore reports every operation as a store outage.
type failingStore struct{}

var errDown = errors.New("connection refused")

func (failingStore) FindByKey(context.Context, string, string) (models.Document, error) {
	return nil, errs.NewStoreUnavailable("find", "test", errDown)
}
func (failingStore) ReplaceByKey(context.Context, string, string, models.Document) error {
	return errs.NewStoreUnavailable("replace", "test", errDown)
}
func (failingStore) FindAll(context.Context, string, string) ([]models.Document, error) {
	return nil, errs.NewStoreUnavailable("list", "test", errDown)
}
func (failingStore) Insert(context.Context, string, models.Document) (string, error) {
	return "", errs.NewStoreUnavailable("insert", "test", errDown)
}
func (failingStore) MergeByID(context.Context, string, string, models.Document) error {
	return errs.NewStoreUnavailable("update", "test", errDown)
}
func (failingStore) DeleteByID(context.Context, string, string) (bool, error) {
	return false, errs.NewStoreUnavailable("delete", "test", errDown)
}
func (failingStore) Ping(context.Context) error  { return errs.NewStoreUnavailable("ping", "test", errDown) }
func (failingStore) Close(context.Context) error { return nil }

func TestSingleton_DefaultsBeforeFirstSave(t *testing.T) {
	db := newTestDatabase(time.Second)

	hero, err := db.Singletons().Get(context.Background(), models.HeroSection)
	require.NoError(t, err)
	assert.Equal(t, "", hero["name"])
	assert.NotContains(t, hero, models.FieldID)

	about, err := db.Singletons().Get(context.Background(), models.AboutSection)
	require.NoError(t, err)
	assert.Len(t, about["highlights"], models.HighlightCount)
}

func TestSingleton_UpsertReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(time.Second)

	require.NoError(t, db.Singletons().Upsert(ctx, models.HeroSection, map[string]any{
		"name": "Ada", "role": "Engineer", "email": "ada@example.com",
	}))
	require.NoError(t, db.Singletons().Upsert(ctx, models.HeroSection, map[string]any{
		"name": "Grace",
	}))

	hero, err := db.Singletons().Get(ctx, models.HeroSection)
	require.NoError(t, err)
	assert.Equal(t, "Grace", hero["name"])
	assert.Equal(t, "", hero["role"])
	assert.Equal(t, "", hero["email"])
	assert.False(t, hero.Time(models.FieldLastModified).IsZero())
}

func TestSingleton_UpsertIgnoresCallerIdentifiers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	db := New(store)

	require.NoError(t, db.Singletons().Upsert(ctx, models.ContactSection, map[string]any{
		"_id": "forged", "id": "forged", "email": "me@example.com",
	}))

	stored, err := store.FindByKey(ctx, models.ContactSection.Collection, models.ContactSection.Key)
	require.NoError(t, err)
	assert.NotEqual(t, "forged", stored.ID())
	assert.NotContains(t, stored, models.FieldMongoID)
}

func TestSingleton_UpsertRejectsEmptyPayload(t *testing.T) {
	db := newTestDatabase(time.Second)
	err := db.Singletons().Upsert(context.Background(), models.AboutSection, map[string]any{"unknown": "x"})
	assert.True(t, errs.IsValidationError(err))
}

func TestCollection_ListEmptyIsNotNil(t *testing.T) {
	db := newTestDatabase(time.Second)
	list, err := db.Collections().List(context.Background(), models.ProjectsSection)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCollection_CreateFillsDefaults(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(time.Second)

	id, err := db.Collections().Create(ctx, models.ProjectsSection, map[string]any{"title": "Site"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	list, err := db.Collections().List(ctx, models.ProjectsSection)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0][models.FieldID])
	assert.Equal(t, "Site", list[0]["title"])
	assert.Equal(t, []any{}, list[0]["tech"])
	assert.Equal(t, "", list[0]["github"])
}

func TestCollection_OrderedByLastModified(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(time.Second)
	cs := db.Collections()

	first, err := cs.Create(ctx, models.TechStackSection, map[string]any{"name": "Go", "logo": "go.svg"})
	require.NoError(t, err)
	_, err = cs.Create(ctx, models.TechStackSection, map[string]any{"name": "Rust", "logo": "rust.svg"})
	require.NoError(t, err)

	list, err := cs.List(ctx, models.TechStackSection)
	require.NoError(t, err)
	assert.Equal(t, "Rust", list[0]["name"])

	require.NoError(t, cs.Update(ctx, models.TechStackSection, first, map[string]any{"logo": "gopher.svg"}))

	list, err = cs.List(ctx, models.TechStackSection)
	require.NoError(t, err)
	assert.Equal(t, "Go", list[0]["name"])
	assert.Equal(t, "gopher.svg", list[0]["logo"])
}

func TestCollection_EducationOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(time.Second)
	cs := db.Collections()

	older, err := cs.Create(ctx, models.EducationSection, map[string]any{"degree": "BSc", "icon": "Atom"})
	require.NoError(t, err)
	_, err = cs.Create(ctx, models.EducationSection, map[string]any{"degree": "MSc", "icon": "Atom"})
	require.NoError(t, err)

	require.NoError(t, cs.Update(ctx, models.EducationSection, older, map[string]any{"score": "4.0"}))

	list, err := cs.List(ctx, models.EducationSection)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "MSc", list[0]["degree"])
	assert.Equal(t, "BSc", list[1]["degree"])
	assert.Equal(t, "4.0", list[1]["score"])
}

func TestCollection_TiesGoToNewestInsertion(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(0)
	cs := db.Collections()

	for _, title := range []string{"a", "b", "c"} {
		_, err := cs.Create(ctx, models.CertificatesSection, map[string]any{"title": title})
		require.NoError(t, err)
	}

	list, err := cs.List(ctx, models.CertificatesSection)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0]["title"])
	assert.Equal(t, "a", list[2]["title"])
}

func TestCollection_UpdateKeepsOmittedFields(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(time.Second)
	cs := db.Collections()

	id, err := cs.Create(ctx, models.ProjectsSection, map[string]any{
		"title": "Site", "tech": []any{"Go"}, "link": "https://x.dev",
	})
	require.NoError(t, err)
	require.NoError(t, cs.Update(ctx, models.ProjectsSection, id, map[string]any{"title": "Portfolio", "bogus": 1}))

	list, err := cs.List(ctx, models.ProjectsSection)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", list[0]["title"])
	assert.Equal(t, []any{"Go"}, list[0]["tech"])
	assert.Equal(t, "https://x.dev", list[0]["link"])
	assert.NotContains(t, list[0], "bogus")
}

func TestCollection_UpdateRejectsBlankRequiredField(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(time.Second)
	cs := db.Collections()

	id, err := cs.Create(ctx, models.TechStackSection, map[string]any{"name": "Go", "logo": "https://x/go.svg"})
	require.NoError(t, err)

	err = cs.Update(ctx, models.TechStackSection, id, map[string]any{"logo": ""})
	require.Error(t, err)
	assert.True(t, errs.IsValidationError(err))
	assert.ErrorContains(t, err, "logo is required")

	// untouched required fields are not checked
	require.NoError(t, cs.Update(ctx, models.TechStackSection, id, map[string]any{"name": "Golang"}))

	list, err := cs.List(ctx, models.TechStackSection)
	require.NoError(t, err)
	assert.Equal(t, "Golang", list[0]["name"])
	assert.Equal(t, "https://x/go.svg", list[0]["logo"])
}

func TestCollection_UpdateUnknownID(t *testing.T) {
	db := newTestDatabase(time.Second)
	err := db.Collections().Update(context.Background(), models.ProjectsSection, "missing", map[string]any{"title": "x"})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestCollection_UpdateRequiresID(t *testing.T) {
	db := newTestDatabase(time.Second)
	err := db.Collections().Update(context.Background(), models.ProjectsSection, "", map[string]any{"title": "x"})
	assert.True(t, errs.IsValidationError(err))
}

func TestCollection_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(time.Second)
	cs := db.Collections()

	id, err := cs.Create(ctx, models.CertificatesSection, map[string]any{"title": "CKA"})
	require.NoError(t, err)

	require.NoError(t, cs.Delete(ctx, models.CertificatesSection, id))
	require.NoError(t, cs.Delete(ctx, models.CertificatesSection, id))

	list, err := cs.List(ctx, models.CertificatesSection)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCollection_CreateValidationStoresNothing(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(time.Second)

	_, err := db.Collections().Create(ctx, models.TechStackSection, map[string]any{"name": ""})
	require.Error(t, err)
	assert.True(t, errs.IsValidationError(err))

	_, err = db.Collections().Create(ctx, models.EducationSection, map[string]any{"degree": "BSc"})
	assert.ErrorContains(t, err, "icon is required")

	list, err := db.Collections().List(ctx, models.TechStackSection)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStoreFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	db := New(failingStore{})

	_, err := db.Singletons().Get(ctx, models.HeroSection)
	assert.True(t, errs.IsStoreUnavailable(err))

	_, err = db.Collections().List(ctx, models.ProjectsSection)
	assert.True(t, errs.IsStoreUnavailable(err))

	err = db.Collections().Delete(ctx, models.ProjectsSection, "x")
	assert.True(t, errs.IsStoreUnavailable(err))

	assert.Error(t, db.Ping(ctx))
}

func TestSectionKindMismatch(t *testing.T) {
	db := newTestDatabase(time.Second)
	_, err := db.Collections().List(context.Background(), models.HeroSection)
	assert.Error(t, err)
}

func TestMemoryStore_MergeKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	id, err := store.Insert(ctx, "projects", models.Document{
		"title": "a", models.FieldCreatedAt: created, models.FieldLastModified: created,
	})
	require.NoError(t, err)
	require.NoError(t, store.MergeByID(ctx, "projects", id, models.Document{
		"title": "b", models.FieldLastModified: created.Add(time.Hour), models.FieldCreatedAt: time.Now(),
	}))

	docs, err := store.FindAll(ctx, "projects", models.FieldLastModified)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, created, docs[0].Time(models.FieldCreatedAt))
	assert.Equal(t, created.Add(time.Hour), docs[0].Time(models.FieldLastModified))
	assert.Equal(t, "b", docs[0]["title"])
}

func TestMemoryStore_ConcurrentListAndUpdate(t *testing.T) {
	ctx := context.Background()
	cs := New(NewMemoryStore()).Collections()

	id, err := cs.Create(ctx, models.TechStackSection, map[string]any{"name": "Go", "logo": "go.svg"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				assert.NoError(t, cs.Update(ctx, models.TechStackSection, id, map[string]any{"name": "Go"}))
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				list, err := cs.List(ctx, models.TechStackSection)
				assert.NoError(t, err)
				assert.Len(t, list, 1)
			}
		}()
	}
	wg.Wait()
}

func TestMemoryStore_FindAllReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Insert(ctx, "projects", models.Document{"title": "a", "tech": []any{"Go"}})
	require.NoError(t, err)

	docs, err := store.FindAll(ctx, "projects", models.FieldLastModified)
	require.NoError(t, err)
	docs[0]["title"] = "changed"
	docs[0]["tech"].([]any)[0] = "Rust"

	again, err := store.FindAll(ctx, "projects", models.FieldLastModified)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0]["title"])
	assert.Equal(t, []any{"Go"}, again[0]["tech"])
}
