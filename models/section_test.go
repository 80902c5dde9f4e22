package models

import (
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhitelist_DropsUnknownAndReservedFields(t *testing.T) {
	doc, err := HeroSection.Whitelist(map[string]any{
		"name":         "Ada",
		"role":         "Engineer",
		"_id":          "abc",
		"id":           "def",
		"key":          "other",
		"lastModified": "2020-01-01T00:00:00Z",
		"favoriteTea":  "earl grey",
	})
	require.NoError(t, err)
	assert.Equal(t, Document{"name": "Ada", "role": "Engineer"}, doc)
}

func TestWhitelist_CoercesScalars(t *testing.T) {
	doc, err := CertificatesSection.Whitelist(map[string]any{"year": float64(2024), "title": nil})
	require.NoError(t, err)
	assert.Equal(t, "2024", doc["year"])
	assert.Equal(t, "", doc["title"])
}

func TestWhitelist_RejectsWrongShapes(t *testing.T) {
	_, err := ProjectsSection.Whitelist(map[string]any{"tech": []any{"Go", 3.0}})
	assert.True(t, errs.IsValidationError(err))

	_, err = HeroSection.Whitelist(map[string]any{"name": map[string]any{"first": "Ada"}})
	assert.True(t, errs.IsValidationError(err))
}

func TestWhitelist_IconMembership(t *testing.T) {
	_, err := EducationSection.Whitelist(map[string]any{"icon": "Atom"})
	assert.NoError(t, err)

	_, err = EducationSection.Whitelist(map[string]any{"icon": "Rocket"})
	require.Error(t, err)
	assert.True(t, errs.IsValidationError(err))

	// optional icons may be left empty
	_, err = CertificatesSection.Whitelist(map[string]any{"icon": ""})
	assert.NoError(t, err)
}

func TestWhitelist_HighlightsPaddedToThree(t *testing.T) {
	doc, err := AboutSection.Whitelist(map[string]any{
		"highlights": []any{map[string]any{"title": "Fast", "description": "ships"}},
	})
	require.NoError(t, err)

	highlights := doc["highlights"].([]any)
	require.Len(t, highlights, HighlightCount)
	assert.Equal(t, map[string]any{"title": "Fast", "description": "ships"}, highlights[0])
	assert.Equal(t, map[string]any{"title": "", "description": ""}, highlights[2])
}

func TestWhitelist_TooManyHighlights(t *testing.T) {
	h := map[string]any{"title": "t", "description": "d"}
	_, err := AboutSection.Whitelist(map[string]any{"highlights": []any{h, h, h, h}})
	assert.True(t, errs.IsValidationError(err))
}

func TestDefaults(t *testing.T) {
	about := AboutSection.Defaults()
	assert.Equal(t, "", about["paragraph1"])
	assert.Len(t, about["highlights"], HighlightCount)

	project := ProjectsSection.Defaults()
	assert.Equal(t, []any{}, project["tech"])
	assert.NotContains(t, project, FieldID)
}

func TestPresent_CollectionEntry(t *testing.T) {
	modified := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	out := TechStackSection.Present(Document{
		FieldID:           "42",
		"name":            "Rust",
		"internal":        true,
		FieldLastModified: modified,
	})

	assert.Equal(t, "42", out[FieldID])
	assert.Equal(t, "Rust", out["name"])
	assert.Equal(t, "", out["logo"])
	assert.Equal(t, modified, out[FieldLastModified])
	assert.NotContains(t, out, "internal")
}

func TestPresent_SingletonHidesID(t *testing.T) {
	out := ContactSection.Present(Document{FieldID: "x", "email": "a@b.c"})
	assert.NotContains(t, out, FieldID)
	assert.Equal(t, "a@b.c", out["email"])
}

func TestValidateRecord_TechStackRequiresNameAndLogo(t *testing.T) {
	err := TechStackSection.ValidateRecord(Document{"name": "", "logo": ""})
	require.Error(t, err)
	assert.True(t, errs.IsValidationError(err))
	assert.Contains(t, err.Error(), "name is required")

	err = TechStackSection.ValidateRecord(Document{"name": "Rust"})
	assert.ErrorContains(t, err, "logo is required")

	assert.NoError(t, TechStackSection.ValidateRecord(Document{"name": "Rust", "logo": "https://x/y.svg"}))
}

func TestValidateRecord_EducationRequiresIcon(t *testing.T) {
	err := EducationSection.ValidateRecord(Document{"degree": "BSc"})
	assert.ErrorContains(t, err, "icon is required")
}

func TestContactMessageValidate(t *testing.T) {
	assert.NoError(t, ContactMessage{Name: "a", Email: "b", Message: "c"}.Validate())
	assert.True(t, errs.IsValidationError(ContactMessage{Name: "a"}.Validate()))
}

func TestDocumentClone_IsDeep(t *testing.T) {
	orig := Document{"tech": []any{"Go"}, "nested": map[string]any{"a": "b"}}
	c := orig.Clone()
	c["tech"].([]any)[0] = "Rust"
	c["nested"].(map[string]any)["a"] = "z"

	assert.Equal(t, "Go", orig["tech"].([]any)[0])
	assert.Equal(t, "b", orig["nested"].(map[string]any)["a"])
}

func TestOrderSortField(t *testing.T) {
	assert.Equal(t, FieldCreatedAt, EducationSection.Order.SortField())
	assert.Equal(t, FieldLastModified, ProjectsSection.Order.SortField())
}

func TestStoredDocumentColumns(t *testing.T) {
	fields := getModelFields(StoredDocument{})
	assert.Equal(t, []string{"id", "collection", "key", "body", "created_at", "last_modified"}, fields)

	mismatches := findColumnMismatches([]string{"id", "body", "legacy_section"}, fields)
	assert.Equal(t, []string{"legacy_section"}, mismatches)
}

func TestValidatePatch_OnlyTouchedRequiredFields(t *testing.T) {
	assert.NoError(t, TechStackSection.ValidatePatch(Document{"name": "Rust"}))
	assert.NoError(t, EducationSection.ValidatePatch(Document{"degree": "MSc"}))

	err := EducationSection.ValidatePatch(Document{"icon": ""})
	require.Error(t, err)
	assert.True(t, errs.IsValidationError(err))
	assert.ErrorContains(t, err, "icon is required")

	assert.ErrorContains(t, TechStackSection.ValidatePatch(Document{"name": "", "logo": "x.svg"}), "name is required")
	assert.NoError(t, ProjectsSection.ValidatePatch(Document{"title": ""}))
}
