package models

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/portfolio-backend/errs"
)

type SectionKind int

const (
	Singleton SectionKind = iota
	Collection
)

// FieldKind is the storage shape of one whitelisted field.
type FieldKind int

const (
	StringField FieldKind = iota
	StringListField
	HighlightsField
)

// HighlightCount is the fixed number of About highlights.
const HighlightCount = 3

type Field struct {
	Name string
	Kind FieldKind
}

// Order selects how a collection section is listed, always newest first.
type Order int

const (
	ByLastModified Order = iota
	ByCreation
)

// SortField is the document field a collection is sorted on.
func (o Order) SortField() string {
	if o == ByCreation {
		return FieldCreatedAt
	}
	return FieldLastModified
}

// Section binds one content area of the portfolio to its bucket and shape.
type Section struct {
	Name       string
	Collection string
	// Key addresses the single record of a singleton section.
	Key    string
	Kind   SectionKind
	Fields []Field
	Order  Order
	// Icons is the allowed icon-name set, nil when the section has no icon field.
	Icons []string
	// Record returns a pointer to the typed payload used for create-time validation.
	Record func() any
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Whitelist keeps the section's known fields from raw, coercing each to its kind.
// Reserved fields and unknown keys are dropped. A value of the wrong shape fails validation.
func (s Section) Whitelist(raw map[string]any) (Document, error) {
	out := make(Document, len(s.Fields))
	for _, f := range s.Fields {
		v, ok := raw[f.Name]
		if !ok {
			continue
		}
		coerced, err := coerce(f, v)
		if err != nil {
			return nil, err
		}
		out[f.Name] = coerced
	}
	if icon, ok := out["icon"].(string); ok && icon != "" && s.Icons != nil {
		if err := validate.Var(icon, "oneof="+strings.Join(s.Icons, " ")); err != nil {
			return nil, errs.NewInvalidFieldError("icon", fmt.Sprintf("%q is not an allowed icon", icon))
		}
	}
	return out, nil
}

// Defaults returns the all-empty record of the section.
func (s Section) Defaults() Document {
	out := make(Document, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = zeroValue(f.Kind)
	}
	return out
}

// WithDefaults fills every whitelisted field missing from d with its empty value.
func (s Section) WithDefaults(d Document) Document {
	out := d.Clone()
	if out == nil {
		out = Document{}
	}
	for _, f := range s.Fields {
		if _, ok := out[f.Name]; !ok {
			out[f.Name] = zeroValue(f.Kind)
		}
	}
	return out
}

// Present shapes a stored document for clients: whitelisted fields, defaults for the
// missing ones, plus the identifier and timestamps.
func (s Section) Present(stored Document) Document {
	out := s.Defaults()
	for _, f := range s.Fields {
		if v, ok := stored[f.Name]; ok {
			if coerced, err := coerce(f, v); err == nil {
				out[f.Name] = coerced
			}
		}
	}
	if id := stored.ID(); id != "" && s.Kind == Collection {
		out[FieldID] = id
	}
	for _, ts := range []string{FieldLastModified, FieldCreatedAt} {
		if t := stored.Time(ts); !t.IsZero() {
			out[ts] = t
		}
	}
	return out
}

// ValidateRecord checks the required fields of a create payload through its typed record.
func (s Section) ValidateRecord(d Document) error {
	if s.Record == nil {
		return nil
	}
	rec := s.Record()
	if err := decodeInto(d, rec); err != nil {
		return errs.NewMalformedPayloadError(s.Name, err)
	}
	return validateStruct(rec)
}

// ValidatePatch checks the required fields a merge patch touches. Fields left out of the
// patch keep their stored value and are not checked.
func (s Section) ValidatePatch(d Document) error {
	if s.Record == nil {
		return nil
	}
	rec := s.Record()
	if err := decodeInto(d, rec); err != nil {
		return errs.NewMalformedPayloadError(s.Name, err)
	}
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs.NewValidationError("payload", err.Error())
	}
	for _, fe := range verrs {
		if _, touched := d[fe.Field()]; !touched {
			continue
		}
		if fe.Tag() == "required" {
			return errs.NewMissingRequiredFieldError(fe.Field())
		}
		return errs.NewInvalidFieldError(fe.Field(), "failed "+fe.Tag()+" check")
	}
	return nil
}

func validateStruct(rec any) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		name := fe.Field()
		if fe.Tag() == "required" {
			return errs.NewMissingRequiredFieldError(name)
		}
		return errs.NewInvalidFieldError(name, "failed "+fe.Tag()+" check")
	}
	return errs.NewValidationError("payload", err.Error())
}

func zeroValue(kind FieldKind) any {
	switch kind {
	case StringListField:
		return []any{}
	case HighlightsField:
		out := make([]any, HighlightCount)
		for i := range out {
			out[i] = map[string]any{"title": "", "description": ""}
		}
		return out
	default:
		return ""
	}
}

func coerce(f Field, v any) (any, error) {
	switch f.Kind {
	case StringListField:
		return coerceStringList(f.Name, v)
	case HighlightsField:
		return coerceHighlights(f.Name, v)
	default:
		return coerceString(f.Name, v)
	}
}

func coerceString(name string, v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", errs.NewInvalidFieldError(name, "expected a string")
	}
}

func coerceStringList(name string, v any) ([]any, error) {
	switch t := v.(type) {
	case nil:
		return []any{}, nil
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, errs.NewInvalidFieldError(name, "expected a list of strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errs.NewInvalidFieldError(name, "expected a list of strings")
	}
}

func coerceHighlights(name string, v any) ([]any, error) {
	var items []any
	switch t := v.(type) {
	case nil:
	case []any:
		items = t
	case []map[string]any:
		for _, m := range t {
			items = append(items, m)
		}
	default:
		return nil, errs.NewInvalidFieldError(name, "expected a list of highlights")
	}
	if len(items) > HighlightCount {
		return nil, errs.NewInvalidFieldError(name, fmt.Sprintf("at most %d highlights are allowed", HighlightCount))
	}

	out := make([]any, HighlightCount)
	for i := range out {
		h := map[string]any{"title": "", "description": ""}
		if i < len(items) {
			m, ok := asMap(items[i])
			if !ok {
				return nil, errs.NewInvalidFieldError(name, "expected {title, description} pairs")
			}
			for _, key := range []string{"title", "description"} {
				s, err := coerceString(name+"."+key, m[key])
				if err != nil {
					return nil, err
				}
				h[key] = s
			}
		}
		out[i] = h
	}
	return out, nil
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Document:
		return t, true
	default:
		return nil, false
	}
}
