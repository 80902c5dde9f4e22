package models

import "time"

// Document is one stored record or entry as the document store sees it.
type Document map[string]any

// Reserved document fields. Callers can never write these.
const (
	FieldID           = "id"
	FieldMongoID      = "_id"
	FieldKey          = "key"
	FieldLastModified = "lastModified"
	FieldCreatedAt    = "createdAt"
)

// Clone returns a deep copy of d, descending into nested maps and slices.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Document:
		return t.Clone()
	case map[string]any:
		return map[string]any(Document(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i := range t {
			out[i] = map[string]any(Document(t[i]).Clone())
		}
		return out
	default:
		return v
	}
}

// ID returns the store-assigned identifier, or "" when the document has none.
func (d Document) ID() string {
	id, _ := d[FieldID].(string)
	return id
}

// Time reads a timestamp field, returning the zero time when absent.
func (d Document) Time(field string) time.Time {
	switch t := d[field].(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err == nil {
			return parsed
		}
	}
	return time.Time{}
}
