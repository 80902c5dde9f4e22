package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StoredDocument is the postgres row behind every section document. Singleton records
// carry their section key, collection entries leave it NULL.
type StoredDocument struct {
	ID           uuid.UUID         `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Collection   string            `json:"collection" db:"collection" gorm:"column:collection;type:text;not null;uniqueIndex:idx_documents_collection_key;index:idx_documents_collection_modified"`
	Key          *string           `json:"key,omitempty" db:"key" gorm:"column:key;type:text;uniqueIndex:idx_documents_collection_key"`
	Body         datatypes.JSONMap `json:"body" db:"body" gorm:"column:body;type:jsonb;not null;default:'{}'"`
	CreatedAt    time.Time         `json:"createdAt" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	LastModified time.Time         `json:"lastModified" db:"last_modified" gorm:"column:last_modified;type:timestamptz;not null;default:CURRENT_TIMESTAMP;index:idx_documents_collection_modified"`
}

func (StoredDocument) TableName() string {
	return "documents"
}

// ToDocument flattens the row into the Document clients and stores exchange.
func (s StoredDocument) ToDocument() Document {
	d := Document(map[string]any(s.Body)).Clone()
	if d == nil {
		d = Document{}
	}
	d[FieldID] = s.ID.String()
	if s.Key != nil {
		d[FieldKey] = *s.Key
	}
	d[FieldCreatedAt] = s.CreatedAt
	d[FieldLastModified] = s.LastModified
	return d
}
