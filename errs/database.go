package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// NewStoreUnavailable wraps a driver failure talking to the document store.
func NewStoreUnavailable(operation, collection string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStoreUnavailable,
		Details:    fmt.Sprintf("failed to %s %s", operation, collection),
		Cause:      cause,
	}
}

// NewEntryNotFound reports a mutation target that does not exist.
func NewEntryNotFound(collection, id string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        ErrNotFound,
		Details:    fmt.Sprintf("%s entry %q", collection, id),
		Field:      "id",
		Public:     "Entry not found",
	}
}

func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
