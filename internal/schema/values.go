package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/jisj/bookxmp/pkg/bookxmp"
)

func parseIdentifier(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, &bookxmp.ValueError{Field: field, Value: value, Kind: bookxmp.ErrMalformedIdentifier, Err: err}
	}
	return id, nil
}

// parseDate accepts the date layout dates are written with, and full RFC 3339
// timestamps written by other tools.
func parseDate(field, value string) (time.Time, error) {
	if t, err := time.Parse(bookxmp.DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &bookxmp.ValueError{Field: field, Value: value, Kind: bookxmp.ErrMalformedDate, Err: err}
	}
	return t, nil
}

func requireIdentifier(field string, id uuid.UUID) error {
	if id == uuid.Nil {
		return &bookxmp.ValueError{Field: field, Value: id.String(), Kind: bookxmp.ErrNilIdentifier}
	}
	return nil
}
