package spotcrime

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/crime-report-service/internal/domain"
)

// ErrMalformedResponse is returned when a response body is not a JSON object
// holding an array of incident records.
var ErrMalformedResponse = errors.New("malformed crime data response")

// DecodeIncidents reads a crimes response: a JSON object whose resultKey
// member, or whose only member, is an array of records. String fields are
// kept; other values such as coordinates and ids are dropped.
func DecodeIncidents(r io.Reader, resultKey string) ([]domain.RawIncident, error) {
	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	raw, ok := envelope[resultKey]
	if !ok {
		if len(envelope) != 1 {
			return nil, fmt.Errorf("%w: no %q member among %d keys", ErrMalformedResponse, resultKey, len(envelope))
		}
		for _, v := range envelope {
			raw = v
		}
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: records: %w", ErrMalformedResponse, err)
	}

	incidents := make([]domain.RawIncident, 0, len(records))
	for _, rec := range records {
		inc := make(domain.RawIncident, len(rec))
		for k, v := range rec {
			if s, ok := v.(string); ok {
				inc[k] = s
			}
		}
		incidents = append(incidents, inc)
	}
	return incidents, nil
}
