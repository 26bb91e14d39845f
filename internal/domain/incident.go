package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidQuery is returned when a point or radius is out of range.
var ErrInvalidQuery = errors.New("invalid query")

// RawIncident is one upstream incident record keyed by provider field name.
// Only string-valued fields are kept; see FieldKeys for the ones the
// aggregator reads.
type RawIncident map[string]string

// FieldKeys names the record fields holding the address, category and
// timestamp of an incident.
type FieldKeys struct {
	Address    string
	Category   string
	OccurredAt string
}

// DefaultFieldKeys matches the SpotCrime record layout.
var DefaultFieldKeys = FieldKeys{
	Address:    "address",
	Category:   "type",
	OccurredAt: "date",
}

// Query is a point and search radius in decimal degrees.
type Query struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Radius float64 `json:"radius"`
}

// Validate checks coordinate ranges and that the radius is positive.
func (q Query) Validate() error {
	switch {
	case math.IsNaN(q.Lat) || q.Lat < -90 || q.Lat > 90:
		return fmt.Errorf("%w: lat %v out of range [-90, 90]", ErrInvalidQuery, q.Lat)
	case math.IsNaN(q.Lon) || q.Lon < -180 || q.Lon > 180:
		return fmt.Errorf("%w: lon %v out of range [-180, 180]", ErrInvalidQuery, q.Lon)
	case math.IsNaN(q.Radius) || math.IsInf(q.Radius, 0) || q.Radius <= 0:
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidQuery, q.Radius)
	}
	return nil
}

// Key renders the query with six decimals, the precision sent upstream.
func (q Query) Key() string {
	return fmt.Sprintf("%.6f,%.6f,%.6f", q.Lat, q.Lon, q.Radius)
}

// CrimeReport summarizes the incidents found around a query point.
type CrimeReport struct {
	TotalCount     int            `json:"total_crime"`
	TopStreets     []string       `json:"the_most_dangerous_streets"`
	CategoryCounts map[string]int `json:"crime_type_count"`
	TimeBandCounts map[string]int `json:"event_time_count"`

	// UnparsedTimes counts records whose timestamp was missing or malformed.
	UnparsedTimes int `json:"-"`
}

// ReportEvent is the published form of a generated report.
type ReportEvent struct {
	Query       Query       `json:"query"`
	Report      CrimeReport `json:"report"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// NewReportEvent stamps a report with the current time.
func NewReportEvent(q Query, r CrimeReport) ReportEvent {
	return ReportEvent{
		Query:       q,
		Report:      r,
		GeneratedAt: clock.Now().UTC(),
	}
}
