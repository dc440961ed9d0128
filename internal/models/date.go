package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// location is used for backend timestamps that carry no offset.
var location = defaultLocation()

func defaultLocation() *time.Location {
	if loc, err := time.LoadLocation("America/Sao_Paulo"); err == nil {
		return loc
	}
	return time.FixedZone("BRT", -3*60*60)
}

// SetLocation overrides the zone applied to offset-less backend timestamps.
func SetLocation(loc *time.Location) {
	if loc != nil {
		location = loc
	}
}

// Location returns the zone applied to offset-less backend timestamps.
func Location() *time.Location { return location }

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var localLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date is a backend date. Decoding never fails: a missing or malformed value
// yields the zero Date, which the aggregation engine treats as "no date".
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight of the given day in the backend location.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, location)}
}

// Valid reports whether the date was present and parseable.
func (d Date) Valid() bool { return !d.IsZero() }

// ParseDate parses any of the accepted layouts; ok is false otherwise.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, location); err == nil {
			return Date{Time: t}, true
		}
	}
	return Date{}, false
}

// UnmarshalJSON decodes a date string, degrading to the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	*d = Date{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if parsed, ok := ParseDate(s); ok {
		*d = parsed
	}
	return nil
}

// MarshalJSON encodes the zero Date as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.RFC3339))
}
