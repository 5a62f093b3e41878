package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimestampLayout renders UTC instants with microseconds in 26 characters.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Timestamp stores a time as a fixed-width ISO-8601 string.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to microseconds in UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

// String renders the stored form.
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// Scan implements sql.Scanner
func (t *Timestamp) Scan(src any) error {
	var text string
	switch data := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case string:
		text = data
	case []byte:
		text = string(data)
	case time.Time:
		t.Time = data.UTC()
		return nil
	default:
		return fmt.Errorf("Timestamp: unsupported src type %T", src)
	}
	parsed, err := ParseTimestamp(text)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.String(), nil
}

// ParseTimestamp reads the stored form.
func ParseTimestamp(s string) (Timestamp, error) {
	if len(s) != len(TimestampLayout) {
		return Timestamp{}, fmt.Errorf("Timestamp: %q is not %d characters", s, len(TimestampLayout))
	}
	parsed, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return Timestamp{}, fmt.Errorf("Timestamp: %w", err)
	}
	return Timestamp{Time: parsed}, nil
}
