package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Tags stores a beygingar list as a JSON array. A nil list is stored as
// NULL so that an absent list and an empty one stay distinct.
type Tags []string

// Scan implements sql.Scanner
func (v *Tags) Scan(src any) error {
	if src == nil {
		*v = nil
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			*v = nil
			return nil
		}
		return json.Unmarshal(data, v)
	case string:
		if data == "" {
			*v = nil
			return nil
		}
		return json.Unmarshal([]byte(data), v)
	default:
		return fmt.Errorf("Tags: unsupported src type %T", src)
	}
}

// Value implements driver.Valuer
func (v Tags) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(v))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
