package types

import (
	"database/sql/driver"
	"fmt"

	"github.com/eslsoft/ordasafn/internal/entity"
)

// Decimal stores an optional entity.Decimal as its normalized string.
type Decimal struct {
	Decimal *entity.Decimal
}

// Scan implements sql.Scanner
func (d *Decimal) Scan(src any) error {
	var text string
	switch data := src.(type) {
	case nil:
		d.Decimal = nil
		return nil
	case string:
		text = data
	case []byte:
		text = string(data)
	default:
		return fmt.Errorf("Decimal: unsupported src type %T", src)
	}
	v, err := entity.ParseDecimal(text)
	if err != nil {
		return fmt.Errorf("Decimal: %w", err)
	}
	d.Decimal = &v
	return nil
}

// Value implements driver.Valuer
func (d Decimal) Value() (driver.Value, error) {
	if d.Decimal == nil {
		return nil, nil
	}
	return d.Decimal.String(), nil
}
