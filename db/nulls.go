// ABOUTME: Helpers for nullable columns
// ABOUTME: Stores empty strings as NULL and scans NULL back into zero values
package db

import (
	"database/sql"
	"fmt"
	"time"
)

// nullString stores "" as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullText scans a nullable TEXT column into a plain string.
type nullText struct{ dst *string }

func (t nullText) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t.dst = ""
	case string:
		*t.dst = v
	case []byte:
		*t.dst = string(v)
	case time.Time:
		*t.dst = v.Format("2006-01-02")
	default:
		*t.dst = fmt.Sprint(v)
	}
	return nil
}

// nullReal scans a nullable REAL column.
type nullReal struct{ dst *float64 }

func (r nullReal) Scan(src interface{}) error {
	var n sql.NullFloat64
	if err := n.Scan(src); err != nil {
		return err
	}
	*r.dst = n.Float64
	return nil
}

// nullInt scans a nullable INTEGER column into an int.
type nullInt struct{ dst *int }

func (i nullInt) Scan(src interface{}) error {
	var n sql.NullInt64
	if err := n.Scan(src); err != nil {
		return err
	}
	*i.dst = int(n.Int64)
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}
