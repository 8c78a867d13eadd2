package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a list of strings that accepts two JSON input shapes:
// a plain array of strings, or a single comma-joined string. Anything
// else is rejected at decode time rather than silently coerced. It is
// stored as comma-joined text so it works on both Postgres and SQLite.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = normalizeList(arr)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*l = normalizeList(strings.Split(joined, ","))
		return nil
	}

	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: "expected an array of strings or a comma-separated string",
	}
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	return strings.Join(l, ","), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		if v == "" {
			*l = nil
			return nil
		}
		*l = strings.Split(v, ",")
		return nil
	case []byte:
		if len(v) == 0 {
			*l = nil
			return nil
		}
		*l = strings.Split(string(v), ",")
		return nil
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}
