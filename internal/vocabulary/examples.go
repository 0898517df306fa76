package vocabulary

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Examples is the ordered list of usage examples attached to a record.
// It is persisted as an opaque JSON blob.
type Examples []string

// DecodeExamples decodes a stored blob. A blob that cannot be decoded is an
// empty list, never an error.
func DecodeExamples(blob []byte) Examples {
	if len(blob) == 0 {
		return Examples{}
	}
	var examples []string
	if err := json.Unmarshal(blob, &examples); err != nil {
		slog.Default().Debug("discard undecodable examples blob",
			slog.Int("size", len(blob)),
			slog.Any("error", err),
		)
		return Examples{}
	}
	if examples == nil {
		return Examples{}
	}
	return Examples(examples)
}

// Encode serializes the examples into the stored blob format.
func (e Examples) Encode() ([]byte, error) {
	if e == nil {
		e = Examples{}
	}
	blob, err := json.Marshal([]string(e))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal > %w", err)
	}
	return blob, nil
}

// Value implements driver.Valuer.
func (e Examples) Value() (driver.Value, error) {
	blob, err := e.Encode()
	if err != nil {
		return nil, err
	}
	return string(blob), nil
}

// Scan implements sql.Scanner.
func (e *Examples) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*e = Examples{}
	case []byte:
		*e = DecodeExamples(v)
	case string:
		*e = DecodeExamples([]byte(v))
	default:
		*e = Examples{}
	}
	return nil
}
