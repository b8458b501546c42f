package moderation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TermList stores matched terms as a jsonb column.
type TermList []string

func (t TermList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (t *TermList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported type for TermList: %T", value)
	}
}
