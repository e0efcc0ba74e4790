// Package schema models the caller-supplied table schema and decides
// whether identifiers extracted from generated SQL plausibly refer to it.
package schema

import (
	"encoding/json"

	"github.com/parlance-data/parlance-engine/pkg/jsonutil"
)

// Column is one entry of the inbound columns_list. The type is
// informational only; validation considers names alone.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// UnmarshalJSON accepts either a bare string ("Roll_No") or an object
// ({"name": "Roll_No", "type": "number"}). Object fields are decoded
// leniently because schema exports sometimes emit numeric names.
// Entries of any other shape decode to a zero Column and are skipped
// by Names.
func (c *Column) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Name = s
		return nil
	}

	var obj struct {
		Name json.RawMessage `json:"name"`
		Type json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		*c = Column{}
		return nil
	}

	c.Name = jsonutil.FlexibleStringValue(obj.Name)
	c.Type = jsonutil.FlexibleStringValue(obj.Type)
	return nil
}

// ColumnList is the inbound columns_list payload.
type ColumnList []Column

// Names returns the flat ordered list of column names, skipping entries
// that carried no usable name. Order matters only for prompt text.
func (l ColumnList) Names() []string {
	names := make([]string, 0, len(l))
	for _, c := range l {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names
}
