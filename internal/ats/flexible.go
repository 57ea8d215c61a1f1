package ats

import (
	"encoding/json"
	"fmt"
)

// FlexibleID accepts a vendor job id that arrives as either a JSON number
// or a string, rendered as a string either way.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleID(n.String())
		return nil
	}
	return fmt.Errorf("id is neither string nor number: %s", string(data))
}

func (f FlexibleID) String() string {
	return string(f)
}

// FlexibleText accepts a field that arrives as either a bare string or an
// object with a "value" member. Greenhouse descriptions use both shapes.
type FlexibleText string

func (f *FlexibleText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleText(s)
		return nil
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*f = FlexibleText(obj.Value)
		return nil
	}
	// Tolerate null and unexpected shapes; the field degrades to empty.
	*f = ""
	return nil
}

func (f FlexibleText) String() string {
	return string(f)
}

// FlexibleLocation accepts a location that arrives as a bare string or an
// object carrying "name" or "city".
type FlexibleLocation string

func (f *FlexibleLocation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleLocation(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
		City string `json:"city"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.Name != "" {
			*f = FlexibleLocation(obj.Name)
		} else {
			*f = FlexibleLocation(obj.City)
		}
		return nil
	}
	*f = ""
	return nil
}

func (f FlexibleLocation) String() string {
	return string(f)
}
