package models

import "encoding/json"

// OptionalString tells an absent JSON key apart from an explicit null.
// Set is true whenever the key appeared in the payload.
type OptionalString struct {
	Set   bool
	Value *string
}

// Some returns a set, non-null OptionalString.
func Some(s string) OptionalString {
	return OptionalString{Set: true, Value: &s}
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}
