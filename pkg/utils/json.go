package utils

import "encoding/json"

// MustMarshal is for values that always encode, like plain event structs.
// An encoding error yields nil.
func MustMarshal(v any) []byte {
	m, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return m
}
