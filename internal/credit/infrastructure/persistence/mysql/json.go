package mysql

import "encoding/json"

// marshalJSON serializes list payloads for text columns. Serialization
// of the domain's own types cannot fail; errors would indicate a
// programming mistake, so the empty-array fallback keeps columns valid.
func marshalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// unmarshalJSON tolerates empty columns, leaving dest at its zero value.
func unmarshalJSON(data string, dest any) error {
	if data == "" {
		return nil
	}
	return json.Unmarshal([]byte(data), dest)
}
