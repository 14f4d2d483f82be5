package smallmap

import (
	"github.com/sugawarayuuta/sonnet"
)

var (
	jsonMarshal   func(v any) ([]byte, error)    = sonnet.Marshal
	jsonUnmarshal func(data []byte, v any) error = sonnet.Unmarshal
)

// SetDefaultJSONMarshal sets the JSON serialization and deserialization
// functions used by Map. If not set, or set to nil, sonnet is used.
func SetDefaultJSONMarshal(
	marshal func(v any) ([]byte, error),
	unmarshal func(data []byte, v any) error,
) {
	if marshal == nil {
		marshal = sonnet.Marshal
	}
	if unmarshal == nil {
		unmarshal = sonnet.Unmarshal
	}
	jsonMarshal, jsonUnmarshal = marshal, unmarshal
}

// MarshalJSON encodes the entries as a JSON object.
func (m *Map[K, V, S]) MarshalJSON() ([]byte, error) {
	return jsonMarshal(m.ToMap())
}

// UnmarshalJSON replaces the contents of m with the decoded object.
// The map is left untouched if decoding fails.
func (m *Map[K, V, S]) UnmarshalJSON(data []byte) error {
	var a map[K]V
	if err := jsonUnmarshal(data, &a); err != nil {
		return err
	}
	m.Clear()
	m.FromMap(a)
	return nil
}
