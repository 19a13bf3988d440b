package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NameList is an ordered list of names. It decodes from either a JSON array of
// strings or a JSON object, in which case the object's keys are taken in
// document order (package.json "scripts" and "dependencies").
type NameList []string

// UnmarshalJSON implements json.Unmarshaler.
func (n *NameList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*n = nil
		return nil
	}

	switch trimmed[0] {
	case '[':
		var names []string
		if err := json.Unmarshal(trimmed, &names); err != nil {
			return err
		}
		*n = names
		return nil
	case '{':
		keys, err := objectKeys(trimmed)
		if err != nil {
			return err
		}
		*n = keys
		return nil
	default:
		return fmt.Errorf("name list must be an array or an object, got %s", string(trimmed[:1]))
	}
}

// objectKeys returns the keys of a JSON object in the order they appear.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	keys := []string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
