package models

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Extra holds upstream keys a model does not declare, so snapshots relayed
// from the brokerage keep every field it sent.
type Extra map[string]json.RawMessage

type keySet map[string]struct{}

func jsonKeys(t reflect.Type) keySet {
	keys := make(keySet, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		keys[name] = struct{}{}
	}

	return keys
}

// unknownKeys returns the keys of the JSON object data missing from known.
func unknownKeys(data []byte, known keySet) (Extra, error) {
	var raw Extra
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	for key := range raw {
		if _, ok := known[key]; ok {
			delete(raw, key)
		}
	}

	if len(raw) == 0 {
		return nil, nil
	}

	return raw, nil
}

// withExtra merges extra into the encoded object. Declared fields win.
func withExtra(encoded []byte, extra Extra) ([]byte, error) {
	if len(extra) == 0 {
		return encoded, nil
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}

	for key, value := range extra {
		if _, ok := out[key]; !ok {
			out[key] = value
		}
	}

	return json.Marshal(out)
}
