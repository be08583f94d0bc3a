package cdp

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/buger/jsonparser"
)

// Params is the raw params object of a request. It is decoded lazily: each
// accessor walks the raw bytes for the requested key and checks its type.
// A nil Params behaves as an absent params member; reading a required field
// from it yields a *TypeError.
//
// Keys may be nested by passing several path segments, e.g.
// p.String("location", "url").
type Params []byte

// Has reports whether the key path is present.
func (p Params) Has(keys ...string) bool {
	if len(p) == 0 {
		return false
	}
	_, _, _, err := jsonparser.Get(p, keys...)
	return err == nil
}

// Raw returns the raw JSON of the value at the key path.
func (p Params) Raw(keys ...string) ([]byte, error) {
	v, _, err := p.lookup("value", keys)
	return v, err
}

// String returns the string at the key path.
func (p Params) String(keys ...string) (string, error) {
	v, err := p.expect(jsonparser.String, "string", keys)
	if err != nil {
		return "", err
	}
	s, err := jsonparser.ParseString(v)
	if err != nil {
		// jsonparser rejects some escapes encoding/json accepts, such as lone
		// surrogates; decode those the way the envelope was decoded.
		var fallback string
		if jerr := json.Unmarshal(quoted(v), &fallback); jerr != nil {
			return "", &TypeError{Field: fieldPath(keys), Expected: "string", Actual: "malformed string"}
		}
		return fallback, nil
	}
	return s, nil
}

// Int returns the integer at the key path.
func (p Params) Int(keys ...string) (int64, error) {
	v, err := p.expect(jsonparser.Number, "integer", keys)
	if err != nil {
		return 0, err
	}
	n, err := jsonparser.ParseInt(v)
	if err != nil {
		return 0, &TypeError{Field: fieldPath(keys), Expected: "integer", Actual: "number"}
	}
	return n, nil
}

// Float returns the number at the key path.
func (p Params) Float(keys ...string) (float64, error) {
	v, err := p.expect(jsonparser.Number, "number", keys)
	if err != nil {
		return 0, err
	}
	f, err := jsonparser.ParseFloat(v)
	if err != nil {
		return 0, &TypeError{Field: fieldPath(keys), Expected: "number", Actual: "malformed number"}
	}
	return f, nil
}

// Bool returns the boolean at the key path.
func (p Params) Bool(keys ...string) (bool, error) {
	v, err := p.expect(jsonparser.Boolean, "boolean", keys)
	if err != nil {
		return false, err
	}
	b, err := jsonparser.ParseBoolean(v)
	if err != nil {
		return false, &TypeError{Field: fieldPath(keys), Expected: "boolean", Actual: "malformed boolean"}
	}
	return b, nil
}

// Object returns the nested object at the key path.
func (p Params) Object(keys ...string) (Params, error) {
	v, err := p.expect(jsonparser.Object, "object", keys)
	if err != nil {
		return nil, err
	}
	return Params(v), nil
}

// OptionalString is String with a default for an absent or null key.
func (p Params) OptionalString(def string, keys ...string) (string, error) {
	if p.isAbsent(keys) {
		return def, nil
	}
	return p.String(keys...)
}

// OptionalInt is Int with a default for an absent or null key.
func (p Params) OptionalInt(def int64, keys ...string) (int64, error) {
	if p.isAbsent(keys) {
		return def, nil
	}
	return p.Int(keys...)
}

// OptionalBool is Bool with a default for an absent or null key.
func (p Params) OptionalBool(def bool, keys ...string) (bool, error) {
	if p.isAbsent(keys) {
		return def, nil
	}
	return p.Bool(keys...)
}

func (p Params) isAbsent(keys []string) bool {
	if len(p) == 0 {
		return true
	}
	_, dt, _, err := jsonparser.Get(p, keys...)
	return err != nil || dt == jsonparser.Null
}

func (p Params) expect(want jsonparser.ValueType, expected string, keys []string) ([]byte, error) {
	v, dt, err := p.lookup(expected, keys)
	if err != nil {
		return nil, err
	}
	if dt != want {
		return nil, &TypeError{Field: fieldPath(keys), Expected: expected, Actual: typeName(dt)}
	}
	return v, nil
}

func (p Params) lookup(expected string, keys []string) ([]byte, jsonparser.ValueType, error) {
	if len(p) == 0 {
		return nil, jsonparser.NotExist, &TypeError{Field: "params", Expected: "object", Actual: "missing"}
	}
	v, dt, _, err := jsonparser.Get(p, keys...)
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return nil, dt, &TypeError{Field: fieldPath(keys), Expected: expected, Actual: "missing"}
		}
		return nil, dt, &TypeError{Field: fieldPath(keys), Expected: expected, Actual: "malformed value"}
	}
	return v, dt, nil
}

func fieldPath(keys []string) string {
	if len(keys) == 0 {
		return "params"
	}
	return "params." + strings.Join(keys, ".")
}

func typeName(dt jsonparser.ValueType) string {
	switch dt {
	case jsonparser.String:
		return "string"
	case jsonparser.Number:
		return "number"
	case jsonparser.Object:
		return "object"
	case jsonparser.Array:
		return "array"
	case jsonparser.Boolean:
		return "boolean"
	case jsonparser.Null:
		return "null"
	default:
		return "unknown"
	}
}

// quoted restores the quotes jsonparser strips from string values.
func quoted(v []byte) []byte {
	b := make([]byte, 0, len(v)+2)
	b = append(b, '"')
	b = append(b, v...)
	return append(b, '"')
}
