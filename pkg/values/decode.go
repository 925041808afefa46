package values

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FromJSON parses a wire document and decodes it into a Value. Numbers are
// kept as json.Number internally so integers and doubles stay distinct.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, DecodeError{Reason: "malformed json: " + err.Error()}
	}
	return Decode(raw)
}

// Decode turns an arbitrary parsed wire value into a Value. An object whose
// sole key is one of the special tags becomes the corresponding typed value;
// everything else decodes structurally.
func Decode(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return NullV{}, nil
	case string:
		return StringV(t), nil
	case bool:
		return BooleanV(t), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return LongV(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, DecodeError{Reason: "malformed number: " + t.String()}
		}
		return DoubleV(f), nil
	case int:
		return LongV(t), nil
	case int64:
		return LongV(t), nil
	case float64:
		return DoubleV(t), nil
	case []interface{}:
		arr := make(ArrayV, len(t))
		for i, el := range t {
			v, err := Decode(el)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil
	case map[string]interface{}:
		if len(t) == 1 {
			for tag, contents := range t {
				switch tag {
				case "@ref":
					return decodeRef(contents)
				case "@set":
					return decodeSetRef(contents)
				case "@ts":
					return decodeTime(contents)
				case "@date":
					return decodeDate(contents)
				case "@bytes":
					return decodeBytes(contents)
				case "@query":
					return decodeQuery(contents)
				}
			}
		}
		obj := make(ObjectV, len(t))
		for k, el := range t {
			v, err := Decode(el)
			if err != nil {
				return nil, err
			}
			obj[k] = v
		}
		return obj, nil
	default:
		return nil, DecodeError{Reason: fmt.Sprintf("unsupported wire type %T", raw)}
	}
}

func decodeRef(contents interface{}) (Value, error) {
	fields, ok := contents.(map[string]interface{})
	if !ok {
		return nil, DecodeError{Tag: "@ref", Reason: "contents must be an object"}
	}
	id, ok := fields["id"].(string)
	if !ok || id == "" {
		return nil, DecodeError{Tag: "@ref", Reason: "missing id field"}
	}

	class, err := decodeRefField(fields, "class")
	if err != nil {
		return nil, err
	}
	database, err := decodeRefField(fields, "database")
	if err != nil {
		return nil, err
	}

	if class == nil && database == nil {
		if native, ok := NativeRef(id); ok {
			return native, nil
		}
	}
	return &RefV{ID: id, Class: class, Database: database}, nil
}

func decodeRefField(fields map[string]interface{}, key string) (*RefV, error) {
	raw, present := fields[key]
	if !present {
		return nil, nil
	}
	v, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	ref, ok := v.(*RefV)
	if !ok {
		return nil, DecodeError{Tag: "@ref", Reason: key + " field must be a ref"}
	}
	return ref, nil
}

func decodeSetRef(contents interface{}) (Value, error) {
	v, err := Decode(contents)
	if err != nil {
		return nil, err
	}
	params, ok := v.(ObjectV)
	if !ok {
		return nil, DecodeError{Tag: "@set", Reason: "contents must be an object"}
	}
	return SetRefV{Parameters: params}, nil
}

func decodeTime(contents interface{}) (Value, error) {
	s, ok := contents.(string)
	if !ok {
		return nil, DecodeError{Tag: "@ts", Reason: "contents must be a string"}
	}
	t, err := NewTime(s)
	if err != nil {
		return nil, DecodeError{Tag: "@ts", Reason: err.Error()}
	}
	return t, nil
}

func decodeDate(contents interface{}) (Value, error) {
	s, ok := contents.(string)
	if !ok {
		return nil, DecodeError{Tag: "@date", Reason: "contents must be a string"}
	}
	d, err := NewDate(s)
	if err != nil {
		return nil, DecodeError{Tag: "@date", Reason: err.Error()}
	}
	return d, nil
}

func decodeBytes(contents interface{}) (Value, error) {
	s, ok := contents.(string)
	if !ok {
		return nil, DecodeError{Tag: "@bytes", Reason: "contents must be a string"}
	}
	b, err := BytesFromBase64(s)
	if err != nil {
		return nil, DecodeError{Tag: "@bytes", Reason: err.Error()}
	}
	return b, nil
}

func decodeQuery(contents interface{}) (Value, error) {
	v, err := Decode(contents)
	if err != nil {
		return nil, err
	}
	return QueryV{Lambda: v}, nil
}
