package values

import (
	"encoding/json"
)

// Value is a decoded wire value. The set of implementations is closed: the
// plain JSON shapes below plus the tagged special types in special.go.
type Value interface {
	json.Marshaler
	isValue()
}

type StringV string

type LongV int64

type DoubleV float64

type BooleanV bool

type NullV struct{}

type ArrayV []Value

type ObjectV map[string]Value

func (StringV) isValue()  {}
func (LongV) isValue()    {}
func (DoubleV) isValue()  {}
func (BooleanV) isValue() {}
func (NullV) isValue()    {}
func (ArrayV) isValue()   {}
func (ObjectV) isValue()  {}

func (v StringV) MarshalJSON() ([]byte, error)  { return json.Marshal(string(v)) }
func (v LongV) MarshalJSON() ([]byte, error)    { return json.Marshal(int64(v)) }
func (v DoubleV) MarshalJSON() ([]byte, error)  { return json.Marshal(float64(v)) }
func (v BooleanV) MarshalJSON() ([]byte, error) { return json.Marshal(bool(v)) }
func (v NullV) MarshalJSON() ([]byte, error)    { return []byte("null"), nil }
func (v ArrayV) MarshalJSON() ([]byte, error)   { return json.Marshal([]Value(v)) }
func (v ObjectV) MarshalJSON() ([]byte, error)  { return json.Marshal(map[string]Value(v)) }
