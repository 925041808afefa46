package values

import "fmt"

// InvalidValueError is returned when a special value is constructed from
// malformed input (empty ref id, non-UTC timestamp, bad base64, ...).
type InvalidValueError struct {
	Reason string
}

func (e InvalidValueError) Error() string {
	return "invalid value: " + e.Reason
}

// DecodeError is returned when a wire document cannot be turned back into a
// Value, e.g. a tagged object missing a mandatory field.
type DecodeError struct {
	Tag    string
	Reason string
}

func (e DecodeError) Error() string {
	if e.Tag == "" {
		return "decode error: " + e.Reason
	}
	return fmt.Sprintf("decode error: %s: %s", e.Tag, e.Reason)
}
